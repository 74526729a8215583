package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOfferUsecase(offers *MockOfferRepository, users *MockUserRepository, storage *MockStorage, events *MockEventPublisher) *OfferUsecase {
	return NewOfferUsecase(offers, users, storage, events, logger.NewNop())
}

func stringPtr(s string) *string    { return &s }
func float64Ptr(f float64) *float64 { return &f }

func TestPublish_BoundsValidation(t *testing.T) {
	uc := newOfferUsecase(&MockOfferRepository{}, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	owner := &domain.User{ID: "user-1"}

	_, err := uc.Publish(context.Background(), owner, PublishInput{Name: "Shoes", Price: 100001})
	assert.ErrorIs(t, err, domain.ErrPriceTooHigh)

	_, err = uc.Publish(context.Background(), owner, PublishInput{Name: "Shoes", Price: 20, Description: strings.Repeat("a", 501)})
	assert.ErrorIs(t, err, domain.ErrDescriptionTooLong)

	_, err = uc.Publish(context.Background(), owner, PublishInput{Name: strings.Repeat("a", 51), Price: 20})
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}

func TestPublish_Success(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("Create", mock.Anything, mock.AnythingOfType("*domain.Offer")).Return(nil)

	storage := &MockStorage{}
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(folder string) bool {
		return strings.HasPrefix(folder, "vinted/offers/")
	}), "shoes.jpg", []byte("img")).Return("http://blobs/shoes.jpg", nil)

	events := &MockEventPublisher{}
	events.On("Publish", mock.Anything, SubjectOfferCreated, mock.Anything).Return(nil)

	owner := &domain.User{ID: "user-1", Username: "alice", Token: "secret", Hash: "h", Salt: "s"}
	uc := newOfferUsecase(offers, &MockUserRepository{}, storage, events)

	offer, err := uc.Publish(context.Background(), owner, PublishInput{
		Name:            "Shoes",
		Description:     "nice",
		Price:           20,
		Details:         map[string]string{"brand": "Nike", "size": "42"},
		PictureFileName: "shoes.jpg",
		PictureData:     []byte("img"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", offer.OwnerID)
	assert.Equal(t, "http://blobs/shoes.jpg", offer.ImageURL)
	if assert.NotNil(t, offer.Owner) {
		assert.Equal(t, "alice", offer.Owner.Username)
		// Credential material must not ride along on the populated owner.
		assert.Empty(t, offer.Owner.Token)
		assert.Empty(t, offer.Owner.Hash)
		assert.Empty(t, offer.Owner.Salt)
	}
	offers.AssertExpectations(t)
	storage.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestPublish_BoundaryValuesAccepted(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("Create", mock.Anything, mock.Anything).Return(nil)
	events := &MockEventPublisher{}
	events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, events)
	owner := &domain.User{ID: "user-1"}

	_, err := uc.Publish(context.Background(), owner, PublishInput{
		Name:        strings.Repeat("a", 50),
		Description: strings.Repeat("b", 500),
		Price:       100000,
	})
	assert.NoError(t, err)
}

func TestPublish_PersistFailureCleansUpBlob(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	storage := &MockStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("http://blobs/x.jpg", nil)
	storage.On("DeleteFolder", mock.Anything, mock.MatchedBy(func(folder string) bool {
		return strings.HasPrefix(folder, "vinted/offers/")
	})).Return(nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, storage, &MockEventPublisher{})
	_, err := uc.Publish(context.Background(), &domain.User{ID: "user-1"}, PublishInput{
		Name: "Shoes", Price: 20, PictureFileName: "x.jpg", PictureData: []byte("img"),
	})

	assert.Error(t, err)
	storage.AssertCalled(t, "DeleteFolder", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(&domain.Offer{ID: "offer-1", OwnerID: "user-1"}, nil)
	offers.On("Delete", mock.Anything, "offer-1").Return(nil)

	storage := &MockStorage{}
	storage.On("DeleteFolder", mock.Anything, "vinted/offers/offer-1").Return(nil)

	events := &MockEventPublisher{}
	events.On("Publish", mock.Anything, SubjectOfferDeleted, mock.Anything).Return(nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, storage, events)
	err := uc.Delete(context.Background(), "user-1", "offer-1")

	assert.NoError(t, err)
	offers.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrOfferNotFound)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	err := uc.Delete(context.Background(), "user-1", "missing")

	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(&domain.Offer{ID: "offer-1", OwnerID: "user-1"}, nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	err := uc.Delete(context.Background(), "intruder", "offer-1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	offers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestModify_PartialUpdate(t *testing.T) {
	existing := &domain.Offer{
		ID:          "offer-1",
		OwnerID:     "user-1",
		Name:        "Shoes",
		Description: "nice",
		Price:       20,
		Details:     map[string]string{"brand": "Nike"},
	}
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(existing, nil)
	offers.On("Update", mock.Anything, mock.AnythingOfType("*domain.Offer")).Return(nil)

	users := &MockUserRepository{}
	users.On("FindByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", Username: "alice"}, nil)

	uc := newOfferUsecase(offers, users, &MockStorage{}, &MockEventPublisher{})
	offer, err := uc.Modify(context.Background(), "user-1", "offer-1", ModifyInput{
		Price:   float64Ptr(25),
		Details: map[string]string{"condition": "worn"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Shoes", offer.Name)
	assert.Equal(t, 25.0, offer.Price)
	assert.Equal(t, "Nike", offer.Details["brand"])
	assert.Equal(t, "worn", offer.Details["condition"])
	if assert.NotNil(t, offer.Owner) {
		assert.Equal(t, "alice", offer.Owner.Username)
	}
}

func TestModify_RejectsOutOfBounds(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(&domain.Offer{ID: "offer-1", OwnerID: "user-1", Name: "Shoes"}, nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	_, err := uc.Modify(context.Background(), "user-1", "offer-1", ModifyInput{Price: float64Ptr(100001)})

	assert.ErrorIs(t, err, domain.ErrPriceTooHigh)
	offers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModify_NonOwnerForbidden(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(&domain.Offer{ID: "offer-1", OwnerID: "user-1"}, nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	_, err := uc.Modify(context.Background(), "intruder", "offer-1", ModifyInput{Name: stringPtr("Stolen")})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByID_PopulatesOwner(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "offer-1").Return(&domain.Offer{ID: "offer-1", OwnerID: "user-1"}, nil)

	users := &MockUserRepository{}
	users.On("FindByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", Username: "alice", Token: "secret"}, nil)

	uc := newOfferUsecase(offers, users, &MockStorage{}, &MockEventPublisher{})
	offer, err := uc.GetByID(context.Background(), "offer-1")

	assert.NoError(t, err)
	if assert.NotNil(t, offer.Owner) {
		assert.Equal(t, "alice", offer.Owner.Username)
		assert.Empty(t, offer.Owner.Token)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrOfferNotFound)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	_, err := uc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestSearch_PassesQueryThrough(t *testing.T) {
	query := domain.OfferQuery{Title: "shoes", Page: 2, PageLimit: 5}
	summaries := []*domain.OfferSummary{{ID: "offer-1", Name: "Shoes", Price: 50}}

	offers := &MockOfferRepository{}
	offers.On("Search", mock.Anything, query).Return(summaries, int64(12), nil)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, &MockEventPublisher{})
	got, count, err := uc.Search(context.Background(), query)

	assert.NoError(t, err)
	assert.Equal(t, summaries, got)
	assert.Equal(t, int64(12), count)
}

func TestPublish_EventFailureDoesNotFailPublish(t *testing.T) {
	offers := &MockOfferRepository{}
	offers.On("Create", mock.Anything, mock.Anything).Return(nil)

	events := &MockEventPublisher{}
	events.On("Publish", mock.Anything, SubjectOfferCreated, mock.Anything).Return(assert.AnError)

	uc := newOfferUsecase(offers, &MockUserRepository{}, &MockStorage{}, events)
	offer, err := uc.Publish(context.Background(), &domain.User{ID: "user-1"}, PublishInput{Name: "Shoes", Price: 20})

	assert.NoError(t, err)
	assert.NotNil(t, offer)
}
