package usecase

import (
	"context"
	"errors"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subjects for offer lifecycle events.
const (
	SubjectOfferCreated = "offer.created"
	SubjectOfferDeleted = "offer.deleted"
)

type OfferUsecase struct {
	offers  domain.OfferRepository
	users   domain.UserRepository
	storage domain.Storage
	events  domain.EventPublisher
	logger  *logger.Logger
}

func NewOfferUsecase(offers domain.OfferRepository, users domain.UserRepository, storage domain.Storage, events domain.EventPublisher, log *logger.Logger) *OfferUsecase {
	return &OfferUsecase{
		offers:  offers,
		users:   users,
		storage: storage,
		events:  events,
		logger:  log.Named("OfferUsecase"),
	}
}

type PublishInput struct {
	Name            string
	Description     string
	Price           float64
	Details         map[string]string
	PictureFileName string
	PictureData     []byte
}

type ModifyInput struct {
	Name        *string
	Description *string
	Price       *float64
	Details     map[string]string
}

// OfferEvent is the payload published on offer lifecycle subjects.
type OfferEvent struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
}

func offerFolder(id string) string { return "vinted/offers/" + id }

// Publish validates the bounds, uploads the picture under the new offer's
// folder and persists the offer with the caller as owner. The upload happens
// before persistence; if persistence fails the uploaded blob is removed so a
// failed publish leaves no orphan.
func (uc *OfferUsecase) Publish(ctx context.Context, owner *domain.User, in PublishInput) (*domain.Offer, error) {
	offer := &domain.Offer{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Details:     in.Details,
		OwnerID:     owner.ID,
	}
	if err := offer.Validate(); err != nil {
		return nil, err
	}

	if len(in.PictureData) > 0 {
		imageURL, err := uc.storage.Upload(ctx, offerFolder(offer.ID), in.PictureFileName, in.PictureData)
		if err != nil {
			return nil, err
		}
		offer.ImageURL = imageURL
	}

	if err := uc.offers.Create(ctx, offer); err != nil {
		if offer.ImageURL != "" {
			if cleanupErr := uc.storage.DeleteFolder(ctx, offerFolder(offer.ID)); cleanupErr != nil {
				uc.logger.Warn("Failed to clean up uploaded image after persistence failure",
					zap.String("offerID", offer.ID), zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	uc.logger.Info("Offer published", zap.String("offerID", offer.ID), zap.String("ownerID", owner.ID))
	uc.publishEvent(ctx, SubjectOfferCreated, offer)

	offer.Owner = owner.PublicView()
	return offer, nil
}

// Delete removes the offer and then its blob folder. Only the owner may
// delete. A blob cleanup failure after the record is gone is surfaced; there
// is no reconciliation beyond that.
func (uc *OfferUsecase) Delete(ctx context.Context, callerID, id string) error {
	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if offer.OwnerID != callerID {
		uc.logger.Warn("Delete refused for non-owner",
			zap.String("offerID", id), zap.String("ownerID", offer.OwnerID), zap.String("callerID", callerID))
		return domain.ErrForbidden
	}

	if err := uc.offers.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Offer deleted", zap.String("offerID", id), zap.String("callerID", callerID))
	uc.publishEvent(ctx, SubjectOfferDeleted, offer)

	if err := uc.storage.DeleteFolder(ctx, offerFolder(id)); err != nil {
		uc.logger.Error("Offer record removed but blob cleanup failed", zap.String("offerID", id), zap.Error(err))
		return err
	}
	return nil
}

// Modify applies a partial update under the same bounds as publish. Only the
// owner may modify; the owner reference itself is never reassigned.
func (uc *OfferUsecase) Modify(ctx context.Context, callerID, id string, in ModifyInput) (*domain.Offer, error) {
	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.OwnerID != callerID {
		uc.logger.Warn("Modify refused for non-owner",
			zap.String("offerID", id), zap.String("ownerID", offer.OwnerID), zap.String("callerID", callerID))
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		offer.Name = *in.Name
	}
	if in.Description != nil {
		offer.Description = *in.Description
	}
	if in.Price != nil {
		offer.Price = *in.Price
	}
	if len(in.Details) > 0 {
		if offer.Details == nil {
			offer.Details = make(map[string]string, len(in.Details))
		}
		for k, v := range in.Details {
			offer.Details[k] = v
		}
	}

	if err := offer.Validate(); err != nil {
		return nil, err
	}
	if err := uc.offers.Update(ctx, offer); err != nil {
		return nil, err
	}

	uc.logger.Info("Offer modified", zap.String("offerID", id))
	return uc.withOwner(ctx, offer), nil
}

// GetByID returns the full offer with its owner resolved to a public view.
func (uc *OfferUsecase) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	offer, err := uc.offers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withOwner(ctx, offer), nil
}

// Search returns the projected summaries for the query plus the total count
// matching the filter regardless of pagination.
func (uc *OfferUsecase) Search(ctx context.Context, query domain.OfferQuery) ([]*domain.OfferSummary, int64, error) {
	return uc.offers.Search(ctx, query)
}

func (uc *OfferUsecase) withOwner(ctx context.Context, offer *domain.Offer) *domain.Offer {
	owner, err := uc.users.FindByID(ctx, offer.OwnerID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Warn("Failed to resolve offer owner", zap.String("offerID", offer.ID), zap.Error(err))
		}
		return offer
	}
	offer.Owner = owner.PublicView()
	return offer
}

func (uc *OfferUsecase) publishEvent(ctx context.Context, subject string, offer *domain.Offer) {
	event := OfferEvent{
		ID:      offer.ID,
		OwnerID: offer.OwnerID,
		Name:    offer.Name,
		Price:   offer.Price,
	}
	if err := uc.events.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("Failed to publish offer event", zap.String("subject", subject), zap.String("offerID", offer.ID), zap.Error(err))
	}
}
