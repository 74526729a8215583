package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository ensures the uniqueness indexes the account invariants
// rely on: email is globally unique, token is unique once issued.
func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("users")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		collection: collection,
		logger:     log.Named("UserRepository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, fromDomainUser(user))
	if err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code != 11000 {
					continue
				}
				if strings.Contains(writeError.Message, "email_1") {
					r.logger.Warn("Duplicate email during user creation", zap.String("email", user.Email))
					return domain.ErrEmailTaken
				}
				if strings.Contains(writeError.Message, "token_1") {
					r.logger.Warn("Token collision during user creation", zap.String("userID", user.ID))
					return domain.ErrDuplicateToken
				}
			}
		}
		r.logger.Error("Database error during user creation", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"token": token})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("Database error fetching user", zap.Error(err))
		return nil, err
	}
	return doc.toDomain(), nil
}
