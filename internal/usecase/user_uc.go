package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/arthurCDG/Vinted-clone-server/internal/auth"
	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenInsertAttempts bounds the retry loop around the store's unique token
// index. The 62^16 token space makes a second collision in a row all but
// impossible.
const tokenInsertAttempts = 3

type UserUsecase struct {
	repo    domain.UserRepository
	storage domain.Storage
	mailer  domain.Mailer
	logger  *logger.Logger
}

func NewUserUsecase(repo domain.UserRepository, storage domain.Storage, mailer domain.Mailer, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		repo:    repo,
		storage: storage,
		mailer:  mailer,
		logger:  log.Named("UserUsecase"),
	}
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	Newsletter     bool
	AvatarFileName string
	AvatarData     []byte
}

// Register creates an account: field validation in a fixed order, duplicate
// email rejection, salt + digest + token generation, avatar upload under the
// account's folder, persistence. The bearer token is issued here and never
// rotates.
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if in.Email == "" {
		return nil, domain.ErrEmailRequired
	}
	if in.Username == "" {
		return nil, domain.ErrUsernameRequired
	}

	if _, err := u.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	salt, err := auth.NewSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &domain.User{
		ID:         uuid.NewString(),
		Username:   in.Username,
		Email:      in.Email,
		Hash:       auth.HashPassword(in.Password, salt),
		Salt:       salt,
		Newsletter: in.Newsletter,
	}

	if len(in.AvatarData) > 0 {
		avatarURL, err := u.storage.Upload(ctx, "vinted/users/"+user.ID, in.AvatarFileName, in.AvatarData)
		if err != nil {
			return nil, err
		}
		user.Avatar = avatarURL
	}

	for attempt := 0; attempt < tokenInsertAttempts; attempt++ {
		token, err := auth.NewSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		user.Token = token

		err = u.repo.Create(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateToken) && attempt < tokenInsertAttempts-1 {
			u.logger.Warn("Bearer token collision, regenerating", zap.String("userID", user.ID))
			continue
		}
		return nil, err
	}

	u.logger.Info("User registered", zap.String("userID", user.ID), zap.String("email", user.Email))

	if user.Newsletter {
		if err := u.mailer.SendWelcomeEmail(user.Email, user.Username); err != nil {
			u.logger.Warn("Failed to send welcome email", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return user, nil
}

// Login checks the supplied password against the stored digest and returns
// the account with its token. Unknown email and wrong password are the same
// error on purpose.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if auth.HashPassword(password, user.Salt) != user.Hash {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}
