package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByToken(ctx context.Context, token string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	// Delete removes the offer atomically and reports ErrOfferNotFound when
	// nothing was removed.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Offer, error)
	// Search applies the query's filter, sort and pagination, projecting to
	// summaries, and separately counts every document matching the filter.
	Search(ctx context.Context, query OfferQuery) ([]*OfferSummary, int64, error)
}

// Storage is the blob store: images live under a folder prefix and are
// addressed back by retrieval URL.
type Storage interface {
	Upload(ctx context.Context, folder, fileName string, data []byte) (string, error)
	DeleteFolder(ctx context.Context, folder string) error
}

// EventPublisher emits offer lifecycle events. Implementations must not make
// delivery a precondition of the request succeeding.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer sends account emails best-effort.
type Mailer interface {
	SendWelcomeEmail(toEmail, username string) error
}
