package domain

import "time"

const (
	MaxOfferPrice          = 100000
	MaxOfferNameLen        = 50
	MaxOfferDescriptionLen = 500
)

// Offer is a published listing. Details carries the free-form attributes the
// seller submitted (brand, size, condition, color, ...) that are not part of
// the stable schema. OwnerID is set once at publish time from the
// authenticated caller; Owner is populated on single-offer reads only.
type Offer struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Details     map[string]string
	ImageURL    string
	OwnerID     string
	Owner       *User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces the publish bounds. Each violation short-circuits so the
// caller gets one specific message at a time.
func (o *Offer) Validate() error {
	if o.Price > MaxOfferPrice {
		return ErrPriceTooHigh
	}
	if len(o.Description) > MaxOfferDescriptionLen {
		return ErrDescriptionTooLong
	}
	if len(o.Name) > MaxOfferNameLen {
		return ErrNameTooLong
	}
	return nil
}

// OfferSummary is the projected shape returned by searches: identity, name
// and price only.
type OfferSummary struct {
	ID    string
	Name  string
	Price float64
}
