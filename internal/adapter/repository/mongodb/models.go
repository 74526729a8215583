package mongodb

import (
	"time"

	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
)

type userDocument struct {
	ID         string    `bson:"_id"`
	Username   string    `bson:"username"`
	Avatar     string    `bson:"avatar,omitempty"`
	Email      string    `bson:"email"`
	Token      string    `bson:"token,omitempty"`
	Hash       string    `bson:"hash"`
	Salt       string    `bson:"salt"`
	Newsletter bool      `bson:"newsletter"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

type offerDocument struct {
	ID          string            `bson:"_id"`
	Name        string            `bson:"product_name"`
	Description string            `bson:"product_description"`
	Price       float64           `bson:"product_price"`
	Details     map[string]string `bson:"product_details,omitempty"`
	ImageURL    string            `bson:"product_image,omitempty"`
	OwnerID     string            `bson:"owner"`
	CreatedAt   time.Time         `bson:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

func fromDomainUser(u *domain.User) *userDocument {
	return &userDocument{
		ID:         u.ID,
		Username:   u.Username,
		Avatar:     u.Avatar,
		Email:      u.Email,
		Token:      u.Token,
		Hash:       u.Hash,
		Salt:       u.Salt,
		Newsletter: u.Newsletter,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:         d.ID,
		Username:   d.Username,
		Avatar:     d.Avatar,
		Email:      d.Email,
		Token:      d.Token,
		Hash:       d.Hash,
		Salt:       d.Salt,
		Newsletter: d.Newsletter,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func fromDomainOffer(o *domain.Offer) *offerDocument {
	return &offerDocument{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Details:     o.Details,
		ImageURL:    o.ImageURL,
		OwnerID:     o.OwnerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (d *offerDocument) toDomain() *domain.Offer {
	return &domain.Offer{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Details:     d.Details,
		ImageURL:    d.ImageURL,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
