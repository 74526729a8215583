package domain

import "errors"

var (
	ErrPasswordRequired = errors.New("please provide a password")
	ErrEmailRequired    = errors.New("please provide an email")
	ErrUsernameRequired = errors.New("please provide a username")
	ErrEmailTaken       = errors.New("this email is already taken")
	ErrDuplicateToken   = errors.New("token already exists")

	ErrPriceTooHigh       = errors.New("the price must be under 100000")
	ErrDescriptionTooLong = errors.New("the description must be under 500 characters")
	ErrNameTooLong        = errors.New("the name must be under 50 characters")

	ErrUserNotFound  = errors.New("user not found")
	ErrOfferNotFound = errors.New("no offer with this id")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("you are not the owner of this offer")
)
