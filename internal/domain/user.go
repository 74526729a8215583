package domain

import "time"

// User is an account holder. Hash and Salt are credential material and must
// never leave the service; Token is the opaque bearer secret issued at
// sign-up and returned only by the signup and login operations.
type User struct {
	ID         string
	Username   string
	Avatar     string // retrieval URL, empty when no avatar was uploaded
	Email      string
	Token      string
	Hash       string
	Salt       string
	Newsletter bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PublicView strips everything a response may not carry.
func (u *User) PublicView() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
