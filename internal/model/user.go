package model

import "time"

// User represents an account. Email is stored lower-cased and is unique.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Owner returns the public summary attached to sessions the user owns
func (u *User) Owner() SessionOwner {
	return SessionOwner{ID: u.ID, Email: u.Email}
}
