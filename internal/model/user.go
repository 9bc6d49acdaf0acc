package model

import "github.com/google/uuid"

// User is an operator account for the console login.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
}

// Principal is the authenticated session carried through a request. It is
// set once by the auth middleware and injected into the services that need
// it; nothing reads session state from anywhere else.
type Principal struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}
