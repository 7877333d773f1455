package domain

import (
	"errors"
	"time"
)

// User is an account holder. Every user owns exactly one wallet, created
// during onboarding.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	BVN            string
	NIN            string
	HashedPassword string
	WalletID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
