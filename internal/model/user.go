package model

import "time"

// User types recognised by the page gates.
const (
	UserTypeAdvocate = "advocate"
	UserTypeClient   = "client"
)

// User is an account that can sign in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	UserType     string    `json:"user_type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
