package user

import "time"

// User represents a user account in the system.
// PasswordHash is the bcrypt hash of the user's password; the plaintext
// password is never stored and the hash never leaves the service.
type User struct {
	ID           string    // ID is the opaque unique identifier for the user
	FirstName    string    // FirstName is the user's first name
	LastName     string    // LastName is the user's last name
	EmailAddress string    // EmailAddress is the unique, lowercased email address
	PasswordHash string    // PasswordHash is the salted adaptive hash of the password
	CreatedAt    time.Time // CreatedAt is when the account was registered
	UpdatedAt    time.Time // UpdatedAt is when the account was last modified
}
