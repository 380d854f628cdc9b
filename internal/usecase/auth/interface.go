package auth

import "context"

// Usecase defines the interface for authentication business logic.
type Usecase interface {
	Signup(ctx context.Context, in SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, in LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*UserProfile, error)
}
