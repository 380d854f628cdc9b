package auth

// SignupRequest represents the payload for registering a new user.
type SignupRequest struct {
	FirstName    string `validate:"required,min=2,max=100"`
	LastName     string `validate:"required,min=2,max=100"`
	EmailAddress string `validate:"required,email"`
	Password     string `validate:"required,min=6"`
}

// LoginRequest represents the payload for authenticating a user.
type LoginRequest struct {
	EmailAddress string `validate:"required,email"`
	Password     string `validate:"required"`
}

// UserProfile is the user representation returned to callers.
// It never carries the password hash.
type UserProfile struct {
	ID           string
	FirstName    string
	LastName     string
	EmailAddress string
}

// AuthResponse is returned by Signup and Login: the profile plus the id of
// the freshly established session.
type AuthResponse struct {
	User      UserProfile
	SessionID string
}
