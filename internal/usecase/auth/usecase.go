package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-manager-service/internal/adapter/session"
	domain "task-manager-service/internal/domain/user"
	pkgerrors "task-manager-service/pkg/errors"
	"task-manager-service/pkg/security"
)

// UserRepository defines the interface for user data access operations.
// It abstracts the record store, allowing the JSON file and sqlite
// backends to be used interchangeably.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error                    // Append a new user
	GetByID(ctx context.Context, id string) (*domain.User, error)        // Retrieve user by id, miss is (nil, nil)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)  // Case-insensitive lookup, miss is (nil, nil)
}

// Service implements the authentication business logic: credential
// validation, password hashing, and session lifecycle.
type Service struct {
	users    UserRepository   // Record store access for users
	sessions session.Store    // Session store collaborator
	hasher   security.Hasher  // Password hasher
	log      *zap.Logger      // Logger for structured logging
	validate *validator.Validate
}

// New creates a new authentication Service.
func New(users UserRepository, sessions session.Store, hasher security.Hasher, log *zap.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		log:      log,
		validate: validator.New(),
	}
}

// formatValidationError converts validator.ValidationErrors into a single
// human-readable validation error.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Signup registers a new user and establishes an authenticated session.
func (s *Service) Signup(ctx context.Context, in SignupRequest) (*AuthResponse, error) {
	s.log.Info("signup attempt", zap.String("email", in.EmailAddress))

	// Trim first so padded input cannot sneak under the length minimums.
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.EmailAddress = strings.TrimSpace(in.EmailAddress)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("signup validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	email := strings.ToLower(in.EmailAddress)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		s.log.Warn("email already registered", zap.String("email", email))
		return nil, pkgerrors.NewAlreadyExistsError("user", "user with this email already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("registration failed", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		s.log.Error("failed to create session after signup", zap.String("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create session", err)
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return &AuthResponse{User: toProfile(u), SessionID: sess.ID}, nil
}

// Login verifies credentials and establishes an authenticated session.
// An unknown email and a wrong password produce the same error.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*AuthResponse, error) {
	s.log.Info("login attempt", zap.String("email", in.EmailAddress))

	in.EmailAddress = strings.TrimSpace(in.EmailAddress)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("login validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	email := strings.ToLower(in.EmailAddress)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to look up user", zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Warn("login failed", zap.String("email", email))
		return nil, pkgerrors.NewInvalidCredentialsError()
	}

	ok, err := s.hasher.Verify(in.Password, u.PasswordHash)
	if err != nil {
		s.log.Error("failed to verify password", zap.String("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("login failed", err)
	}
	if !ok {
		s.log.Warn("login failed", zap.String("email", email))
		return nil, pkgerrors.NewInvalidCredentialsError()
	}

	sess, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		s.log.Error("failed to create session after login", zap.String("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create session", err)
	}

	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return &AuthResponse{User: toProfile(u), SessionID: sess.ID}, nil
}

// Logout destroys the session. Logging out without a session is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.log.Error("failed to destroy session", zap.String("session_id", sessionID), zap.Error(err))
		return pkgerrors.NewInternalError("logout failed", err)
	}

	s.log.Info("session destroyed", zap.String("session_id", sessionID))
	return nil
}

// CurrentUser resolves a session id to the stored user profile. A session
// whose user no longer exists is destroyed as a side effect, so stale
// sessions heal themselves.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*UserProfile, error) {
	if sessionID == "" {
		return nil, pkgerrors.NewNotAuthenticatedError("not authenticated")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to load session", err)
	}
	if sess == nil || !sess.Authenticated {
		return nil, pkgerrors.NewNotAuthenticatedError("not authenticated")
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		s.log.Error("failed to load session user", zap.String("user_id", sess.UserID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		s.log.Warn("session references missing user, invalidating",
			zap.String("session_id", sessionID), zap.String("user_id", sess.UserID))
		if err := s.sessions.Destroy(ctx, sessionID); err != nil {
			s.log.Error("failed to invalidate stale session", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, pkgerrors.NewNotAuthenticatedError("not authenticated")
	}

	profile := toProfile(u)
	return &profile, nil
}

func toProfile(u *domain.User) UserProfile {
	return UserProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}

// Ensure Service implements Usecase.
var _ Usecase = (*Service)(nil)
