package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-manager-service/internal/domain/user"
	pkgerrors "task-manager-service/pkg/errors"
)

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           string `gorm:"primaryKey"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	EmailAddress string `gorm:"not null;uniqueIndex"` // stored lowercased
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// UserRepo implements the auth usecase's UserRepository using sqlite.
type UserRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepo creates a new sqlite-backed UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: strings.ToLower(u.EmailAddress),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("id", u.ID))
		return pkgerrors.NewStoreError("write", fmt.Errorf("failed to create user: %w", err))
	}

	r.log.Info("user created in db", zap.String("id", u.ID))
	return nil
}

// GetByID retrieves a user by id. A miss returns (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, pkgerrors.NewStoreError("read", fmt.Errorf("failed to get user: %w", err))
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by email address, compared case-insensitively.
// A miss returns (nil, nil).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))

	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email_address = ?", needle).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err))
		return nil, pkgerrors.NewStoreError("read", fmt.Errorf("failed to get user by email: %w", err))
	}

	return model.toDomain(), nil
}

func (m *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		EmailAddress: m.EmailAddress,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
