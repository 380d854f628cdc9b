package jsonfile

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"task-manager-service/internal/domain/user"
	pkgerrors "task-manager-service/pkg/errors"
)

// userRecord is the on-disk representation of a user.
// The password field holds the bcrypt hash, matching the legacy file layout.
type userRecord struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	Password     string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r userRecord) toDomain() *user.User {
	return &user.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		EmailAddress: r.EmailAddress,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toUserRecord(u *user.User) userRecord {
	return userRecord{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
		Password:     u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserRepo implements the auth usecase's UserRepository over the JSON file
// store. A RW mutex serializes writers so concurrent signups cannot lose
// records to interleaved whole-file rewrites.
type UserRepo struct {
	store *Store
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewUserRepo creates a new UserRepo backed by the given store.
func NewUserRepo(store *Store, log *zap.Logger) *UserRepo {
	return &UserRepo{store: store, log: log}
}

// Create appends a new user to the collection.
func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var records []userRecord
	if err := r.store.ReadAll(UsersCollection, &records); err != nil {
		return pkgerrors.NewStoreError("read", err)
	}

	records = append(records, toUserRecord(u))

	if err := r.store.WriteAll(UsersCollection, records); err != nil {
		r.log.Error("failed to persist user", zap.String("id", u.ID), zap.Error(err))
		return pkgerrors.NewStoreError("write", err)
	}

	r.log.Info("user created", zap.String("id", u.ID))
	return nil
}

// GetByID retrieves a user by id. A miss returns (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []userRecord
	if err := r.store.ReadAll(UsersCollection, &records); err != nil {
		return nil, pkgerrors.NewStoreError("read", err)
	}

	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain(), nil
		}
	}
	return nil, nil
}

// GetByEmail retrieves a user by email address, compared case-insensitively.
// A miss returns (nil, nil).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []userRecord
	if err := r.store.ReadAll(UsersCollection, &records); err != nil {
		return nil, pkgerrors.NewStoreError("read", err)
	}

	needle := strings.ToLower(strings.TrimSpace(email))
	for _, rec := range records {
		if strings.ToLower(rec.EmailAddress) == needle {
			return rec.toDomain(), nil
		}
	}
	return nil, nil
}
