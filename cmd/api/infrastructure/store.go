package infrastructure

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-manager-service/internal/adapter/store/jsonfile"
	"task-manager-service/internal/adapter/store/sqlite"
	"task-manager-service/internal/config"
	"task-manager-service/internal/usecase/auth"
	"task-manager-service/internal/usecase/task"
)

// Stores bundles the persistence repositories for the configured backend.
type Stores struct {
	Users auth.UserRepository
	Tasks task.TaskRepository

	db *gorm.DB // set only for the sqlite backend
}

// NewStores builds the user and task repositories for the backend named
// in the configuration.
func NewStores(cfg *config.Config, l *zap.Logger) (*Stores, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendJSONFile:
		store, err := jsonfile.NewStore(cfg.Store.DataDir, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize json file store: %w", err)
		}
		return &Stores{
			Users: jsonfile.NewUserRepo(store, l),
			Tasks: jsonfile.NewTaskRepo(store, l),
		}, nil

	case config.StoreBackendSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath, l)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &Stores{
			Users: sqlite.NewUserRepo(db, l),
			Tasks: sqlite.NewTaskRepo(db, l),
			db:    db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

// Close releases backend resources. The json file backend holds none.
func (s *Stores) Close() error {
	if s.db != nil {
		return sqlite.Close(s.db)
	}
	return nil
}
