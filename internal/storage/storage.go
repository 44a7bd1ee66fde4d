// internal/storage/storage.go
package storage

import (
	"fmt"

	"diet-manager/internal/models"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Storage persists the food catalog and the food log. Every save replaces
// what was stored before; there is no locking and the last write wins.
type Storage interface {
	LoadFoods() ([]models.FoodRecord, error)
	SaveFoods(records []models.FoodRecord) error
	LoadEntries() ([]models.EntryRecord, error)
	SaveEntries(records []models.EntryRecord) error
	Close() error
}

type Options struct {
	Backend    string
	FoodsFile  string
	LogFile    string
	SQLitePath string
}

// Open returns the backend named by opts.Backend.
func Open(opts Options) (Storage, error) {
	switch opts.Backend {
	case BackendJSON, "":
		return NewJSONStorage(opts.FoodsFile, opts.LogFile), nil
	case BackendSQLite:
		return NewSQLiteStorage(opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
