package storage

import (
	"time"

	"jlit/internal/config"
	"jlit/internal/domain"
)

// Storage persists and loads suite run results (e.g. for the failures
// viewer and --failed reruns).
type Storage interface {
	Save(results []domain.Result, duration time.Duration, workers int) error
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores results in a JSON file under the exec root.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's results path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
