// internal/storage/json.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"diet-manager/internal/models"
)

const jsonIndent = "    "

// JSONStorage keeps foods and log entries in two pretty-printed JSON array
// files that are rewritten in full on every save.
type JSONStorage struct {
	foodsPath string
	logPath   string
}

func NewJSONStorage(foodsPath, logPath string) *JSONStorage {
	return &JSONStorage{foodsPath: foodsPath, logPath: logPath}
}

// LoadFoods returns no records when the file does not exist yet.
func (s *JSONStorage) LoadFoods() ([]models.FoodRecord, error) {
	data, err := readIfExists(s.foodsPath)
	if err != nil || data == nil {
		return nil, err
	}

	var records []models.FoodRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.foodsPath, err)
	}
	return records, nil
}

func (s *JSONStorage) SaveFoods(records []models.FoodRecord) error {
	return writeJSON(s.foodsPath, records)
}

// LoadEntries decodes the log file element by element so that a single
// malformed entry is dropped instead of the whole log.
func (s *JSONStorage) LoadEntries() ([]models.EntryRecord, error) {
	data, err := readIfExists(s.logPath)
	if err != nil || data == nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.logPath, err)
	}

	records := make([]models.EntryRecord, 0, len(raw))
	for i, msg := range raw {
		var rec models.EntryRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			slog.Warn("skipping malformed log record", "file", s.logPath, "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *JSONStorage) SaveEntries(records []models.EntryRecord) error {
	return writeJSON(s.logPath, records)
}

func (s *JSONStorage) Close() error { return nil }

func readIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
