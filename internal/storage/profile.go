// internal/storage/profile.go
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"diet-manager/internal/models"
)

// ProfileFile stores the user profile as YAML.
type ProfileFile struct {
	path string
}

func NewProfileFile(path string) *ProfileFile {
	return &ProfileFile{path: path}
}

func (p *ProfileFile) Path() string {
	return p.path
}

// Load returns the default profile when the file does not exist.
func (p *ProfileFile) Load() (models.UserProfile, error) {
	data, err := readIfExists(p.path)
	if err != nil {
		return models.DefaultProfile(), err
	}
	if data == nil {
		return models.DefaultProfile(), nil
	}

	profile := models.DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return models.DefaultProfile(), fmt.Errorf("failed to parse profile file: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return models.DefaultProfile(), err
	}
	return profile, nil
}

func (p *ProfileFile) Save(profile models.UserProfile) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile to YAML: %w", err)
	}

	return os.WriteFile(p.path, data, 0o600)
}
