// Package file persists the container collection as a single JSON document
// on local disk. Each save rewrites the whole document through a temp file
// and rename, so a crashed save never leaves a torn document behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tbruckner/heldeninv/internal/domain"
)

type Store struct {
	path string
}

// New creates a JSON-document store at path, creating the parent directory
// if needed.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Save(ctx context.Context, containers []*domain.Container) error {
	data, err := json.MarshalIndent(containers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write inventory file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		if rerr := os.Remove(tmp); rerr != nil && !os.IsNotExist(rerr) {
			return fmt.Errorf("failed to replace inventory file: %w (also failed to remove temp file: %v)", err, rerr)
		}
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]*domain.Container, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run.
			return []*domain.Container{}, nil
		}
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var containers []*domain.Container
	if err := json.Unmarshal(data, &containers); err != nil {
		return nil, fmt.Errorf("failed to decode inventory file: %w", err)
	}

	// Older documents may lack accounts on empty containers.
	for _, c := range containers {
		if c.Money == nil {
			c.Money = domain.NewAccount()
		}
	}
	return containers, nil
}
