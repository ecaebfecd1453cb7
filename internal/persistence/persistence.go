// Package persistence defines the durable store for the container
// collection. A save always replaces the whole collection; there are no
// incremental writes. Backends live in subpackages and are selected at
// startup.
package persistence

import (
	"context"

	"github.com/tbruckner/heldeninv/internal/domain"
)

// Store persists the full container collection.
type Store interface {
	// Save replaces the stored collection with containers.
	Save(ctx context.Context, containers []*domain.Container) error
	// Load returns the stored collection. A store that has never been
	// written returns an empty collection and no error.
	Load(ctx context.Context) ([]*domain.Container, error)
}
