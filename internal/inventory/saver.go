package inventory

import (
	"context"
	"log/slog"

	"github.com/tbruckner/heldeninv/internal/domain"
	"github.com/tbruckner/heldeninv/internal/persistence"
)

// saver serializes autosaves. Mutations hand over a snapshot and return
// immediately; a single goroutine writes snapshots in order. The pending
// slot holds at most the latest unsaved snapshot, so a burst of mutations
// collapses into one write and the final persisted state always matches the
// final in-memory state.
type saver struct {
	store   persistence.Store
	logger  *slog.Logger
	pending chan []*domain.Container
	done    chan struct{}
}

func newSaver(store persistence.Store, logger *slog.Logger) *saver {
	s := &saver{
		store:   store,
		logger:  logger,
		pending: make(chan []*domain.Container, 1),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *saver) run() {
	defer close(s.done)
	for snapshot := range s.pending {
		if err := s.store.Save(context.Background(), snapshot); err != nil {
			s.logger.Error("autosave failed", "error", err)
		}
	}
}

// schedule queues snapshot, displacing any older snapshot still waiting.
func (s *saver) schedule(snapshot []*domain.Container) {
	for {
		select {
		case s.pending <- snapshot:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// close drains and writes the last pending snapshot before returning.
func (s *saver) close() {
	close(s.pending)
	<-s.done
}
