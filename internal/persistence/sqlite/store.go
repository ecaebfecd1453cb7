package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tbruckner/heldeninv/internal/domain"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save rewrites the stored collection inside one transaction. Either the new
// snapshot is fully visible or the previous one is untouched.
func (s *Store) Save(ctx context.Context, containers []*domain.Container) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to roll back save transaction", "error", err)
		}
	}()

	// Children first, so the clear does not depend on cascade settings.
	for _, table := range []string{"item_logs", "item_tags", "items", "containers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for cpos, c := range containers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO containers (id, position, name, details, is_carried, include_coin_weight, is_fixed_treasury, dukaten, silbertaler, heller, kreuzer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, cpos, c.Name, c.Details, c.IsCarried, c.IncludeCoinWeight, c.IsFixedTreasury,
			c.Money.Dukaten, c.Money.Silbertaler, c.Money.Heller, c.Money.Kreuzer)
		if err != nil {
			return fmt.Errorf("failed to insert container %q: %w", c.Name, err)
		}

		for ipos, it := range c.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO items (id, container_id, position, name, quantity, weight_per_unit, value, is_consumable, details, acquired_date)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, it.ID, c.ID, ipos, it.Name, it.Quantity, it.WeightPerUnit, it.Value, it.IsConsumable, it.Details,
				it.AcquiredDate.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert item %q: %w", it.Name, err)
			}

			for tpos, tag := range it.Tags {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO item_tags (item_id, position, tag) VALUES (?, ?, ?)
				`, it.ID, tpos, tag); err != nil {
					return fmt.Errorf("failed to insert tag: %w", err)
				}
			}

			for lpos, entry := range it.Log {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO item_logs (item_id, position, timestamp, message) VALUES (?, ?, ?, ?)
				`, it.ID, lpos, entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Message); err != nil {
					return fmt.Errorf("failed to insert log entry: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]*domain.Container, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, details, is_carried, include_coin_weight, is_fixed_treasury, dukaten, silbertaler, heller, kreuzer
		FROM containers ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer closeRows(rows)

	containers := []*domain.Container{}
	for rows.Next() {
		c := &domain.Container{Money: domain.NewAccount()}
		if err := rows.Scan(&c.ID, &c.Name, &c.Details, &c.IsCarried, &c.IncludeCoinWeight, &c.IsFixedTreasury,
			&c.Money.Dukaten, &c.Money.Silbertaler, &c.Money.Heller, &c.Money.Kreuzer); err != nil {
			return nil, fmt.Errorf("failed to scan container: %w", err)
		}
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating containers: %w", err)
	}

	for _, c := range containers {
		items, err := s.loadItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}
	return containers, nil
}

func (s *Store) loadItems(ctx context.Context, containerID string) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, weight_per_unit, value, is_consumable, details, acquired_date
		FROM items WHERE container_id = ? ORDER BY position ASC
	`, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer closeRows(rows)

	var items []*domain.Item
	for rows.Next() {
		it := &domain.Item{}
		var acquired string
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.WeightPerUnit, &it.Value, &it.IsConsumable, &it.Details, &acquired); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		it.AcquiredDate, err = time.Parse(time.RFC3339Nano, acquired)
		if err != nil {
			return nil, fmt.Errorf("failed to parse acquired date: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	for _, it := range items {
		if err := s.loadTags(ctx, it); err != nil {
			return nil, err
		}
		if err := s.loadLog(ctx, it); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Store) loadTags(ctx context.Context, it *domain.Item) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag FROM item_tags WHERE item_id = ? ORDER BY position ASC
	`, it.ID)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		it.Tags = append(it.Tags, tag)
	}
	return rows.Err()
}

func (s *Store) loadLog(ctx context.Context, it *domain.Item) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, message FROM item_logs WHERE item_id = ? ORDER BY position ASC
	`, it.ID)
	if err != nil {
		return fmt.Errorf("failed to query item log: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var entry domain.LogEntry
		var ts string
		if err := rows.Scan(&ts, &entry.Message); err != nil {
			return fmt.Errorf("failed to scan log entry: %w", err)
		}
		entry.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return fmt.Errorf("failed to parse log timestamp: %w", err)
		}
		it.Log = append(it.Log, entry)
	}
	return rows.Err()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}
