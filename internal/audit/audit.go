// Package audit keeps a plain-text, append-only trail of inventory
// mutations, separate from the per-item history logs. The trail is strictly
// best-effort: a failed append is logged and never surfaced, so bookkeeping
// problems can not block an inventory operation.
package audit

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

type Trail struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Trail {
	return &Trail{path: path, logger: logger}
}

// Append writes one timestamped line to the trail.
func (t *Trail) Append(message string) {
	line := fmt.Sprintf("[%s] %s\n", time.Now().UTC().Format(time.RFC3339), message)

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.logger.Error("failed to open audit trail", "path", t.path, "error", err)
		return
	}
	if _, err := f.WriteString(line); err != nil {
		t.logger.Error("failed to append to audit trail", "path", t.path, "error", err)
	}
	if err := f.Close(); err != nil {
		t.logger.Error("failed to close audit trail", "path", t.path, "error", err)
	}
}

// Recent returns up to n trail lines, oldest first. A missing trail file
// means no entries yet.
func (t *Trail) Recent(n int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Open(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			t.logger.Error("failed to read audit trail", "path", t.path, "error", err)
		}
		return nil
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.logger.Error("failed to close audit trail", "path", t.path, "error", err)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.logger.Error("failed to scan audit trail", "path", t.path, "error", err)
		return nil
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
