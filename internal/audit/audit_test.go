package audit

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrail(t *testing.T) *Trail {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "audit.log"), slog.Default())
}

func TestAppendAndRecent(t *testing.T) {
	trail := newTestTrail(t)

	trail.Append("created container \"Backpack\"")
	trail.Append("added 5x \"Rope\" to \"Backpack\"")

	lines := trail.Recent(10)
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\] created container "Backpack"$`), lines[0])
	assert.Contains(t, lines[1], `added 5x "Rope" to "Backpack"`)
}

func TestRecentTailsOldEntries(t *testing.T) {
	trail := newTestTrail(t)
	trail.Append("first")
	trail.Append("second")
	trail.Append("third")

	lines := trail.Recent(2)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "second")
	assert.Contains(t, lines[1], "third")
}

func TestRecentMissingFile(t *testing.T) {
	trail := newTestTrail(t)
	assert.Empty(t, trail.Recent(10))
}

func TestAppendNeverFails(t *testing.T) {
	// An unwritable path must not panic or surface an error.
	trail := New(filepath.Join(t.TempDir(), "no", "such", "dir", "audit.log"), slog.Default())
	trail.Append("lost line")
	assert.Empty(t, trail.Recent(10))
}
