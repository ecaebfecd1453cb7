package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Epsilon is the tolerance used when comparing item weights and values, so
// re-assigning an unchanged float does not count as an edit.
const Epsilon = 1e-4

// NearlyEqual reports whether two floats are equal within Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// LogEntry is one timestamped line in an item's history.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.UTC().Format(time.RFC3339), e.Message)
}

// Item is a single stock-keeping entry. An item is owned by exactly one
// container at any time. Quantity may be driven to zero without the item
// being removed; removal is always an explicit operation.
type Item struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	WeightPerUnit float64    `json:"weightPerUnit"`
	Value         float64    `json:"value"`
	IsConsumable  bool       `json:"isConsumable"`
	Details       string     `json:"details"`
	AcquiredDate  time.Time  `json:"acquiredDate"`
	Tags          []string   `json:"tags"`
	Log           []LogEntry `json:"log"`
}

// NewItem creates an item with a fresh id and the current acquisition date.
func NewItem(name string) *Item {
	return &Item{
		ID:           uuid.NewString(),
		Name:         name,
		Quantity:     1,
		AcquiredDate: time.Now().UTC(),
	}
}

// TotalWeight is the weight of the whole stack in stein.
func (i *Item) TotalWeight() float64 {
	return i.WeightPerUnit * float64(i.Quantity)
}

// TotalValue is the value of the whole stack in silbertaler.
func (i *Item) TotalValue() float64 {
	return i.Value * float64(i.Quantity)
}

// AddLog appends a timestamped message to the item's history. The history is
// append-only; entries are never edited or removed.
func (i *Item) AddLog(message string) {
	i.Log = append(i.Log, LogEntry{Timestamp: time.Now().UTC(), Message: message})
}

// CanMerge reports whether other can be merged into this item: same name and
// a unit weight within Epsilon.
func (i *Item) CanMerge(name string, weightPerUnit float64) bool {
	return i.Name == name && NearlyEqual(i.WeightPerUnit, weightPerUnit)
}

// Split creates a new item carrying quantity units of this item's stock.
// Name, unit weight, value, flags, details, tags and the acquisition date are
// copied; the history starts empty. The new item gets its own id.
func (i *Item) Split(quantity int) *Item {
	return &Item{
		ID:            uuid.NewString(),
		Name:          i.Name,
		Quantity:      quantity,
		WeightPerUnit: i.WeightPerUnit,
		Value:         i.Value,
		IsConsumable:  i.IsConsumable,
		Details:       i.Details,
		AcquiredDate:  i.AcquiredDate,
		Tags:          append([]string(nil), i.Tags...),
	}
}

// Clone deep-copies the item, history included, keeping the same id. Used
// for persistence snapshots and read-only views.
func (i *Item) Clone() *Item {
	c := *i
	c.Tags = append([]string(nil), i.Tags...)
	c.Log = append([]LogEntry(nil), i.Log...)
	return &c
}
