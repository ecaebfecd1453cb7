package domain

import "github.com/google/uuid"

// Container is a named bag holding items and exactly one currency account.
// Derived totals are recomputed from current contents on every read, so they
// can never be stale relative to the last completed mutation.
type Container struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Details           string   `json:"details"`
	IsCarried         bool     `json:"isCarried"`
	IncludeCoinWeight bool     `json:"includeCoinWeight"`
	IsFixedTreasury   bool     `json:"isFixedTreasury"`
	Money             *Account `json:"money"`
	Items             []*Item  `json:"items"`
}

// NewContainer creates an empty container with its own currency account.
// New containers count as carried and include coin weight, matching how
// players use a freshly created bag.
func NewContainer(name string) *Container {
	return &Container{
		ID:                uuid.NewString(),
		Name:              name,
		IsCarried:         true,
		IncludeCoinWeight: true,
		Money:             NewAccount(),
	}
}

// TotalWeight sums the item stack weights plus, when IncludeCoinWeight is
// set, the coin weight of the owned account.
func (c *Container) TotalWeight() float64 {
	var w float64
	for _, it := range c.Items {
		w += it.TotalWeight()
	}
	if c.IncludeCoinWeight {
		w += c.Money.TotalWeight()
	}
	return w
}

// TotalValue sums the item stack values plus the account balance, in
// silbertaler.
func (c *Container) TotalValue() float64 {
	var v float64
	for _, it := range c.Items {
		v += it.TotalValue()
	}
	return v + c.Money.TotalValueInSilver()
}

// FindItem returns the item with the given id, or nil.
func (c *Container) FindItem(id string) *Item {
	for _, it := range c.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// FindMergeable returns an item the given stack could merge into, or nil.
func (c *Container) FindMergeable(name string, weightPerUnit float64) *Item {
	for _, it := range c.Items {
		if it.CanMerge(name, weightPerUnit) {
			return it
		}
	}
	return nil
}

// AddItem appends an item to the container, taking ownership.
func (c *Container) AddItem(it *Item) {
	c.Items = append(c.Items, it)
}

// RemoveItem removes the item with the given id from the container and
// reports whether it was present.
func (c *Container) RemoveItem(id string) bool {
	for idx, it := range c.Items {
		if it.ID == id {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the container, items and account included. Used for
// persistence snapshots and read-only views.
func (c *Container) Clone() *Container {
	cp := *c
	cp.Money = &Account{Coins: c.Money.Coins}
	cp.Items = make([]*Item, len(c.Items))
	for i, it := range c.Items {
		cp.Items[i] = it.Clone()
	}
	return &cp
}

// CloneContainers deep-copies a whole collection.
func CloneContainers(containers []*Container) []*Container {
	out := make([]*Container, len(containers))
	for i, c := range containers {
		out[i] = c.Clone()
	}
	return out
}
