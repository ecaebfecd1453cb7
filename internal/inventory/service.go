// Package inventory implements the inventory ledger: every operation that
// creates, edits, moves or removes items and money across containers. All
// business invariants (quantity and balance checks) are enforced here, in
// one place; the domain entities stay simple primitives.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tbruckner/heldeninv/internal/domain"
	"github.com/tbruckner/heldeninv/internal/persistence"
)

// TreasuryName is the name of the container seeded on first run.
const TreasuryName = "Treasury"

// Auditor receives a one-line summary of every completed mutation. It must
// never fail the calling operation.
type Auditor interface {
	Append(message string)
}

// Service owns the container collection and serializes all access to it.
// Every completed mutation publishes one event and schedules an autosave of
// the whole collection.
type Service struct {
	mu         sync.Mutex
	containers []*domain.Container
	closed     bool

	store    persistence.Store
	trail    Auditor
	logger   *slog.Logger
	notifier *notifier
	saver    *saver
}

func NewService(store persistence.Store, trail Auditor, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		trail:    trail,
		logger:   logger,
		notifier: newNotifier(),
		saver:    newSaver(store, logger),
	}
}

// Load reads the persisted collection. A load failure is treated as empty
// state rather than propagated: this is local single-user data with no
// conflicting writers, and refusing to start would lose nothing back. An
// empty collection is seeded with the treasury container and persisted
// immediately.
func (s *Service) Load(ctx context.Context) error {
	containers, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load inventory, starting empty", "error", err)
		containers = nil
	}

	if len(containers) == 0 {
		treasury := domain.NewContainer(TreasuryName)
		treasury.IsFixedTreasury = true
		treasury.IsCarried = false
		treasury.IncludeCoinWeight = true
		treasury.Details = "The central treasury for savings."
		containers = []*domain.Container{treasury}

		if err := s.store.Save(ctx, domain.CloneContainers(containers)); err != nil {
			s.logger.Error("failed to persist seeded treasury", "error", err)
		}
		s.logger.Info("seeded treasury container", "id", treasury.ID)
	}

	s.mu.Lock()
	s.containers = containers
	s.mu.Unlock()

	s.logger.Info("inventory loaded", "containers", len(containers))
	return nil
}

// Close flushes any pending autosave. The service must not be used after.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.saver.close()
}

// Subscribe returns the aggregate event stream and a cancel func the caller
// must invoke when done.
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.notifier.subscribe()
}

// Containers returns a deep copy of the collection.
func (s *Service) Containers() []*domain.Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneContainers(s.containers)
}

// Container returns a deep copy of one container.
func (s *Service) Container(id string) (*domain.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(id)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}
	return c.Clone(), nil
}

// Summary holds the cross-container aggregates shown on the dashboard.
type Summary struct {
	TotalWeight        float64      `json:"totalWeight"`
	CarriedWeight      float64      `json:"carriedWeight"`
	Bank               domain.Coins `json:"bank"`
	TotalValueInSilver float64      `json:"totalValueInSilver"`
	TotalValue         string       `json:"totalValue"`
}

// Summarize recomputes the aggregate totals from current state.
func (s *Service) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	for _, c := range s.containers {
		w := c.TotalWeight()
		sum.TotalWeight += w
		if c.IsCarried {
			sum.CarriedWeight += w
		}
		sum.Bank = sum.Bank.Add(c.Money.Coins)
		sum.TotalValueInSilver += c.TotalValue()
	}
	sum.TotalValue = domain.FormatValue(sum.TotalValueInSilver)
	return sum
}

// SearchResult pairs a matching item with the container holding it.
type SearchResult struct {
	ContainerID   string       `json:"containerId"`
	ContainerName string       `json:"containerName"`
	Item          *domain.Item `json:"item"`
}

// SearchItems finds items across all containers whose name or details
// contain term, case-insensitively.
func (s *Service) SearchItems(term string) []SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, c := range s.containers {
		for _, it := range c.Items {
			if strings.Contains(strings.ToLower(it.Name), term) ||
				strings.Contains(strings.ToLower(it.Details), term) {
				results = append(results, SearchResult{
					ContainerID:   c.ID,
					ContainerName: c.Name,
					Item:          it.Clone(),
				})
			}
		}
	}
	return results
}

// CreateContainer adds a new, empty container.
func (s *Service) CreateContainer(name string) (*domain.Container, error) {
	patch := ContainerPatch{Name: strings.TrimSpace(name)}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	c := domain.NewContainer(patch.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.containers = append(s.containers, c)
	s.completed(fmt.Sprintf("created container %q", c.Name),
		Event{Op: OpContainerCreated, ContainerID: c.ID})
	return c.Clone(), nil
}

// UpdateContainer applies the patch. An unchanged patch is a no-op and does
// not trigger a save.
func (s *Service) UpdateContainer(id string, patch ContainerPatch) (*domain.Container, error) {
	patch.Name = strings.TrimSpace(patch.Name)
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(id)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}

	if c.Name == patch.Name && c.Details == patch.Details &&
		c.IsCarried == patch.IsCarried && c.IncludeCoinWeight == patch.IncludeCoinWeight {
		return c.Clone(), nil
	}

	c.Name = patch.Name
	c.Details = patch.Details
	c.IsCarried = patch.IsCarried
	c.IncludeCoinWeight = patch.IncludeCoinWeight

	s.completed(fmt.Sprintf("updated container %q", c.Name),
		Event{Op: OpContainerUpdated, ContainerID: c.ID})
	return c.Clone(), nil
}

// DeleteContainer removes a container. With moveToID set, its items and
// money move to that container first; otherwise the contents are discarded.
// The fixed treasury can not be deleted.
func (s *Service) DeleteContainer(id, moveToID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.containers {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrContainerNotFound
	}
	c := s.containers[idx]
	if c.IsFixedTreasury {
		return domain.ErrFixedTreasury
	}

	if moveToID != "" {
		if moveToID == id {
			return domain.ErrInvalidTarget
		}
		target := s.findContainer(moveToID)
		if target == nil {
			return domain.ErrInvalidTarget
		}
		for _, it := range c.Items {
			// Same merge rule as item moves.
			if dest := target.FindMergeable(it.Name, it.WeightPerUnit); dest != nil {
				dest.Quantity += it.Quantity
				dest.AddLog(fmt.Sprintf("received %d from %q", it.Quantity, c.Name))
				continue
			}
			it.AddLog(fmt.Sprintf("moved here from %q", c.Name))
			target.AddItem(it)
		}
		c.Items = nil
		if err := c.Money.TransferTo(target.Money, c.Money.Coins); err != nil {
			return err
		}
		s.trail.Append(fmt.Sprintf("moved contents of %q to %q", c.Name, target.Name))
	}

	s.containers = append(s.containers[:idx], s.containers[idx+1:]...)
	s.completed(fmt.Sprintf("deleted container %q", c.Name),
		Event{Op: OpContainerDeleted, ContainerID: c.ID})
	return nil
}

// AddItem creates an item from the draft. A non-empty comment becomes the
// first history entry.
func (s *Service) AddItem(containerID string, draft ItemDraft, comment string) (*domain.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}

	it := draft.build()
	if comment = strings.TrimSpace(comment); comment != "" {
		it.AddLog(comment)
	}
	c.AddItem(it)

	s.completed(fmt.Sprintf("added %dx %q to %q", it.Quantity, it.Name, c.Name),
		Event{Op: OpItemAdded, ContainerID: c.ID, ItemID: it.ID})
	return it.Clone(), nil
}

// EditItem applies the draft to an existing item. When nothing changed the
// call is a no-op: no history entry, no event, no save.
func (s *Service) EditItem(containerID, itemID string, draft ItemDraft, comment string) (*domain.Item, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}
	it := c.FindItem(itemID)
	if it == nil {
		return nil, domain.ErrItemNotFound
	}

	if !draft.apply(it) {
		return it.Clone(), nil
	}
	if comment = strings.TrimSpace(comment); comment != "" {
		it.AddLog(comment)
	}

	s.completed(fmt.Sprintf("edited %q in %q", it.Name, c.Name),
		Event{Op: OpItemEdited, ContainerID: c.ID, ItemID: it.ID})
	return it.Clone(), nil
}

// AdjustQuantity increments or decrements an item's stock. Reaching zero
// does not remove the item; removal is always explicit.
func (s *Service) AdjustQuantity(containerID, itemID string, delta int, comment string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}
	it := c.FindItem(itemID)
	if it == nil {
		return nil, domain.ErrItemNotFound
	}
	if delta == 0 {
		return it.Clone(), nil
	}
	if delta < 0 && it.Quantity < -delta {
		return nil, domain.ErrInsufficientQuantity
	}

	it.Quantity += delta

	comment = strings.TrimSpace(comment)
	var msg string
	if delta > 0 {
		msg = fmt.Sprintf("added %d", delta)
	} else {
		msg = fmt.Sprintf("removed %d", -delta)
	}
	if comment != "" {
		msg += ". " + comment
	}
	it.AddLog(msg)

	s.completed(fmt.Sprintf("adjusted %q in %q by %+d (now %d)", it.Name, c.Name, delta, it.Quantity),
		Event{Op: OpItemAdjusted, ContainerID: c.ID, ItemID: it.ID})
	return it.Clone(), nil
}

// RemoveItem deletes an item from its container regardless of quantity.
func (s *Service) RemoveItem(containerID, itemID, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return domain.ErrContainerNotFound
	}
	it := c.FindItem(itemID)
	if it == nil {
		return domain.ErrItemNotFound
	}
	c.RemoveItem(itemID)

	msg := fmt.Sprintf("removed %dx %q from %q", it.Quantity, it.Name, c.Name)
	if comment = strings.TrimSpace(comment); comment != "" {
		msg += ". " + comment
	}
	s.completed(msg, Event{Op: OpItemRemoved, ContainerID: c.ID, ItemID: it.ID})
	return nil
}

// MoveItem transfers quantity units of an item between containers. The
// destination merges into an existing stack with the same name and unit
// weight, or receives a new item carrying the moved quantity. A source item
// driven to zero stays in place as an empty stack until explicitly removed,
// the same policy as manual decrements.
func (s *Service) MoveItem(fromID, toID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.findContainer(fromID)
	if from == nil {
		return domain.ErrContainerNotFound
	}
	to := s.findContainer(toID)
	if to == nil {
		return domain.ErrContainerNotFound
	}
	if from == to {
		return domain.ErrInvalidTarget
	}

	src := from.FindItem(itemID)
	if src == nil {
		return domain.ErrItemNotFound
	}
	if src.Quantity < quantity {
		return domain.ErrInsufficientQuantity
	}

	src.Quantity -= quantity
	src.AddLog(fmt.Sprintf("moved %d to %q", quantity, to.Name))

	var destID string
	if dest := to.FindMergeable(src.Name, src.WeightPerUnit); dest != nil {
		dest.Quantity += quantity
		dest.AddLog(fmt.Sprintf("received %d from %q", quantity, from.Name))
		destID = dest.ID
	} else {
		moved := src.Split(quantity)
		moved.AddLog(fmt.Sprintf("moved here from %q", from.Name))
		to.AddItem(moved)
		destID = moved.ID
	}

	s.notifier.publish(Event{Op: OpItemMoved, ContainerID: from.ID, ItemID: src.ID})
	s.completed(fmt.Sprintf("moved %dx %q from %q to %q", quantity, src.Name, from.Name, to.Name),
		Event{Op: OpItemMoved, ContainerID: to.ID, ItemID: destID})
	return nil
}

// CopyItem duplicates an item within its container under a new id.
func (s *Service) CopyItem(containerID, itemID string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return nil, domain.ErrContainerNotFound
	}
	it := c.FindItem(itemID)
	if it == nil {
		return nil, domain.ErrItemNotFound
	}

	cp := it.Split(it.Quantity)
	cp.Name = it.Name + " (copy)"
	cp.AddLog(fmt.Sprintf("copied from %q in %q", it.Name, c.Name))
	c.AddItem(cp)

	s.completed(fmt.Sprintf("copied %q to %q in %q", it.Name, cp.Name, c.Name),
		Event{Op: OpItemCopied, ContainerID: c.ID, ItemID: cp.ID})
	return cp.Clone(), nil
}

// AdjustMoney adds delta to a container's account, denomination by
// denomination. Negative deltas withdraw; a withdrawal that would drive any
// denomination below zero is rejected before anything changes. An all-zero
// delta is a no-op.
func (s *Service) AdjustMoney(containerID string, delta domain.Coins, comment string) error {
	if delta.IsZero() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findContainer(containerID)
	if c == nil {
		return domain.ErrContainerNotFound
	}

	balance := c.Money.Coins.Add(delta)
	if balance.HasNegative() {
		return domain.ErrInsufficientFunds
	}
	c.Money.Coins = balance

	msg := fmt.Sprintf("adjusted money in %q (now %s)", c.Name, domain.FormatValue(balance.ValueInSilver()))
	if comment = strings.TrimSpace(comment); comment != "" {
		msg += ". " + comment
	}
	s.completed(msg, Event{Op: OpMoneyAdjusted, ContainerID: c.ID})
	return nil
}

// TransferMoney moves coins between two containers' accounts. The balance
// check covers every denomination before anything is debited, so a failed
// transfer leaves both accounts untouched. An all-zero amount is a no-op.
func (s *Service) TransferMoney(fromID, toID string, amount domain.Coins) error {
	if amount.HasNegative() {
		return fmt.Errorf("%w: transfer amounts must be non-negative", domain.ErrValidation)
	}
	if amount.IsZero() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.findContainer(fromID)
	if from == nil {
		return domain.ErrContainerNotFound
	}
	to := s.findContainer(toID)
	if to == nil {
		return domain.ErrContainerNotFound
	}
	if from == to {
		return domain.ErrInvalidTarget
	}
	if !from.Money.Coins.Covers(amount) {
		return domain.ErrInsufficientFunds
	}

	if err := from.Money.TransferTo(to.Money, amount); err != nil {
		return err
	}

	s.completed(fmt.Sprintf("transferred %s from %q to %q",
		domain.FormatValue(amount.ValueInSilver()), from.Name, to.Name),
		Event{Op: OpMoneyTransferred, ContainerID: to.ID})
	return nil
}

// TransferAllToTreasury moves a container's entire balance into the fixed
// treasury.
func (s *Service) TransferAllToTreasury(fromID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.findContainer(fromID)
	if from == nil {
		return domain.ErrContainerNotFound
	}
	var treasury *domain.Container
	for _, c := range s.containers {
		if c.IsFixedTreasury {
			treasury = c
			break
		}
	}
	if treasury == nil {
		return domain.ErrContainerNotFound
	}
	if treasury == from {
		return domain.ErrInvalidTarget
	}

	amount := from.Money.Coins
	if amount.IsZero() {
		return nil
	}
	if err := from.Money.TransferTo(treasury.Money, amount); err != nil {
		return err
	}

	s.completed(fmt.Sprintf("moved all money (%s) from %q to the treasury",
		domain.FormatValue(amount.ValueInSilver()), from.Name),
		Event{Op: OpMoneyTransferred, ContainerID: treasury.ID})
	return nil
}

// findContainer must be called with the lock held.
func (s *Service) findContainer(id string) *domain.Container {
	for _, c := range s.containers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// completed finishes a mutation: audit line, event, autosave. Must be called
// with the lock held.
func (s *Service) completed(auditMsg string, ev Event) {
	s.trail.Append(auditMsg)
	s.notifier.publish(ev)
	if !s.closed {
		s.saver.schedule(domain.CloneContainers(s.containers))
	}
}
