package inventory

import "sync"

// Event describes one completed mutation. There is exactly one event stream
// for the whole aggregate; subscribers recompute whatever derived view they
// care about from current service state.
type Event struct {
	Op          string `json:"op"`
	ContainerID string `json:"containerId,omitempty"`
	ItemID      string `json:"itemId,omitempty"`
}

const (
	OpContainerCreated = "container.created"
	OpContainerUpdated = "container.updated"
	OpContainerDeleted = "container.deleted"
	OpItemAdded        = "item.added"
	OpItemEdited       = "item.edited"
	OpItemAdjusted     = "item.adjusted"
	OpItemRemoved      = "item.removed"
	OpItemMoved        = "item.moved"
	OpItemCopied       = "item.copied"
	OpMoneyAdjusted    = "money.adjusted"
	OpMoneyTransferred = "money.transferred"
)

// notifier fans events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full misses the event and is expected to
// re-read current state.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]chan Event)}
}

func (n *notifier) subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if ch, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
