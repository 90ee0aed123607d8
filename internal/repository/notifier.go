package repository

import "sync"

// Table names published by the notifier.
const (
	TableClassProfiles   = "class_profiles"
	TableChildren        = "children"
	TableSessionPlans    = "session_plans"
	TableProgressRecords = "progress_records"
)

// Notifier is the in-process change hub behind reactive local reads: every
// repository write publishes its table, and consumers re-query on receipt
// instead of polling. Notifications are collapsed, not queued; a slow
// subscriber sees at least one signal per burst of writes.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]subscription
	next int
}

type subscription struct {
	tables map[string]bool
	ch     chan string
}

// NewNotifier constructs a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]subscription)}
}

// Subscribe registers interest in the given tables (all tables when none are
// named). The returned cancel func must be called to release the
// subscription.
func (n *Notifier) Subscribe(tables ...string) (<-chan string, func()) {
	filter := make(map[string]bool, len(tables))
	for _, t := range tables {
		filter[t] = true
	}

	ch := make(chan string, 8)

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = subscription{tables: filter, ch: ch}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub.ch)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Publish signals that rows in table changed. Non-blocking: subscribers with
// a full buffer already have a wake-up pending.
func (n *Notifier) Publish(table string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		if len(sub.tables) > 0 && !sub.tables[table] {
			continue
		}
		select {
		case sub.ch <- table:
		default:
		}
	}
}
