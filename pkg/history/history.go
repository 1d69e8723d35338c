// Package history keeps a short, newest-first log of calculations.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculator/pkg/constants"
)

// Entry is a single summarized calculation.
type Entry struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// List is a bounded history. The zero value is not usable; call New.
type List struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
	now      func() time.Time
}

// New returns an empty list holding at most capacity entries. A
// non-positive capacity means constants.MaxHistoryEntries.
func New(capacity int) *List {
	if capacity <= 0 {
		capacity = constants.MaxHistoryEntries
	}
	return &List{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
		now:      time.Now,
	}
}

// Add records a calculation at the front of the list, dropping the oldest
// entry once the list is full.
func (l *List) Add(label, value string) Entry {
	entry := Entry{
		ID:    uuid.NewString(),
		Label: label,
		Value: value,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Stamped under the lock so list order and CreatedAt agree.
	entry.CreatedAt = l.now().UTC()

	keep := len(l.entries)
	if keep >= l.capacity {
		keep = l.capacity - 1
	}
	updated := make([]Entry, 0, l.capacity)
	updated = append(updated, entry)
	updated = append(updated, l.entries[:keep]...)
	l.entries = updated

	return entry
}

// Entries returns a copy of the list, newest first.
func (l *List) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of entries held.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of entries held.
func (l *List) Capacity() int {
	return l.capacity
}

// Clear removes every entry.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make([]Entry, 0, l.capacity)
}
