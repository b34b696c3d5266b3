package audit

import (
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore is an in-memory audit store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	recs   []*Record      // in save order
	byID   map[string]int // record ID -> index into recs
	closed bool
}

// NewMemoryStore creates a new in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

// copyRecord clones a record so stored data and returned data never share
// memory with the caller.
func copyRecord(r *Record) *Record {
	c := *r
	if r.Snapshot != nil {
		c.Snapshot = make(json.RawMessage, len(r.Snapshot))
		copy(c.Snapshot, r.Snapshot)
	}
	return &c
}

// Save implements Store.
func (m *MemoryStore) Save(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	stored := copyRecord(rec)
	if i, ok := m.byID[rec.ID]; ok {
		m.recs[i] = stored
		return nil
	}
	m.byID[rec.ID] = len(m.recs)
	m.recs = append(m.recs, stored)
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	i, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(m.recs[i]), nil
}

// ByCheck implements Store.
func (m *MemoryStore) ByCheck(checkID string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var out []*Record
	for _, r := range m.recs {
		if r.CheckID == checkID {
			out = append(out, copyRecord(r))
		}
	}
	return out, nil
}

// ByRule implements Store.
func (m *MemoryStore) ByRule(ruleID string, limit int) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var out []*Record
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].RuleID != ruleID {
			continue
		}
		out = append(out, copyRecord(m.recs[i]))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Prune implements Store.
func (m *MemoryStore) Prune(cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	kept := m.recs[:0]
	for _, r := range m.recs {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(m.recs) - len(kept)
	m.recs = kept

	// Rebuild the index after compaction
	m.byID = make(map[string]int, len(m.recs))
	for i, r := range m.recs {
		m.byID[r.ID] = i
	}
	return removed, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.recs = nil
	m.byID = nil
	return nil
}

// Len returns the number of stored records.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.recs)
}
