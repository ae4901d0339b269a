package analytics

import "sync"

// SnapshotRing keeps the most recent periodic summaries in memory. Entries
// are lost on restart like everything else in this process.
type SnapshotRing struct {
	mu      sync.Mutex
	limit   int
	entries []Summary
}

func NewSnapshotRing(limit int) *SnapshotRing {
	if limit < 1 {
		limit = 1
	}
	return &SnapshotRing{limit: limit}
}

// Add appends a summary, discarding the oldest entry once full.
func (r *SnapshotRing) Add(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, s)
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
}

// List returns the captured summaries, oldest first.
func (r *SnapshotRing) List() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Summary, len(r.entries))
	copy(out, r.entries)
	return out
}
