package tracking

import (
	"sync"

	"github.com/dshills/wikistorm/internal/engine/buffer"
)

// DefaultMaxChanges is the default number of changes kept.
const DefaultMaxChanges = 10000

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the number of changes kept. It must only be used
// with NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges > 0 {
			t.maxChanges = maxChanges
		}
	}
}

// trackedChange pairs a change with the revision it produced.
type trackedChange struct {
	revision buffer.RevisionID
	change   buffer.Change
}

// Tracker records recent changes in a ring buffer and keeps named
// snapshots.
type Tracker struct {
	mu sync.RWMutex

	changes    []trackedChange
	head       int // Index of oldest entry
	count      int
	maxChanges int

	snapshots *SnapshotManager
}

// NewTracker creates a new change tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxChanges: DefaultMaxChanges,
		snapshots:  NewSnapshotManager(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.changes = make([]trackedChange, t.maxChanges)
	return t
}

// RecordChange records a change that produced revision rev.
func (t *Tracker) RecordChange(rev buffer.RevisionID, change buffer.Change) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		t.head = (t.head + 1) % t.maxChanges
	}
	t.changes[idx] = trackedChange{revision: rev, change: change}
}

// RecordEdit records an applied buffer edit.
func (t *Tracker) RecordEdit(rev buffer.RevisionID, res buffer.EditResult) {
	t.RecordChange(rev, res.Change())
}

// ChangesSince returns the changes made after rev, oldest first.
func (t *Tracker) ChangesSince(rev buffer.RevisionID) []buffer.Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []buffer.Change
	for i := 0; i < t.count; i++ {
		tc := t.changes[(t.head+i)%t.maxChanges]
		if tc.revision > rev {
			result = append(result, tc.change)
		}
	}
	return result
}

// LatestChanges returns up to n most recent changes, oldest first.
func (t *Tracker) LatestChanges(n int) []buffer.Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(max(n, 0), t.count)
	result := make([]buffer.Change, 0, n)
	for i := t.count - n; i < t.count; i++ {
		result = append(result, t.changes[(t.head+i)%t.maxChanges].change)
	}
	return result
}

// ChangeCount returns the number of tracked changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// CreateSnapshot stores doc under name.
func (t *Tracker) CreateSnapshot(name string, doc *buffer.Snapshot) SnapshotID {
	return t.snapshots.Create(name, doc)
}

// GetSnapshot returns a snapshot by ID.
func (t *Tracker) GetSnapshot(id SnapshotID) (*Snapshot, error) {
	snap, ok := t.snapshots.Get(id)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// GetSnapshotByName returns a snapshot by name.
func (t *Tracker) GetSnapshotByName(name string) (*Snapshot, error) {
	snap, ok := t.snapshots.GetByName(name)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// DeleteSnapshot removes a snapshot.
func (t *Tracker) DeleteSnapshot(id SnapshotID) {
	t.snapshots.Delete(id)
}

// ListSnapshots returns all snapshots, oldest first.
func (t *Tracker) ListSnapshots() []*Snapshot {
	return t.snapshots.List()
}

// ChangesSinceSnapshot returns the changes recorded after the snapshot.
func (t *Tracker) ChangesSinceSnapshot(id SnapshotID) ([]buffer.Change, error) {
	snap, err := t.GetSnapshot(id)
	if err != nil {
		return nil, err
	}
	return t.ChangesSince(snap.Revision), nil
}

// DiffSinceSnapshot diffs the snapshot against current.
func (t *Tracker) DiffSinceSnapshot(id SnapshotID, current string, opts DiffOptions) (DiffResult, error) {
	snap, err := t.GetSnapshot(id)
	if err != nil {
		return DiffResult{}, err
	}
	return ComputeLineDiff(snap.Text(), current, opts), nil
}

// Clear removes all tracked changes and snapshots.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.head = 0
	t.count = 0
	clear(t.changes)
	t.mu.Unlock()

	t.snapshots.Clear()
}
