package tracking

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/wikistorm/internal/engine/buffer"
)

// ErrSnapshotNotFound is returned when a snapshot does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID uint64

var snapshotIDCounter uint64

// NewSnapshotID generates a new unique snapshot ID.
func NewSnapshotID() SnapshotID {
	return SnapshotID(atomic.AddUint64(&snapshotIDCounter, 1))
}

// Snapshot is a named, immutable copy of a document.
type Snapshot struct {
	ID        SnapshotID
	Name      string
	Timestamp time.Time

	// Revision is the buffer revision the snapshot was taken at.
	Revision buffer.RevisionID

	doc *buffer.Snapshot
}

// NewSnapshot wraps a buffer snapshot.
func NewSnapshot(name string, doc *buffer.Snapshot) *Snapshot {
	return &Snapshot{
		ID:        NewSnapshotID(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  doc.RevisionID(),
		doc:       doc,
	}
}

// Text returns the document text at this snapshot.
func (s *Snapshot) Text() string {
	return s.doc.Text()
}

// LineCount returns the number of lines at this snapshot.
func (s *Snapshot) LineCount() int {
	return s.doc.LineCount()
}

// Document returns the underlying buffer snapshot.
func (s *Snapshot) Document() *buffer.Snapshot {
	return s.doc
}

// SnapshotManager manages named snapshots. A name identifies at most one
// snapshot; creating a snapshot under a taken name replaces the old one.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[SnapshotID]*Snapshot
	byName    map[string]*Snapshot
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create stores a snapshot of doc under name.
func (sm *SnapshotManager) Create(name string, doc *buffer.Snapshot) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	snap := NewSnapshot(name, doc)
	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id SnapshotID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if snap, ok := sm.snapshots[id]; ok {
		if snap.Name != "" {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, id)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[SnapshotID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}

// PruneKeepN removes the oldest snapshots, keeping the n most recent.
// Returns the number of snapshots removed.
func (sm *SnapshotManager) PruneKeepN(n int) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.snapshots) <= n {
		return 0
	}

	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID > snapshots[j].ID
	})

	removed := 0
	for _, snap := range snapshots[max(n, 0):] {
		if snap.Name != "" {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, snap.ID)
		removed++
	}
	return removed
}
