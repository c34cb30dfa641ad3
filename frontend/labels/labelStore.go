package labels

import (
	"log/slog"
	"sync"

	"binlabeler/models"
)

// LabelStore is the ordered, de-duplicated label collection for the
// workstation being edited. The snapshot order is exactly what gets
// persisted and printed.
//
// Insert is safe to call from concurrent lookup completions; the
// check-then-append is atomic with respect to other inserts.
type LabelStore struct {
	mu     sync.Mutex
	labels []models.Label
	seen   map[string]struct{}
}

func NewLabelStore() *LabelStore {
	return &LabelStore{seen: make(map[string]struct{})}
}

// Insert appends the label unless its left part number is blank or already
// present. The first insert for a key wins; later duplicates are dropped
// with a diagnostic log. Reports whether the label was added.
func (s *LabelStore) Insert(label models.Label) bool {
	key := label.Key()
	if key == "" {
		slog.Warn("label without a left part number dropped")
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[key]; dup {
		slog.Warn("duplicate part number detected and removed", slog.String("part_number", key))
		return false
	}
	s.seen[key] = struct{}{}
	s.labels = append(s.labels, label)
	return true
}

// MoveUp swaps the label at index with its predecessor. The first label
// cannot move up; out-of-range indexes are no-ops.
func (s *LabelStore) MoveUp(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index <= 0 || index >= len(s.labels) {
		return false
	}
	s.labels[index-1], s.labels[index] = s.labels[index], s.labels[index-1]
	return true
}

// MoveDown swaps the label at index with its successor. The last label
// cannot move down; out-of-range indexes are no-ops.
func (s *LabelStore) MoveDown(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.labels)-1 {
		return false
	}
	s.labels[index], s.labels[index+1] = s.labels[index+1], s.labels[index]
	return true
}

// Remove deletes the label at index; subsequent positions shift down by one.
func (s *LabelStore) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.labels) {
		return false
	}
	delete(s.seen, s.labels[index].Key())
	s.labels = append(s.labels[:index], s.labels[index+1:]...)
	return true
}

// Len returns the number of labels currently held.
func (s *LabelStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.labels)
}

// Snapshot returns a copy of the collection in current display order.
func (s *LabelStore) Snapshot() []models.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Label, len(s.labels))
	copy(out, s.labels)
	return out
}
