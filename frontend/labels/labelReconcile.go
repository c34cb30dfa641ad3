package labels

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"binlabeler/infrastructure/floorstock"
	"binlabeler/models"
)

// filterBlankLabels drops entries missing a left part number. Records like
// that can appear in persisted data after an external edit or a prior
// session bug and must never reach the live collection.
func filterBlankLabels(in []models.Label) []models.Label {
	out := make([]models.Label, 0, len(in))
	for _, label := range in {
		if label.Key() == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}

// dedupeLabels keeps the first occurrence of each left part number, in
// original order. Dropped duplicates are logged.
func dedupeLabels(in []models.Label) []models.Label {
	out := make([]models.Label, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, label := range in {
		key := label.Key()
		if _, dup := seen[key]; dup {
			slog.Warn("duplicate part number detected and removed", slog.String("part_number", key))
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	return out
}

// Sanitize runs the blank-filter and first-seen dedupe passes over a label
// sequence without touching floor stock state. Anything persisted or
// printed goes through this guarantee.
func Sanitize(records []models.Label) []models.Label {
	return dedupeLabels(filterBlankLabels(records))
}

// Reconcile rebuilds the live collection from a workstation's persisted
// label sequence: blank entries are dropped, duplicates collapse to their
// first occurrence, and each survivor is re-classified against the floor
// stock service before being inserted into a fresh store at its original
// position. Lookups run concurrently and complete in arbitrary order; the
// store's atomic Insert is the second, defensive uniqueness guarantee.
// Running Reconcile on its own output yields the same sequence.
func Reconcile(ctx context.Context, resolver floorstock.Resolver, workstation models.Workstation) *LabelStore {
	clean := dedupeLabels(filterBlankLabels(workstation.Labels))

	results := make([]floorstock.Result, len(clean))
	var wg sync.WaitGroup
	for i, label := range clean {
		wg.Add(1)
		go func(i int, partNumber string) {
			defer wg.Done()
			results[i] = resolver.Lookup(ctx, partNumber)
		}(i, label.Key())
	}
	wg.Wait()

	store := NewLabelStore()
	for i, label := range clean {
		store.Insert(BuildLabel(label.Key(), workstation.Name, workstation.Color, results[i], label))
	}
	return store
}

// storeFromLabels seeds a store with an already-reconciled collection,
// without re-querying floor stock. Blank and duplicate entries still cannot
// get in.
func storeFromLabels(in []models.Label) *LabelStore {
	store := NewLabelStore()
	for _, label := range filterBlankLabels(in) {
		store.Insert(label)
	}
	return store
}

// BulkAdd resolves each entered part number concurrently and inserts a
// fresh record as its classification arrives. Final membership is the same
// regardless of completion order; display order is completion order, and
// duplicates of parts already in the store are dropped by Insert.
func BulkAdd(ctx context.Context, resolver floorstock.Resolver, store *LabelStore, workstation models.Workstation, partNumbers []string) {
	var wg sync.WaitGroup
	for _, raw := range partNumbers {
		partNumber := strings.TrimSpace(raw)
		if partNumber == "" {
			continue
		}
		wg.Add(1)
		go func(partNumber string) {
			defer wg.Done()
			res := resolver.Lookup(ctx, partNumber)
			store.Insert(BuildLabel(partNumber, workstation.Name, workstation.Color, res, models.Label{}))
		}(partNumber)
	}
	wg.Wait()
}
