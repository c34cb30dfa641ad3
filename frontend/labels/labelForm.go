package labels

import (
	"strings"

	"binlabeler/models"
)

// defaultWorkstationColor is stamped on records whose owning workstation
// cannot be found.
const defaultWorkstationColor = "#FFFFFF"

// splitPartList splits the bulk part-number input into trimmed, non-empty
// lines.
func splitPartList(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SerializeForm reads the submitted on-screen record set and produces the
// canonical label sequence used for persistence and print submission.
//
// The candidate key set is the union of part numbers still sitting in the
// bulk input and the left-side part numbers already on screen. Each key is
// matched to its on-screen record, stamped with the owning workstation's
// color, then passed through the blank-filter and dedupe passes so the
// output never carries duplicate or empty-keyed records, even if the
// submitted fields momentarily do.
func SerializeForm(fields []models.Label, bulkList string, lookupColor func(workstationName string) (string, bool)) []models.Label {
	byKey := make(map[string]models.Label, len(fields))
	keys := splitPartList(bulkList)
	for _, record := range fields {
		key := record.Key()
		if key == "" {
			continue
		}
		if _, exists := byKey[key]; !exists {
			byKey[key] = record
		}
		keys = append(keys, key)
	}

	out := make([]models.Label, 0, len(keys))
	for _, key := range keys {
		record, ok := byKey[key]
		if !ok {
			// A bulk-input key with no on-screen fields yet has nothing to
			// serialize; it will materialize through the add flow instead.
			continue
		}
		if lookupColor != nil {
			if color, found := lookupColor(record.WorkstationName); found {
				record.WorkstationColor = color
			} else {
				record.WorkstationColor = defaultWorkstationColor
			}
		}
		out = append(out, record)
	}

	return dedupeLabels(filterBlankLabels(out))
}
