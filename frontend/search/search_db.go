package search

import (
	"context"

	"github.com/uptrace/bun"

	"binlabeler/infrastructure/sqlite"
)

// Result is one location where a part number appears in the catalog.
type Result struct {
	ProductLine     string `bun:"product_line" json:"product_line"`
	WorkstationName string `bun:"workstation_name" json:"workstation_name"`
	AFrameLocation  string `bun:"a_frame_location" json:"a_frame_location"`
	Side            string `bun:"side" json:"side"`
}

// SearchPart finds every label side carrying the part number, across all
// product lines and workstations.
func SearchPart(ctx context.Context, db *sqlite.DB, partNumber string) ([]Result, error) {
	results := make([]Result, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT w.product_line, w.name AS workstation_name, lb.left_a_frame_location AS a_frame_location, 'left' AS side
FROM labels lb
JOIN workstations w ON w.id = lb.workstation_id
WHERE lb.left_part_number = ?
UNION ALL
SELECT w.product_line, w.name AS workstation_name, lb.right_a_frame_location AS a_frame_location, 'right' AS side
FROM labels lb
JOIN workstations w ON w.id = lb.workstation_id
WHERE lb.right_part_number = ?
ORDER BY product_line ASC, workstation_name ASC, side ASC`, partNumber, partNumber).Scan(ctx, &results)
	})
	return results, err
}
