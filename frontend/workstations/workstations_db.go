package workstations

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"binlabeler/frontend/labels"
	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
	"binlabeler/models"
)

// ListWorkstations loads the ordered workstation sequence, optionally
// restricted to one product line, with each workstation's label collection
// nested in display order.
func ListWorkstations(ctx context.Context, db *sqlite.DB, productLine string) ([]models.Workstation, error) {
	out := make([]models.Workstation, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(&out).Order("position ASC", "id ASC")
		if strings.TrimSpace(productLine) != "" {
			q = q.Where("product_line = ?", productLine)
		}
		if err := q.Scan(ctx); err != nil {
			return err
		}

		for i := range out {
			rows := make([]models.Label, 0)
			err := tx.NewSelect().Model(&rows).
				Where("workstation_id = ?", out[i].ID).
				Order("position ASC").
				Scan(ctx)
			if err != nil {
				return err
			}
			out[i].Labels = labels.Sanitize(rows)
		}
		return nil
	})
	return out, err
}

// ReplaceWorkstations overwrites the whole catalog of workstations and
// their labels with the posted sequence in one write transaction. Saves
// are full-state snapshots; whichever save lands last wins. Nested label
// collections are sanitized on the way in so blank or duplicate part
// numbers never persist.
func ReplaceWorkstations(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, sequence []models.Workstation) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM labels`); err != nil {
			return fmt.Errorf("clear labels: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM workstations`); err != nil {
			return fmt.Errorf("clear workstations: %w", err)
		}

		for i := range sequence {
			workstation := sequence[i]
			workstation.ID = 0
			workstation.Position = int64(i)
			if _, err := tx.NewInsert().Model(&workstation).Exec(ctx); err != nil {
				return fmt.Errorf("insert workstation %s: %w", workstation.Name, err)
			}

			for j, record := range labels.Sanitize(sequence[i].Labels) {
				record.ID = 0
				record.WorkstationID = workstation.ID
				record.Position = int64(j)
				record.WorkstationName = workstation.Name
				record.WorkstationColor = workstation.Color
				if _, err := tx.NewInsert().Model(&record).Exec(ctx); err != nil {
					return fmt.Errorf("insert label %s: %w", record.Key(), err)
				}
			}
		}

		if auditSvc != nil {
			after := map[string]any{"workstations": len(sequence)}
			if err := auditSvc.Write(ctx, tx, "workstations.save", "workstations", "all", nil, after); err != nil {
				return err
			}
		}
		return nil
	})
}
