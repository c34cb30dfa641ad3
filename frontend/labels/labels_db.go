package labels

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
	"binlabeler/models"
)

func loadWorkstationByName(ctx context.Context, tx bun.Tx, name string) (models.Workstation, error) {
	var workstation models.Workstation
	err := tx.NewSelect().Model(&workstation).
		Where("name = ?", name).
		Order("position ASC").
		Limit(1).
		Scan(ctx)
	return workstation, err
}

func loadLabelsForWorkstation(ctx context.Context, tx bun.Tx, workstationID int64) ([]models.Label, error) {
	rows := make([]models.Label, 0)
	err := tx.NewSelect().Model(&rows).
		Where("workstation_id = ?", workstationID).
		Order("position ASC").
		Scan(ctx)
	return rows, err
}

// LoadWorkstationByName loads one workstation with its ordered label
// collection. Returns sql.ErrNoRows when the name is unknown.
func LoadWorkstationByName(ctx context.Context, db *sqlite.DB, name string) (models.Workstation, error) {
	var workstation models.Workstation
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		workstation, err = loadWorkstationByName(ctx, tx, name)
		if err != nil {
			return err
		}
		workstation.Labels, err = loadLabelsForWorkstation(ctx, tx, workstation.ID)
		return err
	})
	return workstation, err
}

// LoadWorkstationColors maps workstation names to their display colors,
// used when stamping serialized records with the owning workstation's color.
func LoadWorkstationColors(ctx context.Context, db *sqlite.DB) (map[string]string, error) {
	rows := make([]struct {
		Name  string `bun:"name"`
		Color string `bun:"color"`
	}, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT name, color FROM workstations ORDER BY position ASC, id ASC`).Scan(ctx, &rows)
	})
	if err != nil {
		return nil, err
	}
	colors := make(map[string]string, len(rows))
	for _, row := range rows {
		if _, exists := colors[row.Name]; !exists {
			colors[row.Name] = row.Color
		}
	}
	return colors, nil
}

// ReplaceLabels overwrites the workstation's full label collection in one
// write transaction, positions taken from slice order. Each save is a
// full-state overwrite; whichever save lands last wins.
func ReplaceLabels(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, workstation models.Workstation, records []models.Label) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM labels WHERE workstation_id = ?`, workstation.ID); err != nil {
			return fmt.Errorf("clear labels: %w", err)
		}
		for i := range records {
			record := records[i]
			record.ID = 0
			record.WorkstationID = workstation.ID
			record.Position = int64(i)
			record.WorkstationName = workstation.Name
			record.WorkstationColor = workstation.Color
			if _, err := tx.NewInsert().Model(&record).Exec(ctx); err != nil {
				return fmt.Errorf("insert label %s: %w", record.Key(), err)
			}
		}
		if auditSvc != nil {
			after := map[string]any{"workstation": workstation.Name, "labels": len(records)}
			if err := auditSvc.Write(ctx, tx, "labels.save", "workstations", workstation.Name, nil, after); err != nil {
				return err
			}
		}
		return nil
	})
}
