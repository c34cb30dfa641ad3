package labels

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
	"binlabeler/models"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyMigrations(context.Background(), db, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func seedWorkstation(t *testing.T, db *sqlite.DB, name, productLine, color string) models.Workstation {
	t.Helper()
	workstation := models.Workstation{Name: name, ProductLine: productLine, Color: color}
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&workstation).Exec(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("seed workstation %s: %v", name, err)
	}
	return workstation
}

func TestReplaceAndLoadLabels(t *testing.T) {
	db := openTestDB(t)
	workstation := seedWorkstation(t, db, "Station 1", "Alpha", "#336699")

	records := []models.Label{
		{
			Left:  models.PartSide{PartNumber: "100", Quantity: "FS-A1", QuantityLocked: true},
			Right: models.PartSide{PartNumber: "900", Quantity: "2", AFrameLocation: "C4"},
		},
		{Left: models.PartSide{PartNumber: "200", Quantity: "5"}},
	}
	if err := ReplaceLabels(context.Background(), db, audit.NewService(), workstation, records); err != nil {
		t.Fatalf("replace labels: %v", err)
	}

	loaded, err := LoadWorkstationByName(context.Background(), db, "Station 1")
	if err != nil {
		t.Fatalf("load workstation: %v", err)
	}
	if len(loaded.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(loaded.Labels))
	}
	if loaded.Labels[0].Key() != "100" || loaded.Labels[1].Key() != "200" {
		t.Fatalf("label order lost: %s, %s", loaded.Labels[0].Key(), loaded.Labels[1].Key())
	}
	first := loaded.Labels[0]
	if first.Left.Quantity != "FS-A1" || !first.Left.QuantityLocked {
		t.Fatalf("left side not persisted: %+v", first.Left)
	}
	if first.Right.PartNumber != "900" || first.Right.AFrameLocation != "C4" {
		t.Fatalf("right side not persisted: %+v", first.Right)
	}
	if first.WorkstationName != "Station 1" || first.WorkstationColor != "#336699" {
		t.Fatalf("workstation fields not stamped: %+v", first)
	}

	var audited int
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE action = ?`, "labels.save").Scan(ctx, &audited)
	})
	if err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if audited != 1 {
		t.Fatalf("expected 1 audit row, got %d", audited)
	}
}

func TestReplaceLabelsOverwritesPreviousSet(t *testing.T) {
	db := openTestDB(t)
	workstation := seedWorkstation(t, db, "Station 1", "Alpha", "#ff0000")

	first := []models.Label{mkLabel("100"), mkLabel("200")}
	if err := ReplaceLabels(context.Background(), db, nil, workstation, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second := []models.Label{mkLabel("300")}
	if err := ReplaceLabels(context.Background(), db, nil, workstation, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	loaded, err := LoadWorkstationByName(context.Background(), db, "Station 1")
	if err != nil {
		t.Fatalf("load workstation: %v", err)
	}
	if len(loaded.Labels) != 1 || loaded.Labels[0].Key() != "300" {
		t.Fatalf("save is not a full-state overwrite: %+v", loaded.Labels)
	}
}

func TestLoadWorkstationByNameUnknown(t *testing.T) {
	db := openTestDB(t)
	_, err := LoadWorkstationByName(context.Background(), db, "Nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got: %v", err)
	}
}

func TestLoadWorkstationColors(t *testing.T) {
	db := openTestDB(t)
	seedWorkstation(t, db, "Station 1", "Alpha", "#111111")
	seedWorkstation(t, db, "Station 2", "Beta", "#222222")

	colors, err := LoadWorkstationColors(context.Background(), db)
	if err != nil {
		t.Fatalf("load colors: %v", err)
	}
	if colors["Station 1"] != "#111111" || colors["Station 2"] != "#222222" {
		t.Fatalf("unexpected color map: %v", colors)
	}
}
