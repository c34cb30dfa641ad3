package workstations

import (
	"context"
	"path/filepath"
	"testing"

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

func TestReplaceWorkstationsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	sequence := []models.Workstation{
		{
			Name:        "Station 2",
			ProductLine: "Alpha",
			Color:       "#112233",
			Labels: []models.Label{
				{Left: models.PartSide{PartNumber: "100", Quantity: "4"}},
				{Left: models.PartSide{PartNumber: "100"}},
				{Left: models.PartSide{PartNumber: "   "}},
				{Left: models.PartSide{PartNumber: "200"}},
			},
		},
		{Name: "Station 1", ProductLine: "Beta", Color: "#445566"},
	}
	if err := ReplaceWorkstations(context.Background(), db, audit.NewService(), sequence); err != nil {
		t.Fatalf("replace workstations: %v", err)
	}

	loaded, err := ListWorkstations(context.Background(), db, "")
	if err != nil {
		t.Fatalf("list workstations: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 workstations, got %d", len(loaded))
	}
	// Posted order wins, not alphabetical order.
	if loaded[0].Name != "Station 2" || loaded[1].Name != "Station 1" {
		t.Fatalf("sequence order lost: %s, %s", loaded[0].Name, loaded[1].Name)
	}

	// Blank and duplicate labels are sanitized on the way in.
	got := loaded[0].Labels
	if len(got) != 2 || got[0].Key() != "100" || got[1].Key() != "200" {
		t.Fatalf("nested labels not sanitized: %+v", got)
	}
	if got[0].Left.Quantity != "4" {
		t.Fatalf("first occurrence did not win: %+v", got[0].Left)
	}
	if got[0].WorkstationName != "Station 2" || got[0].WorkstationColor != "#112233" {
		t.Fatalf("workstation fields not stamped: %+v", got[0])
	}
}

func TestReplaceWorkstationsOverwritesPreviousSet(t *testing.T) {
	db := openTestDB(t)

	first := []models.Workstation{
		{Name: "Station 1", ProductLine: "Alpha", Color: "#ff0000",
			Labels: []models.Label{{Left: models.PartSide{PartNumber: "100"}}}},
		{Name: "Station 2", ProductLine: "Alpha", Color: "#ff0000"},
	}
	if err := ReplaceWorkstations(context.Background(), db, nil, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	second := []models.Workstation{{Name: "Station 3", ProductLine: "Beta", Color: "#00ff00"}}
	if err := ReplaceWorkstations(context.Background(), db, nil, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	loaded, err := ListWorkstations(context.Background(), db, "")
	if err != nil {
		t.Fatalf("list workstations: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Station 3" {
		t.Fatalf("save is not a full-state overwrite: %+v", loaded)
	}
}

func TestListWorkstationsFiltersByProductLine(t *testing.T) {
	db := openTestDB(t)

	sequence := []models.Workstation{
		{Name: "Station 1", ProductLine: "Alpha", Color: "#ff0000"},
		{Name: "Station 2", ProductLine: "Beta", Color: "#ff0000"},
		{Name: "Station 3", ProductLine: "Alpha", Color: "#ff0000"},
	}
	if err := ReplaceWorkstations(context.Background(), db, nil, sequence); err != nil {
		t.Fatalf("replace workstations: %v", err)
	}

	loaded, err := ListWorkstations(context.Background(), db, "Alpha")
	if err != nil {
		t.Fatalf("list workstations: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Name != "Station 1" || loaded[1].Name != "Station 3" {
		t.Fatalf("unexpected filter result: %+v", loaded)
	}
}
