package labels

import (
	"testing"

	"binlabeler/models"
)

func TestSplitPartList(t *testing.T) {
	got := splitPartList("  A1 \r\n\nA2\n   \nA3")
	want := []string{"A1", "A2", "A3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSerializeFormUnionSkipsBulkOnlyKeys(t *testing.T) {
	fields := []models.Label{
		{Left: models.PartSide{PartNumber: "A1"}, WorkstationName: "Station 1"},
		{Left: models.PartSide{PartNumber: "C3"}, WorkstationName: "Ghost"},
	}
	lookupColor := func(name string) (string, bool) {
		if name == "Station 1" {
			return "#112233", true
		}
		return "", false
	}

	// B1 sits in the bulk input with no on-screen record yet; it must not
	// produce an empty label.
	out := SerializeForm(fields, "B1\nA1", lookupColor)

	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(out), out)
	}
	if out[0].Key() != "A1" || out[1].Key() != "C3" {
		t.Fatalf("unexpected order: %s, %s", out[0].Key(), out[1].Key())
	}
	if out[0].WorkstationColor != "#112233" {
		t.Fatalf("known workstation color not stamped: %q", out[0].WorkstationColor)
	}
	if out[1].WorkstationColor != defaultWorkstationColor {
		t.Fatalf("unknown workstation did not fall back to default color: %q", out[1].WorkstationColor)
	}
}

func TestSerializeFormDedupesFirstOccurrence(t *testing.T) {
	fields := []models.Label{
		{Left: models.PartSide{PartNumber: "A1", AltPartNumber: "KEEP"}},
		{Left: models.PartSide{PartNumber: "A1", AltPartNumber: "DROP"}},
		{Left: models.PartSide{PartNumber: ""}},
	}

	out := SerializeForm(fields, "", nil)

	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(out), out)
	}
	if out[0].Left.AltPartNumber != "KEEP" {
		t.Fatalf("later duplicate won: %q", out[0].Left.AltPartNumber)
	}
}

func TestSanitize(t *testing.T) {
	in := []models.Label{mkLabel("100"), mkLabel(" "), mkLabel("100"), mkLabel("200")}
	out := Sanitize(in)
	if len(out) != 2 || out[0].Key() != "100" || out[1].Key() != "200" {
		t.Fatalf("unexpected sanitize output: %+v", out)
	}
}
