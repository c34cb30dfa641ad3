package labels

import (
	"context"
	"strings"
	"sync"

	"binlabeler/infrastructure/floorstock"
	"binlabeler/models"
)

// BuildLabel constructs a label record for partNumber at the given
// workstation. The left part number is fixed to partNumber, the floor stock
// classification drives the left quantity override, and every other field
// defaults from the caller-supplied override data.
func BuildLabel(partNumber, workstationName, workstationColor string, res floorstock.Result, override models.Label) models.Label {
	label := models.Label{
		Left:             override.Left,
		Right:            override.Right,
		WorkstationName:  workstationName,
		WorkstationColor: workstationColor,
	}
	label.Left.PartNumber = strings.TrimSpace(partNumber)
	applyFloorStock(&label.Left, res)
	return label
}

// applyFloorStock applies the quantity override rule to one side: a floor
// stock classification replaces the quantity and locks the field against
// edits, anything else leaves the caller-supplied quantity editable. A side
// that was previously floor-stock-controlled loses its stale location code
// when the classification no longer applies.
func applyFloorStock(side *models.PartSide, res floorstock.Result) {
	if override := res.QuantityOverride(); override != "" {
		side.Quantity = override
		side.QuantityLocked = true
		return
	}
	if side.QuantityLocked {
		side.Quantity = ""
	}
	side.QuantityLocked = false
}

// ResolveRightSide re-resolves floor stock for an edited right-side part
// number and applies the quantity override rule to the right side,
// independently of the left side's state.
func ResolveRightSide(ctx context.Context, resolver floorstock.Resolver, label *models.Label) {
	partNumber := strings.TrimSpace(label.Right.PartNumber)
	if partNumber == "" {
		label.Right.QuantityLocked = false
		return
	}
	applyFloorStock(&label.Right, resolver.Lookup(ctx, partNumber))
}

// ResolveRightSides runs ResolveRightSide over the sequence, one concurrent
// lookup per populated right side. Completion order is irrelevant because
// each goroutine touches only its own record.
func ResolveRightSides(ctx context.Context, resolver floorstock.Resolver, records []models.Label) {
	var wg sync.WaitGroup
	for i := range records {
		if strings.TrimSpace(records[i].Right.PartNumber) == "" {
			records[i].Right.QuantityLocked = false
			continue
		}
		wg.Add(1)
		go func(label *models.Label) {
			defer wg.Done()
			ResolveRightSide(ctx, resolver, label)
		}(&records[i])
	}
	wg.Wait()
}
