package labels

import "binlabeler/models"

type addPartRequest struct {
	PartNumber string `json:"part_number"`
}

type bulkAddRequest struct {
	// Raw bulk input, one part number per line.
	PartNumbers string `json:"part_numbers"`
}

type saveLabelsRequest struct {
	LabelsData  []models.Label `json:"labels_data"`
	PartNumbers string         `json:"part_numbers"`
}

type printRequest struct {
	LabelsData  []models.Label `json:"labels_data"`
	PartNumbers string         `json:"part_numbers"`
}

type checkFloorStockRequest struct {
	PartNumber string `json:"part_number"`
}

type labelsResponse struct {
	Status string         `json:"status"`
	Labels []models.Label `json:"labels"`
}

// MoveDirection selects the reorder operation for a move command.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)
