package workstations

import "binlabeler/models"

type saveWorkstationsRequest struct {
	Workstations []models.Workstation `json:"workstations"`
}

type workstationsResponse struct {
	Status       string               `json:"status"`
	Workstations []models.Workstation `json:"workstations"`
}
