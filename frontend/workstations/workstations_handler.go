package workstations

import (
	"log/slog"
	"net/http"
	"strings"

	"binlabeler/frontend/shared/api"
	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
)

// WorkstationsQueryHandler returns the ordered workstation sequence,
// optionally filtered by ?product_line=.
func WorkstationsQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productLine := r.URL.Query().Get("product_line")
		sequence, err := ListWorkstations(r.Context(), db, productLine)
		if err != nil {
			slog.Error("list workstations failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to load workstations")
			return
		}
		api.WriteJSON(w, http.StatusOK, workstationsResponse{Status: "success", Workstations: sequence})
	}
}

// SaveWorkstationsCommandHandler overwrites the workstation catalog with
// the posted full-state snapshot. Entries missing a name or product line
// abort the save before any mutation.
func SaveWorkstationsCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveWorkstationsRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		for i := range req.Workstations {
			req.Workstations[i].Name = strings.TrimSpace(req.Workstations[i].Name)
			req.Workstations[i].ProductLine = strings.TrimSpace(req.Workstations[i].ProductLine)
			if req.Workstations[i].Name == "" || req.Workstations[i].ProductLine == "" {
				api.Error(w, http.StatusBadRequest, "Please enter a workstation name and select a product line.")
				return
			}
		}

		if err := ReplaceWorkstations(r.Context(), db, auditSvc, req.Workstations); err != nil {
			slog.Error("save workstations failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save workstations")
			return
		}
		api.Message(w, "Workstations saved")
	}
}
