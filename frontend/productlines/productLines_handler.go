package productlines

import (
	"log/slog"
	"net/http"

	"binlabeler/frontend/shared/api"
	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/sqlite"
)

type saveProductLinesRequest struct {
	ProductLines []string `json:"product_lines"`
}

// ProductLinesQueryHandler returns the ordered product line names.
func ProductLinesQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := ListProductLines(r.Context(), db)
		if err != nil {
			slog.Error("list product lines failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to load product lines")
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "product_lines": names})
	}
}

// SaveProductLinesCommandHandler overwrites the product line set with the
// posted full-state snapshot.
func SaveProductLinesCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveProductLinesRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := ReplaceProductLines(r.Context(), db, auditSvc, req.ProductLines); err != nil {
			slog.Error("save product lines failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save product lines")
			return
		}
		api.Message(w, "Product lines saved")
	}
}
