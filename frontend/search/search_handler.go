package search

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"binlabeler/frontend/shared/api"
	"binlabeler/infrastructure/sqlite"
)

type searchRequest struct {
	PartNumber string `json:"part_number"`
}

// SearchPartQueryHandler answers the part lookup used by the search UI.
// A lookup that matches nothing is a user-facing notice, not a failure.
func SearchPartQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		partNumber := strings.TrimSpace(req.PartNumber)
		if partNumber == "" {
			api.Error(w, http.StatusBadRequest, "Please enter a part number to search.")
			return
		}

		results, err := SearchPart(r.Context(), db, partNumber)
		if err != nil {
			slog.Error("search part failed", slog.String("part_number", partNumber), slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to search part")
			return
		}
		if len(results) == 0 {
			api.Error(w, http.StatusNotFound, fmt.Sprintf("No results found for part number %s.", partNumber))
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "results": results})
	}
}
