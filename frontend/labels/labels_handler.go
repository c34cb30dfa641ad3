package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	"binlabeler/frontend/shared/api"
	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/floorstock"
	"binlabeler/infrastructure/sqlite"
	"binlabeler/models"
)

func workstationParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return strings.TrimSpace(name)
}

func loadWorkstationOr404(w http.ResponseWriter, r *http.Request, db *sqlite.DB) (models.Workstation, bool) {
	name := workstationParam(r)
	if name == "" {
		api.Error(w, http.StatusBadRequest, "Please select a workstation.")
		return models.Workstation{}, false
	}
	workstation, err := LoadWorkstationByName(r.Context(), db, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.Error(w, http.StatusNotFound, "workstation not found")
			return models.Workstation{}, false
		}
		slog.Error("load workstation failed", slog.String("workstation", name), slog.Any("err", err))
		api.Error(w, http.StatusInternalServerError, "failed to load workstation")
		return models.Workstation{}, false
	}
	return workstation, true
}

// LabelsQueryHandler returns the workstation's reconciled label collection:
// persisted entries are filtered, de-duplicated and re-classified against
// the floor stock service before they reach the caller.
func LabelsQueryHandler(db *sqlite.DB, resolver floorstock.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}
		store := Reconcile(r.Context(), resolver, workstation)
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: store.Snapshot()})
	}
}

// AddPartCommandHandler adds a single part to the workstation's collection:
// resolve floor stock, build the record, insert (a duplicate part is a
// logged no-op, not an error) and persist the new snapshot.
func AddPartCommandHandler(db *sqlite.DB, resolver floorstock.Resolver, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPartRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		partNumber := strings.TrimSpace(req.PartNumber)
		if partNumber == "" {
			api.Error(w, http.StatusBadRequest, "Please enter a part number.")
			return
		}
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}

		res := resolver.Lookup(r.Context(), partNumber)
		store := storeFromLabels(workstation.Labels)
		store.Insert(BuildLabel(partNumber, workstation.Name, workstation.Color, res, models.Label{}))

		if err := ReplaceLabels(r.Context(), db, auditSvc, workstation, store.Snapshot()); err != nil {
			slog.Error("save labels failed", slog.String("workstation", workstation.Name), slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save labels")
			return
		}
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: store.Snapshot()})
	}
}

// BulkAddCommandHandler adds every part number from the bulk input. One
// lookup per part runs concurrently; each record is inserted as its
// classification arrives, so display order follows completion order.
func BulkAddCommandHandler(db *sqlite.DB, resolver floorstock.Resolver, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkAddRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		parts := splitPartList(req.PartNumbers)
		if len(parts) == 0 {
			api.Error(w, http.StatusBadRequest, "Please enter at least one part number.")
			return
		}
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}

		store := storeFromLabels(workstation.Labels)
		BulkAdd(r.Context(), resolver, store, workstation, parts)

		if err := ReplaceLabels(r.Context(), db, auditSvc, workstation, store.Snapshot()); err != nil {
			slog.Error("save labels failed", slog.String("workstation", workstation.Name), slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save labels")
			return
		}
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: store.Snapshot()})
	}
}

func labelIndexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid label index")
	}
	return index, nil
}

// MoveLabelCommandHandler swaps the label at the given index with its
// neighbor. Boundary moves are no-ops and do not trigger a save.
func MoveLabelCommandHandler(db *sqlite.DB, auditSvc *audit.Service, direction MoveDirection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := labelIndexParam(r)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "invalid label index")
			return
		}
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}

		store := storeFromLabels(workstation.Labels)
		if index >= store.Len() {
			api.Error(w, http.StatusBadRequest, "invalid label index")
			return
		}

		moved := false
		switch direction {
		case MoveUp:
			moved = store.MoveUp(index)
		case MoveDown:
			moved = store.MoveDown(index)
		}

		if moved {
			if err := ReplaceLabels(r.Context(), db, auditSvc, workstation, store.Snapshot()); err != nil {
				slog.Error("save labels failed", slog.String("workstation", workstation.Name), slog.Any("err", err))
				api.Error(w, http.StatusInternalServerError, "failed to save labels")
				return
			}
		}
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: store.Snapshot()})
	}
}

// DeleteLabelCommandHandler removes the label at the given index and
// persists the shifted collection.
func DeleteLabelCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := labelIndexParam(r)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "invalid label index")
			return
		}
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}

		store := storeFromLabels(workstation.Labels)
		if !store.Remove(index) {
			api.Error(w, http.StatusBadRequest, "invalid label index")
			return
		}

		if err := ReplaceLabels(r.Context(), db, auditSvc, workstation, store.Snapshot()); err != nil {
			slog.Error("save labels failed", slog.String("workstation", workstation.Name), slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save labels")
			return
		}
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: store.Snapshot()})
	}
}

// SaveLabelsCommandHandler replaces the workstation's collection with the
// serialized on-screen record set. Right sides with a part number are
// re-resolved against the floor stock service before the snapshot persists.
func SaveLabelsCommandHandler(db *sqlite.DB, resolver floorstock.Resolver, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveLabelsRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		workstation, ok := loadWorkstationOr404(w, r, db)
		if !ok {
			return
		}

		colors, err := LoadWorkstationColors(r.Context(), db)
		if err != nil {
			slog.Error("load workstation colors failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to load workstations")
			return
		}

		records := SerializeForm(req.LabelsData, req.PartNumbers, func(name string) (string, bool) {
			color, found := colors[name]
			return color, found
		})
		ResolveRightSides(r.Context(), resolver, records)

		if err := ReplaceLabels(r.Context(), db, auditSvc, workstation, records); err != nil {
			slog.Error("save labels failed", slog.String("workstation", workstation.Name), slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to save labels")
			return
		}
		api.WriteJSON(w, http.StatusOK, labelsResponse{Status: "success", Labels: records})
	}
}

// CheckFloorStockHandler proxies one floor stock lookup for the UI's
// right-side re-resolution. A failed lookup reports "not floor stock"
// rather than an error so the form never stalls.
func CheckFloorStockHandler(resolver floorstock.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkFloorStockRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		partNumber := strings.TrimSpace(req.PartNumber)
		if partNumber == "" {
			api.Error(w, http.StatusBadRequest, "Please enter a part number.")
			return
		}

		res := resolver.Lookup(r.Context(), partNumber)
		api.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         "success",
			"is_floor_stock": res.FloorStock,
			"location":       res.Location,
			"quantity":       res.QuantityOverride(),
		})
	}
}

// PrintLabelsCommandHandler turns the serialized record set into the
// printable PDF. The serializer's filter and dedupe passes run first, so a
// print job never carries duplicate or empty-keyed labels. The submission
// is recorded in the audit log.
func PrintLabelsCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req printRequest
		if err := api.Decode(r, &req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}

		colors, err := LoadWorkstationColors(r.Context(), db)
		if err != nil {
			slog.Error("load workstation colors failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to load workstations")
			return
		}

		records := SerializeForm(req.LabelsData, req.PartNumbers, func(name string) (string, bool) {
			color, found := colors[name]
			return color, found
		})
		if len(records) == 0 {
			api.Error(w, http.StatusBadRequest, "No labels to print.")
			return
		}

		pdfBytes, err := renderLabelsPDF(records)
		if err != nil {
			slog.Error("render labels pdf failed", slog.Any("err", err))
			api.Error(w, http.StatusInternalServerError, "failed to build label pdf")
			return
		}

		if auditSvc != nil {
			err := db.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
				after := map[string]any{"labels": len(records)}
				return auditSvc.Write(ctx, tx, "labels.print", "print_jobs", "labels.pdf", nil, after)
			})
			if err != nil {
				slog.Error("audit print job failed", slog.Any("err", err))
			}
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=labels.pdf")
		_, _ = w.Write(pdfBytes)
	}
}
