package http

import (
	"github.com/go-chi/chi/v5"

	labelspage "binlabeler/frontend/labels"
	productlinespage "binlabeler/frontend/productlines"
	searchpage "binlabeler/frontend/search"
	workstationspage "binlabeler/frontend/workstations"
)

// RegisterCatalogRoutes wires the catalog JSON API.
func (s *Server) RegisterCatalogRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/product-lines", productlinespage.ProductLinesQueryHandler(s.DB))
		r.Post("/product-lines", productlinespage.SaveProductLinesCommandHandler(s.DB, s.Audit))

		r.Get("/workstations", workstationspage.WorkstationsQueryHandler(s.DB))
		r.Post("/workstations", workstationspage.SaveWorkstationsCommandHandler(s.DB, s.Audit))

		r.Post("/floor-stock", labelspage.CheckFloorStockHandler(s.Resolver))

		r.Route("/workstations/{name}/labels", func(r chi.Router) {
			r.Get("/", labelspage.LabelsQueryHandler(s.DB, s.Resolver))
			r.Post("/", labelspage.AddPartCommandHandler(s.DB, s.Resolver, s.Audit))
			r.Put("/", labelspage.SaveLabelsCommandHandler(s.DB, s.Resolver, s.Audit))
			r.Post("/bulk", labelspage.BulkAddCommandHandler(s.DB, s.Resolver, s.Audit))
			r.Post("/{index}/move-up", labelspage.MoveLabelCommandHandler(s.DB, s.Audit, labelspage.MoveUp))
			r.Post("/{index}/move-down", labelspage.MoveLabelCommandHandler(s.DB, s.Audit, labelspage.MoveDown))
			r.Delete("/{index}", labelspage.DeleteLabelCommandHandler(s.DB, s.Audit))
		})

		r.Post("/search", searchpage.SearchPartQueryHandler(s.DB))
		r.Post("/print", labelspage.PrintLabelsCommandHandler(s.DB, s.Audit))
	})
}
