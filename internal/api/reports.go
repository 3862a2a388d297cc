package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// ReportsHandler handles aggregate report endpoints.
type ReportsHandler struct {
	DB *sql.DB
}

type reportResponse struct {
	Kind  store.ReportKind `json:"kind"`
	Pairs []model.Pair     `json:"pairs"`
}

// Kinds handles GET /api/reports.
func (h *ReportsHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, store.AggregateKinds())
}

// Run handles GET /api/reports/{kind}.
func (h *ReportsHandler) Run(w http.ResponseWriter, r *http.Request) {
	kind := store.ReportKind(r.PathValue("kind"))

	pairs, err := store.Aggregate(r.Context(), h.DB, kind)
	if err != nil {
		storeError(w, r, err, "run report")
		return
	}
	jsonResponse(w, http.StatusOK, reportResponse{Kind: kind, Pairs: pairs})
}

// Summary handles GET /api/summary.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := store.GetSummary(r.Context(), h.DB)
	if err != nil {
		storeError(w, r, err, "get summary")
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}
