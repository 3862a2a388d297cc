package api

import (
	"database/sql"
	"net/http"
	"time"
)

// Options tunes handler behavior that is not part of the request.
type Options struct {
	// ExpiringDays is the window used by /api/listings/expiring when the
	// request has no days parameter.
	ExpiringDays int
	// ImageMaxDimension bounds uploaded listing photos.
	ImageMaxDimension int
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Metrics receives request and claim counters. A fresh set is created
	// when nil.
	Metrics *Metrics
}

// NewRouter creates the HTTP handler with all endpoints registered, wrapped
// in request logging and metrics.
func NewRouter(db *sql.DB, opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}

	mux := http.NewServeMux()

	providers := &ProvidersHandler{DB: db}
	receivers := &ReceiversHandler{DB: db}
	listings := &ListingsHandler{
		DB:                db,
		ExpiringDays:      opts.ExpiringDays,
		ImageMaxDimension: opts.ImageMaxDimension,
		Now:               opts.Now,
	}
	claims := &ClaimsHandler{DB: db, Metrics: opts.Metrics}
	reports := &ReportsHandler{DB: db}

	// Providers.
	mux.HandleFunc("GET /api/providers", providers.List)
	mux.HandleFunc("POST /api/providers", providers.Create)
	mux.HandleFunc("GET /api/providers/contacts", providers.Contacts)
	mux.HandleFunc("GET /api/providers/{id}", providers.Get)

	// Receivers.
	mux.HandleFunc("GET /api/receivers", receivers.List)
	mux.HandleFunc("POST /api/receivers", receivers.Create)
	mux.HandleFunc("GET /api/receivers/{id}", receivers.Get)

	// Listings.
	mux.HandleFunc("GET /api/listings", listings.List)
	mux.HandleFunc("POST /api/listings", listings.Create)
	mux.HandleFunc("GET /api/listings/expiring", listings.Expiring)
	mux.HandleFunc("GET /api/listings/options", listings.Options)
	mux.HandleFunc("GET /api/listings/{id}", listings.Get)
	mux.HandleFunc("PUT /api/listings/{id}/image", listings.UploadImage)
	mux.HandleFunc("GET /api/listings/{id}/image", listings.GetImage)

	// Claims.
	mux.HandleFunc("GET /api/claims", claims.List)
	mux.HandleFunc("POST /api/claims", claims.Create)
	mux.HandleFunc("GET /api/claims/{id}", claims.Get)
	mux.HandleFunc("PUT /api/claims/{id}/status", claims.UpdateStatus)

	// Reports.
	mux.HandleFunc("GET /api/reports", reports.Kinds)
	mux.HandleFunc("GET /api/reports/{kind}", reports.Run)
	mux.HandleFunc("GET /api/summary", reports.Summary)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			jsonError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", opts.Metrics.Handler())

	return LoggingMiddleware(opts.Metrics, mux)
}
