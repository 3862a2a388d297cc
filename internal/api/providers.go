package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// ProvidersHandler handles provider endpoints.
type ProvidersHandler struct {
	DB *sql.DB
}

// List handles GET /api/providers.
func (h *ProvidersHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := store.ListProviders(r.Context(), h.DB, r.URL.Query().Get("city"))
	if err != nil {
		storeError(w, r, err, "list providers")
		return
	}
	jsonResponse(w, http.StatusOK, providers)
}

// Create handles POST /api/providers.
func (h *ProvidersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Provider
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	provider, err := store.CreateProvider(r.Context(), h.DB, req)
	if err != nil {
		storeError(w, r, err, "create provider")
		return
	}
	jsonResponse(w, http.StatusCreated, provider)
}

// Get handles GET /api/providers/{id}.
func (h *ProvidersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid provider id")
		return
	}

	provider, err := store.GetProvider(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err, "get provider")
		return
	}
	jsonResponse(w, http.StatusOK, provider)
}

// Contacts handles GET /api/providers/contacts?city=.
func (h *ProvidersHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		jsonError(w, http.StatusBadRequest, "city required")
		return
	}

	contacts, err := store.ProviderContacts(r.Context(), h.DB, city)
	if err != nil {
		storeError(w, r, err, "list provider contacts")
		return
	}
	jsonResponse(w, http.StatusOK, contacts)
}
