package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// ReceiversHandler handles receiver endpoints.
type ReceiversHandler struct {
	DB *sql.DB
}

// List handles GET /api/receivers.
func (h *ReceiversHandler) List(w http.ResponseWriter, r *http.Request) {
	receivers, err := store.ListReceivers(r.Context(), h.DB, r.URL.Query().Get("city"))
	if err != nil {
		storeError(w, r, err, "list receivers")
		return
	}
	jsonResponse(w, http.StatusOK, receivers)
}

// Create handles POST /api/receivers.
func (h *ReceiversHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.Receiver
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receiver, err := store.CreateReceiver(r.Context(), h.DB, req)
	if err != nil {
		storeError(w, r, err, "create receiver")
		return
	}
	jsonResponse(w, http.StatusCreated, receiver)
}

// Get handles GET /api/receivers/{id}.
func (h *ReceiversHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid receiver id")
		return
	}

	receiver, err := store.GetReceiver(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err, "get receiver")
		return
	}
	jsonResponse(w, http.StatusOK, receiver)
}
