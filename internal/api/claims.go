package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// ClaimsHandler handles claim endpoints.
type ClaimsHandler struct {
	DB      *sql.DB
	Metrics *Metrics
}

type createClaimRequest struct {
	ListingID  int64 `json:"listing_id"`
	ReceiverID int64 `json:"receiver_id"`
}

type updateClaimStatusRequest struct {
	Status model.ClaimStatus `json:"status"`
}

// List handles GET /api/claims?status=.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.ClaimStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	claims, err := store.ListClaims(r.Context(), h.DB, status)
	if err != nil {
		storeError(w, r, err, "list claims")
		return
	}
	jsonResponse(w, http.StatusOK, claims)
}

// Create handles POST /api/claims.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ListingID <= 0 || req.ReceiverID <= 0 {
		jsonError(w, http.StatusBadRequest, "listing_id and receiver_id required")
		return
	}

	claim, err := store.CreateClaim(r.Context(), h.DB, req.ListingID, req.ReceiverID)
	if err != nil {
		storeError(w, r, err, "create claim")
		return
	}

	slog.Info("claim created", "claim_id", claim.ID, "listing_id", claim.ListingID, "receiver_id", claim.ReceiverID)
	jsonResponse(w, http.StatusCreated, claim)
}

// Get handles GET /api/claims/{id}.
func (h *ClaimsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	claim, err := store.GetClaim(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err, "get claim")
		return
	}
	jsonResponse(w, http.StatusOK, claim)
}

// UpdateStatus handles PUT /api/claims/{id}/status.
func (h *ClaimsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	var req updateClaimStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claim, err := store.UpdateClaimStatus(r.Context(), h.DB, id, req.Status)
	if err != nil {
		storeError(w, r, err, "update claim status")
		return
	}

	h.Metrics.claimTransitioned(claim.Status)
	slog.Info("claim status updated", "claim_id", claim.ID, "status", claim.Status)
	jsonResponse(w, http.StatusOK, claim)
}
