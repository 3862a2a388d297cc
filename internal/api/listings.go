package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/erazemk/foodshare/internal/imaging"
	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// maxUploadSize limits listing photo uploads to 5 MB.
const maxUploadSize = 5 << 20

// ListingsHandler handles food listing endpoints.
type ListingsHandler struct {
	DB                *sql.DB
	ExpiringDays      int
	ImageMaxDimension int
	Now               func() time.Time
}

type createListingRequest struct {
	FoodName     string `json:"food_name"`
	Quantity     int    `json:"quantity"`
	ExpiryDate   string `json:"expiry_date"`
	ProviderID   int64  `json:"provider_id"`
	ProviderType string `json:"provider_type"`
	Location     string `json:"location"`
	FoodType     string `json:"food_type"`
	MealType     string `json:"meal_type"`
}

// List handles GET /api/listings. Every query parameter narrows the result.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ListingFilter{
		City:     q.Get("city"),
		MealType: q.Get("meal_type"),
		FoodType: q.Get("food_type"),
	}

	providerID, ok := queryInt(r, "provider_id", 0)
	if !ok || providerID < 0 {
		jsonError(w, http.StatusBadRequest, "invalid provider_id")
		return
	}
	filter.ProviderID = providerID

	minQuantity, ok := queryInt(r, "min_quantity", 0)
	if !ok || minQuantity < 0 {
		jsonError(w, http.StatusBadRequest, "invalid min_quantity")
		return
	}
	filter.MinQuantity = int(minQuantity)

	listings, err := store.ListFood(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, r, err, "list food")
		return
	}
	jsonResponse(w, http.StatusOK, listings)
}

// Create handles POST /api/listings.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing := model.Listing{
		FoodName:     req.FoodName,
		Quantity:     req.Quantity,
		ProviderID:   req.ProviderID,
		ProviderType: req.ProviderType,
		Location:     req.Location,
		FoodType:     req.FoodType,
		MealType:     req.MealType,
	}
	if req.ExpiryDate != "" {
		expiry, err := model.ParseDate(req.ExpiryDate)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid expiry_date")
			return
		}
		listing.ExpiryDate = expiry
	}

	created, err := store.CreateListing(r.Context(), h.DB, listing)
	if err != nil {
		storeError(w, r, err, "create listing")
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := store.GetListing(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err, "get listing")
		return
	}
	jsonResponse(w, http.StatusOK, listing)
}

// Expiring handles GET /api/listings/expiring?days=.
func (h *ListingsHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", int64(h.ExpiringDays))
	if !ok || days < 0 || days > store.MaxExpiringDays {
		jsonError(w, http.StatusBadRequest, "invalid days")
		return
	}

	listings, err := store.ExpiringListings(r.Context(), h.DB, h.Now(), int(days))
	if err != nil {
		storeError(w, r, err, "list expiring food")
		return
	}
	jsonResponse(w, http.StatusOK, listings)
}

// Options handles GET /api/listings/options.
func (h *ListingsHandler) Options(w http.ResponseWriter, r *http.Request) {
	opts, err := store.GetFilterOptions(r.Context(), h.DB)
	if err != nil {
		storeError(w, r, err, "get filter options")
		return
	}
	jsonResponse(w, http.StatusOK, opts)
}

// UploadImage handles PUT /api/listings/{id}/image.
func (h *ListingsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file, h.ImageMaxDimension)
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}

	if err := store.SetListingImage(r.Context(), h.DB, id, photo.Data, photo.MIME); err != nil {
		storeError(w, r, err, "save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "image uploaded",
		"width":   photo.Width,
		"height":  photo.Height,
	})
}

// GetImage handles GET /api/listings/{id}/image.
func (h *ListingsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	data, mime, err := store.GetListingImage(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err, "get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
