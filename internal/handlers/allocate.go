package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cellstack/cellstackgo/internal/allocation"
)

func (r *Router) allocateProduct(w http.ResponseWriter, req *http.Request) {
	var in allocation.PlacementRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CompanyName == "" || in.WarehouseName == "" {
		respondError(w, http.StatusBadRequest, "company_name and warehouse_name are required")
		return
	}

	placement, err := r.engine.AllocateProduct(req.Context(), in)
	if err != nil {
		r.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Msg("allocation failed")
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placement)
}

func (r *Router) placeInBoxes(w http.ResponseWriter, req *http.Request) {
	var in allocation.BoxRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.BoxTypeID == "" {
		respondError(w, http.StatusBadRequest, "box_type_id is required")
		return
	}

	placement, err := r.engine.PlaceInBoxes(req.Context(), in)
	if err != nil {
		// A partial fill still carries useful state for the caller.
		if errors.Is(err, allocation.ErrNoBoxFits) && placement != nil {
			respondJSON(w, http.StatusConflict, map[string]any{
				"error":     err.Error(),
				"placement": placement,
			})
			return
		}
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placement)
}
