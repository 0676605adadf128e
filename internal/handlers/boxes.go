package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cellstack/cellstackgo/internal/storage"
)

func (r *Router) createBoxType(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name   string  `json:"name"`
		Height float64 `json:"height"`
		Length float64 `json:"length"`
		Width  float64 `json:"width"`
		Status string  `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" || in.Height <= 0 || in.Length <= 0 || in.Width <= 0 {
		respondError(w, http.StatusBadRequest, "name and positive dimensions are required")
		return
	}

	bt, err := r.boxTypes.Create(req.Context(), storage.CreateBoxTypeInput{
		Name:   in.Name,
		Height: in.Height,
		Length: in.Length,
		Width:  in.Width,
		Status: in.Status,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bt)
}

func (r *Router) listBoxTypes(w http.ResponseWriter, req *http.Request) {
	list, err := r.boxTypes.List(req.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getBoxType(w http.ResponseWriter, req *http.Request) {
	bt, err := r.boxTypes.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bt)
}

func (r *Router) updateBoxType(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setString(fields, "status", in.Status)

	id := mux.Vars(req)["id"]
	if err := r.boxTypes.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	bt, err := r.boxTypes.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bt)
}

func (r *Router) deleteBoxType(w http.ResponseWriter, req *http.Request) {
	if err := r.boxTypes.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) createBox(w http.ResponseWriter, req *http.Request) {
	var in struct {
		BoxTypeID   string  `json:"box_type_id"`
		WarehouseID string  `json:"warehouse_id"`
		Quantity    int     `json:"quantity"`
		Weight      float64 `json:"weight"`
		Address     string  `json:"address"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.BoxTypeID == "" || in.WarehouseID == "" {
		respondError(w, http.StatusBadRequest, "box_type_id and warehouse_id are required")
		return
	}

	boxes, err := r.boxes.Create(req.Context(), storage.CreateBoxInput{
		BoxTypeID:   in.BoxTypeID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Weight:      in.Weight,
		Address:     in.Address,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, boxes)
}

func (r *Router) listWarehouseBoxes(w http.ResponseWriter, req *http.Request) {
	list, err := r.boxes.ListByWarehouse(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) listBoxesByType(w http.ResponseWriter, req *http.Request) {
	list, err := r.boxes.ListByType(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getBox(w http.ResponseWriter, req *http.Request) {
	box, err := r.boxes.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, box)
}

func (r *Router) updateBox(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Address *string  `json:"address"`
		Weight  *float64 `json:"weight"`
		Status  *string  `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "address", in.Address)
	setFloat(fields, "weight", in.Weight)
	setString(fields, "status", in.Status)

	id := mux.Vars(req)["id"]
	if err := r.boxes.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	box, err := r.boxes.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, box)
}

func (r *Router) deleteBox(w http.ResponseWriter, req *http.Request) {
	if err := r.boxes.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// assignBoxes moves a set of filled boxes into a cell in one shot. All
// boxes must still be active or the whole request is rejected.
func (r *Router) assignBoxes(w http.ResponseWriter, req *http.Request) {
	var in struct {
		BoxIDs []string `json:"box_ids"`
		CellID string   `json:"cell_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(in.BoxIDs) == 0 || in.CellID == "" {
		respondError(w, http.StatusBadRequest, "box_ids and cell_id are required")
		return
	}

	if err := r.boxes.AssignToCell(req.Context(), in.BoxIDs, in.CellID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "assigned", "cell_id": in.CellID})
}
