package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/cellstack/cellstackgo/internal/storage"
)

func (r *Router) createRack(w http.ResponseWriter, req *http.Request) {
	var in struct {
		ZoneID   string          `json:"zone_id"`
		Name     string          `json:"name"`
		Quantity int             `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Length   float64         `json:"length"`
		Width    float64         `json:"width"`
		Height   float64         `json:"height"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.ZoneID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "zone_id and name are required")
		return
	}

	racks, err := r.racks.Create(req.Context(), storage.CreateRackInput{
		ZoneID:   in.ZoneID,
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Length:   in.Length,
		Width:    in.Width,
		Height:   in.Height,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, racks)
}

func (r *Router) listRacks(w http.ResponseWriter, req *http.Request) {
	list, err := r.racks.ListByZone(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getRack(w http.ResponseWriter, req *http.Request) {
	rack, err := r.racks.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rack)
}

func (r *Router) updateRack(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name   *string          `json:"name"`
		Price  *decimal.Decimal `json:"price"`
		Length *float64         `json:"length"`
		Width  *float64         `json:"width"`
		Height *float64         `json:"height"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setDecimal(fields, "price", in.Price)
	setFloat(fields, "length", in.Length)
	setFloat(fields, "width", in.Width)
	setFloat(fields, "height", in.Height)

	id := mux.Vars(req)["id"]
	if err := r.racks.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	rack, err := r.racks.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rack)
}

func (r *Router) deleteRack(w http.ResponseWriter, req *http.Request) {
	if err := r.racks.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) createFloor(w http.ResponseWriter, req *http.Request) {
	var in struct {
		RackID            string          `json:"rack_id"`
		Name              string          `json:"name"`
		Quantity          int             `json:"quantity"`
		Length            float64         `json:"length"`
		Width             float64         `json:"width"`
		Height            float64         `json:"height"`
		WeightCapacity    float64         `json:"weight_capacity"`
		MaxPrice          decimal.Decimal `json:"max_price"`
		PriceDecayPercent float64         `json:"price_decay_percent"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.RackID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "rack_id and name are required")
		return
	}

	floors, err := r.floors.Create(req.Context(), storage.CreateFloorInput{
		RackID:            in.RackID,
		Name:              in.Name,
		Quantity:          in.Quantity,
		Length:            in.Length,
		Width:             in.Width,
		Height:            in.Height,
		WeightCapacity:    in.WeightCapacity,
		MaxPrice:          in.MaxPrice,
		PriceDecayPercent: in.PriceDecayPercent,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, floors)
}

func (r *Router) listFloors(w http.ResponseWriter, req *http.Request) {
	list, err := r.floors.ListByRack(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getFloor(w http.ResponseWriter, req *http.Request) {
	floor, err := r.floors.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, floor)
}

func (r *Router) updateFloor(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name           *string          `json:"name"`
		WeightCapacity *float64         `json:"weight_capacity"`
		MaxPrice       *decimal.Decimal `json:"max_price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setFloat(fields, "weight_capacity", in.WeightCapacity)
	setDecimal(fields, "max_price", in.MaxPrice)

	id := mux.Vars(req)["id"]
	if err := r.floors.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	floor, err := r.floors.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, floor)
}

func (r *Router) deleteFloor(w http.ResponseWriter, req *http.Request) {
	if err := r.floors.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) createCell(w http.ResponseWriter, req *http.Request) {
	var in struct {
		FloorID        string          `json:"floor_id"`
		Name           string          `json:"name"`
		Quantity       int             `json:"quantity"`
		Length         float64         `json:"length"`
		Width          float64         `json:"width"`
		Height         float64         `json:"height"`
		WeightCapacity float64         `json:"weight_capacity"`
		Price          decimal.Decimal `json:"price"`
		Status         string          `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.FloorID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "floor_id and name are required")
		return
	}

	cells, err := r.cells.Create(req.Context(), storage.CreateCellInput{
		FloorID:        in.FloorID,
		Name:           in.Name,
		Quantity:       in.Quantity,
		Length:         in.Length,
		Width:          in.Width,
		Height:         in.Height,
		WeightCapacity: in.WeightCapacity,
		Price:          in.Price,
		Status:         in.Status,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cells)
}

func (r *Router) listCells(w http.ResponseWriter, req *http.Request) {
	list, err := r.cells.ListByFloor(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getCell(w http.ResponseWriter, req *http.Request) {
	cell, err := r.cells.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

func (r *Router) updateCell(w http.ResponseWriter, req *http.Request) {
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
	if err := r.cells.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	cell, err := r.cells.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

func (r *Router) deleteCell(w http.ResponseWriter, req *http.Request) {
	if err := r.cells.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
