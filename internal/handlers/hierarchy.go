package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/cellstack/cellstackgo/internal/storage"
)

func (r *Router) createCategory(w http.ResponseWriter, req *http.Request) {
	var in struct {
		WarehouseID   string          `json:"warehouse_id"`
		Name          string          `json:"name"`
		TimeThreshold int             `json:"time_threshold"`
		Price         decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.WarehouseID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "warehouse_id and name are required")
		return
	}

	cat, err := r.categories.Create(req.Context(), storage.CreateCategoryInput{
		WarehouseID:   in.WarehouseID,
		Name:          in.Name,
		TimeThreshold: in.TimeThreshold,
		Price:         in.Price,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (r *Router) listCategories(w http.ResponseWriter, req *http.Request) {
	list, err := r.categories.ListByWarehouse(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getCategory(w http.ResponseWriter, req *http.Request) {
	cat, err := r.categories.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (r *Router) updateCategory(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name          *string          `json:"name"`
		TimeThreshold *int             `json:"time_threshold"`
		Price         *decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setInt(fields, "time_threshold", in.TimeThreshold)
	setDecimal(fields, "price", in.Price)

	id := mux.Vars(req)["id"]
	if err := r.categories.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	cat, err := r.categories.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (r *Router) deleteCategory(w http.ResponseWriter, req *http.Request) {
	if err := r.categories.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) createZone(w http.ResponseWriter, req *http.Request) {
	var in struct {
		CategoryID string          `json:"category_id"`
		Name       string          `json:"name"`
		Price      decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CategoryID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "category_id and name are required")
		return
	}

	zone, err := r.zones.Create(req.Context(), storage.CreateZoneInput{
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, zone)
}

func (r *Router) listZones(w http.ResponseWriter, req *http.Request) {
	list, err := r.zones.ListByCategory(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getZone(w http.ResponseWriter, req *http.Request) {
	zone, err := r.zones.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, zone)
}

func (r *Router) updateZone(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name  *string          `json:"name"`
		Price *decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setDecimal(fields, "price", in.Price)

	id := mux.Vars(req)["id"]
	if err := r.zones.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	zone, err := r.zones.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, zone)
}

func (r *Router) deleteZone(w http.ResponseWriter, req *http.Request) {
	if err := r.zones.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) createCondition(w http.ResponseWriter, req *http.Request) {
	var in struct {
		ZoneID      string          `json:"zone_id"`
		Name        string          `json:"name"`
		WindowStart int             `json:"window_start"`
		WindowEnd   int             `json:"window_end"`
		Active      bool            `json:"active"`
		Price       decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.ZoneID == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "zone_id and name are required")
		return
	}

	cond, err := r.conditions.Create(req.Context(), storage.CreateConditionInput{
		ZoneID:      in.ZoneID,
		Name:        in.Name,
		WindowStart: in.WindowStart,
		WindowEnd:   in.WindowEnd,
		Active:      in.Active,
		Price:       in.Price,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cond)
}

func (r *Router) listConditions(w http.ResponseWriter, req *http.Request) {
	list, err := r.conditions.ListByZone(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getCondition(w http.ResponseWriter, req *http.Request) {
	cond, err := r.conditions.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cond)
}

// updateCondition changes descriptive fields only. The price written at
// creation has already been folded into the zone, so it stays immutable.
func (r *Router) updateCondition(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Name        *string `json:"name"`
		WindowStart *int    `json:"window_start"`
		WindowEnd   *int    `json:"window_end"`
		Active      *bool   `json:"active"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fields := map[string]any{}
	setString(fields, "name", in.Name)
	setInt(fields, "window_start", in.WindowStart)
	setInt(fields, "window_end", in.WindowEnd)
	setBool(fields, "active", in.Active)

	id := mux.Vars(req)["id"]
	if err := r.conditions.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	cond, err := r.conditions.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cond)
}

func (r *Router) deleteCondition(w http.ResponseWriter, req *http.Request) {
	if err := r.conditions.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func setDecimal(fields map[string]any, column string, v *decimal.Decimal) {
	if v != nil {
		fields[column] = *v
	}
}
