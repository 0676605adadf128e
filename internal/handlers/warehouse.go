package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cellstack/cellstackgo/internal/models"
	"github.com/cellstack/cellstackgo/internal/storage"
)

func (r *Router) createWarehouse(w http.ResponseWriter, req *http.Request) {
	var in struct {
		CompanyName string `json:"company_name"`
		Name        string `json:"name"`
		Street      string `json:"street"`
		City        string `json:"city"`
		Region      string `json:"region"`
		Country     string `json:"country"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CompanyName == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "company_name and name are required")
		return
	}

	wh, err := r.warehouses.Create(req.Context(), storage.CreateWarehouseInput{
		CompanyName: in.CompanyName,
		Name:        in.Name,
		Street:      in.Street,
		City:        in.City,
		Region:      in.Region,
		Country:     in.Country,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to create warehouse")
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wh)
}

func (r *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	company := req.URL.Query().Get("company")
	if company == "" {
		respondError(w, http.StatusBadRequest, "company query parameter is required")
		return
	}
	list, err := r.warehouses.ListByCompany(req.Context(), company)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) getWarehouse(w http.ResponseWriter, req *http.Request) {
	wh, err := r.warehouses.GetByID(req.Context(), mux.Vars(req)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wh)
}

func (r *Router) updateWarehouse(w http.ResponseWriter, req *http.Request) {
	var in struct {
		CompanyName *string `json:"company_name"`
		Name        *string `json:"name"`
		Street      *string `json:"street"`
		City        *string `json:"city"`
		Region      *string `json:"region"`
		Country     *string `json:"country"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]any{}
	setString(fields, "company_name", in.CompanyName)
	setString(fields, "name", in.Name)
	setString(fields, "street", in.Street)
	setString(fields, "city", in.City)
	setString(fields, "region", in.Region)
	setString(fields, "country", in.Country)

	id := mux.Vars(req)["id"]
	if err := r.warehouses.Update(req.Context(), id, fields); err != nil {
		respondStoreError(w, err)
		return
	}
	wh, err := r.warehouses.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wh)
}

func (r *Router) deleteWarehouse(w http.ResponseWriter, req *http.Request) {
	if err := r.warehouses.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) addGate(w http.ResponseWriter, req *http.Request) {
	var gate models.Gate
	if err := json.NewDecoder(req.Body).Decode(&gate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if gate.Name == "" {
		respondError(w, http.StatusBadRequest, "gate_name is required")
		return
	}
	id := mux.Vars(req)["id"]
	if err := r.warehouses.AddGate(req.Context(), id, gate); err != nil {
		respondStoreError(w, err)
		return
	}
	wh, err := r.warehouses.GetByID(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wh)
}

func (r *Router) removeGate(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	if err := r.warehouses.RemoveGate(req.Context(), vars["id"], vars["name"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// setString copies a provided pointer field into the partial update map.
// Nil pointers mean the caller did not send the field at all.
func setString(fields map[string]any, column string, v *string) {
	if v != nil {
		fields[column] = *v
	}
}

func setInt(fields map[string]any, column string, v *int) {
	if v != nil {
		fields[column] = *v
	}
}

func setFloat(fields map[string]any, column string, v *float64) {
	if v != nil {
		fields[column] = *v
	}
}

func setBool(fields map[string]any, column string, v *bool) {
	if v != nil {
		fields[column] = *v
	}
}
