package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/allocation"
	"github.com/cellstack/cellstackgo/internal/storage"
)

// Router wraps the mux router, the stores and the allocation engine.
type Router struct {
	*mux.Router
	log zerolog.Logger

	warehouses *storage.WarehouseStore
	categories *storage.CategoryStore
	zones      *storage.ZoneStore
	conditions *storage.ConditionStore
	racks      *storage.RackStore
	floors     *storage.FloorStore
	cells      *storage.CellStore
	boxTypes   *storage.BoxTypeStore
	boxes      *storage.BoxStore
	engine     *allocation.Engine
}

// NewRouter wires the stores and engine and registers all routes.
func NewRouter(db *gorm.DB, log zerolog.Logger) *Router {
	r := &Router{
		Router:     mux.NewRouter(),
		log:        log,
		warehouses: storage.NewWarehouseStore(db),
		categories: storage.NewCategoryStore(db),
		zones:      storage.NewZoneStore(db),
		conditions: storage.NewConditionStore(db),
		racks:      storage.NewRackStore(db),
		floors:     storage.NewFloorStore(db),
		cells:      storage.NewCellStore(db),
		boxTypes:   storage.NewBoxTypeStore(db),
		boxes:      storage.NewBoxStore(db),
	}
	r.engine = allocation.NewEngine(allocation.Sources{
		Warehouses: r.warehouses,
		Categories: r.categories,
		Zones:      r.zones,
		Conditions: r.conditions,
		Racks:      r.racks,
		Floors:     r.floors,
		Cells:      r.cells,
		Boxes:      r.boxes,
	}, log)

	r.Use(r.requestLogger)

	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/warehouses", r.createWarehouse).Methods("POST")
	api.HandleFunc("/warehouses", r.listWarehouses).Methods("GET")
	api.HandleFunc("/warehouses/{id}", r.getWarehouse).Methods("GET")
	api.HandleFunc("/warehouses/{id}", r.updateWarehouse).Methods("PUT")
	api.HandleFunc("/warehouses/{id}", r.deleteWarehouse).Methods("DELETE")
	api.HandleFunc("/warehouses/{id}/gates", r.addGate).Methods("POST")
	api.HandleFunc("/warehouses/{id}/gates/{name}", r.removeGate).Methods("DELETE")
	api.HandleFunc("/warehouses/{id}/categories", r.listCategories).Methods("GET")
	api.HandleFunc("/warehouses/{id}/boxes", r.listWarehouseBoxes).Methods("GET")

	api.HandleFunc("/categories", r.createCategory).Methods("POST")
	api.HandleFunc("/categories/{id}", r.getCategory).Methods("GET")
	api.HandleFunc("/categories/{id}", r.updateCategory).Methods("PUT")
	api.HandleFunc("/categories/{id}", r.deleteCategory).Methods("DELETE")
	api.HandleFunc("/categories/{id}/zones", r.listZones).Methods("GET")

	api.HandleFunc("/zones", r.createZone).Methods("POST")
	api.HandleFunc("/zones/{id}", r.getZone).Methods("GET")
	api.HandleFunc("/zones/{id}", r.updateZone).Methods("PUT")
	api.HandleFunc("/zones/{id}", r.deleteZone).Methods("DELETE")
	api.HandleFunc("/zones/{id}/conditions", r.listConditions).Methods("GET")
	api.HandleFunc("/zones/{id}/racks", r.listRacks).Methods("GET")

	api.HandleFunc("/conditions", r.createCondition).Methods("POST")
	api.HandleFunc("/conditions/{id}", r.getCondition).Methods("GET")
	api.HandleFunc("/conditions/{id}", r.updateCondition).Methods("PUT")
	api.HandleFunc("/conditions/{id}", r.deleteCondition).Methods("DELETE")

	api.HandleFunc("/racks", r.createRack).Methods("POST")
	api.HandleFunc("/racks/{id}", r.getRack).Methods("GET")
	api.HandleFunc("/racks/{id}", r.updateRack).Methods("PUT")
	api.HandleFunc("/racks/{id}", r.deleteRack).Methods("DELETE")
	api.HandleFunc("/racks/{id}/floors", r.listFloors).Methods("GET")

	api.HandleFunc("/floors", r.createFloor).Methods("POST")
	api.HandleFunc("/floors/{id}", r.getFloor).Methods("GET")
	api.HandleFunc("/floors/{id}", r.updateFloor).Methods("PUT")
	api.HandleFunc("/floors/{id}", r.deleteFloor).Methods("DELETE")
	api.HandleFunc("/floors/{id}/cells", r.listCells).Methods("GET")

	api.HandleFunc("/cells", r.createCell).Methods("POST")
	api.HandleFunc("/cells/{id}", r.getCell).Methods("GET")
	api.HandleFunc("/cells/{id}", r.updateCell).Methods("PUT")
	api.HandleFunc("/cells/{id}", r.deleteCell).Methods("DELETE")

	api.HandleFunc("/box-types", r.createBoxType).Methods("POST")
	api.HandleFunc("/box-types", r.listBoxTypes).Methods("GET")
	api.HandleFunc("/box-types/{id}", r.getBoxType).Methods("GET")
	api.HandleFunc("/box-types/{id}", r.updateBoxType).Methods("PUT")
	api.HandleFunc("/box-types/{id}", r.deleteBoxType).Methods("DELETE")
	api.HandleFunc("/box-types/{id}/boxes", r.listBoxesByType).Methods("GET")

	api.HandleFunc("/boxes", r.createBox).Methods("POST")
	api.HandleFunc("/boxes/assign", r.assignBoxes).Methods("POST")
	api.HandleFunc("/boxes/{id}", r.getBox).Methods("GET")
	api.HandleFunc("/boxes/{id}", r.updateBox).Methods("PUT")
	api.HandleFunc("/boxes/{id}", r.deleteBox).Methods("DELETE")

	api.HandleFunc("/allocations", r.allocateProduct).Methods("POST")
	api.HandleFunc("/box-placements", r.placeInBoxes).Methods("POST")
	api.HandleFunc("/labels", r.printLabels).Methods("POST")

	return r
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs every request with its latency and status.
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		event := r.log.Info()
		if rec.status >= 500 {
			event = r.log.Error()
		} else if rec.status >= 400 {
			event = r.log.Warn()
		}
		event.
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", rec.status).
			Dur("latency", time.Since(start)).
			Msg("request processed")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError translates engine and store errors into status codes.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrWarehouseNotFound),
		errors.Is(err, storage.ErrCategoryNotFound),
		errors.Is(err, storage.ErrZoneNotFound),
		errors.Is(err, storage.ErrConditionNotFound),
		errors.Is(err, storage.ErrRackNotFound),
		errors.Is(err, storage.ErrFloorNotFound),
		errors.Is(err, storage.ErrCellNotFound),
		errors.Is(err, storage.ErrBoxNotFound),
		errors.Is(err, storage.ErrBoxTypeNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrDimensionExceeded),
		errors.Is(err, storage.ErrEmptyUpdate),
		errors.Is(err, storage.ErrBoxBusy),
		errors.Is(err, allocation.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, allocation.ErrNoSuitableZone),
		errors.Is(err, allocation.ErrNoCapacityAvailable),
		errors.Is(err, allocation.ErrNoBoxFits):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
