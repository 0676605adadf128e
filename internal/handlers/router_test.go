package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cellstack/cellstackgo/internal/allocation"
	"github.com/cellstack/cellstackgo/internal/storage"
)

func TestRespondStoreErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{storage.ErrWarehouseNotFound, http.StatusNotFound},
		{storage.ErrCellNotFound, http.StatusNotFound},
		{fmt.Errorf("looking up rack: %w", storage.ErrRackNotFound), http.StatusNotFound},
		{storage.ErrDimensionExceeded, http.StatusBadRequest},
		{storage.ErrEmptyUpdate, http.StatusBadRequest},
		{storage.ErrBoxBusy, http.StatusBadRequest},
		{allocation.ErrInvalidRequest, http.StatusBadRequest},
		{allocation.ErrNoSuitableZone, http.StatusConflict},
		{allocation.ErrNoCapacityAvailable, http.StatusConflict},
		{fmt.Errorf("%w: 2 units left", allocation.ErrNoBoxFits), http.StatusConflict},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		respondStoreError(rec, tc.err)
		if rec.Code != tc.want {
			t.Errorf("respondStoreError(%v) = %d, want %d", tc.err, rec.Code, tc.want)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("response for %v is not JSON: %v", tc.err, err)
		}
		if body["error"] == "" {
			t.Errorf("response for %v has no error message", tc.err)
		}
	}
}

func TestStatusRecorderCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	sr.WriteHeader(http.StatusConflict)
	if sr.status != http.StatusConflict || rec.Code != http.StatusConflict {
		t.Fatalf("statusRecorder captured %d, recorder saw %d", sr.status, rec.Code)
	}
}
