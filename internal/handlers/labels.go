package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cellstack/cellstackgo/internal/services/printer"
)

// printLabels renders a QR label sheet for the given unit codes and
// streams the PDF back.
func (r *Router) printLabels(w http.ResponseWriter, req *http.Request) {
	var cfg printer.SheetConfig
	if err := json.NewDecoder(req.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pdf, err := printer.GenerateSheet(cfg)
	if err != nil {
		if errors.Is(err, printer.ErrNoCodes) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		r.log.Error().Err(err).Msg("Failed to generate label sheet")
		respondError(w, http.StatusInternalServerError, "label generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
