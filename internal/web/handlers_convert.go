package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/cookbook/internal/units"
)

type convertRequest struct {
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	// Direction is "to_metric" or "to_us".
	Direction string `json:"direction"`
}

type convertResponse struct {
	Quantity  *float64 `json:"quantity"`
	Unit      string   `json:"unit"`
	Formatted string   `json:"formatted,omitempty"`
}

// handleConversionData returns the full conversion tables so clients can
// convert locally.
func (s *Server) handleConversionData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, units.ConversionData())
}

// handleConvert converts a single quantity between measurement systems.
// Unknown units pass through unchanged rather than failing.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		quantity *float64
		unit     string
	)
	switch req.Direction {
	case "to_metric":
		quantity, unit = units.ToMetric(req.Quantity, req.Unit)
	case "to_us":
		quantity, unit = units.ToUS(req.Quantity, req.Unit)
	default:
		writeError(w, http.StatusBadRequest, "direction must be to_metric or to_us")
		return
	}

	resp := convertResponse{Quantity: quantity, Unit: unit}
	if quantity != nil {
		resp.Formatted = units.FormatQuantity(*quantity, unit)
	}

	writeJSON(w, http.StatusOK, resp)
}
