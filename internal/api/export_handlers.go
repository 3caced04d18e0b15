package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// exportShipmentsCSVHandler streams all of the caller's shipments as CSV
func (s *Server) exportShipmentsCSVHandler(w http.ResponseWriter, r *http.Request) {
	data, err := s.exportService.ExportCSV(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=all_shipments.csv")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// exportShipmentsByProviderCSVHandler streams the caller's shipments for one provider as CSV
func (s *Server) exportShipmentsByProviderCSVHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID := vars["providerId"]

	data, err := s.exportService.ExportCSVByProvider(r.Context(), providerID, principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=shipments_provider_%s.csv", providerID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
