package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shipscope/shipment-tracker/internal/service"
)

type providerRequest struct {
	Name         string  `json:"name"`
	DisplayName  *string `json:"display_name"`
	TrackingURL  *string `json:"tracking_url"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
}

func (req providerRequest) toInput() service.ProviderInput {
	return service.ProviderInput{
		Name:         req.Name,
		DisplayName:  req.DisplayName,
		TrackingURL:  req.TrackingURL,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	}
}

// createProviderHandler registers a new shipping provider
func (s *Server) createProviderHandler(w http.ResponseWriter, r *http.Request) {
	var req providerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		s.respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	provider, err := s.providerService.Register(r.Context(), req.toInput(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    provider,
	})
}

// getProvidersHandler lists the caller's providers
func (s *Server) getProvidersHandler(w http.ResponseWriter, r *http.Request) {
	providers, err := s.providerService.List(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    providers,
	})
}

// updateProviderHandler replaces all fields of an owned provider
func (s *Server) updateProviderHandler(w http.ResponseWriter, r *http.Request) {
	var req providerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Name == "" {
		s.respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	vars := mux.Vars(r)
	provider, err := s.providerService.Update(r.Context(), vars["providerId"], req.toInput(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    provider,
	})
}

// deleteProviderHandler removes an owned provider
func (s *Server) deleteProviderHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.providerService.Delete(r.Context(), vars["providerId"], principalID(r)); err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
