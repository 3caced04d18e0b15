package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/internal/service"
)

type shipmentRequest struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	Status             string  `json:"status"`
	ProviderID         string  `json:"provider_id"`
	EstimatedDelivery  *string `json:"estimated_delivery"`
	WeightKg           float64 `json:"weight_kg"`
	Dimensions         string  `json:"dimensions"`
	Description        *string `json:"description"`
	ExternalTrackingID *string `json:"external_tracking_id"`
}

func (req shipmentRequest) toInput() (service.CreateShipmentInput, error) {
	if req.Origin == "" || req.Destination == "" {
		return service.CreateShipmentInput{}, fmt.Errorf("origin and destination are required")
	}
	if req.ProviderID == "" {
		return service.CreateShipmentInput{}, fmt.Errorf("provider_id is required")
	}
	if req.WeightKg <= 0 {
		return service.CreateShipmentInput{}, fmt.Errorf("weight_kg is required")
	}
	if req.Dimensions == "" {
		return service.CreateShipmentInput{}, fmt.Errorf("dimensions are required")
	}

	in := service.CreateShipmentInput{
		Origin:             req.Origin,
		Destination:        req.Destination,
		Status:             models.ShipmentStatus(req.Status),
		ProviderID:         req.ProviderID,
		WeightKg:           req.WeightKg,
		Dimensions:         req.Dimensions,
		Description:        req.Description,
		ExternalTrackingID: req.ExternalTrackingID,
	}

	if req.EstimatedDelivery != nil && *req.EstimatedDelivery != "" {
		t, err := parseDate(*req.EstimatedDelivery)

		if err != nil {
			return service.CreateShipmentInput{}, fmt.Errorf("invalid estimated_delivery date")
		}

		in.EstimatedDelivery = &t
	}

	return in, nil
}

type updateShipmentRequest struct {
	Status            *string `json:"status"`
	EstimatedDelivery *string `json:"estimated_delivery"`
}

// createShipmentHandler creates a single shipment
func (s *Server) createShipmentHandler(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	in, err := req.toInput()

	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	shipment, err := s.shipmentService.Create(r.Context(), in, principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    shipment,
	})
}

// createBulkShipmentsHandler creates a batch of shipments atomically
func (s *Server) createBulkShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	var reqs []shipmentRequest

	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	inputs := make([]service.CreateShipmentInput, 0, len(reqs))

	for _, req := range reqs {
		in, err := req.toInput()

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		inputs = append(inputs, in)
	}

	shipments, err := s.shipmentService.CreateBulk(r.Context(), inputs, principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Data:    shipments,
	})
}

// getShipmentsHandler lists the caller's shipments
func (s *Server) getShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.shipmentService.List(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    shipments,
	})
}

// getShipmentByIDHandler returns a shipment by its public shipment ID
func (s *Server) getShipmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shipment, err := s.shipmentService.GetByPublicID(r.Context(), vars["shipmentId"], principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    shipment,
	})
}

// getShipmentsByProviderHandler lists the caller's shipments for a provider
func (s *Server) getShipmentsByProviderHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shipments, err := s.shipmentService.ListByProvider(r.Context(), vars["providerId"], principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    shipments,
	})
}

// searchShipmentsHandler filters the caller's shipments by query parameters
func (s *Server) searchShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.ShipmentFilter{
		Origin:      query.Get("origin"),
		Destination: query.Get("destination"),
		Status:      models.ShipmentStatus(query.Get("status")),
		ProviderID:  query.Get("provider_id"),
	}

	if raw := query.Get("date_from"); raw != "" {
		t, err := parseDate(raw)

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "invalid date_from")
			return
		}

		filter.DateFrom = &t
	}

	if raw := query.Get("date_to"); raw != "" {
		t, err := parseDate(raw)

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "invalid date_to")
			return
		}

		filter.DateTo = &t
	}

	shipments, err := s.shipmentService.Search(r.Context(), principalID(r), filter)

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    shipments,
	})
}

// updateShipmentHandler patches the status and/or estimated delivery
func (s *Server) updateShipmentHandler(w http.ResponseWriter, r *http.Request) {
	var req updateShipmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	in := service.UpdateShipmentInput{}

	if req.Status != nil {
		status := models.ShipmentStatus(*req.Status)
		in.Status = &status
	}

	if req.EstimatedDelivery != nil && *req.EstimatedDelivery != "" {
		t, err := parseDate(*req.EstimatedDelivery)

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "invalid estimated_delivery date")
			return
		}

		in.EstimatedDelivery = &t
	}

	vars := mux.Vars(r)
	shipment, err := s.shipmentService.UpdateStatusOrDelivery(r.Context(), vars["shipmentId"], principalID(r), in)

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    shipment,
	})
}

// deleteShipmentHandler removes a single shipment
func (s *Server) deleteShipmentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.shipmentService.Delete(r.Context(), vars["shipmentId"], principalID(r)); err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteAllShipmentsHandler removes every shipment owned by the caller
func (s *Server) deleteAllShipmentsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.shipmentService.DeleteAll(r.Context(), principalID(r)); err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
