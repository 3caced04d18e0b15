package api

import (
	"net/http"
	"strconv"
	"time"
)

// getSummaryHandler returns total and per-status shipment counts
func (s *Server) getSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analyticsService.StatusSummary(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    summary,
	})
}

// getMonthlyTrendsHandler returns shipment counts keyed by month number
func (s *Server) getMonthlyTrendsHandler(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()

	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "invalid year")
			return
		}

		year = parsed
	}

	trend, err := s.analyticsService.MonthlyTrend(r.Context(), principalID(r), year)

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    trend,
	})
}

// getAverageDeliveryTimeHandler returns the mean estimated transit time in days
func (s *Server) getAverageDeliveryTimeHandler(w http.ResponseWriter, r *http.Request) {
	avg, err := s.analyticsService.AverageDeliveryTime(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    avg,
	})
}

// getProviderCountHandler returns shipment counts keyed by provider name
func (s *Server) getProviderCountHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := s.analyticsService.ProviderCounts(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    counts,
	})
}

// getStatusTrendHandler returns per-day, per-status shipment counts
func (s *Server) getStatusTrendHandler(w http.ResponseWriter, r *http.Request) {
	trend, err := s.analyticsService.StatusTrend(r.Context(), principalID(r))

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    trend,
	})
}

// getTopRoutesHandler returns the most frequent origin to destination pairs
func (s *Server) getTopRoutesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}

		limit = parsed
	}

	routes, err := s.analyticsService.TopRoutes(r.Context(), principalID(r), limit)

	if err != nil {
		s.respondWithServiceError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    routes,
	})
}
