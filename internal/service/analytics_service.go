package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/shipscope/shipment-tracker/internal/models"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// DefaultTopRoutesLimit bounds the route ranking when the caller does not
// supply a limit.
const DefaultTopRoutesLimit = 5

// AnalyticsService computes read-only aggregates over a user's shipments
type AnalyticsService struct {
	analyticsStore AnalyticsStore
	logger         logger.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsStore AnalyticsStore, logger logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsStore: analyticsStore,
		logger:         logger,
	}
}

// StatusSummary returns the total count and one count per reported status.
// Each count is an independent query.
func (s *AnalyticsService) StatusSummary(ctx context.Context, owner string) (*models.ShipmentSummary, error) {
	total, err := s.analyticsStore.CountByOwner(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute shipment summary")
	}

	summary := &models.ShipmentSummary{Total: total}

	for status, target := range map[models.ShipmentStatus]*int{
		models.ShipmentStatusDelivered: &summary.Delivered,
		models.ShipmentStatusPending:   &summary.Pending,
		models.ShipmentStatusInTransit: &summary.InTransit,
		models.ShipmentStatusDelayed:   &summary.Delayed,
		models.ShipmentStatusCancelled: &summary.Cancelled,
	} {
		count, err := s.analyticsStore.CountByOwnerAndStatus(ctx, owner, status)

		if err != nil {
			return nil, apperrors.NewInternalError("failed to compute shipment summary")
		}

		*target = count
	}

	return summary, nil
}

// MonthlyTrend groups the owner's shipments created in the given year by
// calendar month. Months with no shipments are omitted from the result.
func (s *AnalyticsService) MonthlyTrend(ctx context.Context, owner string, year int) (map[string]int, error) {
	counts, err := s.analyticsStore.MonthlyCounts(ctx, owner, year)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute monthly trend")
	}

	trend := make(map[string]int, len(counts))

	for _, mc := range counts {
		trend[strconv.Itoa(mc.Month)] = mc.Count
	}

	return trend, nil
}

// AverageDeliveryTime returns the mean of (estimated_delivery - created_at)
// in whole days over the owner's delivered shipments, rounded to two
// decimal places. An empty set yields 0.0. The estimate is used as-is, even
// though no actual-delivery timestamp exists.
func (s *AnalyticsService) AverageDeliveryTime(ctx context.Context, owner string) (float64, error) {
	shipments, err := s.analyticsStore.DeliveredWithEstimate(ctx, owner)

	if err != nil {
		return 0, apperrors.NewInternalError("failed to compute average delivery time")
	}

	if len(shipments) == 0 {
		return 0.0, nil
	}

	totalDays := 0

	for _, shipment := range shipments {
		days := int(math.Floor(shipment.EstimatedDelivery.Sub(shipment.CreatedAt).Hours() / 24))
		totalDays += days
	}

	avg := float64(totalDays) / float64(len(shipments))

	return math.Round(avg*100) / 100, nil
}

// ProviderCounts returns shipment counts grouped by provider name. The
// grouping covers providers owned by the caller, not shipments they
// created.
func (s *AnalyticsService) ProviderCounts(ctx context.Context, owner string) (map[string]int, error) {
	counts, err := s.analyticsStore.ProviderCounts(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute provider counts")
	}

	result := make(map[string]int, len(counts))

	for _, pc := range counts {
		result[pc.Name] = pc.Count
	}

	return result, nil
}

// StatusTrend returns the per-day, per-status count matrix over the
// owner's shipments, keyed by creation date.
func (s *AnalyticsService) StatusTrend(ctx context.Context, owner string) (map[string]map[string]int, error) {
	counts, err := s.analyticsStore.DailyStatusCounts(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute status trend")
	}

	trend := make(map[string]map[string]int)

	for _, dc := range counts {
		day := dc.Day.Format("2006-01-02")

		if trend[day] == nil {
			trend[day] = make(map[string]int)
		}

		trend[day][string(dc.Status)] = dc.Count
	}

	return trend, nil
}

// TopRoutes returns the owner's highest-volume origin/destination pairs,
// keyed by a combined route label and bounded to the given limit.
func (s *AnalyticsService) TopRoutes(ctx context.Context, owner string, limit int) (map[string]int, error) {
	if limit <= 0 {
		limit = DefaultTopRoutesLimit
	}

	counts, err := s.analyticsStore.RouteCounts(ctx, owner, limit)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to compute top routes")
	}

	routes := make(map[string]int, len(counts))

	for _, rc := range counts {
		label := fmt.Sprintf("%s → %s", rc.Origin, rc.Destination)
		routes[label] = rc.Count
	}

	return routes, nil
}
