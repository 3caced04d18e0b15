package repository

import (
	"context"
	"fmt"

	"github.com/shipscope/shipment-tracker/internal/database"
	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// AnalyticsRepository runs the read-only aggregate queries over shipments
type AnalyticsRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *database.Database, logger logger.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

// CountByOwner counts all shipments created by the given owner
func (r *AnalyticsRepository) CountByOwner(ctx context.Context, owner string) (int, error) {
	query := `SELECT COUNT(*) FROM shipments WHERE created_by = $1`

	var count int
	err := r.db.DB.GetContext(ctx, &count, query, owner)

	if err != nil {
		r.logger.Error("Failed to count shipments", "error", err, "owner", owner)
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return count, nil
}

// CountByOwnerAndStatus counts the owner's shipments with the given status
func (r *AnalyticsRepository) CountByOwnerAndStatus(ctx context.Context, owner string, status models.ShipmentStatus) (int, error) {
	query := `SELECT COUNT(*) FROM shipments WHERE created_by = $1 AND status = $2`

	var count int
	err := r.db.DB.GetContext(ctx, &count, query, owner, status)

	if err != nil {
		r.logger.Error("Failed to count shipments by status", "error", err, "owner", owner, "status", status)
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return count, nil
}

// MonthlyCounts groups the owner's shipments created in the given year by
// calendar month. Months with no shipments produce no row.
func (r *AnalyticsRepository) MonthlyCounts(ctx context.Context, owner string, year int) ([]models.MonthCount, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count
		FROM shipments
		WHERE created_by = $1 AND EXTRACT(YEAR FROM created_at) = $2
		GROUP BY month
		ORDER BY month
	`

	var counts []models.MonthCount
	err := r.db.DB.SelectContext(ctx, &counts, query, owner, year)

	if err != nil {
		r.logger.Error("Failed to get monthly counts", "error", err, "owner", owner, "year", year)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return counts, nil
}

// DeliveredWithEstimate retrieves the owner's delivered shipments that carry
// an estimated delivery date.
func (r *AnalyticsRepository) DeliveredWithEstimate(ctx context.Context, owner string) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE created_by = $1 AND status = $2 AND estimated_delivery IS NOT NULL
	`

	var shipments []*models.Shipment
	err := r.db.DB.SelectContext(ctx, &shipments, query, owner, models.ShipmentStatusDelivered)

	if err != nil {
		r.logger.Error("Failed to get delivered shipments", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return shipments, nil
}

// ProviderCounts groups shipments by provider name. The filter is on
// provider ownership, not shipment ownership, unlike every other aggregate.
func (r *AnalyticsRepository) ProviderCounts(ctx context.Context, owner string) ([]models.ProviderCount, error) {
	query := `
		SELECT p.name AS name, COUNT(s.id) AS count
		FROM shipments s
		JOIN shipping_providers p ON s.provider_id = p.id
		WHERE p.created_by = $1
		GROUP BY p.name
	`

	var counts []models.ProviderCount
	err := r.db.DB.SelectContext(ctx, &counts, query, owner)

	if err != nil {
		r.logger.Error("Failed to get provider counts", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return counts, nil
}

// DailyStatusCounts groups the owner's shipments by the calendar date of
// creation and by status.
func (r *AnalyticsRepository) DailyStatusCounts(ctx context.Context, owner string) ([]models.DailyStatusCount, error) {
	query := `
		SELECT DATE(created_at) AS day, status, COUNT(*) AS count
		FROM shipments
		WHERE created_by = $1
		GROUP BY day, status
		ORDER BY day
	`

	var counts []models.DailyStatusCount
	err := r.db.DB.SelectContext(ctx, &counts, query, owner)

	if err != nil {
		r.logger.Error("Failed to get daily status counts", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return counts, nil
}

// RouteCounts ranks the owner's origin/destination pairs by shipment count,
// bounded to the given limit.
func (r *AnalyticsRepository) RouteCounts(ctx context.Context, owner string, limit int) ([]models.RouteCount, error) {
	query := `
		SELECT origin, destination, COUNT(*) AS count
		FROM shipments
		WHERE created_by = $1
		GROUP BY origin, destination
		ORDER BY count DESC
		LIMIT $2
	`

	var counts []models.RouteCount
	err := r.db.DB.SelectContext(ctx, &counts, query, owner, limit)

	if err != nil {
		r.logger.Error("Failed to get route counts", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return counts, nil
}
