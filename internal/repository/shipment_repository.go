package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shipscope/shipment-tracker/internal/database"
	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

const shipmentColumns = `id, shipment_id, tracking_id, external_tracking_id, origin, destination,
		status, created_at, estimated_delivery, weight_kg, dimensions, description, provider_id, created_by`

// ShipmentRepository handles database operations for shipments
type ShipmentRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewShipmentRepository creates a new ShipmentRepository
func NewShipmentRepository(db *database.Database, logger logger.Logger) *ShipmentRepository {
	return &ShipmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new shipment into the database
func (r *ShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.DB.ExecContext(ctx, query, shipmentArgs(shipment)...)

	if err != nil {
		r.logger.Error("Failed to create shipment", "error", err, "shipmentID", shipment.ID)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return nil
}

// CreateBatch inserts all given shipments in a single transaction. Either
// every row is persisted or none are.
func (r *ShipmentRepository) CreateBatch(ctx context.Context, shipments []*models.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}

	tx, err := r.db.DB.BeginTxx(ctx, nil)

	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	// Rollback transaction if any error occurs
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, shipment := range shipments {
		if _, err = tx.ExecContext(ctx, query, shipmentArgs(shipment)...); err != nil {
			r.logger.Error("Failed to create shipment in batch", "error", err, "shipmentID", shipment.ID)
			return fmt.Errorf("%w: %v", ErrDatabase, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return nil
}

func shipmentArgs(s *models.Shipment) []interface{} {
	return []interface{}{
		s.ID,
		s.ShipmentID,
		s.TrackingID,
		s.ExternalTrackingID,
		s.Origin,
		s.Destination,
		s.Status,
		s.CreatedAt,
		s.EstimatedDelivery,
		s.WeightKg,
		s.Dimensions,
		s.Description,
		s.ProviderID,
		s.CreatedBy,
	}
}

// ListByOwner retrieves all shipments created by the given owner
func (r *ShipmentRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE created_by = $1
		ORDER BY created_at DESC
	`

	var shipments []*models.Shipment
	err := r.db.DB.SelectContext(ctx, &shipments, query, owner)

	if err != nil {
		r.logger.Error("Failed to list shipments", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return shipments, nil
}

// GetByPublicID retrieves an owned shipment by its public shipment ID
func (r *ShipmentRepository) GetByPublicID(ctx context.Context, shipmentID, owner string) (*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE shipment_id = $1 AND created_by = $2
	`

	var shipment models.Shipment
	err := r.db.DB.GetContext(ctx, &shipment, query, shipmentID, owner)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get shipment", "error", err, "shipmentID", shipmentID)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &shipment, nil
}

// ListByProvider retrieves all owned shipments booked against a provider
func (r *ShipmentRepository) ListByProvider(ctx context.Context, providerID, owner string) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE provider_id = $1 AND created_by = $2
		ORDER BY created_at DESC
	`

	var shipments []*models.Shipment
	err := r.db.DB.SelectContext(ctx, &shipments, query, providerID, owner)

	if err != nil {
		r.logger.Error("Failed to list shipments by provider", "error", err, "providerID", providerID)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return shipments, nil
}

// Search retrieves owned shipments matching all supplied filter predicates.
// Origin and destination are case-insensitive substring matches; the date
// range applies to created_at.
func (r *ShipmentRepository) Search(ctx context.Context, owner string, filter models.ShipmentFilter) ([]*models.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE created_by = $1`
	args := []interface{}{owner}

	if filter.Origin != "" {
		args = append(args, "%"+filter.Origin+"%")
		query += fmt.Sprintf(" AND origin ILIKE $%d", len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += fmt.Sprintf(" AND destination ILIKE $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ProviderID != "" {
		args = append(args, filter.ProviderID)
		query += fmt.Sprintf(" AND provider_id = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	var shipments []*models.Shipment
	err := r.db.DB.SelectContext(ctx, &shipments, query, args...)

	if err != nil {
		r.logger.Error("Failed to search shipments", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return shipments, nil
}

// Update updates the mutable fields of an existing shipment
func (r *ShipmentRepository) Update(ctx context.Context, shipment *models.Shipment) error {
	query := `
		UPDATE shipments
		SET status = $1, estimated_delivery = $2
		WHERE id = $3
	`

	result, err := r.db.DB.ExecContext(ctx, query, shipment.Status, shipment.EstimatedDelivery, shipment.ID)

	if err != nil {
		r.logger.Error("Failed to update shipment", "error", err, "shipmentID", shipment.ID)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a shipment row by internal ID. Status history rows go with
// it via the cascade on the foreign key.
func (r *ShipmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM shipments WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)

	if err != nil {
		r.logger.Error("Failed to delete shipment", "error", err, "shipmentID", id)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAllByOwner removes every shipment created by the given owner and
// returns the number of deleted rows.
func (r *ShipmentRepository) DeleteAllByOwner(ctx context.Context, owner string) (int64, error) {
	query := `DELETE FROM shipments WHERE created_by = $1`

	result, err := r.db.DB.ExecContext(ctx, query, owner)

	if err != nil {
		r.logger.Error("Failed to delete shipments", "error", err, "owner", owner)
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	rows, err := result.RowsAffected()

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return rows, nil
}
