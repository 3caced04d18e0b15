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

// ProviderRepository handles database operations for shipping providers
type ProviderRepository struct {
	db     *database.Database
	logger logger.Logger
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db *database.Database, logger logger.Logger) *ProviderRepository {
	return &ProviderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new shipping provider into the database
func (r *ProviderRepository) Create(ctx context.Context, provider *models.ShippingProvider) error {
	query := `
		INSERT INTO shipping_providers (id, name, display_name, tracking_url, contact_email, phone, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.DB.ExecContext(
		ctx,
		query,
		provider.ID,
		provider.Name,
		provider.DisplayName,
		provider.TrackingURL,
		provider.ContactEmail,
		provider.Phone,
		provider.CreatedBy,
	)

	if err != nil {
		r.logger.Error("Failed to create provider", "error", err, "providerID", provider.ID)
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return nil
}

// GetByName retrieves a provider by name, regardless of owner
func (r *ProviderRepository) GetByName(ctx context.Context, name string) (*models.ShippingProvider, error) {
	query := `
		SELECT id, name, display_name, tracking_url, contact_email, phone, created_by
		FROM shipping_providers
		WHERE name = $1
	`

	var provider models.ShippingProvider
	err := r.db.DB.GetContext(ctx, &provider, query, name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get provider by name", "error", err, "name", name)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &provider, nil
}

// GetByIDAndOwner retrieves a provider by ID, restricted to its owner
func (r *ProviderRepository) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.ShippingProvider, error) {
	query := `
		SELECT id, name, display_name, tracking_url, contact_email, phone, created_by
		FROM shipping_providers
		WHERE id = $1 AND created_by = $2
	`

	var provider models.ShippingProvider
	err := r.db.DB.GetContext(ctx, &provider, query, id, owner)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("Failed to get provider", "error", err, "providerID", id)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return &provider, nil
}

// Exists checks whether a provider with the given ID exists, independent of
// who owns it.
func (r *ProviderRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM shipping_providers WHERE id = $1)`

	var exists bool
	err := r.db.DB.GetContext(ctx, &exists, query, id)

	if err != nil {
		r.logger.Error("Failed to check provider existence", "error", err, "providerID", id)
		return false, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return exists, nil
}

// ListByOwner retrieves all providers created by the given owner
func (r *ProviderRepository) ListByOwner(ctx context.Context, owner string) ([]*models.ShippingProvider, error) {
	query := `
		SELECT id, name, display_name, tracking_url, contact_email, phone, created_by
		FROM shipping_providers
		WHERE created_by = $1
	`

	var providers []*models.ShippingProvider
	err := r.db.DB.SelectContext(ctx, &providers, query, owner)

	if err != nil {
		r.logger.Error("Failed to list providers", "error", err, "owner", owner)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return providers, nil
}

// Update replaces all mutable fields of an existing provider
func (r *ProviderRepository) Update(ctx context.Context, provider *models.ShippingProvider) error {
	query := `
		UPDATE shipping_providers
		SET name = $1, display_name = $2, tracking_url = $3, contact_email = $4, phone = $5
		WHERE id = $6
	`

	result, err := r.db.DB.ExecContext(
		ctx,
		query,
		provider.Name,
		provider.DisplayName,
		provider.TrackingURL,
		provider.ContactEmail,
		provider.Phone,
		provider.ID,
	)

	if err != nil {
		r.logger.Error("Failed to update provider", "error", err, "providerID", provider.ID)
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

// Delete removes a provider row. Shipments referencing it are left alone.
func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM shipping_providers WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)

	if err != nil {
		r.logger.Error("Failed to delete provider", "error", err, "providerID", id)
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
