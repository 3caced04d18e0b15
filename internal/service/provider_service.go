package service

import (
	"context"
	"errors"

	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/internal/repository"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// ProviderInput carries the full set of provider fields for registration
// and update. Updates are full replacements: omitted optional fields clear
// the stored value.
type ProviderInput struct {
	Name         string
	DisplayName  *string
	TrackingURL  *string
	ContactEmail *string
	Phone        *string
}

// ProviderService handles shipping provider operations
type ProviderService struct {
	providerStore ProviderStore
	logger        logger.Logger
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerStore ProviderStore, logger logger.Logger) *ProviderService {
	return &ProviderService{
		providerStore: providerStore,
		logger:        logger,
	}
}

// Register creates a new provider. The name must be unique across the whole
// system, regardless of owner.
func (s *ProviderService) Register(ctx context.Context, in ProviderInput, owner string) (*models.ShippingProvider, error) {
	_, err := s.providerStore.GetByName(ctx, in.Name)

	if err == nil {
		return nil, apperrors.NewConflictError("provider already exists")
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError("failed to check existing provider")
	}

	provider := models.NewShippingProvider(in.Name, in.DisplayName, in.TrackingURL, in.ContactEmail, in.Phone, owner)

	if err := s.providerStore.Create(ctx, provider); err != nil {
		s.logger.Error("Failed to create provider", "error", err, "name", in.Name)
		return nil, apperrors.NewInternalError("failed to create provider")
	}

	s.logger.Info("Provider registered", "providerID", provider.ID, "name", provider.Name)
	return provider, nil
}

// List returns all providers created by the owner
func (s *ProviderService) List(ctx context.Context, owner string) ([]*models.ShippingProvider, error) {
	providers, err := s.providerStore.ListByOwner(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers")
	}

	if providers == nil {
		providers = []*models.ShippingProvider{}
	}

	return providers, nil
}

// Update replaces all mutable fields of an owned provider
func (s *ProviderService) Update(ctx context.Context, providerID string, in ProviderInput, owner string) (*models.ShippingProvider, error) {
	provider, err := s.providerStore.GetByIDAndOwner(ctx, providerID, owner)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("provider not found")
		}
		return nil, apperrors.NewInternalError("failed to get provider")
	}

	provider.Name = in.Name
	provider.DisplayName = in.DisplayName
	provider.TrackingURL = in.TrackingURL
	provider.ContactEmail = in.ContactEmail
	provider.Phone = in.Phone

	if err := s.providerStore.Update(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("provider not found")
		}
		s.logger.Error("Failed to update provider", "error", err, "providerID", providerID)
		return nil, apperrors.NewInternalError("failed to update provider")
	}

	return provider, nil
}

// Delete removes an owned provider. Shipments referencing it are not
// checked: their provider reference is left dangling.
func (s *ProviderService) Delete(ctx context.Context, providerID, owner string) error {
	if _, err := s.providerStore.GetByIDAndOwner(ctx, providerID, owner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("provider not found")
		}
		return apperrors.NewInternalError("failed to get provider")
	}

	if err := s.providerStore.Delete(ctx, providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("provider not found")
		}
		s.logger.Error("Failed to delete provider", "error", err, "providerID", providerID)
		return apperrors.NewInternalError("failed to delete provider")
	}

	s.logger.Info("Provider deleted", "providerID", providerID)
	return nil
}
