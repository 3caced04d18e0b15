package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/internal/repository"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// CreateShipmentInput carries the caller-supplied shipment attributes.
// Identifiers, owner and creation time are system-generated.
type CreateShipmentInput struct {
	Origin             string
	Destination        string
	Status             models.ShipmentStatus
	ProviderID         string
	EstimatedDelivery  *time.Time
	WeightKg           float64
	Dimensions         string
	Description        *string
	ExternalTrackingID *string
}

// UpdateShipmentInput carries the patchable shipment fields. Nil fields are
// left untouched.
type UpdateShipmentInput struct {
	Status            *models.ShipmentStatus
	EstimatedDelivery *time.Time
}

// ShipmentService handles shipment lifecycle operations
type ShipmentService struct {
	shipmentStore ShipmentStore
	providerStore ProviderStore
	publisher     EventPublisher
	topic         string
	logger        logger.Logger
}

// NewShipmentService creates a new ShipmentService. A nil publisher
// disables event publishing.
func NewShipmentService(
	shipmentStore ShipmentStore,
	providerStore ProviderStore,
	publisher EventPublisher,
	topic string,
	logger logger.Logger,
) *ShipmentService {
	return &ShipmentService{
		shipmentStore: shipmentStore,
		providerStore: providerStore,
		publisher:     publisher,
		topic:         topic,
		logger:        logger,
	}
}

// Create validates the provider reference and persists a new shipment with
// fresh public and tracking identifiers.
func (s *ShipmentService) Create(ctx context.Context, in CreateShipmentInput, owner string) (*models.Shipment, error) {
	shipment, err := s.buildShipment(ctx, in, owner)

	if err != nil {
		return nil, err
	}

	if err := s.shipmentStore.Create(ctx, shipment); err != nil {
		s.logger.Error("Failed to save shipment", "error", err, "shipmentID", shipment.ID)
		return nil, apperrors.NewInternalError("failed to create shipment")
	}

	s.logger.Info("Shipment created", "shipmentID", shipment.ShipmentID, "owner", owner)
	s.publishEvent(ctx, models.NewShipmentCreatedEvent(shipment))

	return shipment, nil
}

// CreateBulk validates every item and persists the whole batch in a single
// transaction. The first unresolved provider reference aborts the batch
// before anything is written.
func (s *ShipmentService) CreateBulk(ctx context.Context, inputs []CreateShipmentInput, owner string) ([]*models.Shipment, error) {
	shipments := make([]*models.Shipment, 0, len(inputs))

	for _, in := range inputs {
		shipment, err := s.buildShipment(ctx, in, owner)

		if err != nil {
			return nil, err
		}

		shipments = append(shipments, shipment)
	}

	if err := s.shipmentStore.CreateBatch(ctx, shipments); err != nil {
		s.logger.Error("Failed to save shipment batch", "error", err, "count", len(shipments))
		return nil, apperrors.NewInternalError("failed to create shipments")
	}

	s.logger.Info("Shipment batch created", "count", len(shipments), "owner", owner)

	for _, shipment := range shipments {
		s.publishEvent(ctx, models.NewShipmentCreatedEvent(shipment))
	}

	return shipments, nil
}

func (s *ShipmentService) buildShipment(ctx context.Context, in CreateShipmentInput, owner string) (*models.Shipment, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid shipment status: %s", in.Status))
	}

	exists, err := s.providerStore.Exists(ctx, in.ProviderID)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to check shipping provider")
	}

	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("shipping provider not found: %s", in.ProviderID))
	}

	shipment := models.NewShipment(in.Origin, in.Destination, in.Status, in.ProviderID, owner)
	shipment.EstimatedDelivery = in.EstimatedDelivery
	shipment.WeightKg = in.WeightKg
	shipment.Dimensions = in.Dimensions
	shipment.Description = in.Description
	shipment.ExternalTrackingID = in.ExternalTrackingID

	return shipment, nil
}

// List returns all shipments created by the owner
func (s *ShipmentService) List(ctx context.Context, owner string) ([]*models.Shipment, error) {
	shipments, err := s.shipmentStore.ListByOwner(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to list shipments")
	}

	if shipments == nil {
		shipments = []*models.Shipment{}
	}

	return shipments, nil
}

// GetByPublicID returns the owned shipment with the given public shipment ID
func (s *ShipmentService) GetByPublicID(ctx context.Context, shipmentID, owner string) (*models.Shipment, error) {
	shipment, err := s.shipmentStore.GetByPublicID(ctx, shipmentID, owner)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("shipment not found")
		}
		return nil, apperrors.NewInternalError("failed to get shipment")
	}

	return shipment, nil
}

// ListByProvider returns the owner's shipments booked against the given
// provider. An empty result is reported as not found, so a missing provider
// relationship is distinguishable from an empty list elsewhere.
func (s *ShipmentService) ListByProvider(ctx context.Context, providerID, owner string) ([]*models.Shipment, error) {
	shipments, err := s.shipmentStore.ListByProvider(ctx, providerID, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to list shipments")
	}

	if len(shipments) == 0 {
		return nil, apperrors.NewNotFoundError("no shipments found for this provider")
	}

	return shipments, nil
}

// Search returns the owner's shipments matching all supplied filters. An
// empty result is a valid outcome here.
func (s *ShipmentService) Search(ctx context.Context, owner string, filter models.ShipmentFilter) ([]*models.Shipment, error) {
	shipments, err := s.shipmentStore.Search(ctx, owner, filter)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to search shipments")
	}

	if shipments == nil {
		shipments = []*models.Shipment{}
	}

	return shipments, nil
}

// UpdateStatusOrDelivery patches the status and/or estimated delivery date
// of an owned shipment. Untouched fields keep their value.
func (s *ShipmentService) UpdateStatusOrDelivery(ctx context.Context, shipmentID, owner string, in UpdateShipmentInput) (*models.Shipment, error) {
	shipment, err := s.shipmentStore.GetByPublicID(ctx, shipmentID, owner)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("shipment not found")
		}
		return nil, apperrors.NewInternalError("failed to get shipment")
	}

	oldStatus := shipment.Status

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewInvalidInputError(fmt.Sprintf("invalid shipment status: %s", *in.Status))
		}
		shipment.Status = *in.Status
	}
	if in.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = in.EstimatedDelivery
	}

	if err := s.shipmentStore.Update(ctx, shipment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("shipment not found")
		}
		s.logger.Error("Failed to update shipment", "error", err, "shipmentID", shipmentID)
		return nil, apperrors.NewInternalError("failed to update shipment")
	}

	if shipment.Status != oldStatus {
		s.publishEvent(ctx, models.NewShipmentStatusChangedEvent(shipment, oldStatus))
	}

	return shipment, nil
}

// Delete removes an owned shipment and its status history
func (s *ShipmentService) Delete(ctx context.Context, shipmentID, owner string) error {
	shipment, err := s.shipmentStore.GetByPublicID(ctx, shipmentID, owner)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("shipment not found")
		}
		return apperrors.NewInternalError("failed to get shipment")
	}

	if err := s.shipmentStore.Delete(ctx, shipment.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("shipment not found")
		}
		s.logger.Error("Failed to delete shipment", "error", err, "shipmentID", shipmentID)
		return apperrors.NewInternalError("failed to delete shipment")
	}

	s.logger.Info("Shipment deleted", "shipmentID", shipmentID, "owner", owner)
	s.publishEvent(ctx, models.NewShipmentDeletedEvent(shipment))

	return nil
}

// DeleteAll removes every shipment owned by the caller
func (s *ShipmentService) DeleteAll(ctx context.Context, owner string) (int64, error) {
	deleted, err := s.shipmentStore.DeleteAllByOwner(ctx, owner)

	if err != nil {
		s.logger.Error("Failed to delete shipments", "error", err, "owner", owner)
		return 0, apperrors.NewInternalError("failed to delete shipments")
	}

	s.logger.Info("All shipments deleted", "count", deleted, "owner", owner)
	return deleted, nil
}

// publishEvent publishes a lifecycle event on a best-effort basis. Failures
// are logged and never surfaced to the caller.
func (s *ShipmentService) publishEvent(ctx context.Context, event *models.ShipmentEvent) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(event)

	if err != nil {
		s.logger.Error("Failed to marshal shipment event", "error", err, "eventType", event.EventType)
		return
	}

	if err := s.publisher.SendMessage(ctx, s.topic, event.ShipmentID, payload); err != nil {
		s.logger.Warn("Failed to publish shipment event",
			"error", err,
			"eventType", event.EventType,
			"shipmentID", event.ShipmentID)
	}
}
