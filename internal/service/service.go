package service

import (
	"context"

	"github.com/shipscope/shipment-tracker/internal/models"
)

// UserStore is the subset of user persistence the services need
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProviderStore is the subset of provider persistence the services need.
// Exists is deliberately ownership-agnostic: shipment creation accepts any
// provider in the system, while the remaining lookups are owner-scoped.
type ProviderStore interface {
	Create(ctx context.Context, provider *models.ShippingProvider) error
	GetByName(ctx context.Context, name string) (*models.ShippingProvider, error)
	GetByIDAndOwner(ctx context.Context, id, owner string) (*models.ShippingProvider, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByOwner(ctx context.Context, owner string) ([]*models.ShippingProvider, error)
	Update(ctx context.Context, provider *models.ShippingProvider) error
	Delete(ctx context.Context, id string) error
}

// ShipmentStore is the subset of shipment persistence the services need
type ShipmentStore interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	CreateBatch(ctx context.Context, shipments []*models.Shipment) error
	ListByOwner(ctx context.Context, owner string) ([]*models.Shipment, error)
	GetByPublicID(ctx context.Context, shipmentID, owner string) (*models.Shipment, error)
	ListByProvider(ctx context.Context, providerID, owner string) ([]*models.Shipment, error)
	Search(ctx context.Context, owner string, filter models.ShipmentFilter) ([]*models.Shipment, error)
	Update(ctx context.Context, shipment *models.Shipment) error
	Delete(ctx context.Context, id string) error
	DeleteAllByOwner(ctx context.Context, owner string) (int64, error)
}

// AnalyticsStore provides the aggregate queries the analytics service
// shapes into responses.
type AnalyticsStore interface {
	CountByOwner(ctx context.Context, owner string) (int, error)
	CountByOwnerAndStatus(ctx context.Context, owner string, status models.ShipmentStatus) (int, error)
	MonthlyCounts(ctx context.Context, owner string, year int) ([]models.MonthCount, error)
	DeliveredWithEstimate(ctx context.Context, owner string) ([]*models.Shipment, error)
	ProviderCounts(ctx context.Context, owner string) ([]models.ProviderCount, error)
	DailyStatusCounts(ctx context.Context, owner string) ([]models.DailyStatusCount, error)
	RouteCounts(ctx context.Context, owner string, limit int) ([]models.RouteCount, error)
}

// EventPublisher publishes serialized lifecycle events. The Kafka producer
// satisfies it; a nil publisher disables publishing.
type EventPublisher interface {
	SendMessage(ctx context.Context, topic string, key string, value []byte) error
}
