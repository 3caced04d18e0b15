package service

import (
	"context"
	"strings"

	"github.com/shipscope/shipment-tracker/internal/models"
	"github.com/shipscope/shipment-tracker/internal/repository"
)

// noopLogger satisfies logger.Logger for tests
type noopLogger struct{}

func (noopLogger) Debug(msg string, keyvals ...interface{}) {}
func (noopLogger) Info(msg string, keyvals ...interface{})  {}
func (noopLogger) Warn(msg string, keyvals ...interface{})  {}
func (noopLogger) Error(msg string, keyvals ...interface{}) {}

type fakeUserStore struct {
	users []*models.User
	err   error
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeProviderStore struct {
	providers []*models.ShippingProvider
}

func (f *fakeProviderStore) Create(ctx context.Context, provider *models.ShippingProvider) error {
	f.providers = append(f.providers, provider)
	return nil
}

func (f *fakeProviderStore) GetByName(ctx context.Context, name string) (*models.ShippingProvider, error) {
	for _, p := range f.providers {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProviderStore) GetByIDAndOwner(ctx context.Context, id, owner string) (*models.ShippingProvider, error) {
	for _, p := range f.providers {
		if p.ID == id && p.CreatedBy == owner {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProviderStore) Exists(ctx context.Context, id string) (bool, error) {
	for _, p := range f.providers {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProviderStore) ListByOwner(ctx context.Context, owner string) ([]*models.ShippingProvider, error) {
	var out []*models.ShippingProvider
	for _, p := range f.providers {
		if p.CreatedBy == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProviderStore) Update(ctx context.Context, provider *models.ShippingProvider) error {
	for i, p := range f.providers {
		if p.ID == provider.ID {
			f.providers[i] = provider
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProviderStore) Delete(ctx context.Context, id string) error {
	for i, p := range f.providers {
		if p.ID == id {
			f.providers = append(f.providers[:i], f.providers[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeShipmentStore struct {
	shipments []*models.Shipment
	batchErr  error
}

func (f *fakeShipmentStore) Create(ctx context.Context, shipment *models.Shipment) error {
	f.shipments = append(f.shipments, shipment)
	return nil
}

func (f *fakeShipmentStore) CreateBatch(ctx context.Context, shipments []*models.Shipment) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.shipments = append(f.shipments, shipments...)
	return nil
}

func (f *fakeShipmentStore) ListByOwner(ctx context.Context, owner string) ([]*models.Shipment, error) {
	var out []*models.Shipment
	for _, s := range f.shipments {
		if s.CreatedBy == owner {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShipmentStore) GetByPublicID(ctx context.Context, shipmentID, owner string) (*models.Shipment, error) {
	for _, s := range f.shipments {
		if s.ShipmentID == shipmentID && s.CreatedBy == owner {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeShipmentStore) ListByProvider(ctx context.Context, providerID, owner string) ([]*models.Shipment, error) {
	var out []*models.Shipment
	for _, s := range f.shipments {
		if s.ProviderID == providerID && s.CreatedBy == owner {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShipmentStore) Search(ctx context.Context, owner string, filter models.ShipmentFilter) ([]*models.Shipment, error) {
	var out []*models.Shipment
	for _, s := range f.shipments {
		if s.CreatedBy != owner {
			continue
		}
		if filter.Origin != "" && !strings.Contains(strings.ToLower(s.Origin), strings.ToLower(filter.Origin)) {
			continue
		}
		if filter.Destination != "" && !strings.Contains(strings.ToLower(s.Destination), strings.ToLower(filter.Destination)) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.ProviderID != "" && s.ProviderID != filter.ProviderID {
			continue
		}
		if filter.DateFrom != nil && s.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.CreatedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShipmentStore) Update(ctx context.Context, shipment *models.Shipment) error {
	for i, s := range f.shipments {
		if s.ID == shipment.ID {
			f.shipments[i] = shipment
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeShipmentStore) Delete(ctx context.Context, id string) error {
	for i, s := range f.shipments {
		if s.ID == id {
			f.shipments = append(f.shipments[:i], f.shipments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeShipmentStore) DeleteAllByOwner(ctx context.Context, owner string) (int64, error) {
	var kept []*models.Shipment
	var deleted int64
	for _, s := range f.shipments {
		if s.CreatedBy == owner {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	f.shipments = kept
	return deleted, nil
}

type fakeAnalyticsStore struct {
	total        int
	statusCounts map[models.ShipmentStatus]int
	months       []models.MonthCount
	delivered    []*models.Shipment
	providers    []models.ProviderCount
	daily        []models.DailyStatusCount
	routes       []models.RouteCount

	routeLimit int
	yearAsked  int
}

func (f *fakeAnalyticsStore) CountByOwner(ctx context.Context, owner string) (int, error) {
	return f.total, nil
}

func (f *fakeAnalyticsStore) CountByOwnerAndStatus(ctx context.Context, owner string, status models.ShipmentStatus) (int, error) {
	return f.statusCounts[status], nil
}

func (f *fakeAnalyticsStore) MonthlyCounts(ctx context.Context, owner string, year int) ([]models.MonthCount, error) {
	f.yearAsked = year
	return f.months, nil
}

func (f *fakeAnalyticsStore) DeliveredWithEstimate(ctx context.Context, owner string) ([]*models.Shipment, error) {
	return f.delivered, nil
}

func (f *fakeAnalyticsStore) ProviderCounts(ctx context.Context, owner string) ([]models.ProviderCount, error) {
	return f.providers, nil
}

func (f *fakeAnalyticsStore) DailyStatusCounts(ctx context.Context, owner string) ([]models.DailyStatusCount, error) {
	return f.daily, nil
}

func (f *fakeAnalyticsStore) RouteCounts(ctx context.Context, owner string, limit int) ([]models.RouteCount, error) {
	f.routeLimit = limit
	if limit < len(f.routes) {
		return f.routes[:limit], nil
	}
	return f.routes, nil
}

type publishedMessage struct {
	topic string
	key   string
	value []byte
}

type fakePublisher struct {
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) SendMessage(ctx context.Context, topic string, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, publishedMessage{topic: topic, key: key, value: value})
	return nil
}
