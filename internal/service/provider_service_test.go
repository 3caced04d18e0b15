package service

import (
	"context"
	"testing"

	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
)

func strPtr(s string) *string {
	return &s
}

func TestRegisterProvider(t *testing.T) {
	providers := &fakeProviderStore{}
	svc := NewProviderService(providers, noopLogger{})

	provider, err := svc.Register(context.Background(), ProviderInput{
		Name:        "dhl",
		DisplayName: strPtr("DHL Express"),
	}, "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.ID == "" {
		t.Fatalf("provider ID not generated")
	}
	if provider.CreatedBy != "usr-1" {
		t.Fatalf("owner: want=usr-1 got=%s", provider.CreatedBy)
	}
	if len(providers.providers) != 1 {
		t.Fatalf("persisted providers: want=1 got=%d", len(providers.providers))
	}
}

func TestRegisterDuplicateNameAcrossOwners(t *testing.T) {
	providers := &fakeProviderStore{}
	svc := NewProviderService(providers, noopLogger{})

	if _, err := svc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-1"); err != nil {
		t.Fatalf("first register: unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-2")

	if !apperrors.IsConflict(err) {
		t.Fatalf("error: want=conflict got=%v", err)
	}
	if len(providers.providers) != 1 {
		t.Fatalf("persisted providers: want=1 got=%d", len(providers.providers))
	}
}

func TestListProvidersEmpty(t *testing.T) {
	svc := NewProviderService(&fakeProviderStore{}, noopLogger{})

	listed, err := svc.List(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if listed == nil {
		t.Fatalf("result: want=empty slice got=nil")
	}
	if len(listed) != 0 {
		t.Fatalf("listed providers: want=0 got=%d", len(listed))
	}
}

func TestUpdateProviderReplacesAllFields(t *testing.T) {
	providers := &fakeProviderStore{}
	svc := NewProviderService(providers, noopLogger{})

	created, err := svc.Register(context.Background(), ProviderInput{
		Name:         "dhl",
		DisplayName:  strPtr("DHL Express"),
		ContactEmail: strPtr("ops@dhl.example"),
	}, "usr-1")
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	// Omitted optional fields clear the stored values
	updated, err := svc.Update(context.Background(), created.ID, ProviderInput{
		Name:  "dhl-express",
		Phone: strPtr("+49 228 0"),
	}, "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "dhl-express" {
		t.Fatalf("name: want=dhl-express got=%s", updated.Name)
	}
	if updated.DisplayName != nil {
		t.Fatalf("display name not cleared: got=%v", *updated.DisplayName)
	}
	if updated.ContactEmail != nil {
		t.Fatalf("contact email not cleared: got=%v", *updated.ContactEmail)
	}
	if updated.Phone == nil || *updated.Phone != "+49 228 0" {
		t.Fatalf("phone: want=+49 228 0 got=%v", updated.Phone)
	}
}

func TestUpdateProviderNotOwned(t *testing.T) {
	providers := &fakeProviderStore{}
	svc := NewProviderService(providers, noopLogger{})

	created, err := svc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-2")
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, ProviderInput{Name: "ups"}, "usr-1")

	if !apperrors.IsNotFound(err) {
		t.Fatalf("error: want=not found got=%v", err)
	}
}

func TestDeleteProviderNotOwned(t *testing.T) {
	providers := &fakeProviderStore{}
	svc := NewProviderService(providers, noopLogger{})

	created, err := svc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-2")
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	err = svc.Delete(context.Background(), created.ID, "usr-1")

	if !apperrors.IsNotFound(err) {
		t.Fatalf("error: want=not found got=%v", err)
	}
	if len(providers.providers) != 1 {
		t.Fatalf("persisted providers: want=1 got=%d", len(providers.providers))
	}
}

// Provider deletion carries no referential guard: shipments referencing the
// provider keep their stored provider ID.
func TestDeleteProviderLeavesShipmentsDangling(t *testing.T) {
	providers := &fakeProviderStore{}
	providerSvc := NewProviderService(providers, noopLogger{})
	shipments := &fakeShipmentStore{}
	shipmentSvc := newTestShipmentService(shipments, providers, nil)

	provider, err := providerSvc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-1")
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	shipment, err := shipmentSvc.Create(context.Background(), CreateShipmentInput{
		Origin:      "Berlin",
		Destination: "Madrid",
		ProviderID:  provider.ID,
		WeightKg:    1,
		Dimensions:  "10x10x10",
	}, "usr-1")
	if err != nil {
		t.Fatalf("create shipment: unexpected error: %v", err)
	}

	if err := providerSvc.Delete(context.Background(), provider.ID, "usr-1"); err != nil {
		t.Fatalf("delete provider: unexpected error: %v", err)
	}

	remaining, err := shipmentSvc.GetByPublicID(context.Background(), shipment.ShipmentID, "usr-1")
	if err != nil {
		t.Fatalf("get shipment: unexpected error: %v", err)
	}
	if remaining.ProviderID != provider.ID {
		t.Fatalf("provider reference: want=%s got=%s", provider.ID, remaining.ProviderID)
	}
}

func TestRegisteredProviderVisibleAcrossOwners(t *testing.T) {
	providers := &fakeProviderStore{}
	providerSvc := NewProviderService(providers, noopLogger{})
	shipments := &fakeShipmentStore{}
	shipmentSvc := newTestShipmentService(shipments, providers, nil)

	// Existence checks are global: any owner can book against the provider
	provider, err := providerSvc.Register(context.Background(), ProviderInput{Name: "dhl"}, "usr-1")
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	created, err := shipmentSvc.Create(context.Background(), CreateShipmentInput{
		Origin:      "Paris",
		Destination: "Rome",
		ProviderID:  provider.ID,
		WeightKg:    1,
		Dimensions:  "10x10x10",
	}, "usr-2")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatedBy != "usr-2" {
		t.Fatalf("owner: want=usr-2 got=%s", created.CreatedBy)
	}
}
