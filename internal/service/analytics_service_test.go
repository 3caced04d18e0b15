package service

import (
	"context"
	"testing"
	"time"

	"github.com/shipscope/shipment-tracker/internal/models"
)

func deliveredShipment(createdAt time.Time, transitDays int) *models.Shipment {
	estimate := createdAt.AddDate(0, 0, transitDays)
	return &models.Shipment{
		ID:                models.GenerateID("shp"),
		Status:            models.ShipmentStatusDelivered,
		CreatedAt:         createdAt,
		EstimatedDelivery: &estimate,
	}
}

func TestStatusSummary(t *testing.T) {
	store := &fakeAnalyticsStore{
		total: 7,
		statusCounts: map[models.ShipmentStatus]int{
			models.ShipmentStatusDelivered: 3,
			models.ShipmentStatusPending:   2,
			models.ShipmentStatusInTransit: 1,
			models.ShipmentStatusDelayed:   1,
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	summary, err := svc.StatusSummary(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 7 {
		t.Fatalf("total: want=7 got=%d", summary.Total)
	}
	if summary.Delivered != 3 {
		t.Fatalf("delivered: want=3 got=%d", summary.Delivered)
	}
	if summary.Cancelled != 0 {
		t.Fatalf("cancelled: want=0 got=%d", summary.Cancelled)
	}
}

func TestMonthlyTrendSparse(t *testing.T) {
	store := &fakeAnalyticsStore{
		months: []models.MonthCount{{Month: 6, Count: 1}},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	trend, err := svc.MonthlyTrend(context.Background(), "usr-1", 2026)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.yearAsked != 2026 {
		t.Fatalf("year: want=2026 got=%d", store.yearAsked)
	}
	if len(trend) != 1 {
		t.Fatalf("trend entries: want=1 got=%d", len(trend))
	}
	if trend["6"] != 1 {
		t.Fatalf("June count: want=1 got=%d", trend["6"])
	}
}

func TestAverageDeliveryTimeEmpty(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{}, noopLogger{})

	avg, err := svc.AverageDeliveryTime(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0.0 {
		t.Fatalf("average: want=0.0 got=%v", avg)
	}
}

func TestAverageDeliveryTimeMean(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeAnalyticsStore{
		delivered: []*models.Shipment{
			deliveredShipment(created, 3),
			deliveredShipment(created, 5),
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	avg, err := svc.AverageDeliveryTime(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 4.0 {
		t.Fatalf("average: want=4.0 got=%v", avg)
	}
}

func TestAverageDeliveryTimeRounded(t *testing.T) {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeAnalyticsStore{
		delivered: []*models.Shipment{
			deliveredShipment(created, 1),
			deliveredShipment(created, 1),
			deliveredShipment(created, 2),
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	avg, err := svc.AverageDeliveryTime(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 1.33 {
		t.Fatalf("average: want=1.33 got=%v", avg)
	}
}

func TestAverageDeliveryTimeWholeDays(t *testing.T) {
	// 2 days and 20 hours counts as 2 whole days
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	estimate := created.Add(68 * time.Hour)
	store := &fakeAnalyticsStore{
		delivered: []*models.Shipment{
			{
				ID:                models.GenerateID("shp"),
				Status:            models.ShipmentStatusDelivered,
				CreatedAt:         created,
				EstimatedDelivery: &estimate,
			},
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	avg, err := svc.AverageDeliveryTime(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 2.0 {
		t.Fatalf("average: want=2.0 got=%v", avg)
	}
}

func TestProviderCounts(t *testing.T) {
	store := &fakeAnalyticsStore{
		providers: []models.ProviderCount{
			{Name: "dhl", Count: 4},
			{Name: "ups", Count: 2},
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	counts, err := svc.ProviderCounts(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["dhl"] != 4 || counts["ups"] != 2 {
		t.Fatalf("counts: want=map[dhl:4 ups:2] got=%v", counts)
	}
}

func TestStatusTrendMatrix(t *testing.T) {
	day1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	store := &fakeAnalyticsStore{
		daily: []models.DailyStatusCount{
			{Day: day1, Status: models.ShipmentStatusPending, Count: 2},
			{Day: day1, Status: models.ShipmentStatusDelivered, Count: 1},
			{Day: day2, Status: models.ShipmentStatusPending, Count: 1},
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	trend, err := svc.StatusTrend(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("days: want=2 got=%d", len(trend))
	}
	if trend["2026-05-01"]["pending"] != 2 {
		t.Fatalf("2026-05-01 pending: want=2 got=%d", trend["2026-05-01"]["pending"])
	}
	if trend["2026-05-01"]["delivered"] != 1 {
		t.Fatalf("2026-05-01 delivered: want=1 got=%d", trend["2026-05-01"]["delivered"])
	}
	if trend["2026-05-02"]["pending"] != 1 {
		t.Fatalf("2026-05-02 pending: want=1 got=%d", trend["2026-05-02"]["pending"])
	}
}

func TestTopRoutesDefaultLimit(t *testing.T) {
	store := &fakeAnalyticsStore{
		routes: []models.RouteCount{
			{Origin: "Berlin", Destination: "Madrid", Count: 9},
			{Origin: "Paris", Destination: "Rome", Count: 8},
			{Origin: "Oslo", Destination: "Lisbon", Count: 7},
			{Origin: "Vienna", Destination: "Dublin", Count: 6},
			{Origin: "Prague", Destination: "Athens", Count: 5},
			{Origin: "Warsaw", Destination: "Porto", Count: 4},
		},
	}
	svc := NewAnalyticsService(store, noopLogger{})

	routes, err := svc.TopRoutes(context.Background(), "usr-1", 0)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.routeLimit != DefaultTopRoutesLimit {
		t.Fatalf("limit: want=%d got=%d", DefaultTopRoutesLimit, store.routeLimit)
	}
	if len(routes) != 5 {
		t.Fatalf("routes: want=5 got=%d", len(routes))
	}
	if routes["Berlin → Madrid"] != 9 {
		t.Fatalf("top route count: want=9 got=%d", routes["Berlin → Madrid"])
	}
}
