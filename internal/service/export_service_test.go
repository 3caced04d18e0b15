package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shipscope/shipment-tracker/internal/models"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
)

func TestExportCSVEmptyIsNotFound(t *testing.T) {
	svc := NewExportService(&fakeShipmentStore{}, noopLogger{})

	_, err := svc.ExportCSV(context.Background(), "usr-1")

	if !apperrors.IsNotFound(err) {
		t.Fatalf("error: want=not found got=%v", err)
	}
}

func TestExportCSVByProviderEmptyIsNotFound(t *testing.T) {
	svc := NewExportService(&fakeShipmentStore{}, noopLogger{})

	_, err := svc.ExportCSVByProvider(context.Background(), "prv-1", "usr-1")

	if !apperrors.IsNotFound(err) {
		t.Fatalf("error: want=not found got=%v", err)
	}
}

func TestExportCSVRendersHeaderAndRows(t *testing.T) {
	estimate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	shipment := models.NewShipment("Berlin", "Madrid", models.ShipmentStatusInTransit, "prv-1", "usr-1")
	shipment.EstimatedDelivery = &estimate
	shipment.WeightKg = 2.5
	shipment.Dimensions = "30x20x10"

	store := &fakeShipmentStore{shipments: []*models.Shipment{shipment}}
	svc := NewExportService(store, noopLogger{})

	data, err := svc.ExportCSV(context.Background(), "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()

	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: want=2 got=%d", len(records))
	}
	if len(records[0]) != 11 {
		t.Fatalf("header columns: want=11 got=%d", len(records[0]))
	}
	if records[0][0] != "Shipment ID" || records[0][10] != "Provider ID" {
		t.Fatalf("header: got=%v", records[0])
	}

	row := records[1]
	if row[0] != shipment.ShipmentID {
		t.Fatalf("shipment ID: want=%s got=%s", shipment.ShipmentID, row[0])
	}
	if row[2] != "" {
		t.Fatalf("external tracking ID: want=empty got=%s", row[2])
	}
	if row[5] != "in_transit" {
		t.Fatalf("status: want=in_transit got=%s", row[5])
	}
	if row[6] != "2026-06-15" {
		t.Fatalf("estimated delivery: want=2026-06-15 got=%s", row[6])
	}
	if row[7] != "2.5" {
		t.Fatalf("weight: want=2.5 got=%s", row[7])
	}
	if row[9] != "" {
		t.Fatalf("description: want=empty got=%s", row[9])
	}
	if row[10] != "prv-1" {
		t.Fatalf("provider ID: want=prv-1 got=%s", row[10])
	}
}

func TestExportCSVByProviderFiltersShipments(t *testing.T) {
	a := models.NewShipment("Berlin", "Madrid", "", "prv-1", "usr-1")
	a.WeightKg = 1
	a.Dimensions = "10x10x10"
	b := models.NewShipment("Paris", "Rome", "", "prv-2", "usr-1")
	b.WeightKg = 1
	b.Dimensions = "10x10x10"

	store := &fakeShipmentStore{shipments: []*models.Shipment{a, b}}
	svc := NewExportService(store, noopLogger{})

	data, err := svc.ExportCSVByProvider(context.Background(), "prv-1", "usr-1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()

	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: want=2 got=%d", len(records))
	}
	if records[1][0] != a.ShipmentID {
		t.Fatalf("shipment ID: want=%s got=%s", a.ShipmentID, records[1][0])
	}
}
