package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/shipscope/shipment-tracker/internal/models"
	apperrors "github.com/shipscope/shipment-tracker/pkg/errors"
	"github.com/shipscope/shipment-tracker/pkg/logger"
)

// exportHeader is the fixed column order of shipment exports
var exportHeader = []string{
	"Shipment ID", "Tracking ID", "External Tracking ID", "Origin", "Destination", "Status",
	"Estimated Delivery", "Weight (kg)", "Dimensions", "Description", "Provider ID",
}

// ExportService renders a user's shipments as CSV
type ExportService struct {
	shipmentStore ShipmentStore
	logger        logger.Logger
}

// NewExportService creates a new ExportService
func NewExportService(shipmentStore ShipmentStore, logger logger.Logger) *ExportService {
	return &ExportService{
		shipmentStore: shipmentStore,
		logger:        logger,
	}
}

// ExportCSV renders all of the owner's shipments. An empty set is reported
// as not found rather than producing a header-only file.
func (s *ExportService) ExportCSV(ctx context.Context, owner string) ([]byte, error) {
	shipments, err := s.shipmentStore.ListByOwner(ctx, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to list shipments")
	}

	if len(shipments) == 0 {
		return nil, apperrors.NewNotFoundError("no shipments found to export")
	}

	return renderCSV(shipments)
}

// ExportCSVByProvider renders the owner's shipments for a single provider
func (s *ExportService) ExportCSVByProvider(ctx context.Context, providerID, owner string) ([]byte, error) {
	shipments, err := s.shipmentStore.ListByProvider(ctx, providerID, owner)

	if err != nil {
		return nil, apperrors.NewInternalError("failed to list shipments")
	}

	if len(shipments) == 0 {
		return nil, apperrors.NewNotFoundError("no shipments found for this provider")
	}

	return renderCSV(shipments)
}

func renderCSV(shipments []*models.Shipment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, apperrors.NewInternalError("failed to render export")
	}

	for _, s := range shipments {
		record := []string{
			s.ShipmentID,
			s.TrackingID,
			stringOrEmpty(s.ExternalTrackingID),
			s.Origin,
			s.Destination,
			string(s.Status),
			formatEstimate(s),
			strconv.FormatFloat(s.WeightKg, 'f', -1, 64),
			s.Dimensions,
			stringOrEmpty(s.Description),
			s.ProviderID,
		}

		if err := writer.Write(record); err != nil {
			return nil, apperrors.NewInternalError("failed to render export")
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, apperrors.NewInternalError("failed to render export")
	}

	return buf.Bytes(), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatEstimate(s *models.Shipment) string {
	if s.EstimatedDelivery == nil {
		return ""
	}
	return s.EstimatedDelivery.Format("2006-01-02")
}
