package models

import (
	"time"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending    ShipmentStatus = "pending"
	ShipmentStatusDispatched ShipmentStatus = "dispatched"
	ShipmentStatusInTransit  ShipmentStatus = "in_transit"
	ShipmentStatusDelayed    ShipmentStatus = "delayed"
	ShipmentStatusDelivered  ShipmentStatus = "delivered"
	ShipmentStatusCancelled  ShipmentStatus = "cancelled"
)

// Valid reports whether s is one of the known status values
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusDispatched, ShipmentStatusInTransit,
		ShipmentStatusDelayed, ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

// Shipment represents a shipment in our system. It carries three distinct
// identifiers: the internal primary key, the public shipment ID used as the
// external lookup key, and the carrier-facing tracking ID. The optional
// external tracking ID is the provider's own code, supplied by the user.
type Shipment struct {
	ID                 string         `db:"id" json:"id"`
	ShipmentID         string         `db:"shipment_id" json:"shipment_id"`
	TrackingID         string         `db:"tracking_id" json:"tracking_id"`
	ExternalTrackingID *string        `db:"external_tracking_id" json:"external_tracking_id,omitempty"`
	Origin             string         `db:"origin" json:"origin"`
	Destination        string         `db:"destination" json:"destination"`
	Status             ShipmentStatus `db:"status" json:"status"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	EstimatedDelivery  *time.Time     `db:"estimated_delivery" json:"estimated_delivery,omitempty"`
	WeightKg           float64        `db:"weight_kg" json:"weight_kg"`
	Dimensions         string         `db:"dimensions" json:"dimensions"`
	Description        *string        `db:"description" json:"description,omitempty"`
	ProviderID         string         `db:"provider_id" json:"-"`
	CreatedBy          string         `db:"created_by" json:"-"`
}

// NewShipment creates a new shipment with fresh identifiers, owned by the
// given user. Optional attributes are filled in by the caller.
func NewShipment(origin, destination string, status ShipmentStatus, providerID, createdBy string) *Shipment {
	if status == "" {
		status = ShipmentStatusPending
	}

	return &Shipment{
		ID:          GenerateID("shp"),
		ShipmentID:  GenerateToken(),
		TrackingID:  GenerateToken(),
		Origin:      origin,
		Destination: destination,
		Status:      status,
		ProviderID:  providerID,
		CreatedBy:   createdBy,
		CreatedAt:   GetCurrentTime(),
	}
}
