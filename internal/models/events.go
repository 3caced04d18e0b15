package models

import (
	"time"
)

// ShipmentEvent represents a lifecycle event published for a shipment
type ShipmentEvent struct {
	EventType  string      `json:"event_type"`
	EventID    string      `json:"event_id"`
	ShipmentID string      `json:"shipment_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// NewShipmentCreatedEvent creates a new shipment created event
func NewShipmentCreatedEvent(shipment *Shipment) *ShipmentEvent {
	return &ShipmentEvent{
		EventType:  "shipment_created",
		EventID:    GenerateID("evt"),
		ShipmentID: shipment.ShipmentID,
		OccurredAt: GetCurrentTime(),
		Data:       shipment,
	}
}

// NewShipmentStatusChangedEvent creates a new event for a shipment status change
func NewShipmentStatusChangedEvent(shipment *Shipment, oldStatus ShipmentStatus) *ShipmentEvent {
	return &ShipmentEvent{
		EventType:  "shipment_status_changed",
		EventID:    GenerateID("evt"),
		ShipmentID: shipment.ShipmentID,
		OccurredAt: GetCurrentTime(),
		Data: map[string]interface{}{
			"old_status":  oldStatus,
			"new_status":  shipment.Status,
			"shipment_id": shipment.ShipmentID,
			"tracking_id": shipment.TrackingID,
		},
	}
}

// NewShipmentDeletedEvent creates a new shipment deleted event
func NewShipmentDeletedEvent(shipment *Shipment) *ShipmentEvent {
	return &ShipmentEvent{
		EventType:  "shipment_deleted",
		EventID:    GenerateID("evt"),
		ShipmentID: shipment.ShipmentID,
		OccurredAt: GetCurrentTime(),
		Data: map[string]interface{}{
			"shipment_id": shipment.ShipmentID,
			"tracking_id": shipment.TrackingID,
		},
	}
}
