package models

import (
	"time"
)

// StatusHistory records a status transition event for a shipment. The table
// is an append-only audit trail deleted together with its shipment.
//
// No current operation appends to it: status updates write only the
// shipment row.
type StatusHistory struct {
	ID         string         `db:"id" json:"id"`
	ShipmentID string         `db:"shipment_id" json:"shipment_id"`
	Status     ShipmentStatus `db:"status" json:"status"`
	RecordedAt time.Time      `db:"recorded_at" json:"recorded_at"`
}
