package models

import (
	"time"
)

// ShipmentSummary holds the per-status shipment counts for one owner.
// Each field is computed as an independent filtered count; the total is not
// structurally tied to the sum of the others.
type ShipmentSummary struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
	InTransit int `json:"in_transit"`
	Delayed   int `json:"delayed"`
	Cancelled int `json:"cancelled"`
}

// MonthCount is one row of the monthly creation trend
type MonthCount struct {
	Month int `db:"month"`
	Count int `db:"count"`
}

// ProviderCount is one row of the per-provider shipment counts
type ProviderCount struct {
	Name  string `db:"name"`
	Count int    `db:"count"`
}

// DailyStatusCount is one cell of the per-day, per-status count matrix
type DailyStatusCount struct {
	Day    time.Time      `db:"day"`
	Status ShipmentStatus `db:"status"`
	Count  int            `db:"count"`
}

// RouteCount is one row of the origin/destination volume ranking
type RouteCount struct {
	Origin      string `db:"origin"`
	Destination string `db:"destination"`
	Count       int    `db:"count"`
}

// ShipmentFilter holds the optional search predicates. Zero values impose
// no constraint; all supplied predicates are AND-combined.
type ShipmentFilter struct {
	Origin      string
	Destination string
	Status      ShipmentStatus
	ProviderID  string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Empty reports whether the filter imposes no constraint at all
func (f ShipmentFilter) Empty() bool {
	return f.Origin == "" && f.Destination == "" && f.Status == "" &&
		f.ProviderID == "" && f.DateFrom == nil && f.DateTo == nil
}
