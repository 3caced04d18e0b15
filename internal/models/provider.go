package models

// ShippingProvider represents a carrier that shipments are booked against.
// The name is unique across the whole system, not per owner.
type ShippingProvider struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	DisplayName  *string `db:"display_name" json:"display_name,omitempty"`
	TrackingURL  *string `db:"tracking_url" json:"tracking_url,omitempty"`
	ContactEmail *string `db:"contact_email" json:"contact_email,omitempty"`
	Phone        *string `db:"phone" json:"phone,omitempty"`
	CreatedBy    string  `db:"created_by" json:"-"`
}

// NewShippingProvider creates a new provider owned by the given user
func NewShippingProvider(name string, displayName, trackingURL, contactEmail, phone *string, createdBy string) *ShippingProvider {
	return &ShippingProvider{
		ID:           GenerateID("prv"),
		Name:         name,
		DisplayName:  displayName,
		TrackingURL:  trackingURL,
		ContactEmail: contactEmail,
		Phone:        phone,
		CreatedBy:    createdBy,
	}
}
