package component

import (
	"time"

	"github.com/capacitymarket/capacity-checker/internal/search"
)

// Component represents a single capacity market unit component: a generating
// or demand-side asset registered against a CMU for an auction year.
type Component struct {
	ID                string         `json:"id"`
	ComponentID       string         `json:"component_id"`
	CMUID             string         `json:"cmu_id"`
	Location          string         `json:"location,omitempty"`
	County            string         `json:"county,omitempty"`
	OutwardCode       string         `json:"outward_code,omitempty"`
	Description       string         `json:"description,omitempty"`
	Technology        string         `json:"technology,omitempty"`
	CompanyName       string         `json:"company_name,omitempty"`
	AuctionName       string         `json:"auction_name,omitempty"`
	DeliveryYear      string         `json:"delivery_year,omitempty"`
	Status            string         `json:"status,omitempty"`
	Type              string         `json:"type,omitempty"`
	DeratedCapacityMW *float64       `json:"derated_capacity_mw,omitempty"`
	AdditionalData    map[string]any `json:"additional_data,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// FieldValue satisfies search.Record so filters can be evaluated against a
// component without touching the database.
func (c *Component) FieldValue(f search.Field) string {
	switch f {
	case search.FieldLocation:
		return c.Location
	case search.FieldCounty:
		return c.County
	case search.FieldOutwardCode:
		return c.OutwardCode
	default:
		return ""
	}
}

// Page bounds a list or search query.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPageSize caps result sets when the caller does not specify a limit.
const DefaultPageSize = 100

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 || p.Limit > 1000 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
