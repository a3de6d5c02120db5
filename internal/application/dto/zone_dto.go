package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateZoneRequest entrada para crear una zona de entrega.
type CreateZoneRequest struct {
	Name         string          `json:"name"`
	Fee          decimal.Decimal `json:"fee"`
	DeliveryDays string          `json:"delivery_days,omitempty"`
}

// UpdateZoneRequest campos modificables de una zona.
type UpdateZoneRequest struct {
	Name         *string          `json:"name,omitempty"`
	Fee          *decimal.Decimal `json:"fee,omitempty"`
	DeliveryDays *string          `json:"delivery_days,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ZoneResponse salida de una zona de entrega.
type ZoneResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Fee          decimal.Decimal `json:"fee"`
	DeliveryDays string          `json:"delivery_days,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
