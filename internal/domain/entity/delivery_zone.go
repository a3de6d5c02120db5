package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone representa una zona de entrega a domicilio con su tarifa.
type DeliveryZone struct {
	ID           string
	Name         string
	Fee          decimal.Decimal
	DeliveryDays string // días de reparto, ej. "lun,mie,vie"
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
