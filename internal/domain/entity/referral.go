package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recompensa por referido.
const (
	ReferralRewardPending = "pending"
	ReferralRewardApplied = "applied"
)

// ReferralReward es el abono que gana un cliente cuando un referido suyo
// completa su primera compra. Se acredita en la misma transacción de la venta.
type ReferralReward struct {
	ID         string
	ReferrerID string // cliente que refirió
	ReferredID string // cliente referido que compró
	SaleID     string // primera venta del referido
	Amount     decimal.Decimal
	Status     string
	CreatedAt  time.Time
	AppliedAt  *time.Time
}
