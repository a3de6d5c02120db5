package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusDelivered = "delivered"
	SaleStatusCancelled = "cancelled"
)

// Métodos de pago aceptados en el punto de venta.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale es la cabecera de una venta del punto de venta. Cada ítem genera un
// movimiento de kardex tipo sale en la misma transacción.
type Sale struct {
	ID            string
	CustomerID    string // vacío en venta de mostrador sin cliente
	ZoneID        string // zona de entrega si es domicilio
	PaymentMethod string
	Subtotal      decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
	Status        string
	SoldBy        string // UserID del vendedor
	CreatedAt     time.Time
}

// SaleItem es una línea de venta. QuantityGrams = Units * PresentationGrams
// del producto al momento de la venta.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	Units         int64
	QuantityGrams int64
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
}
