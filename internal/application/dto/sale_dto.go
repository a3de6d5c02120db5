package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest una línea de la venta: unidades de la presentación
// del producto. Precio vacío = precio de lista.
type CreateSaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Units     int64            `json:"units"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string                  `json:"customer_id,omitempty"`
	ZoneID        string                  `json:"zone_id,omitempty"`
	PaymentMethod string                  `json:"payment_method"`
	Items         []CreateSaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Units         int64           `json:"units"`
	QuantityGrams int64           `json:"quantity_grams"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// SaleResponse cabecera + líneas de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	ZoneID        string             `json:"zone_id,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DeliveryFee   decimal.Decimal    `json:"delivery_fee"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	SoldBy        string             `json:"sold_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items"`
}
