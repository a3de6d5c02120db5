package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Quantity siempre positiva salvo adjustment, que llega firmada.
type RegisterMovementRequest struct {
	ProductID     string           `json:"product_id"`
	Type          string           `json:"movement_type"`
	QuantityGrams int64            `json:"quantity_grams"`
	Reason        string           `json:"reason,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	BatchNumber   string           `json:"batch_number,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
}

// MovementResponse una fila del kardex tal como se expone por la API.
type MovementResponse struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	Type           string           `json:"movement_type"`
	TypeLabel      string           `json:"movement_type_label"`
	QuantityGrams  int64            `json:"quantity_grams"`
	QuantityLabel  string           `json:"quantity_label"`
	StockBefore    int64            `json:"stock_before"`
	StockAfter     int64            `json:"stock_after"`
	ReferenceID    string           `json:"reference_id,omitempty"`
	ReferenceType  string           `json:"reference_type,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	BatchNumber    string           `json:"batch_number,omitempty"`
	PerformedBy    string           `json:"performed_by,omitempty"`
	PerformerEmail string           `json:"performer_email,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos (más reciente primero).
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// StockResponse proyección de stock actual de un producto.
type StockResponse struct {
	ProductID           string    `json:"product_id"`
	TotalGramsAvailable int64     `json:"total_grams_available"`
	TotalLabel          string    `json:"total_label"`
	LastUpdated         time.Time `json:"last_updated"`
}

// FormatGrams formatea gramos para presentación: "850 g" por debajo de 1000
// y "1.50 kg" (dos decimales) a partir de 1000. Los negativos conservan el signo.
func FormatGrams(grams int64) string {
	abs := grams
	sign := ""
	if abs < 0 {
		abs = -abs
		sign = "-"
	}
	if abs < 1000 {
		return fmt.Sprintf("%s%d g", sign, abs)
	}
	return fmt.Sprintf("%s%.2f kg", sign, float64(abs)/1000)
}
