package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType es el tipo cerrado de movimiento del kardex.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementSale        MovementType = "sale"         // venta (salida, generada por el sistema)
	MovementRestock     MovementType = "restock"      // compra a proveedor (entrada)
	MovementAdjustment  MovementType = "adjustment"   // ajuste manual (firmado por quien lo registra)
	MovementLoss        MovementType = "loss"         // merma o pérdida (salida, motivo obligatorio)
	MovementReturn      MovementType = "return"       // devolución de cliente (entrada, motivo obligatorio)
	MovementProduction  MovementType = "production"   // tostión propia (entrada)
	MovementTransferOut MovementType = "transfer_out" // traslado saliente (salida)
	MovementTransferIn  MovementType = "transfer_in"  // traslado entrante (entrada)
)

// Valid reporta si el tipo pertenece a la enumeración cerrada.
func (t MovementType) Valid() bool {
	switch t {
	case MovementSale, MovementRestock, MovementAdjustment, MovementLoss,
		MovementReturn, MovementProduction, MovementTransferOut, MovementTransferIn:
		return true
	}
	return false
}

// IsEntry reporta si el tipo suma stock. adjustment no se clasifica aquí:
// su signo lo decide quien registra el movimiento.
func (t MovementType) IsEntry() bool {
	switch t {
	case MovementRestock, MovementReturn, MovementProduction, MovementTransferIn:
		return true
	}
	return false
}

// IsExit reporta si el tipo resta stock.
func (t MovementType) IsExit() bool {
	switch t {
	case MovementSale, MovementLoss, MovementTransferOut:
		return true
	}
	return false
}

// RequiresReason reporta si el motivo es obligatorio (mermas y devoluciones).
func (t MovementType) RequiresReason() bool {
	return t == MovementLoss || t == MovementReturn
}

// Label devuelve la etiqueta en español para reportes y exportaciones.
func (t MovementType) Label() string {
	switch t {
	case MovementSale:
		return "Venta"
	case MovementRestock:
		return "Compra"
	case MovementAdjustment:
		return "Ajuste"
	case MovementLoss:
		return "Merma"
	case MovementReturn:
		return "Devolución"
	case MovementProduction:
		return "Producción"
	case MovementTransferOut:
		return "Traslado salida"
	case MovementTransferIn:
		return "Traslado entrada"
	}
	return string(t)
}

// InventoryMovement es una fila inmutable del kardex. QuantityGrams es firmado:
// positivo en entradas, negativo en salidas; StockAfter = StockBefore + QuantityGrams.
type InventoryMovement struct {
	ID             string
	ProductID      string
	Type           MovementType
	QuantityGrams  int64
	StockBefore    int64
	StockAfter     int64
	ReferenceID    string
	ReferenceType  string
	Reason         string
	UnitCost       *decimal.Decimal // solo tiene sentido en restock
	BatchNumber    string           // lote del proveedor, solo restock
	PerformedBy    string           // UserID; vacío cuando lo genera el sistema (ventas)
	PerformerEmail string
	CreatedAt      time.Time
}
