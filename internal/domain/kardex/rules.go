// Package kardex contiene las reglas de dominio del libro de movimientos:
// clasificación entrada/salida, validación por tipo y cálculo de la cantidad
// firmada. No toca almacenamiento.
package kardex

import (
	"strings"

	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
)

// MotivoRestockDefault se usa cuando una compra llega sin motivo.
const MotivoRestockDefault = "Reposición de inventario"

// SignedQuantity devuelve la cantidad firmada que debe almacenarse para un
// movimiento: positiva en entradas, negativa en salidas. Para adjustment la
// cantidad llega ya firmada por quien registra y se devuelve tal cual.
//
// Regla de clasificación:
//
//	entradas: restock, return, production, transfer_in  (cantidad > 0)
//	salidas:  sale, loss, transfer_out                  (cantidad > 0, se niega)
//	ajuste:   adjustment                                (firmada, nunca cero)
func SignedQuantity(t entity.MovementType, quantity int64) (int64, error) {
	switch {
	case t == entity.MovementAdjustment:
		if quantity == 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	case t.IsEntry():
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return quantity, nil
	case t.IsExit():
		if quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
		return -quantity, nil
	}
	return 0, domain.ErrInvalidInput
}

// ValidateReason verifica el motivo según el tipo: obligatorio en loss y
// return; en restock un motivo vacío se reemplaza por el genérico.
// Devuelve el motivo a almacenar.
func ValidateReason(t entity.MovementType, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if t.RequiresReason() && reason == "" {
		return "", domain.ErrReasonRequired
	}
	if t == entity.MovementRestock && reason == "" {
		return MotivoRestockDefault, nil
	}
	return reason, nil
}

// Apply calcula stock_before/stock_after a partir del stock actual y la
// cantidad firmada. Rechaza resultados negativos (invariante del kardex).
func Apply(currentStock, signedQty int64) (before, after int64, err error) {
	before = currentStock
	after = currentStock + signedQty
	if after < 0 {
		return 0, 0, domain.ErrInsufficientStock
	}
	return before, after, nil
}
