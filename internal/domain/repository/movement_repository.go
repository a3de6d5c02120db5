package repository

import (
	"time"

	"github.com/cafearoma/backoffice-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos del kardex.
type MovementFilter struct {
	Type     entity.MovementType // vacío = todos
	DateFrom *time.Time
	DateTo   *time.Time
}

// MovementRepository define el puerto de persistencia del kardex (append-only).
// Los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	// ListByProduct devuelve movimientos del producto ordenados por
	// created_at descendente (más reciente primero).
	ListByProduct(productID string, filter MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error)
	CountByProduct(productID string, filter MovementFilter) (int, error)
}
