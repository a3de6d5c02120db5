package repository

import "github.com/cafearoma/backoffice-api/internal/domain/entity"

// StockRepository define el puerto para la proyección de stock por producto.
// Usado dentro de transacciones para garantizar consistencia con el kardex.
type StockRepository interface {
	Get(productID string) (*entity.ProductStock, error)
	Upsert(stock *entity.ProductStock) error
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// movimientos concurrentes del mismo producto.
	GetForUpdate(productID string) (*entity.ProductStock, error)
}
