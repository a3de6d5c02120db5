package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo proyección de stock por producto sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual del producto. Sin fila = proyección en cero
// (producto aún no abastecido).
func (r *StockRepo) Get(productID string) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, total_grams_available, last_updated
		FROM product_stock WHERE product_id = $1`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.TotalGramsAvailable, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductStock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// serializar movimientos concurrentes del mismo producto. Si el producto
// nunca tuvo movimientos la fila aún no existe y no habría nada que
// bloquear: se materializa en cero primero y se reintenta el bloqueo, de
// modo que dos primeros movimientos concurrentes quedan serializados igual
// que el resto.
func (r *StockRepo) GetForUpdate(productID string) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, total_grams_available, last_updated
		FROM product_stock WHERE product_id = $1
		FOR UPDATE`
	var s entity.ProductStock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.TotalGramsAvailable, &s.LastUpdated,
	)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}

	// ON CONFLICT DO NOTHING tolera que otra transacción inserte la misma
	// fila al mismo tiempo; el reintento bloquea la fila ganadora.
	seed := `
		INSERT INTO product_stock (product_id, total_grams_available, last_updated)
		VALUES ($1, 0, now())
		ON CONFLICT (product_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID); err != nil {
		return nil, fmt.Errorf("seed stock: %w", err)
	}
	err = r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.TotalGramsAvailable, &s.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la proyección del producto. El CHECK de la
// tabla (total_grams_available >= 0) respalda la invariante que ya validó
// el registrador.
func (r *StockRepo) Upsert(stock *entity.ProductStock) error {
	query := `
		INSERT INTO product_stock (product_id, total_grams_available, last_updated)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id)
		DO UPDATE SET total_grams_available = EXCLUDED.total_grams_available, last_updated = EXCLUDED.last_updated`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.TotalGramsAvailable, stock.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
