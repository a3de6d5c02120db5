package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, movement_type, quantity_grams, stock_before, stock_after,
	reference_id, reference_type, reason, unit_cost, batch_number, performed_by, performer_email, created_at`

// MovementRepo persistencia del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del kardex.
func (r *MovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, string(m.Type), m.QuantityGrams, m.StockBefore, m.StockAfter,
		nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceType), nullIfEmpty(m.Reason),
		m.UnitCost, nullIfEmpty(m.BatchNumber), nullIfEmpty(m.PerformedBy),
		nullIfEmpty(m.PerformerEmail), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, más reciente primero.
// El desempate por id mantiene la paginación estable cuando dos movimientos
// comparten created_at.
func (r *MovementRepo) ListByProduct(productID string, filter repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = applyMovementFilter(query, args, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByProduct cuenta movimientos de un producto con los mismos filtros del listado.
func (r *MovementRepo) CountByProduct(productID string, filter repository.MovementFilter) (int, error) {
	query := `SELECT count(*) FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = applyMovementFilter(query, args, filter)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

func applyMovementFilter(query string, args []any, filter repository.MovementFilter) (string, []any) {
	if filter.Type != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", len(args)+1)
		args = append(args, string(filter.Type))
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *filter.DateTo)
	}
	return query, args
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var movType string
	var refID, refType, reason, batch, performedBy, performerEmail *string
	err := row.Scan(
		&m.ID, &m.ProductID, &movType, &m.QuantityGrams, &m.StockBefore, &m.StockAfter,
		&refID, &refType, &reason, &m.UnitCost, &batch, &performedBy, &performerEmail, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	m.ReferenceID = deref(refID)
	m.ReferenceType = deref(refType)
	m.Reason = deref(reason)
	m.BatchNumber = deref(batch)
	m.PerformedBy = deref(performedBy)
	m.PerformerEmail = deref(performerEmail)
	return &m, nil
}
