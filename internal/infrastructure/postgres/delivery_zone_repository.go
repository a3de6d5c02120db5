package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

var _ repository.DeliveryZoneRepository = (*DeliveryZoneRepo)(nil)

const zoneColumns = `id, name, fee, delivery_days, active, created_at, updated_at`

// DeliveryZoneRepo persistencia de zonas de entrega sobre PostgreSQL.
type DeliveryZoneRepo struct {
	q Querier
}

func NewDeliveryZoneRepository(q Querier) *DeliveryZoneRepo {
	return &DeliveryZoneRepo{q: q}
}

func (r *DeliveryZoneRepo) Create(z *entity.DeliveryZone) error {
	query := `
		INSERT INTO delivery_zones (` + zoneColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		z.ID, z.Name, z.Fee, z.DeliveryDays, z.Active, z.CreatedAt, z.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create zone: %w", err)
	}
	return nil
}

func (r *DeliveryZoneRepo) GetByID(id string) (*entity.DeliveryZone, error) {
	query := `SELECT ` + zoneColumns + ` FROM delivery_zones WHERE id = $1`
	z, err := scanZone(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return z, nil
}

func (r *DeliveryZoneRepo) List(includeInactive bool) ([]*entity.DeliveryZone, error) {
	query := `SELECT ` + zoneColumns + ` FROM delivery_zones`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var list []*entity.DeliveryZone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		list = append(list, z)
	}
	return list, rows.Err()
}

func (r *DeliveryZoneRepo) Update(z *entity.DeliveryZone) error {
	query := `
		UPDATE delivery_zones
		SET name = $2, fee = $3, delivery_days = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		z.ID, z.Name, z.Fee, z.DeliveryDays, z.Active, z.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	return nil
}

func (r *DeliveryZoneRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM delivery_zones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	return nil
}

func scanZone(row pgx.Row) (*entity.DeliveryZone, error) {
	var z entity.DeliveryZone
	err := row.Scan(&z.ID, &z.Name, &z.Fee, &z.DeliveryDays, &z.Active, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &z, nil
}
