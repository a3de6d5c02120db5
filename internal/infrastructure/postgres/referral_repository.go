package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

var _ repository.ReferralRepository = (*ReferralRepo)(nil)

const referralColumns = `id, referrer_id, referred_id, sale_id, amount, status, created_at, applied_at`

// ReferralRepo persistencia de recompensas por referido sobre PostgreSQL.
type ReferralRepo struct {
	q Querier
}

func NewReferralRepository(q Querier) *ReferralRepo {
	return &ReferralRepo{q: q}
}

func (r *ReferralRepo) Create(rw *entity.ReferralReward) error {
	query := `
		INSERT INTO referral_rewards (` + referralColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rw.ID, rw.ReferrerID, rw.ReferredID, rw.SaleID, rw.Amount, rw.Status, rw.CreatedAt, rw.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("create referral reward: %w", err)
	}
	return nil
}

func (r *ReferralRepo) GetByID(id string) (*entity.ReferralReward, error) {
	query := `SELECT ` + referralColumns + ` FROM referral_rewards WHERE id = $1`
	rw, err := scanReward(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get referral reward: %w", err)
	}
	return rw, nil
}

func (r *ReferralRepo) ListByReferrer(referrerID string) ([]*entity.ReferralReward, error) {
	query := `
		SELECT ` + referralColumns + ` FROM referral_rewards
		WHERE referrer_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("list referral rewards: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReferralReward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan referral reward: %w", err)
		}
		list = append(list, rw)
	}
	return list, rows.Err()
}

func (r *ReferralRepo) ExistsForReferred(referredID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM referral_rewards WHERE referred_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, referredID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists referral reward: %w", err)
	}
	return exists, nil
}

func (r *ReferralRepo) MarkApplied(id string) error {
	query := `UPDATE referral_rewards SET status = $2, applied_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.ReferralRewardApplied, time.Now())
	if err != nil {
		return fmt.Errorf("mark referral reward applied: %w", err)
	}
	return nil
}

func scanReward(row pgx.Row) (*entity.ReferralReward, error) {
	var rw entity.ReferralReward
	err := row.Scan(&rw.ID, &rw.ReferrerID, &rw.ReferredID, &rw.SaleID, &rw.Amount, &rw.Status, &rw.CreatedAt, &rw.AppliedAt)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}
