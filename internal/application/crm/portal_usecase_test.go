package crm

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
)

// memReferralRepo fake de recompensas para portal y referidos.
type memReferralRepo struct {
	rewards map[string]*entity.ReferralReward
}

func newMemReferralRepo() *memReferralRepo {
	return &memReferralRepo{rewards: make(map[string]*entity.ReferralReward)}
}

func (f *memReferralRepo) Create(r *entity.ReferralReward) error { f.rewards[r.ID] = r; return nil }
func (f *memReferralRepo) GetByID(id string) (*entity.ReferralReward, error) {
	return f.rewards[id], nil
}
func (f *memReferralRepo) ListByReferrer(referrerID string) ([]*entity.ReferralReward, error) {
	var out []*entity.ReferralReward
	for _, r := range f.rewards {
		if r.ReferrerID == referrerID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *memReferralRepo) ExistsForReferred(referredID string) (bool, error) {
	for _, r := range f.rewards {
		if r.ReferredID == referredID {
			return true, nil
		}
	}
	return false, nil
}
func (f *memReferralRepo) MarkApplied(id string) error {
	if r, ok := f.rewards[id]; ok {
		now := time.Now()
		r.Status = entity.ReferralRewardApplied
		r.AppliedAt = &now
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Portal — autenticación por email + código de referido
// ──────────────────────────────────────────────────────────────────────────────

func newPortalFixture() (*PortalUseCase, *memCustomerRepo, *memReferralRepo) {
	customers := newMemCustomerRepo()
	referrals := newMemReferralRepo()
	sales := &memSaleRepo{countByCustomer: make(map[string]int)}
	return NewPortalUseCase(customers, sales, referrals), customers, referrals
}

func TestPortalSummary_CredencialesValidas(t *testing.T) {
	uc, customers, referrals := newPortalFixture()
	customers.customers["c-1"] = &entity.Customer{
		ID: "c-1", Name: "Ana Gómez", Email: "ana@cafearoma.co", ReferralCode: "CAF-7K2M9Q",
	}
	referrals.rewards["rw-1"] = &entity.ReferralReward{
		ID: "rw-1", ReferrerID: "c-1", ReferredID: "c-2",
		Amount: decimal.NewFromInt(2800), Status: entity.ReferralRewardPending,
	}

	out, err := uc.Summary(context.Background(), "  Ana@Cafearoma.co ", "caf-7k2m9q")
	require.NoError(t, err, "email y código se normalizan antes de comparar")
	assert.Equal(t, "Ana Gómez", out.Customer.Name)
	require.Len(t, out.Rewards, 1)
	assert.Equal(t, "2800", out.Rewards[0].Amount)
}

func TestPortalSummary_CodigoAjenoEsUnauthorized(t *testing.T) {
	uc, customers, _ := newPortalFixture()
	customers.customers["c-1"] = &entity.Customer{
		ID: "c-1", Email: "ana@cafearoma.co", ReferralCode: "CAF-7K2M9Q",
	}

	_, err := uc.Summary(context.Background(), "ana@cafearoma.co", "CAF-OTRO99")
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"código que no corresponde al email no debe revelar cuál credencial falló")
}

func TestPortalSummary_EmailDesconocidoEsUnauthorized(t *testing.T) {
	uc, _, _ := newPortalFixture()

	_, err := uc.Summary(context.Background(), "nadie@cafearoma.co", "CAF-7K2M9Q")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPortalSummary_CredencialesVaciasSonInvalidas(t *testing.T) {
	uc, _, _ := newPortalFixture()

	_, err := uc.Summary(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recompensas — aplicar una sola vez
// ──────────────────────────────────────────────────────────────────────────────

func TestReferralApply_PendienteSeAplicaUnaVez(t *testing.T) {
	customers := newMemCustomerRepo()
	referrals := newMemReferralRepo()
	referrals.rewards["rw-1"] = &entity.ReferralReward{
		ID: "rw-1", ReferrerID: "c-1", ReferredID: "c-2",
		Amount: decimal.NewFromInt(2800), Status: entity.ReferralRewardPending,
	}
	uc := NewReferralUseCase(referrals, customers)

	require.NoError(t, uc.Apply(context.Background(), "rw-1"))
	assert.Equal(t, entity.ReferralRewardApplied, referrals.rewards["rw-1"].Status)
	assert.NotNil(t, referrals.rewards["rw-1"].AppliedAt)

	err := uc.Apply(context.Background(), "rw-1")
	assert.ErrorIs(t, err, domain.ErrConflict, "una recompensa aplicada no puede reaplicarse")
}

func TestReferralApply_InexistenteEsNotFound(t *testing.T) {
	uc := NewReferralUseCase(newMemReferralRepo(), newMemCustomerRepo())

	err := uc.Apply(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
