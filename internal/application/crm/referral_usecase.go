package crm

import (
	"context"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// ReferralUseCase consulta y aplicación de recompensas por referidos.
// Las recompensas se crean dentro de la transacción de la venta (ver sales).
type ReferralUseCase struct {
	referralRepo repository.ReferralRepository
	customerRepo repository.CustomerRepository
}

// NewReferralUseCase construye el caso de uso.
func NewReferralUseCase(referralRepo repository.ReferralRepository, customerRepo repository.CustomerRepository) *ReferralUseCase {
	return &ReferralUseCase{referralRepo: referralRepo, customerRepo: customerRepo}
}

// ListByReferrer recompensas ganadas por un cliente.
func (uc *ReferralUseCase) ListByReferrer(ctx context.Context, customerID string) ([]dto.ReferralRewardResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	rewards, err := uc.referralRepo.ListByReferrer(customerID)
	if err != nil {
		return nil, err
	}
	return toRewardResponses(rewards), nil
}

// Apply marca una recompensa pendiente como aplicada (descuento ya otorgado
// en caja). Aplicar dos veces es un conflicto.
func (uc *ReferralUseCase) Apply(ctx context.Context, rewardID string) error {
	reward, err := uc.referralRepo.GetByID(rewardID)
	if err != nil {
		return err
	}
	if reward == nil {
		return domain.ErrNotFound
	}
	if reward.Status != entity.ReferralRewardPending {
		return domain.ErrConflict
	}
	return uc.referralRepo.MarkApplied(rewardID)
}

func toRewardResponses(rewards []*entity.ReferralReward) []dto.ReferralRewardResponse {
	out := make([]dto.ReferralRewardResponse, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, dto.ReferralRewardResponse{
			ID:         r.ID,
			ReferredID: r.ReferredID,
			SaleID:     r.SaleID,
			Amount:     r.Amount.StringFixed(0),
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
			AppliedAt:  r.AppliedAt,
		})
	}
	return out
}
