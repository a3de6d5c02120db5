package repository

import "github.com/cafearoma/backoffice-api/internal/domain/entity"

// ReferralRepository define el puerto de persistencia para recompensas de referidos.
type ReferralRepository interface {
	Create(reward *entity.ReferralReward) error
	GetByID(id string) (*entity.ReferralReward, error)
	ListByReferrer(referrerID string) ([]*entity.ReferralReward, error)
	// ExistsForReferred reporta si el referido ya generó una recompensa
	// (solo la primera compra premia).
	ExistsForReferred(referredID string) (bool, error)
	MarkApplied(id string) error
}
