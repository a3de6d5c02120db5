package crm

import (
	"context"
	"strings"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// portalMaxOrders pedidos recientes que muestra el portal.
const portalMaxOrders = 10

// PortalUseCase portal de autoservicio: un cliente consulta sus pedidos y
// el estado de sus referidos identificándose con email + código de referido.
// No requiere usuario del back-office.
type PortalUseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	referralRepo repository.ReferralRepository
}

// NewPortalUseCase construye el caso de uso.
func NewPortalUseCase(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	referralRepo repository.ReferralRepository,
) *PortalUseCase {
	return &PortalUseCase{customerRepo: customerRepo, saleRepo: saleRepo, referralRepo: referralRepo}
}

// Summary autentica al cliente por email + código de referido y devuelve su
// resumen. Credenciales que no casan devuelven ErrUnauthorized sin revelar
// cuál de las dos falló.
func (uc *PortalUseCase) Summary(ctx context.Context, email, referralCode string) (*dto.PortalSummaryResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	referralCode = strings.ToUpper(strings.TrimSpace(referralCode))
	if email == "" || referralCode == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.ReferralCode != referralCode {
		return nil, domain.ErrUnauthorized
	}

	sales, err := uc.saleRepo.ListByCustomer(customer.ID, portalMaxOrders, 0)
	if err != nil {
		return nil, err
	}
	orders := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items, err := uc.saleRepo.GetItemsBySaleID(s.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *toSaleSummary(s, items))
	}

	rewards, err := uc.referralRepo.ListByReferrer(customer.ID)
	if err != nil {
		return nil, err
	}

	summary := &dto.PortalSummaryResponse{
		Customer: dto.CustomerResponse{
			ID:           customer.ID,
			Name:         customer.Name,
			Email:        customer.Email,
			ReferralCode: customer.ReferralCode,
			CreatedAt:    customer.CreatedAt,
			UpdatedAt:    customer.UpdatedAt,
		},
		Orders:  orders,
		Rewards: toRewardResponses(rewards),
	}
	return summary, nil
}

func toSaleSummary(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		ZoneID:        s.ZoneID,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		DeliveryFee:   s.DeliveryFee,
		Total:         s.Total,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Units:         it.Units,
			QuantityGrams: it.QuantityGrams,
			UnitPrice:     it.UnitPrice,
			Subtotal:      it.Subtotal,
		})
	}
	return resp
}
