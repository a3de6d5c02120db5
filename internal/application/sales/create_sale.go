package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// referralRewardRate porcentaje de la primera compra del referido que se
// abona a quien lo refirió.
var referralRewardRate = decimal.NewFromFloat(0.05)

// CreateSaleUseCase procesa una venta del punto de venta: descuenta el kardex
// por cada línea y persiste cabecera, ítems y recompensa de referido en una
// sola transacción. Sin stock suficiente, la venta completa se revierte.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	ledger       LedgerWriter
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	zoneRepo     repository.DeliveryZoneRepository
	referralRepo repository.ReferralRepository
	saleRepo     repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	ledger LedgerWriter,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	zoneRepo repository.DeliveryZoneRepository,
	referralRepo repository.ReferralRepository,
	saleRepo repository.SaleRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		zoneRepo:     zoneRepo,
		referralRepo: referralRepo,
		saleRepo:     saleRepo,
	}
}

func validPaymentMethod(m string) bool {
	return m == entity.PaymentCash || m == entity.PaymentCard || m == entity.PaymentTransfer
}

// CreateSale valida, descuenta inventario y persiste la venta.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || !validPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional (venta de mostrador). Si viene, debe existir.
	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		customer = c
	}

	// Zona de entrega opcional; aporta la tarifa de domicilio.
	deliveryFee := decimal.Zero
	if in.ZoneID != "" {
		zone, err := uc.zoneRepo.GetByID(in.ZoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil || !zone.Active {
			return nil, domain.ErrNotFound
		}
		deliveryFee = zone.Fee
	}

	// Validar productos y precios fuera de la transacción (solo lectura).
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Units <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		productsByID[item.ProductID] = product
	}

	now := time.Now()
	saleID := uuid.New().String()

	var sale *entity.Sale
	var saleItems []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
		referralRepo repository.ReferralRepository,
	) error {
		var subtotal decimal.Decimal
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			grams := item.Units * product.PresentationGrams

			// Descuento del kardex; sin stock suficiente se revierte todo.
			if err := uc.ledger.RegisterSaleExitInTx(
				movRepo, stockRepo, item.ProductID, grams, saleID, now,
			); err != nil {
				return err
			}

			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			lineSubtotal := unitPrice.Mul(decimal.NewFromInt(item.Units))
			subtotal = subtotal.Add(lineSubtotal)

			saleItems = append(saleItems, &entity.SaleItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				ProductID:     item.ProductID,
				Units:         item.Units,
				QuantityGrams: grams,
				UnitPrice:     unitPrice,
				Subtotal:      lineSubtotal,
			})
		}

		customerID := ""
		if customer != nil {
			customerID = customer.ID
		}
		sale = &entity.Sale{
			ID:            saleID,
			CustomerID:    customerID,
			ZoneID:        in.ZoneID,
			PaymentMethod: in.PaymentMethod,
			Subtotal:      subtotal,
			DeliveryFee:   deliveryFee,
			Total:         subtotal.Add(deliveryFee),
			Status:        entity.SaleStatusCompleted,
			SoldBy:        userID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range saleItems {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
		}

		// Programa de referidos: solo la primera compra del referido premia.
		if customer != nil && customer.ReferredBy != "" {
			rewarded, err := referralRepo.ExistsForReferred(customer.ID)
			if err != nil {
				return err
			}
			if !rewarded {
				reward := &entity.ReferralReward{
					ID:         uuid.New().String(),
					ReferrerID: customer.ReferredBy,
					ReferredID: customer.ID,
					SaleID:     saleID,
					Amount:     subtotal.Mul(referralRewardRate).Round(0),
					Status:     entity.ReferralRewardPending,
					CreatedAt:  now,
				}
				if err := referralRepo.Create(reward); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, saleItems), nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// MarkDelivered marca una venta a domicilio como entregada.
func (uc *CreateSaleUseCase) MarkDelivered(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return domain.ErrConflict
	}
	return uc.saleRepo.UpdateStatus(id, entity.SaleStatusDelivered)
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		CustomerID:    sale.CustomerID,
		ZoneID:        sale.ZoneID,
		PaymentMethod: sale.PaymentMethod,
		Subtotal:      sale.Subtotal,
		DeliveryFee:   sale.DeliveryFee,
		Total:         sale.Total,
		Status:        sale.Status,
		SoldBy:        sale.SoldBy,
		CreatedAt:     sale.CreatedAt,
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
