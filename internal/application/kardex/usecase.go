package kardex

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/kardex"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos del kardex de forma
// transaccional: valida por tipo, bloquea la fila de stock (SELECT FOR
// UPDATE), calcula stock_before/stock_after y persiste movimiento +
// proyección con Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// MovementInput entrada para registrar un movimiento manual.
// Quantity positiva salvo adjustment, que llega firmada por el usuario.
type MovementInput struct {
	ProductID     string
	Type          entity.MovementType
	QuantityGrams int64
	Reason        string
	UnitCost      *decimal.Decimal
	BatchNumber   string
	ReferenceID   string
	ReferenceType string
	UserID        string // quien registra; vacío solo en movimientos del sistema
}

// RegisterMovement valida la solicitud y la aplica dentro de una transacción.
// Toda la validación ocurre antes de tocar almacenamiento: una entrada
// inválida nunca llega a abrir transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	// Las ventas las genera el procesador de ventas, no este endpoint.
	if in.Type == entity.MovementSale && in.ReferenceID == "" {
		return nil, domain.ErrInvalidInput
	}

	signedQty, err := kardex.SignedQuantity(in.Type, in.QuantityGrams)
	if err != nil {
		return nil, err
	}
	reason, err := kardex.ValidateReason(in.Type, in.Reason)
	if err != nil {
		return nil, err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	performedBy, performerEmail := "", ""
	if in.UserID != "" {
		user, err := uc.userRepo.GetByID(in.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		performedBy = user.ID
		performerEmail = user.Email
	}

	mov := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Type:           in.Type,
		QuantityGrams:  signedQty,
		ReferenceID:    in.ReferenceID,
		ReferenceType:  in.ReferenceType,
		Reason:         reason,
		BatchNumber:    strings.TrimSpace(in.BatchNumber),
		PerformedBy:    performedBy,
		PerformerEmail: performerEmail,
		CreatedAt:      time.Now(),
	}
	// unit_cost y lote solo tienen sentido en compras
	if in.Type == entity.MovementRestock {
		mov.UnitCost = in.UnitCost
	} else {
		mov.UnitCost = nil
		mov.BatchNumber = ""
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		return appendMovement(movRepo, stockRepo, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterSaleExitInTx descuenta gramos por una línea de venta usando los
// repositorios de la transacción del caller (la misma tx que crea la venta).
// El movimiento lo genera el sistema: sin actor humano.
func (uc *RegisterMovementUseCase) RegisterSaleExitInTx(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productID string,
	quantityGrams int64,
	saleID string,
	now time.Time,
) error {
	signedQty, err := kardex.SignedQuantity(entity.MovementSale, quantityGrams)
	if err != nil {
		return err
	}
	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Type:          entity.MovementSale,
		QuantityGrams: signedQty,
		ReferenceID:   saleID,
		ReferenceType: "sale",
		CreatedAt:     now,
	}
	return appendMovement(movRepo, stockRepo, mov)
}

// appendMovement es el corazón del kardex: lee el stock con bloqueo de fila,
// verifica la invariante de no-negatividad y escribe movimiento + proyección.
// Debe ejecutarse dentro de una transacción; cualquier error la revierte
// completa, dejando la proyección intacta.
func appendMovement(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	mov *entity.InventoryMovement,
) error {
	stock, err := stockRepo.GetForUpdate(mov.ProductID)
	if err != nil {
		return err
	}
	before, after, err := kardex.Apply(stock.TotalGramsAvailable, mov.QuantityGrams)
	if err != nil {
		return err
	}
	mov.StockBefore = before
	mov.StockAfter = after

	stock.TotalGramsAvailable = after
	stock.LastUpdated = mov.CreatedAt
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	return movRepo.Create(mov)
}

// ToMovementResponse mapea la entidad al DTO de salida de la API.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		TypeLabel:      m.Type.Label(),
		QuantityGrams:  m.QuantityGrams,
		QuantityLabel:  dto.FormatGrams(m.QuantityGrams),
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		ReferenceID:    m.ReferenceID,
		ReferenceType:  m.ReferenceType,
		Reason:         m.Reason,
		UnitCost:       m.UnitCost,
		BatchNumber:    m.BatchNumber,
		PerformedBy:    m.PerformedBy,
		PerformerEmail: m.PerformerEmail,
		CreatedAt:      m.CreatedAt,
	}
}
