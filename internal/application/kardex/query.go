package kardex

import (
	"context"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// DefaultHistoryPageSize tamaño de página por defecto del historial.
const DefaultHistoryPageSize = 50

// QueryUseCase lectura del kardex: stock actual e historial paginado.
// No bloquea escritores; un snapshot puede quedar obsoleto de inmediato.
type QueryUseCase struct {
	movRepo     repository.MovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// GetCurrentStock devuelve la proyección de stock del producto.
// ErrNotFound si el producto no existe en el catálogo.
func (uc *QueryUseCase) GetCurrentStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:           stock.ProductID,
		TotalGramsAvailable: stock.TotalGramsAvailable,
		TotalLabel:          dto.FormatGrams(stock.TotalGramsAvailable),
		LastUpdated:         stock.LastUpdated,
	}, nil
}

// GetHistory devuelve el historial del producto, más reciente primero,
// con filtros opcionales por tipo y rango de fechas.
func (uc *QueryUseCase) GetHistory(ctx context.Context, productID string, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.Normalize(DefaultHistoryPageSize)

	movements, err := uc.movRepo.ListByProduct(productID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByProduct(productID, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, ToMovementResponse(m))
	}
	return out, nil
}
