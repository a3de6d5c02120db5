// Package export arma los reportes descargables del kardex (Excel y PDF).
// La consulta es la misma del historial; el formato lo ponen los adaptadores
// de infraestructura.
package export

import (
	"context"
	"time"

	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// maxExportRows tope de filas por exportación para no cargar kardex
// completos de años en memoria.
const maxExportRows = 5000

// KardexExcelExporter genera el libro Excel del kardex de un producto.
type KardexExcelExporter interface {
	Export(product *entity.Product, stock *entity.ProductStock, movements []*entity.InventoryMovement) ([]byte, error)
}

// KardexPDFGenerator genera el reporte PDF del kardex de un producto.
type KardexPDFGenerator interface {
	Generate(product *entity.Product, stock *entity.ProductStock, movements []*entity.InventoryMovement) ([]byte, error)
}

// UseCase caso de uso de exportación del kardex.
type UseCase struct {
	movRepo     repository.MovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	excel       KardexExcelExporter
	pdf         KardexPDFGenerator
}

// NewUseCase construye el caso de uso con ambos generadores.
func NewUseCase(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	excel KardexExcelExporter,
	pdf KardexPDFGenerator,
) *UseCase {
	return &UseCase{
		movRepo:     movRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		excel:       excel,
		pdf:         pdf,
	}
}

// ExportExcel kardex de un producto como .xlsx, filtrable por fechas.
func (uc *UseCase) ExportExcel(ctx context.Context, productID string, from, to *time.Time) ([]byte, error) {
	product, stock, movements, err := uc.collect(productID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.excel.Export(product, stock, movements)
}

// ExportPDF kardex de un producto como PDF, filtrable por fechas.
func (uc *UseCase) ExportPDF(ctx context.Context, productID string, from, to *time.Time) ([]byte, error) {
	product, stock, movements, err := uc.collect(productID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(product, stock, movements)
}

func (uc *UseCase) collect(productID string, from, to *time.Time) (*entity.Product, *entity.ProductStock, []*entity.InventoryMovement, error) {
	if productID == "" {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, nil, nil, err
	}
	if product == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(productID)
	if err != nil {
		return nil, nil, nil, err
	}
	filter := repository.MovementFilter{DateFrom: from, DateTo: to}
	movements, err := uc.movRepo.ListByProduct(productID, filter, maxExportRows, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	return product, stock, movements, nil
}
