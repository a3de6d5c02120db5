package sales

import (
	"context"
	"time"

	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// SaleTxRunner ejecuta el procesamiento de una venta en una sola transacción:
// descuento de kardex por línea, cabecera + ítems y recompensa de referido.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
		referralRepo repository.ReferralRepository,
	) error) error
}

// LedgerWriter es lo único que el procesador de ventas sabe del kardex:
// registrar una salida tipo sale dentro de su propia transacción.
type LedgerWriter interface {
	RegisterSaleExitInTx(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productID string,
		quantityGrams int64,
		saleID string,
		now time.Time,
	) error
}
