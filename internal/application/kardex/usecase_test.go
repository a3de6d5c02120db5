package kardex_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	appkardex "github.com/cafearoma/backoffice-api/internal/application/kardex"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el mutex serializa las
// transacciones y el snapshot permite revertir cuando el callback falla.
// ──────────────────────────────────────────────────────────────────────────────

type ledgerStore struct {
	mu        sync.Mutex
	movements []*entity.InventoryMovement
	stocks    map[string]int64
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{stocks: make(map[string]int64)}
}

type fakeTxRunner struct {
	s *ledgerStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// snapshot para rollback
	movLen := len(r.s.movements)
	prevStocks := make(map[string]int64, len(r.s.stocks))
	for k, v := range r.s.stocks {
		prevStocks[k] = v
	}

	err := fn(&fakeMovementRepo{s: r.s}, &fakeStockRepo{s: r.s})
	if err != nil {
		r.s.movements = r.s.movements[:movLen]
		r.s.stocks = prevStocks
		return err
	}
	return nil
}

type fakeMovementRepo struct {
	s *ledgerStore
}

func (f *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	f.s.movements = append(f.s.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range f.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) matches(m *entity.InventoryMovement, productID string, filter repository.MovementFilter) bool {
	if m.ProductID != productID {
		return false
	}
	if filter.Type != "" && m.Type != filter.Type {
		return false
	}
	if filter.DateFrom != nil && m.CreatedAt.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && m.CreatedAt.After(*filter.DateTo) {
		return false
	}
	return true
}

func (f *fakeMovementRepo) ListByProduct(productID string, filter repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	var hits []*entity.InventoryMovement
	for _, m := range f.s.movements {
		if f.matches(m, productID, filter) {
			hits = append(hits, m)
		}
	}
	// más reciente primero
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	if offset >= len(hits) {
		return nil, nil
	}
	hits = hits[offset:]
	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

func (f *fakeMovementRepo) CountByProduct(productID string, filter repository.MovementFilter) (int, error) {
	total := 0
	for _, m := range f.s.movements {
		if f.matches(m, productID, filter) {
			total++
		}
	}
	return total, nil
}

type fakeStockRepo struct {
	s *ledgerStore
}

func (f *fakeStockRepo) Get(productID string) (*entity.ProductStock, error) {
	return &entity.ProductStock{ProductID: productID, TotalGramsAvailable: f.s.stocks[productID]}, nil
}

func (f *fakeStockRepo) GetForUpdate(productID string) (*entity.ProductStock, error) {
	return f.Get(productID)
}

func (f *fakeStockRepo) Upsert(stock *entity.ProductStock) error {
	f.s.stocks[stock.ProductID] = stock.TotalGramsAvailable
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error            { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }
func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeProductRepo) Delete(id string) error { delete(f.products, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error             { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) { return f.users[id], nil }
func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Armado de escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID = "11111111-1111-1111-1111-111111111111"
	baristaID = "22222222-2222-2222-2222-222222222222"
)

type fixture struct {
	store    *ledgerStore
	register *appkardex.RegisterMovementUseCase
	query    *appkardex.QueryUseCase
}

func newFixture(t *testing.T, initialGrams int64) *fixture {
	t.Helper()
	store := newLedgerStore()
	if initialGrams > 0 {
		store.stocks[productID] = initialGrams
	}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, SKU: "CAF-HUI-250", Name: "Café Huila", PresentationGrams: 250, Active: true},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		baristaID: {ID: baristaID, Email: "barista@cafearoma.co", Role: entity.RoleBarista},
	}}
	return &fixture{
		store:    store,
		register: appkardex.NewRegisterMovementUseCase(&fakeTxRunner{s: store}, products, users),
		query: appkardex.NewQueryUseCase(
			&fakeMovementRepo{s: store}, &fakeStockRepo{s: store}, products,
		),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_RestockActualizaStockYGuardaMovimiento(t *testing.T) {
	fx := newFixture(t, 0)
	cost := decimal.NewFromFloat(38.50)

	mov, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementRestock,
		QuantityGrams: 5000,
		UnitCost:      &cost,
		BatchNumber:   "L-2026-031",
		UserID:        baristaID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), mov.StockBefore)
	assert.Equal(t, int64(5000), mov.StockAfter)
	assert.Equal(t, mov.StockBefore+mov.QuantityGrams, mov.StockAfter,
		"el movimiento debe conservar stock_after = stock_before + cantidad")
	assert.Equal(t, "Reposición de inventario", mov.Reason,
		"restock sin motivo usa el genérico")
	assert.Equal(t, "L-2026-031", mov.BatchNumber)
	assert.Equal(t, "barista@cafearoma.co", mov.PerformerEmail)
	assert.Equal(t, int64(5000), fx.store.stocks[productID])
	assert.Len(t, fx.store.movements, 1)
}

func TestRegisterMovement_LossSinMotivoNoTocaElEstado(t *testing.T) {
	fx := newFixture(t, 1000)

	_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementLoss,
		QuantityGrams: 200,
		UserID:        baristaID,
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired)
	assert.Equal(t, int64(1000), fx.store.stocks[productID], "el stock no debe cambiar")
	assert.Empty(t, fx.store.movements, "no debe quedar movimiento registrado")
}

func TestRegisterMovement_StockInsuficienteRevierteTodo(t *testing.T) {
	fx := newFixture(t, 200)

	_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementLoss,
		QuantityGrams: 300,
		Reason:        "derrame en tostión",
		UserID:        baristaID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(200), fx.store.stocks[productID],
		"un movimiento rechazado deja la proyección intacta")
	assert.Empty(t, fx.store.movements)
}

func TestRegisterMovement_AdjustmentNegativoFirmado(t *testing.T) {
	fx := newFixture(t, 1000)

	mov, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementAdjustment,
		QuantityGrams: -150,
		Reason:        "conteo físico de fin de mes",
		UserID:        baristaID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-150), mov.QuantityGrams)
	assert.Equal(t, int64(850), mov.StockAfter)
	assert.Equal(t, int64(850), fx.store.stocks[productID])
}

func TestRegisterMovement_ProductoInexistenteRetornaNotFound(t *testing.T) {
	fx := newFixture(t, 0)

	_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     "99999999-9999-9999-9999-999999999999",
		Type:          entity.MovementRestock,
		QuantityGrams: 500,
		UserID:        baristaID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_SaleManualSinReferenciaEsInvalida(t *testing.T) {
	fx := newFixture(t, 1000)

	_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementSale,
		QuantityGrams: 250,
		UserID:        baristaID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"las ventas solo las genera el procesador de ventas con referencia")
}

func TestRegisterMovement_UnitCostSoloEnRestock(t *testing.T) {
	fx := newFixture(t, 1000)
	cost := decimal.NewFromInt(10)

	mov, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
		ProductID:     productID,
		Type:          entity.MovementAdjustment,
		QuantityGrams: 100,
		UnitCost:      &cost,
		BatchNumber:   "L-XX",
		UserID:        baristaID,
	})
	require.NoError(t, err)
	assert.Nil(t, mov.UnitCost, "unit_cost solo tiene sentido en compras")
	assert.Empty(t, mov.BatchNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia — sin lost updates sobre el mismo producto
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_ConcurrenciaSinLostUpdates(t *testing.T) {
	fx := newFixture(t, 100000)

	const (
		goroutines = 8
		perWorker  = 25
		exitGrams  = 250
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
					ProductID:     productID,
					Type:          entity.MovementTransferOut,
					QuantityGrams: exitGrams,
					UserID:        baristaID,
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	want := int64(100000 - goroutines*perWorker*exitGrams)
	assert.Equal(t, want, fx.store.stocks[productID],
		"todas las salidas concurrentes deben quedar aplicadas exactamente una vez")
	assert.Len(t, fx.store.movements, goroutines*perWorker)

	// cada fila individual conserva la invariante
	for _, m := range fx.store.movements {
		assert.Equal(t, m.StockBefore+m.QuantityGrams, m.StockAfter)
		assert.GreaterOrEqual(t, m.StockAfter, int64(0))
	}
}

func TestRegisterMovement_ConcurrenciaPrimerosMovimientosSinFilaDeStock(t *testing.T) {
	// producto jamás abastecido: la proyección no existe todavía
	fx := newFixture(t, 0)

	const (
		goroutines = 8
		entryGrams = 100
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.register.RegisterMovement(context.Background(), appkardex.MovementInput{
				ProductID:     productID,
				Type:          entity.MovementRestock,
				QuantityGrams: entryGrams,
				UserID:        baristaID,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*entryGrams), fx.store.stocks[productID],
		"ninguna reposición inicial debe pisar a otra")
	require.Len(t, fx.store.movements, goroutines)

	// los stock_before deben encadenarse: 0, 100, 200, ... sin repetidos
	befores := make([]int64, 0, goroutines)
	for _, m := range fx.store.movements {
		assert.Equal(t, m.StockBefore+m.QuantityGrams, m.StockAfter)
		befores = append(befores, m.StockBefore)
	}
	sort.Slice(befores, func(i, j int) bool { return befores[i] < befores[j] })
	for i, b := range befores {
		assert.Equal(t, int64(i*entryGrams), b,
			"cada movimiento debe partir del stock que dejó el anterior")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas — stock actual e historial paginado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCurrentStock_ProductoSinMovimientosReportaCero(t *testing.T) {
	fx := newFixture(t, 0)

	out, err := fx.query.GetCurrentStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.TotalGramsAvailable)
	assert.Equal(t, "0 g", out.TotalLabel)
}

func TestGetCurrentStock_ProductoDesconocidoRetornaNotFound(t *testing.T) {
	fx := newFixture(t, 0)

	_, err := fx.query.GetCurrentStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetHistory_MasRecientePrimeroYPaginaPorDefecto(t *testing.T) {
	fx := newFixture(t, 0)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		mov := &entity.InventoryMovement{
			ID:            uuid(i),
			ProductID:     productID,
			Type:          entity.MovementRestock,
			QuantityGrams: 100,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		fx.store.movements = append(fx.store.movements, mov)
	}

	out, err := fx.query.GetHistory(context.Background(), productID, repository.MovementFilter{}, dto.PageRequest{})
	require.NoError(t, err)

	assert.Len(t, out.Movements, 50, "la página por defecto es de 50 movimientos")
	assert.Equal(t, 60, out.Page.Total)
	assert.Equal(t, 50, out.Page.Limit)

	for i := 1; i < len(out.Movements); i++ {
		assert.False(t, out.Movements[i].CreatedAt.After(out.Movements[i-1].CreatedAt),
			"el historial debe venir del más reciente al más antiguo")
	}
}

func TestGetHistory_FiltraPorTipo(t *testing.T) {
	fx := newFixture(t, 0)
	now := time.Now()
	fx.store.movements = append(fx.store.movements,
		&entity.InventoryMovement{ID: "a", ProductID: productID, Type: entity.MovementRestock, QuantityGrams: 500, CreatedAt: now},
		&entity.InventoryMovement{ID: "b", ProductID: productID, Type: entity.MovementSale, QuantityGrams: -250, CreatedAt: now.Add(time.Minute)},
		&entity.InventoryMovement{ID: "c", ProductID: productID, Type: entity.MovementSale, QuantityGrams: -250, CreatedAt: now.Add(2 * time.Minute)},
	)

	out, err := fx.query.GetHistory(context.Background(), productID,
		repository.MovementFilter{Type: entity.MovementSale}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, 2, out.Page.Total)
	for _, m := range out.Movements {
		assert.Equal(t, "sale", m.Type)
	}
}

func TestGetHistory_TipoDesconocidoEsInvalido(t *testing.T) {
	fx := newFixture(t, 0)

	_, err := fx.query.GetHistory(context.Background(), productID,
		repository.MovementFilter{Type: "donation"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func uuid(i int) string {
	return string(rune('a'+i%26)) + "-mov"
}
