package crm

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	customers     map[string]*entity.Customer
	getByEmailErr error
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (f *memCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *memCustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, c := range f.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (f *memCustomerRepo) GetByReferralCode(code string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ReferralCode == code {
			return c, nil
		}
	}
	return nil, nil
}
func (f *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}
func (f *memCustomerRepo) SearchByName(normalized string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *memCustomerRepo) Update(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *memCustomerRepo) Delete(id string) error          { delete(f.customers, id); return nil }

// memSaleRepo solo implementa el conteo de recurrencia.
type memSaleRepo struct {
	countByCustomer map[string]int
}

func (f *memSaleRepo) Create(*entity.Sale) error                  { return nil }
func (f *memSaleRepo) CreateItem(*entity.SaleItem) error          { return nil }
func (f *memSaleRepo) GetByID(string) (*entity.Sale, error)       { return nil, nil }
func (f *memSaleRepo) GetItemsBySaleID(string) ([]*entity.SaleItem, error) {
	return nil, nil
}
func (f *memSaleRepo) ListByCustomer(string, int, int) ([]*entity.Sale, error) { return nil, nil }
func (f *memSaleRepo) CountByCustomerSince(customerID string, days int) (int, error) {
	return f.countByCustomer[customerID], nil
}
func (f *memSaleRepo) UpdateStatus(string, string) error { return nil }

type memZoneRepo struct {
	zones map[string]*entity.DeliveryZone
}

func (f *memZoneRepo) Create(z *entity.DeliveryZone) error { f.zones[z.ID] = z; return nil }
func (f *memZoneRepo) GetByID(id string) (*entity.DeliveryZone, error) {
	return f.zones[id], nil
}
func (f *memZoneRepo) List(bool) ([]*entity.DeliveryZone, error) { return nil, nil }
func (f *memZoneRepo) Update(z *entity.DeliveryZone) error       { f.zones[z.ID] = z; return nil }
func (f *memZoneRepo) Delete(id string) error                    { delete(f.zones, id); return nil }

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)
var _ repository.SaleRepository = (*memSaleRepo)(nil)
var _ repository.DeliveryZoneRepository = (*memZoneRepo)(nil)

func newCustomerFixture() (*CustomerUseCase, *memCustomerRepo, *memSaleRepo) {
	customers := newMemCustomerRepo()
	sales := &memSaleRepo{countByCustomer: make(map[string]int)}
	zones := &memZoneRepo{zones: make(map[string]*entity.DeliveryZone)}
	return NewCustomerUseCase(customers, sales, zones), customers, sales
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — código de referido y vínculo con el referidor
// ──────────────────────────────────────────────────────────────────────────────

var referralCodePattern = regexp.MustCompile(`^CAF-[23456789ABCDEFGHJKLMNPQRSTUVWXYZ]{6}$`)

func TestCreateCustomer_GeneraCodigoDeReferido(t *testing.T) {
	uc, _, _ := newCustomerFixture()

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Ana Gómez",
		Email: "ANA@Cafearoma.co",
	})
	require.NoError(t, err)
	assert.Regexp(t, referralCodePattern, out.ReferralCode,
		"el código debe ser dictable por teléfono: sin 0/O ni 1/I")
	assert.Equal(t, "ana@cafearoma.co", out.Email, "el email se normaliza a minúsculas")
	assert.Empty(t, out.ReferredBy)
}

func TestCreateCustomer_ConCodigoDeReferidoValido(t *testing.T) {
	uc, customers, _ := newCustomerFixture()
	customers.customers["ref-1"] = &entity.Customer{
		ID: "ref-1", Name: "Ana", Email: "ana@cafearoma.co", ReferralCode: "CAF-7K2M9Q",
	}

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:         "José Pérez",
		Email:        "jose@cafearoma.co",
		ReferralCode: "caf-7k2m9q", // el código entra en cualquier caja
	})
	require.NoError(t, err)
	assert.Equal(t, "ref-1", out.ReferredBy)
}

func TestCreateCustomer_CodigoDesconocidoFalla(t *testing.T) {
	uc, _, _ := newCustomerFixture()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:         "José",
		Email:        "jose@cafearoma.co",
		ReferralCode: "CAF-XXXXXX",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCustomer_EmailDuplicadoFalla(t *testing.T) {
	uc, customers, _ := newCustomerFixture()
	customers.customers["c-1"] = &entity.Customer{ID: "c-1", Email: "ana@cafearoma.co"}

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Ana",
		Email: "ana@cafearoma.co",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateCustomer_FallaDeAlmacenamientoNoInserta(t *testing.T) {
	uc, customers, _ := newCustomerFixture()
	customers.getByEmailErr = errors.New("conexión rechazada")

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "Ana",
		Email: "ana@cafearoma.co",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"un fallo transitorio no es un duplicado")
	assert.Empty(t, customers.customers, "con el chequeo de duplicado roto no se debe insertar")
}

func TestCreateCustomer_DatosInvalidos(t *testing.T) {
	uc, _, _ := newCustomerFixture()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "", Email: "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana", Email: "sin-arroba"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recurrencia — nuevo / ocasional / frecuente sobre los últimos 90 días
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_ClasificaRecurrencia(t *testing.T) {
	uc, customers, salesRepo := newCustomerFixture()
	casos := []struct {
		compras int
		want    string
	}{
		{0, entity.RecurrenceNew},
		{1, entity.RecurrenceOccasional},
		{2, entity.RecurrenceOccasional},
		{3, entity.RecurrenceFrequent},
		{12, entity.RecurrenceFrequent},
	}
	for i, c := range casos {
		id := string(rune('a' + i))
		customers.customers[id] = &entity.Customer{ID: id, Name: "Cliente", Email: id + "@x.co"}
		salesRepo.countByCustomer[id] = c.compras

		out, err := uc.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, c.want, out.Recurrence, "%d compras en la ventana", c.compras)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// normalizeName — búsqueda insensible a tildes
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeName(t *testing.T) {
	casos := map[string]string{
		"José Pérez":  "jose perez",
		"  Café  ":    "cafe",
		"NUÑEZ":       "nunez",
		"maría":       "maria",
		"sin tildes":  "sin tildes",
		"":            "",
	}
	for in, want := range casos {
		assert.Equal(t, want, normalizeName(in), "entrada %q", in)
	}
}
