package crm

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// recurrenceWindowDays ventana para el puntaje de recurrencia.
const recurrenceWindowDays = 90

// CustomerUseCase casos de uso del CRM: clientes, búsqueda y recurrencia.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	zoneRepo     repository.DeliveryZoneRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	zoneRepo repository.DeliveryZoneRepository,
) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, saleRepo: saleRepo, zoneRepo: zoneRepo}
}

// Create registra un cliente. Si trae referral_code, se resuelve al cliente
// que refirió y se archiva el vínculo; un código desconocido es un error.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.ZoneID != "" {
		zone, err := uc.zoneRepo.GetByID(in.ZoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil {
			return nil, domain.ErrNotFound
		}
	}

	referredBy := ""
	if in.ReferralCode != "" {
		referrer, err := uc.customerRepo.GetByReferralCode(strings.ToUpper(strings.TrimSpace(in.ReferralCode)))
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			return nil, domain.ErrNotFound
		}
		referredBy = referrer.ID
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		ZoneID:       in.ZoneID,
		ReferralCode: newReferralCode(),
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return uc.toResponse(customer, false), nil
}

// GetByID obtiene un cliente con su nivel de recurrencia calculado.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(customer, true), nil
}

// List clientes paginados, sin recurrencia (costosa por cliente).
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize(20)
	customers, err := uc.customerRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Customers: make([]dto.CustomerResponse, 0, len(customers)),
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range customers {
		out.Customers = append(out.Customers, *uc.toResponse(c, false))
	}
	return out, nil
}

// Search búsqueda por nombre insensible a tildes y mayúsculas.
func (uc *CustomerUseCase) Search(ctx context.Context, query string, limit int) ([]dto.CustomerResponse, error) {
	normalized := normalizeName(query)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	customers, err := uc.customerRepo.SearchByName(normalized, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *uc.toResponse(c, false))
	}
	return out, nil
}

// Update modifica los datos de contacto de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		customer.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		customer.Address = strings.TrimSpace(*in.Address)
	}
	if in.ZoneID != nil {
		if *in.ZoneID != "" {
			zone, err := uc.zoneRepo.GetByID(*in.ZoneID)
			if err != nil {
				return nil, err
			}
			if zone == nil {
				return nil, domain.ErrNotFound
			}
		}
		customer.ZoneID = *in.ZoneID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return uc.toResponse(customer, false), nil
}

// recurrence clasifica al cliente según sus compras de los últimos 90 días.
func (uc *CustomerUseCase) recurrence(customerID string) string {
	count, err := uc.saleRepo.CountByCustomerSince(customerID, recurrenceWindowDays)
	if err != nil {
		return ""
	}
	switch {
	case count == 0:
		return entity.RecurrenceNew
	case count <= 2:
		return entity.RecurrenceOccasional
	default:
		return entity.RecurrenceFrequent
	}
}

func (uc *CustomerUseCase) toResponse(c *entity.Customer, withRecurrence bool) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		ZoneID:       c.ZoneID,
		ReferralCode: c.ReferralCode,
		ReferredBy:   c.ReferredBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if withRecurrence {
		resp.Recurrence = uc.recurrence(c.ID)
	}
	return resp
}

// newReferralCode genera un código corto tipo "CAF-7K2M9Q" (sin 0/O ni 1/I
// para poder dictarlo por teléfono).
func newReferralCode() string {
	const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return fmt.Sprintf("CAF-%s", b)
}
