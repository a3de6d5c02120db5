package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/domain"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// DeliveryZoneUseCase CRUD de zonas de entrega para domicilios.
type DeliveryZoneUseCase struct {
	repo repository.DeliveryZoneRepository
}

// NewDeliveryZoneUseCase construye el caso de uso.
func NewDeliveryZoneUseCase(repo repository.DeliveryZoneRepository) *DeliveryZoneUseCase {
	return &DeliveryZoneUseCase{repo: repo}
}

// Create crea una zona de entrega.
func (uc *DeliveryZoneUseCase) Create(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Fee.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	zone := &entity.DeliveryZone{
		ID:           uuid.New().String(),
		Name:         name,
		Fee:          in.Fee,
		DeliveryDays: in.DeliveryDays,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(zone); err != nil {
		return nil, err
	}
	return toZoneResponse(zone), nil
}

// List zonas; includeInactive para administración.
func (uc *DeliveryZoneUseCase) List(ctx context.Context, includeInactive bool) ([]dto.ZoneResponse, error) {
	zones, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, *toZoneResponse(z))
	}
	return out, nil
}

// Update modifica una zona.
func (uc *DeliveryZoneUseCase) Update(ctx context.Context, id string, in dto.UpdateZoneRequest) (*dto.ZoneResponse, error) {
	zone, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		zone.Name = strings.TrimSpace(*in.Name)
	}
	if in.Fee != nil {
		if in.Fee.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		zone.Fee = *in.Fee
	}
	if in.DeliveryDays != nil {
		zone.DeliveryDays = *in.DeliveryDays
	}
	if in.Active != nil {
		zone.Active = *in.Active
	}
	zone.UpdatedAt = time.Now()
	if err := uc.repo.Update(zone); err != nil {
		return nil, err
	}
	return toZoneResponse(zone), nil
}

// Delete elimina una zona (los clientes que la referencian quedan sin zona).
func (uc *DeliveryZoneUseCase) Delete(ctx context.Context, id string) error {
	zone, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if zone == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toZoneResponse(z *entity.DeliveryZone) *dto.ZoneResponse {
	return &dto.ZoneResponse{
		ID:           z.ID,
		Name:         z.Name,
		Fee:          z.Fee,
		DeliveryDays: z.DeliveryDays,
		Active:       z.Active,
		CreatedAt:    z.CreatedAt,
		UpdatedAt:    z.UpdatedAt,
	}
}
