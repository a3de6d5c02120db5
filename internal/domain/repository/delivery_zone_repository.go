package repository

import "github.com/cafearoma/backoffice-api/internal/domain/entity"

// DeliveryZoneRepository define el puerto de persistencia para zonas de entrega.
type DeliveryZoneRepository interface {
	Create(zone *entity.DeliveryZone) error
	GetByID(id string) (*entity.DeliveryZone, error)
	List(includeInactive bool) ([]*entity.DeliveryZone, error)
	Update(zone *entity.DeliveryZone) error
	Delete(id string) error
}
