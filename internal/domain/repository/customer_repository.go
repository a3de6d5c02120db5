package repository

import "github.com/cafearoma/backoffice-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (CRM).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	GetByReferralCode(code string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	// SearchByName busca por nombre normalizado (sin tildes, sin mayúsculas).
	SearchByName(normalized string, limit int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
