package repository

import "github.com/cafearoma/backoffice-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error)
	// CountByCustomerSince cuenta ventas completadas del cliente desde una
	// fecha; alimenta el puntaje de recurrencia del CRM.
	CountByCustomerSince(customerID string, days int) (int, error)
	UpdateStatus(id, status string) error
}
