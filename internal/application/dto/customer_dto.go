package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
// ReferralCode es el código del cliente que lo refirió (opcional).
type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	ZoneID       string `json:"zone_id,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// UpdateCustomerRequest campos modificables de un cliente.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	ZoneID  *string `json:"zone_id,omitempty"`
}

// CustomerResponse salida de un cliente con su nivel de recurrencia.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	ZoneID       string    `json:"zone_id,omitempty"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   string    `json:"referred_by,omitempty"`
	Recurrence   string    `json:"recurrence,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Page      PageResponse       `json:"page"`
}

// ReferralRewardResponse una recompensa del programa de referidos.
type ReferralRewardResponse struct {
	ID         string     `json:"id"`
	ReferredID string     `json:"referred_id"`
	SaleID     string     `json:"sale_id"`
	Amount     string     `json:"amount"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	AppliedAt  *time.Time `json:"applied_at,omitempty"`
}

// PortalSummaryResponse vista del portal de autoservicio: pedidos recientes
// y estado del programa de referidos del cliente.
type PortalSummaryResponse struct {
	Customer CustomerResponse         `json:"customer"`
	Orders   []SaleResponse           `json:"orders"`
	Rewards  []ReferralRewardResponse `json:"rewards"`
}
