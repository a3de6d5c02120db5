package entity

import "time"

// Niveles de recurrencia calculados sobre las ventas de los últimos 90 días.
const (
	RecurrenceNew        = "nuevo"     // 0 compras
	RecurrenceOccasional = "ocasional" // 1-2 compras
	RecurrenceFrequent   = "frecuente" // 3+ compras
)

// Customer representa un cliente del negocio (CRM y portal de autoservicio).
// ReferralCode identifica al cliente en el programa de referidos;
// ReferredBy guarda el ID del cliente que lo refirió (vacío si llegó solo).
type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	ZoneID       string // zona de entrega, opcional
	ReferralCode string
	ReferredBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
