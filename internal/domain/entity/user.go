package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleBarista    = "barista"
	RoleRepartidor = "repartidor"
)

// User representa un usuario del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en texto plano después de persistir
	Name         string
	Role         string // admin, barista, repartidor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
