package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un café del catálogo. El stock se lleva en gramos en
// ProductStock; PresentationGrams son los gramos que consume cada unidad
// vendida (bolsa de 250 g, 500 g, etc.).
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Description       string
	Origin            string // región de origen (Huila, Nariño, ...)
	RoastLevel        string // claro, medio, oscuro
	PresentationGrams int64
	Price             decimal.Decimal // precio de venta por presentación
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
