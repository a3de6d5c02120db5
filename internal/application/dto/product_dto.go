package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Origin            string          `json:"origin,omitempty"`
	RoastLevel        string          `json:"roast_level,omitempty"`
	PresentationGrams int64           `json:"presentation_grams"`
	Price             decimal.Decimal `json:"price"`
}

// UpdateProductRequest campos modificables de un producto. El stock nunca se
// edita aquí: solo cambia vía movimientos del kardex.
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Origin            *string          `json:"origin,omitempty"`
	RoastLevel        *string          `json:"roast_level,omitempty"`
	PresentationGrams *int64           `json:"presentation_grams,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Origin            string          `json:"origin,omitempty"`
	RoastLevel        string          `json:"roast_level,omitempty"`
	PresentationGrams int64           `json:"presentation_grams"`
	Price             decimal.Decimal `json:"price"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}
