package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cafearoma/backoffice-api/internal/application/dto"
	"github.com/cafearoma/backoffice-api/internal/application/kardex"
	"github.com/cafearoma/backoffice-api/internal/domain/entity"
	"github.com/cafearoma/backoffice-api/internal/domain/repository"
)

// KardexHandler maneja las peticiones HTTP del kardex (protegido).
type KardexHandler struct {
	register *kardex.RegisterMovementUseCase
	query    *kardex.QueryUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(register *kardex.RegisterMovementUseCase, query *kardex.QueryUseCase) *KardexHandler {
	return &KardexHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         kardex
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity_grams (firmada solo en adjustment), reason (obligatoria en loss/return)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *KardexHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.register.RegisterMovement(c.Context(), kardex.MovementInput{
		ProductID:     in.ProductID,
		Type:          entity.MovementType(in.Type),
		QuantityGrams: in.QuantityGrams,
		Reason:        in.Reason,
		UnitCost:      in.UnitCost,
		BatchNumber:   in.BatchNumber,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kardex.ToMovementResponse(mov))
}

// GetHistory godoc
// @Summary      Historial de movimientos de un producto
// @Description  Kardex paginado, más reciente primero. Filtrable por tipo y rango de fechas.
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID del producto"
// @Param        type       query  string  false  "Tipo de movimiento (sale, restock, ...)"
// @Param        date_from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit      query  int     false  "Tamaño de página (defecto 50, máx 200)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *KardexHandler) GetHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	filter := repository.MovementFilter{Type: entity.MovementType(c.Query("type"))}

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválida, formato YYYY-MM-DD"})
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválida, formato YYYY-MM-DD"})
		}
		// inclusiva hasta el final del día
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	out, err := h.query.GetHistory(c.Context(), c.Params("id"), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock actual de un producto
// @Tags         kardex
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/stock [get]
func (h *KardexHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.query.GetCurrentStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
