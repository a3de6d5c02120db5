package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cafearoma/backoffice-api/internal/application/crm"
	"github.com/cafearoma/backoffice-api/internal/application/dto"
)

// PortalHandler sirve el portal de autoconsulta de clientes. Es público:
// el cliente se identifica con su email y su código de referido, sin JWT.
type PortalHandler struct {
	uc *crm.PortalUseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *crm.PortalUseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// portalLoginRequest credenciales del portal de clientes.
type portalLoginRequest struct {
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code"`
}

// Summary godoc
// @Summary      Resumen del cliente (portal público)
// @Description  Devuelve los datos del cliente, sus últimos pedidos y sus
// @Description  recompensas por referidos. Se autentica con email + código
// @Description  de referido propio.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        body  body  portalLoginRequest  true  "email, referral_code"
// @Success      200   {object}  dto.PortalSummaryResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/portal/summary [post]
func (h *PortalHandler) Summary(c *fiber.Ctx) error {
	var in portalLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Summary(c.Context(), in.Email, in.ReferralCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
