package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/sales"
)

// SalesHandler maneja el registro, consulta y anulación de ventas (protegido;
// la anulación es solo admin, aplicado en el router).
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Register registra una venta: descuenta stock y persiste venta, items y
// movimientos en una sola transacción. Stock insuficiente devuelve 409 y no
// persiste nada.
func (h *SalesHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]sales.SaleLine, 0, len(in.Items))
	for _, item := range in.Items {
		lines = append(lines, sales.SaleLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	sale, err := h.uc.RegisterSale(c.Context(), GetUserID(c), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// List devuelve las ventas del período [start, end) con sus items,
// ascendente por fecha.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	start, end, err := periodOrDefaults(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.SalesForPeriod(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

// GetByID devuelve una venta con sus items.
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.uc.SaleByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// Void anula una venta completada reponiendo el stock descontado.
// Anular una venta ya anulada devuelve 409.
func (h *SalesHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.VoidSaleRequest
	// El cuerpo es opcional; sin motivo se usa uno por defecto.
	_ = c.BodyParser(&in)
	sale, err := h.uc.VoidSale(c.Context(), id, GetUserID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// Consolidated consolidado de ventas del día calendario UTC en curso.
func (h *SalesHandler) Consolidated(c *fiber.Ctx) error {
	totals, day, err := h.uc.ConsolidateDailySales(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DailyConsolidationResponse{
		Date:           day.Format("2006-01-02"),
		CompletedCount: totals.CompletedCount,
		CompletedTotal: totals.CompletedTotal.Round(2),
		VoidedCount:    totals.VoidedCount,
	})
}
