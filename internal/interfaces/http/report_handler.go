package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/punto-venta/internal/application/reports"
)

// ReportHandler maneja balance, indicadores y ranking de productos (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Balance balance económico del período [start, end): ingresos, costo y neto.
func (h *ReportHandler) Balance(c *fiber.Ctx) error {
	start, end, err := periodOrDefaults(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GenerateBalance(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Indicators comparativa de ventas del período actual contra el anterior de
// igual duración. Sin parámetros compara hoy contra ayer (UTC).
func (h *ReportHandler) Indicators(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SalesIndicators(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts ranking de productos más vendidos del período.
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		return respondError(c, err)
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.TopSellingProducts(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
