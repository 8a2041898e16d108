package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/inventory"
	"github.com/tu-usuario/punto-venta/internal/application/product"
)

// InventoryHandler maneja movimientos, alertas de stock bajo, historial y la
// vista de existencias (protegido).
type InventoryHandler struct {
	uc        *inventory.UseCase
	productUC *product.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, productUC *product.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, productUC: productUC}
}

// RegisterMovement registra un movimiento manual de inventario (in/out/adjustment).
// Un delta que dejaría stock negativo devuelve 409 sin persistir nada.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Alerts lista los productos con stock en o bajo su mínimo, los más críticos primero.
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out := make([]dto.LowStockAlertResponse, 0)
	for p, err := range h.uc.LowStockAlerts(c.Context()) {
		if err != nil {
			return respondError(c, err)
		}
		out = append(out, dto.LowStockAlertResponse{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
		})
	}
	return c.JSON(out)
}

// Products devuelve la vista de existencias: los productos activos proyectados
// a código, stock, mínimo y precio.
func (h *InventoryHandler) Products(c *fiber.Ctx) error {
	list, err := h.productUC.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InventoryProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.InventoryProductResponse{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			Price:     p.Price,
		})
	}
	return c.JSON(out)
}

// History devuelve movimientos filtrados por producto y rango [start, end),
// los más recientes primero.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var productID *string
	if pid := c.Query("product_id"); pid != "" {
		productID = &pid
	}
	from, err := parseTimeQuery(c, "start")
	if err != nil {
		return respondError(c, err)
	}
	to, err := parseTimeQuery(c, "end")
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.MovementHistory(c.Context(), productID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}
