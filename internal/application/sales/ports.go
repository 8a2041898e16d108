package sales

import (
	"context"

	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que cubre venta,
// items, movimientos de inventario y auditoría. Cualquier error revierte todo:
// no hay deducción parcial de stock ni venta sin sus movimientos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
