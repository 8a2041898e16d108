package inventory

import (
	"context"

	"github.com/tu-usuario/punto-venta/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario y las mutaciones de catálogo: cambio de stock, movimiento y
// auditoría se confirman o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
