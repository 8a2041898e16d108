package repository

import (
	"time"

	"github.com/tu-usuario/punto-venta/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial de movimientos.
// El rango es semiabierto: [From, To).
type MovementFilter struct {
	ProductID *string
	From      *time.Time
	To        *time.Time
}

// InventoryMovementRepository puerto de persistencia para movimientos de inventario.
// La tabla es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	// List devuelve movimientos según filtro, ordenados por fecha descendente.
	List(filter MovementFilter) ([]*entity.InventoryMovement, error)
}
