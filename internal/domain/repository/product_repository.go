package repository

import "github.com/tu-usuario/punto-venta/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
// GetForUpdate solo tiene sentido dentro de una transacción (TxRunner).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar el check-and-decrement de stock entre transacciones concurrentes.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe el stock redundante del producto. Siempre debe ir
	// acompañado de un InventoryMovement en la misma transacción.
	UpdateStock(id string, stock int) error
	ListActive() ([]*entity.Product, error)
	// ListLowStock devuelve productos con stock <= min_stock,
	// ordenados por stock ascendente y luego nombre.
	ListLowStock() ([]*entity.Product, error)
}
