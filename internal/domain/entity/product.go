package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida del producto. Un producto nunca se borra físicamente:
// las ventas y movimientos históricos siguen referenciándolo aunque esté inactivo.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto del catálogo con su stock actual.
// Stock se actualiza únicamente junto con un InventoryMovement en la misma transacción.
type Product struct {
	ID          string
	Code        string // código único del producto
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo; los reportes lo leen en vivo, no se snapshotea
	Stock       int             // unidades disponibles, nunca negativo
	MinStock    int             // umbral de alerta de stock bajo
	Status      string          // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el producto puede venderse o recibir movimientos.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
