package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta rechazada nunca se persiste; la única
// transición legal después de creada es completed -> voided.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// Sale representa una venta registrada. Inmutable salvo la transición de estado a voided.
// Total siempre es igual a la suma de los subtotales de sus items.
type Sale struct {
	ID     string
	Date   time.Time
	Total  decimal.Decimal
	Status string // completed, voided
	UserID string
	Items  []*SaleItem
}

// SaleItem es una línea de venta. UnitPrice es el precio del producto al momento
// de la venta; cambios posteriores de precio no alteran ventas históricas.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // proyección de lectura (join con products); no se persiste en la fila
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
