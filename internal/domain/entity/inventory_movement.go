package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn          = "in"           // entrada manual
	MovementTypeOut         = "out"          // salida manual
	MovementTypeSale        = "sale"         // descuento por venta
	MovementTypeVoidRestock = "void-restock" // reposición por anulación de venta
	MovementTypeAdjustment  = "adjustment"   // ajuste con signo
)

// InventoryMovement es el registro de auditoría de cada cambio de stock.
// Append-only: nunca se modifica ni se borra. Quantity va con signo (negativo
// para salidas/ventas), de modo que Stock del producto siempre es la suma de
// los Quantity de sus movimientos.
type InventoryMovement struct {
	ID          string
	ProductID   string
	ProductName string // proyección de lectura (join con products); no se persiste en la fila
	Type        string
	Quantity    int // con signo
	StockBefore int
	StockAfter  int
	Reason      string
	Date        time.Time
	CreatedBy   string // UserID
}
