package entity

import "time"

// Tipos de acción auditable. Cada operación mutadora escribe exactamente una entrada.
const (
	ActionProductCreate     = "creacion_producto"
	ActionProductUpdate     = "edicion_producto"
	ActionProductDeactivate = "eliminacion_producto"
	ActionSaleRegister      = "registro_venta"
	ActionSaleVoid          = "anulacion_venta"
	ActionMovement          = "movimiento_inventario"
)

// AuditEntry registra quién hizo qué. Append-only.
type AuditEntry struct {
	ID          string
	UserID      string
	Action      string
	Description string
	Date        time.Time
}
