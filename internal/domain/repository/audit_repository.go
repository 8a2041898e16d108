package repository

import "github.com/tu-usuario/punto-venta/internal/domain/entity"

// AuditRepository puerto para el registro de auditoría. Append-only.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
}
