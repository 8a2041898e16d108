package entity

import "time"

// Roles válidos para User. Solo admin puede crear/editar/desactivar productos
// y anular ventas; el resto de operaciones exigen cualquier usuario autenticado.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vendedor
	CreatedAt    time.Time
}
