package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleOperador   = "operador"
	RoleSupervisor = "supervisor"
)

// ValidRole indica si el rol existe en la tabla de permisos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperador, RoleSupervisor:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca texto plano
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
