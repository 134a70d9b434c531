package usecase

import "github.com/jhoicas/inventario-pos/internal/domain/entity"

// Actor identifica al usuario autenticado que invoca el caso de uso.
type Actor struct {
	UserID int64
	Role   string
}

// MaxImageBytes tamaño máximo de la referencia de imagen (URL o data URI en base64).
const MaxImageBytes = 5 * 1024 * 1024

// CanSetImage indica si el rol puede asignar imágenes de producto.
func (a Actor) CanSetImage() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleSupervisor
}
