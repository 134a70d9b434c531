package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreate_HasheaYValidaRol(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: " Ana@POS.test", Password: "secreta1", Role: entity.RoleSupervisor})
	require.NoError(t, err)
	assert.Equal(t, "ana@pos.test", u.Email)
	assert.True(t, u.Active)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreta1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Otra", Email: "ana@pos.test", Password: "secreta1", Role: entity.RoleOperador})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Beto", Email: "beto@pos.test", Password: "secreta1", Role: "Gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Beto", Email: "beto@pos.test", Password: "123", Role: entity.RoleOperador})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUpdate_ClaveVaciaNoCambia(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@pos.test", Password: "secreta1", Role: entity.RoleOperador})
	require.NoError(t, err)
	before, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)

	empty := ""
	role := entity.RoleAdmin
	updated, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Password: &empty, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	after, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = uc.Update(ctx, 404, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserSetActive_NoPuedeDesactivarseASiMismo(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	admin, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Root", Email: "root@pos.test", Password: "secreta1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	op, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Op", Email: "op@pos.test", Password: "secreta1", Role: entity.RoleOperador})
	require.NoError(t, err)
	actor := usecase.Actor{UserID: admin.ID, Role: entity.RoleAdmin}

	assert.ErrorIs(t, uc.SetActive(ctx, actor, admin.ID, false), domain.ErrConflict)
	require.NoError(t, uc.SetActive(ctx, actor, op.ID, false))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[1].Active)
}
