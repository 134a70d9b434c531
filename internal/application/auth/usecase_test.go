package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/inventario-pos/pkg/jwt"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func setup(t *testing.T) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	hash, err := auth.HashPassword("clave-segura")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		Name: "Admin", Email: "admin@pos.test", PasswordHash: hash, Role: entity.RoleAdmin, Active: true,
	}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		Name: "Legado", Email: "legado@pos.test", PasswordHash: "clave-plana", Role: entity.RoleOperador, Active: true,
	}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		Name: "Baja", Email: "baja@pos.test", PasswordHash: hash, Role: entity.RoleOperador, Active: false,
	}))
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 480, Issuer: "test"}, logger.Nop())
	return uc, store
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := setup(t)
	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  ADMIN@pos.test ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, 480*60, resp.ExpiresIn)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLogin_Rechazos(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@pos.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@pos.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "no revela si el email existe")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "legado@pos.test", Password: "clave-plana"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "las claves en texto plano no autentican")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@pos.test", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe(t *testing.T) {
	uc, _ := setup(t)
	me, err := uc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "admin@pos.test", me.Email)

	_, err = uc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
