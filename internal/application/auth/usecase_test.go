package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/punto-venta/internal/application/auth"
	"github.com/tu-usuario/punto-venta/internal/application/dto"
	"github.com/tu-usuario/punto-venta/internal/application/session"
	"github.com/tu-usuario/punto-venta/internal/domain"
	"github.com/tu-usuario/punto-venta/internal/domain/entity"
	"github.com/tu-usuario/punto-venta/internal/infrastructure/memory"
	"github.com/tu-usuario/punto-venta/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "clave-segura-123"
)

func newFixture(t *testing.T) (*auth.UseCase, *session.MemoryStore, *entity.User) {
	t.Helper()
	led := memory.NewLedger()
	sessions := session.NewMemoryStore()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@tienda.local",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, led.Users().Create(user))

	uc := auth.NewUseCase(led.Users(), sessions, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "punto-venta-test",
	})
	return uc, sessions, user
}

func TestLogin(t *testing.T) {
	uc, sessions, user := newFixture(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	// El token lleva el id de sesión y la sesión queda activa.
	userID, role, sessionID, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	active, err := sessions.Exists(context.Background(), sessionID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _, user := newFixture(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@tienda.local",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CredencialesVacias(t *testing.T) {
	uc, _, _ := newFixture(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout_RevocaLaSesion(t *testing.T) {
	uc, sessions, user := newFixture(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    user.Email,
		Password: testPassword,
	})
	require.NoError(t, err)

	_, _, sessionID, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), sessionID))

	active, err := sessions.Exists(context.Background(), sessionID)
	require.NoError(t, err)
	assert.False(t, active, "después del logout la sesión no existe")
}
