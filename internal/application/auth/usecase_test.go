package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autopublish-api/internal/application/auth"
	"github.com/jhoicas/autopublish-api/internal/application/dto"
	"github.com/jhoicas/autopublish-api/internal/domain"
	"github.com/jhoicas/autopublish-api/internal/domain/entity"
	"github.com/jhoicas/autopublish-api/internal/domain/repository"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/memory"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/sqlite"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "autopublish-test"
)

func newUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db))
	t.Cleanup(func() { db.Close() })
	return sqlite.NewUserRepository(db)
}

func newAuthUC(t *testing.T, denyList auth.TokenDenyList) (*auth.AuthUseCase, repository.UserRepository) {
	t.Helper()
	users := newUserRepo(t)
	if denyList == nil {
		denyList = memory.NewTokenDenyList()
	}
	uc := auth.NewAuthUseCase(users, denyList, auth.Config{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
		HashCost:   bcrypt.MinCost,
	})
	return uc, users
}

var ann = dto.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}

func TestRegister_BonoYRolPorDefecto(t *testing.T) {
	uc, users := newAuthUC(t, nil)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: " Ann ", Email: " Ann@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", out.User.Name)
	assert.Equal(t, "ann@x.com", out.User.Email)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.Equal(t, 100, out.User.TokenBalance)

	stored, err := users.GetByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, users := newAuthUC(t, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, ann)
	require.NoError(t, err)
	_, err = uc.Register(ctx, ann)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegister_Validacion(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "A", Email: "ann", Password: "123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 3)
}

func TestLogin_YResolveIdentity(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	ctx := context.Background()
	_, err := uc.Register(ctx, ann)
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANN@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.True(t, out.ExpiresAt.After(time.Now()))

	id, err := uc.ResolveIdentity(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)
	assert.Equal(t, "ann@x.com", id.Email)
	assert.Equal(t, 100, id.TokenBalance)
	assert.NotEmpty(t, id.TokenID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	ctx := context.Background()
	_, err := uc.Register(ctx, ann)
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ann@x.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolveIdentity_TokenInvalido(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	_, err := uc.ResolveIdentity(context.Background(), "no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_RevocaToken(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	ctx := context.Background()
	_, err := uc.Register(ctx, ann)
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: ann.Email, Password: ann.Password})
	require.NoError(t, err)

	id, err := uc.ResolveIdentity(ctx, out.Token)
	require.NoError(t, err)
	require.NoError(t, uc.Logout(ctx, id))

	_, err = uc.ResolveIdentity(ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

type failingDenyList struct{}

func (failingDenyList) Revoke(context.Context, string, time.Duration) error { return nil }
func (failingDenyList) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("conexión rechazada")
}

func TestResolveIdentity_FalloDenyList_NoEsUnauthorized(t *testing.T) {
	uc, _ := newAuthUC(t, failingDenyList{})
	ctx := context.Background()
	_, err := uc.Register(ctx, ann)
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: ann.Email, Password: ann.Password})
	require.NoError(t, err)

	_, err = uc.ResolveIdentity(ctx, out.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc, _ := newAuthUC(t, nil)
	ctx := context.Background()
	reg, err := uc.Register(ctx, ann)
	require.NoError(t, err)

	out, err := uc.Me(ctx, &entity.Identity{UserID: reg.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", out.User.Email)

	_, err = uc.Me(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
