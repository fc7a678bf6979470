package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/store"
)

var maria = User{ID: 2, Nome: "Maria", Usuario: "maria", Role: multas.RoleFinanceiro}

func TestIssueAndLoad(t *testing.T) {
	m := NewManager("segredo", time.Hour)

	token, issued, err := m.Issue(maria)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.True(t, issued.Permissions.CanMarkAsPaid)

	loaded, err := m.Load(token)
	require.NoError(t, err)
	assert.Equal(t, maria, loaded.User)
	assert.Equal(t, issued.ID, loaded.ID)
	assert.Equal(t, multas.PermissionsFor(multas.RoleFinanceiro), loaded.Permissions)
	assert.Equal(t, maria.Actor(), multas.Actor{ID: 2, Name: "Maria", Role: multas.RoleFinanceiro})
}

func TestLoadRejectsBadTokens(t *testing.T) {
	m := NewManager("segredo", time.Hour)
	token, _, err := m.Issue(maria)
	require.NoError(t, err)

	other := NewManager("outro", time.Hour)
	_, err = other.Load(token)
	assert.ErrorIs(t, err, ErrLoggedOut)

	_, err = m.Load("")
	assert.ErrorIs(t, err, ErrLoggedOut)

	_, err = m.Load("not-a-token")
	assert.ErrorIs(t, err, ErrLoggedOut)

	_, err = m.Load(token + "x")
	assert.ErrorIs(t, err, ErrLoggedOut)
}

func TestLoadRejectsExpiredToken(t *testing.T) {
	m := NewManager("segredo", time.Minute)
	start := time.Now()
	m.now = func() time.Time { return start }

	token, _, err := m.Issue(maria)
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = m.Load(token)
	assert.ErrorIs(t, err, ErrLoggedOut)
}

func TestLoadRejectsUnknownRole(t *testing.T) {
	m := NewManager("segredo", time.Hour)
	token, _, err := m.Issue(User{ID: 9, Role: multas.Role("root")})
	require.NoError(t, err)

	_, err = m.Load(token)
	assert.ErrorIs(t, err, ErrLoggedOut)
}

func TestRevoke(t *testing.T) {
	m := NewManager("segredo", time.Hour)
	token, s, err := m.Issue(maria)
	require.NoError(t, err)

	m.Revoke(s)
	_, err = m.Load(token)
	assert.ErrorIs(t, err, ErrLoggedOut)

	fresh, _, err := m.Issue(maria)
	require.NoError(t, err)
	_, err = m.Load(fresh)
	assert.NoError(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := Session{ID: "abc", User: maria}
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, s, got)
}

type fakeUsers struct {
	users map[string]store.User
	err   error
}

func (f fakeUsers) FindByHandle(_ context.Context, handle string) (*store.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[handle]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func newAuthenticator(t *testing.T, err error) *Authenticator {
	t.Helper()
	hash, hashErr := HashSecret("s3nha")
	require.NoError(t, hashErr)

	users := fakeUsers{err: err, users: map[string]store.User{
		"maria": {ID: 2, Nome: "Maria", Usuario: "maria", SenhaHash: hash, Role: "financeiro"},
		"velho": {ID: 3, Nome: "Velho", Usuario: "velho", SenhaHash: hash, Role: "gerente"},
	}}
	return NewAuthenticator(users, logger.New(logger.LevelError, io.Discard))
}

func TestLogin(t *testing.T) {
	a := newAuthenticator(t, nil)

	u, err := a.Login(context.Background(), "  MARIA ", "s3nha")
	require.NoError(t, err)
	assert.Equal(t, maria, u)

	_, err = a.Login(context.Background(), "maria", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(context.Background(), "joao", "s3nha")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(context.Background(), "velho", "s3nha")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStoreFailure(t *testing.T) {
	a := newAuthenticator(t, errors.New("dial tcp: connection refused"))

	_, err := a.Login(context.Background(), "maria", "s3nha")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Erro ao conectar com o servidor", err.Error())
}
