package session

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/store"
)

const component = "Auth"

var (
	ErrInvalidCredentials = errors.New("Usuário ou senha incorretos")
	ErrUnavailable        = errors.New("Erro ao conectar com o servidor")
)

type UserStore interface {
	FindByHandle(ctx context.Context, handle string) (*store.User, error)
}

type Authenticator struct {
	users  UserStore
	logger *logger.Logger
}

func NewAuthenticator(users UserStore, log *logger.Logger) *Authenticator {
	return &Authenticator{users: users, logger: log}
}

// NormalizeHandle is how handles are stored: lower case, no surrounding blanks.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

// Login checks secret against the stored bcrypt hash of handle.
func (a *Authenticator) Login(ctx context.Context, handle, secret string) (User, error) {
	handle = NormalizeHandle(handle)
	if handle == "" || secret == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := a.users.FindByHandle(ctx, handle)
	if errors.Is(err, store.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error(component, "user lookup failed for %q: %v", handle, err)
		return User{}, ErrUnavailable
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(secret)); err != nil {
		a.logger.Info(component, "rejected login for %q", handle)
		return User{}, ErrInvalidCredentials
	}

	role, ok := multas.ParseRole(u.Role)
	if !ok {
		a.logger.Warn(component, "user %q has unknown role %q", handle, u.Role)
		return User{}, ErrInvalidCredentials
	}

	return User{ID: u.ID, Nome: u.Nome, Usuario: u.Usuario, Role: role}, nil
}

// HashSecret produces the value stored in usuarios.senha_hash.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
