// Package session authenticates users and carries the logged-in user between requests
// as a signed token. The token is the only client-side state: an absent, corrupt or
// expired token means logged out.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/farxc/frota-multas/internal/multas"
)

const issuer = "frota-multas"

var ErrLoggedOut = errors.New("sessão ausente ou expirada")

// User is the identity persisted in the session.
type User struct {
	ID      int64       `json:"id"`
	Nome    string      `json:"nome"`
	Usuario string      `json:"usuario"`
	Role    multas.Role `json:"role"`
}

func (u User) Actor() multas.Actor {
	return multas.Actor{ID: u.ID, Name: u.Nome, Role: u.Role}
}

type Session struct {
	ID          string             `json:"-"`
	User        User               `json:"user"`
	Permissions multas.Permissions `json:"permissions"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

type claims struct {
	jwt.RegisteredClaims
	User User `json:"user"`
}

// Manager issues and loads session tokens. Logged-out token ids are remembered until
// the token would have expired anyway.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue starts a session for u and returns its token.
func (m *Manager) Issue(u User) (string, Session, error) {
	now := m.now().UTC()
	s := Session{
		ID:          uuid.NewString(),
		User:        u,
		Permissions: multas.PermissionsFor(u.Role),
		ExpiresAt:   now.Add(m.ttl),
	}

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   fmt.Sprint(u.ID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		User: u,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, s, nil
}

// Load restores the session carried by token.
func (m *Manager) Load(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrLoggedOut
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, ErrLoggedOut
	}

	if _, ok := multas.ParseRole(string(c.User.Role)); !ok || c.ID == "" {
		return Session{}, ErrLoggedOut
	}
	if m.isRevoked(c.ID) {
		return Session{}, ErrLoggedOut
	}

	return Session{
		ID:          c.ID,
		User:        c.User,
		Permissions: multas.PermissionsFor(c.User.Role),
		ExpiresAt:   c.ExpiresAt.Time,
	}, nil
}

// Revoke ends s; later Loads of its token fail.
func (m *Manager) Revoke(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	m.revoked[s.ID] = s.ExpiresAt
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

type sessionContextKey string

const sessionKey sessionContextKey = "session"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
