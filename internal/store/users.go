package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

// FindByHandle looks a user up by login handle. The handle must already be normalized.
func (s *UserStore) FindByHandle(ctx context.Context, handle string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, nome, usuario, senha_hash, role FROM usuarios WHERE usuario = $1`, handle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", handle, err)
	}
	return &u, nil
}
