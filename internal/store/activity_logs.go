package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const EntityTypeMulta = "multa"

type ActivityLogStore struct {
	db *sqlx.DB
}

// ActivityFilter narrows Recent. Empty fields match every row.
type ActivityFilter struct {
	Role   string
	UserID string
	Limit  int
}

const DefaultActivityLimit = 50

func (s *ActivityLogStore) Insert(ctx context.Context, entry *ActivityLog) error {
	query := `INSERT INTO activity_logs (
		user_id,
		user_name,
		user_role,
		action,
		entity_type,
		entity_id,
		entity_description,
		details
	) VALUES (
		:user_id,
		:user_name,
		:user_role,
		:action,
		:entity_type,
		:entity_id,
		:entity_description,
		:details
	) RETURNING id, created_at`

	rows, err := s.db.NamedQueryContext(ctx, query, entry)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&entry.ID, &entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan activity log: %w", err)
		}
	}
	return rows.Err()
}

// Recent returns the newest entries first.
func (s *ActivityLogStore) Recent(ctx context.Context, filter ActivityFilter) ([]ActivityLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	var where []string
	var args []any
	if filter.Role != "" {
		args = append(args, filter.Role)
		where = append(where, fmt.Sprintf("user_role = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT id, user_id, user_name, user_role, action, entity_type, entity_id,
		entity_description, details, created_at
	FROM activity_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	var logs []ActivityLog
	if err := s.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	return logs, nil
}

// DistinctUsers lists every user that ever produced an entry, with their latest name.
func (s *ActivityLogStore) DistinctUsers(ctx context.Context) ([]LogUser, error) {
	query := `SELECT DISTINCT ON (user_id) user_id, user_name
	FROM activity_logs
	ORDER BY user_id, created_at DESC`

	var users []LogUser
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to query activity users: %w", err)
	}
	return users, nil
}
