package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type ImportHistoryStore struct {
	db *sqlx.DB
}

var (
	TriggerTypeManual = "manual"
	TriggerTypeAPI    = "api"
)

var (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusPartial = "partial"
)

func (ih *ImportHistoryStore) InsertImportHistory(ctx context.Context, history *ImportHistory) error {
	query := `INSERT INTO import_history (
		source_file,
		trigger_type,
		status,
		total_rows,
		imported,
		skipped,
		failed
	) VALUES (
		:source_file,
		:trigger_type,
		:status,
		:total_rows,
		:imported,
		:skipped,
		:failed
	) RETURNING id, processed_at`

	rows, err := ih.db.NamedQueryContext(ctx, query, history)
	if err != nil {
		return fmt.Errorf("failed to insert import history: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&history.ID, &history.ProcessedAt); err != nil {
			return fmt.Errorf("failed to scan import history: %w", err)
		}
	}
	return rows.Err()
}

func (ih *ImportHistoryStore) GetLatest(ctx context.Context, limit int) ([]ImportHistory, error) {
	query := `SELECT id, source_file, trigger_type, status, total_rows, imported, skipped, failed, processed_at
	FROM import_history
	ORDER BY processed_at DESC
	LIMIT $1`

	var history []ImportHistory
	if err := ih.db.SelectContext(ctx, &history, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	return history, nil
}

func (ih *ImportHistoryStore) UpdateImportStatus(ctx context.Context, id int64, status string) error {
	res, err := ih.db.ExecContext(ctx, `UPDATE import_history SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update import %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("import %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateImportCounts stores the final tallies and status of a finished import.
func (ih *ImportHistoryStore) UpdateImportCounts(ctx context.Context, history *ImportHistory) error {
	query := `UPDATE import_history
	SET status = :status, total_rows = :total_rows, imported = :imported, skipped = :skipped, failed = :failed
	WHERE id = :id`
	if _, err := ih.db.NamedExecContext(ctx, query, history); err != nil {
		return fmt.Errorf("failed to update import %d: %w", history.ID, err)
	}
	return nil
}
