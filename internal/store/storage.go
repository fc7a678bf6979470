package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/farxc/frota-multas/internal/multas"
)

type Storage struct {
	Multas multas.RecordStore

	ActivityLogs interface {
		Insert(ctx context.Context, entry *ActivityLog) error
		Recent(ctx context.Context, filter ActivityFilter) ([]ActivityLog, error)
		DistinctUsers(ctx context.Context) ([]LogUser, error)
	}

	Users interface {
		FindByHandle(ctx context.Context, handle string) (*User, error)
	}

	ImportHistory interface {
		InsertImportHistory(ctx context.Context, history *ImportHistory) error
		GetLatest(ctx context.Context, limit int) ([]ImportHistory, error)
		UpdateImportStatus(ctx context.Context, id int64, status string) error
		UpdateImportCounts(ctx context.Context, history *ImportHistory) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Multas:        &MultaStore{db: db},
		ActivityLogs:  &ActivityLogStore{db: db},
		Users:         &UserStore{db: db},
		ImportHistory: &ImportHistoryStore{db: db},
	}
}
