// Package activity keeps the append-only log of user actions. Writes are best-effort:
// a failed or impossible write is logged and dropped, never reported to the caller.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/store"
)

const component = "Activity"

// ErrUnavailable is returned when the log cannot be read for a reason other than a
// missing table.
var ErrUnavailable = errors.New("Erro ao carregar logs")

type Store interface {
	Insert(ctx context.Context, entry *store.ActivityLog) error
	Recent(ctx context.Context, filter store.ActivityFilter) ([]store.ActivityLog, error)
	DistinctUsers(ctx context.Context) ([]store.LogUser, error)
}

type Recorder struct {
	store        Store
	logger       *logger.Logger
	writeTimeout time.Duration
}

func NewRecorder(s Store, log *logger.Logger) *Recorder {
	return &Recorder{store: s, logger: log, writeTimeout: 5 * time.Second}
}

// Record appends e. The write outlives the caller's cancellation so that an entry is not
// lost when the HTTP request finishes first.
func (r *Recorder) Record(ctx context.Context, e multas.ActivityEntry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	entry := &store.ActivityLog{
		UserID:     strconv.FormatInt(e.Actor.ID, 10),
		UserName:   e.Actor.Name,
		UserRole:   string(e.Actor.Role),
		Action:     string(e.Action),
		EntityType: store.EntityTypeMulta,
	}
	if e.EntityID != 0 {
		id := e.EntityID
		entry.EntityID = &id
	}
	if e.EntityDescription != "" {
		desc := e.EntityDescription
		entry.EntityDescription = &desc
	}
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			r.logger.Warn(component, "dropping details of %s: %v", e.Action, err)
		} else {
			entry.Details = types.NullJSONText{JSONText: raw, Valid: true}
		}
	}

	if err := r.store.Insert(ctx, entry); err != nil {
		if store.IsUndefinedTable(err) {
			r.logger.Warn(component, "activity_logs table does not exist; %s by %s not recorded", e.Action, e.Actor.Name)
			return
		}
		r.logger.Error(component, "failed to record %s by %s: %v", e.Action, e.Actor.Name, err)
		return
	}
	r.logger.Debug(component, "recorded %s by %s", e.Action, e.Actor.Name)
}

// Query holds the optional filters of a listing. "todos" means no filter.
type Query struct {
	Role   string
	UserID string
	Limit  int
}

func anyValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "todos") {
		return ""
	}
	return s
}

// List returns the newest entries visible to caller. Only admins may filter freely;
// everyone else only ever sees entries produced by their own role.
func (r *Recorder) List(ctx context.Context, caller multas.Actor, q Query) ([]store.ActivityLog, error) {
	filter := store.ActivityFilter{Limit: q.Limit}
	if caller.Role == multas.RoleAdmin {
		filter.Role = anyValue(q.Role)
		filter.UserID = anyValue(q.UserID)
	} else {
		filter.Role = string(caller.Role)
	}

	logs, err := r.store.Recent(ctx, filter)
	if err != nil {
		if store.IsUndefinedTable(err) {
			r.logger.Warn(component, "activity_logs table does not exist; returning no entries")
			return []store.ActivityLog{}, nil
		}
		r.logger.Error(component, "failed to list activity: %v", err)
		return nil, ErrUnavailable
	}
	if logs == nil {
		logs = []store.ActivityLog{}
	}
	return logs, nil
}

// Users lists the authors of log entries for the admin filter.
func (r *Recorder) Users(ctx context.Context, caller multas.Actor) ([]store.LogUser, error) {
	if caller.Role != multas.RoleAdmin {
		return nil, multas.ErrForbidden.WithMessage("apenas administradores podem filtrar por usuário")
	}

	users, err := r.store.DistinctUsers(ctx)
	if err != nil {
		if store.IsUndefinedTable(err) {
			return []store.LogUser{}, nil
		}
		r.logger.Error(component, "failed to list activity users: %v", err)
		return nil, ErrUnavailable
	}
	if users == nil {
		users = []store.LogUser{}
	}
	return users, nil
}
