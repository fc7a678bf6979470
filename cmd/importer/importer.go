package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/planilha"
	"github.com/farxc/frota-multas/internal/store"
)

type historyStore interface {
	InsertImportHistory(ctx context.Context, history *store.ImportHistory) error
	UpdateImportCounts(ctx context.Context, history *store.ImportHistory) error
}

type creator interface {
	Create(ctx context.Context, actor multas.Actor, in multas.Input) (multas.Multa, error)
}

type importer struct {
	service creator
	history historyStore
	logger  *logger.Logger
	actor   multas.Actor
}

// run creates every row through the service so uniqueness and status derivation apply.
// Rows whose auto code already exists are skipped, other rejected rows count as failed.
func (imp *importer) run(ctx context.Context, source string, rows []planilha.Row) (*store.ImportHistory, error) {
	const component = "Importer"

	h := &store.ImportHistory{
		SourceFile:  source,
		TriggerType: store.TriggerTypeManual,
		Status:      store.StatusRunning,
		TotalRows:   len(rows),
	}
	if err := imp.history.InsertImportHistory(ctx, h); err != nil {
		return nil, fmt.Errorf("register import: %w", err)
	}

	for _, row := range rows {
		_, err := imp.service.Create(ctx, imp.actor, row.Input)
		switch {
		case err == nil:
			h.Imported++
		case errors.Is(err, multas.ErrDuplicateAuto):
			h.Skipped++
			imp.logger.Debug(component, "Row skipped: line=%d auto=%s", row.Line, row.Input.AutoInfracao)
		default:
			h.Failed++
			imp.logger.Warn(component, "Row rejected: line=%d auto=%s error=%v", row.Line, row.Input.AutoInfracao, err)
		}
	}

	h.Status = importStatus(h)
	if err := imp.history.UpdateImportCounts(ctx, h); err != nil {
		return h, fmt.Errorf("finish import %d: %w", h.ID, err)
	}
	return h, nil
}

func importStatus(h *store.ImportHistory) string {
	switch {
	case h.Failed == 0:
		return store.StatusSuccess
	case h.Imported == 0 && h.Skipped == 0:
		return store.StatusFailure
	}
	return store.StatusPartial
}

func validateRows(rows []planilha.Row, log *logger.Logger) int {
	const component = "DryRun"
	invalid := 0
	for _, row := range rows {
		if err := row.Input.Validate(); err != nil {
			invalid++
			log.Warn(component, "Invalid row: line=%d auto=%s error=%v", row.Line, row.Input.AutoInfracao, err)
		}
	}
	return invalid
}
