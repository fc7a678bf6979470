package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farxc/frota-multas/internal/logger"
	"github.com/farxc/frota-multas/internal/multas"
	"github.com/farxc/frota-multas/internal/planilha"
	"github.com/farxc/frota-multas/internal/store"
)

type fakeCreator struct {
	results map[string]error
	created []string
}

func (f *fakeCreator) Create(_ context.Context, _ multas.Actor, in multas.Input) (multas.Multa, error) {
	if err := f.results[in.AutoInfracao]; err != nil {
		return multas.Multa{}, err
	}
	f.created = append(f.created, in.AutoInfracao)
	return multas.Multa{AutoInfracao: in.AutoInfracao}, nil
}

type fakeHistory struct {
	inserted *store.ImportHistory
	updated  *store.ImportHistory
}

func (f *fakeHistory) InsertImportHistory(_ context.Context, h *store.ImportHistory) error {
	h.ID = 11
	copied := *h
	f.inserted = &copied
	return nil
}

func (f *fakeHistory) UpdateImportCounts(_ context.Context, h *store.ImportHistory) error {
	copied := *h
	f.updated = &copied
	return nil
}

func rowsFor(autos ...string) []planilha.Row {
	rows := make([]planilha.Row, len(autos))
	for i, a := range autos {
		rows[i] = planilha.Row{Line: i + 2, Input: multas.Input{AutoInfracao: a}}
	}
	return rows
}

func TestImporterCountsOutcomes(t *testing.T) {
	creator := &fakeCreator{results: map[string]error{
		"A2": multas.ErrDuplicateAuto.WithMessage("duplicada"),
		"A3": multas.ErrValidation.WithMessage("inválida"),
	}}
	history := &fakeHistory{}
	imp := &importer{
		service: creator,
		history: history,
		logger:  logger.New(logger.LevelError, io.Discard),
		actor:   multas.Actor{Name: "importador", Role: multas.RoleAdmin},
	}

	h, err := imp.run(context.Background(), "planilha.csv", rowsFor("A1", "A2", "A3", "A4"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A4"}, creator.created)
	assert.Equal(t, store.StatusRunning, history.inserted.Status)
	assert.Equal(t, 4, history.inserted.TotalRows)

	require.NotNil(t, history.updated)
	assert.Equal(t, int64(11), history.updated.ID)
	assert.Equal(t, 2, h.Imported)
	assert.Equal(t, 1, h.Skipped)
	assert.Equal(t, 1, h.Failed)
	assert.Equal(t, store.StatusPartial, h.Status)
}

func TestImportStatus(t *testing.T) {
	assert.Equal(t, store.StatusSuccess, importStatus(&store.ImportHistory{Imported: 3, Skipped: 1}))
	assert.Equal(t, store.StatusFailure, importStatus(&store.ImportHistory{Failed: 2}))
	assert.Equal(t, store.StatusPartial, importStatus(&store.ImportHistory{Skipped: 1, Failed: 1}))
}

func TestValidateRows(t *testing.T) {
	rows := []planilha.Row{
		{Line: 2, Input: multas.Input{AutoInfracao: "A1", Resposabilidade: "Empresa"}},
		{Line: 3, Input: multas.Input{AutoInfracao: "", Resposabilidade: "Empresa"}},
		{Line: 4, Input: multas.Input{AutoInfracao: "A3", Resposabilidade: "ninguém"}},
	}
	assert.Equal(t, 2, validateRows(rows, logger.New(logger.LevelError, io.Discard)))
}
