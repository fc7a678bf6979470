package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farxc/frota-multas/internal/multas"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var multaColumns = []string{
	"id", "Auto_Infracao", "Veiculo", "Motorista", "Data_Cometimento", "Hora_Cometimento",
	"Descricao", "Valor", "Valor_Boleto", "Estado", "Status_Boleto", "Boleto", "Consulta",
	"Expiracao_Boleto", "Comprovante_Pagamento", "Resposabilidade", "Expiracao_Indicacao", "Notas",
	"Codigo_Infracao", "Status_Indicacao",
}

func TestMultaStoreList(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	rows := sqlmock.NewRows(multaColumns).
		AddRow(1, "S000111", "ABC1D23", "João", "01/03/2026", "10:15", "Excesso de velocidade",
			"R$ 1.234,56", "R$ 987,65", "CE", "Disponível", "https://boleto/1", "", "01/04/2026",
			"", " MOTORISTA ", "20/03/2026", "", 74550, "Faltando Indicar").
		AddRow(2, "S000112", "XYZ9K87", "", "", "", "", "", "", "", "", "", "", "", "", "Empresa", "", "", nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, COALESCE("Auto_Infracao", '') AS "Auto_Infracao"`)).
		WillReturnRows(rows)

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "1234.56", first.Valor.String())
	assert.Equal(t, "987.65", first.ValorBoleto.String())
	assert.Equal(t, multas.BoletoDisponivel, first.StatusBoleto)
	assert.Equal(t, multas.LiabilityMotorista, first.Liability)
	assert.Equal(t, multas.IndicacaoFaltandoIndicar, first.StatusIndicacao)
	assert.Equal(t, 74550, first.CodigoInfracao)

	second := got[1]
	assert.Equal(t, multas.LiabilityEmpresa, second.Liability)
	assert.Equal(t, multas.IndicacaoNone, second.StatusIndicacao)
	assert.Equal(t, multas.BoletoUnknown, second.StatusBoleto)
	assert.True(t, second.Valor.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStoreExistsAutoInfracao(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM "Multas" WHERE "Auto_Infracao" = $1)`)).
		WithArgs("S000111").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.ExistsAutoInfracao(context.Background(), "S000111")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStoreInsertReturnsID(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "Multas" ("Auto_Infracao", "Veiculo"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	m := &multas.Multa{AutoInfracao: "S000111", Valor: multas.ParseAmount("R$ 10,00")}
	require.NoError(t, store.Insert(context.Background(), m))
	assert.Equal(t, int64(42), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStoreInsertUniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "Multas"`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := store.Insert(context.Background(), &multas.Multa{AutoInfracao: "S000111"})
	assert.ErrorIs(t, err, multas.ErrDuplicateAuto)
}

func TestMultaStorePatchWritesOnlyGivenColumns(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	status := multas.BoletoDescontar
	proof := "https://comprovante/1"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "Multas" SET "Status_Boleto" = $1, "Comprovante_Pagamento" = $2 WHERE id = $3`)).
		WithArgs("Descontar", proof, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Patch(context.Background(), 7, multas.Patch{StatusBoleto: &status, ComprovantePagamento: &proof})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStorePatchClearsIndicacao(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	none := multas.IndicacaoNone
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "Multas" SET "Status_Indicacao" = $1 WHERE id = $2`)).
		WithArgs(nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Patch(context.Background(), 3, multas.Patch{StatusIndicacao: &none}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStorePatchEmptyIsNoop(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	require.NoError(t, store.Patch(context.Background(), 1, multas.Patch{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultaStoreDeleteMissingRow(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "Multas" WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, multas.ErrNotFound)
}

func TestMultaStorePatchMissingRow(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "Multas" SET "Status_Boleto" = $1 WHERE id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	status := multas.BoletoPago
	err := store.Patch(context.Background(), 9, multas.Patch{StatusBoleto: &status})
	assert.ErrorIs(t, err, multas.ErrNotFound)
}

func TestMultaStoreReplace(t *testing.T) {
	db, mock := newMock(t)
	store := &MultaStore{db: db}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "Multas" SET "Auto_Infracao" = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Replace(context.Background(), multas.Multa{ID: 5, AutoInfracao: "S1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowRoundTrip(t *testing.T) {
	m := multas.Multa{
		ID:              1,
		AutoInfracao:    "S1",
		Valor:           multas.ParseAmount("R$ 1.234,56"),
		ValorBoleto:     multas.ParseAmount("R$ 987,65"),
		StatusBoleto:    multas.BoletoDescontar,
		Liability:       multas.LiabilityMotorista,
		StatusIndicacao: multas.IndicacaoIndicado,
		CodigoInfracao:  74550,
	}

	row := rowFromMulta(m)
	assert.Equal(t, "R$ 1.234,56", row.Valor)
	assert.True(t, row.StatusIndicacao.Valid)
	assert.True(t, row.CodigoInfracao.Valid)

	back := row.toMulta()
	assert.True(t, m.Valor.Equal(back.Valor))
	assert.Equal(t, m.StatusBoleto, back.StatusBoleto)
	assert.Equal(t, m.StatusIndicacao, back.StatusIndicacao)
	assert.Equal(t, m.CodigoInfracao, back.CodigoInfracao)
}

func TestErrorClassification(t *testing.T) {
	undefined := &pq.Error{Code: "42P01", Message: `relation "activity_logs" does not exist`}
	assert.True(t, IsUndefinedTable(undefined))
	assert.True(t, IsUndefinedTable(errors.Join(errors.New("query"), undefined)))
	assert.False(t, IsUndefinedTable(errors.New("42P01")))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
}
