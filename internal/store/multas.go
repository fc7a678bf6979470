package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/farxc/frota-multas/internal/multas"
)

// MultaStore keeps multas in the '"Multas"' table. Amounts are stored as "R$ 1.234,56"
// strings and converted at this boundary.
type MultaStore struct {
	db *sqlx.DB
}

var textColumns = []string{
	"Auto_Infracao", "Veiculo", "Motorista", "Data_Cometimento", "Hora_Cometimento",
	"Descricao", "Valor", "Valor_Boleto", "Estado", "Status_Boleto", "Boleto", "Consulta",
	"Expiracao_Boleto", "Comprovante_Pagamento", "Resposabilidade", "Expiracao_Indicacao", "Notas",
}

var selectMultas = func() string {
	cols := []string{"id"}
	for _, c := range textColumns {
		cols = append(cols, fmt.Sprintf(`COALESCE("%s", '') AS "%s"`, c, c))
	}
	cols = append(cols, `"Codigo_Infracao"`, `"Status_Indicacao"`)
	return "SELECT " + strings.Join(cols, ", ") + ` FROM "Multas"`
}()

var writableColumns = append(append([]string{}, textColumns...), "Codigo_Infracao", "Status_Indicacao")

func (s *MultaStore) List(ctx context.Context) ([]multas.Multa, error) {
	var rows []MultaRow
	if err := s.db.SelectContext(ctx, &rows, selectMultas+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to list multas: %w", err)
	}

	out := make([]multas.Multa, len(rows))
	for i, r := range rows {
		out[i] = r.toMulta()
	}
	return out, nil
}

func (s *MultaStore) ExistsAutoInfracao(ctx context.Context, auto string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM "Multas" WHERE "Auto_Infracao" = $1)`, auto)
	if err != nil {
		return false, fmt.Errorf("failed to look up auto %s: %w", auto, err)
	}
	return exists, nil
}

func (s *MultaStore) Insert(ctx context.Context, m *multas.Multa) error {
	quoted := make([]string, len(writableColumns))
	named := make([]string, len(writableColumns))
	for i, c := range writableColumns {
		quoted[i] = `"` + c + `"`
		named[i] = ":" + c
	}
	query := fmt.Sprintf(`INSERT INTO "Multas" (%s) VALUES (%s) RETURNING id`,
		strings.Join(quoted, ", "), strings.Join(named, ", "))

	rows, err := s.db.NamedQueryContext(ctx, query, rowFromMulta(*m))
	if err != nil {
		if IsUniqueViolation(err) {
			return multas.ErrDuplicateAuto.WithMessagef("Já existe uma multa com o Auto de Infração %s", m.AutoInfracao)
		}
		return fmt.Errorf("failed to insert multa: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&m.ID); err != nil {
			return fmt.Errorf("failed to scan multa id: %w", err)
		}
	}
	return rows.Err()
}

func (s *MultaStore) Replace(ctx context.Context, m multas.Multa) error {
	sets := make([]string, len(writableColumns))
	for i, c := range writableColumns {
		sets[i] = fmt.Sprintf(`"%s" = :%s`, c, c)
	}
	query := `UPDATE "Multas" SET ` + strings.Join(sets, ", ") + " WHERE id = :id"

	res, err := s.db.NamedExecContext(ctx, query, rowFromMulta(m))
	if err != nil {
		if IsUniqueViolation(err) {
			return multas.ErrDuplicateAuto.WithMessagef("Já existe uma multa com o Auto de Infração %s", m.AutoInfracao)
		}
		return fmt.Errorf("failed to update multa %d: %w", m.ID, err)
	}
	return expectOneRow(res, m.ID)
}

// Patch writes only the status columns carried by p.
func (s *MultaStore) Patch(ctx context.Context, id int64, p multas.Patch) error {
	if p.Empty() {
		return nil
	}

	var sets []string
	var args []any
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf(`"%s" = $%d`, col, len(args)))
	}
	if p.StatusBoleto != nil {
		add("Status_Boleto", string(*p.StatusBoleto))
	}
	if p.StatusIndicacao != nil {
		add("Status_Indicacao", nullIndicacao(*p.StatusIndicacao))
	}
	if p.ComprovantePagamento != nil {
		add("Comprovante_Pagamento", *p.ComprovantePagamento)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE "Multas" SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch multa %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func (s *MultaStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM "Multas" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete multa %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return multas.ErrNotFound.WithMessagef("multa %d não encontrada", id)
	}
	return nil
}

func nullIndicacao(s multas.IndicacaoStatus) sql.NullString {
	return sql.NullString{String: string(s), Valid: s != multas.IndicacaoNone}
}

func (r MultaRow) toMulta() multas.Multa {
	boleto, _ := multas.ParseBoletoStatus(r.StatusBoleto)
	indicacao, _ := multas.ParseIndicacaoStatus(r.StatusIndicacao.String)

	return multas.Multa{
		ID:                   r.ID,
		AutoInfracao:         r.AutoInfracao,
		Veiculo:              r.Veiculo,
		Motorista:            r.Motorista,
		DataCometimento:      r.DataCometimento,
		HoraCometimento:      r.HoraCometimento,
		Descricao:            r.Descricao,
		CodigoInfracao:       int(r.CodigoInfracao.Int64),
		Valor:                multas.ParseAmount(r.Valor),
		ValorBoleto:          multas.ParseAmount(r.ValorBoleto),
		Estado:               r.Estado,
		StatusBoleto:         boleto,
		Boleto:               r.Boleto,
		Consulta:             r.Consulta,
		ExpiracaoBoleto:      r.ExpiracaoBoleto,
		ComprovantePagamento: r.ComprovantePagamento,
		Liability:            multas.ParseLiability(r.Resposabilidade),
		ExpiracaoIndicacao:   r.ExpiracaoIndicacao,
		StatusIndicacao:      indicacao,
		Notas:                r.Notas,
	}
}

func rowFromMulta(m multas.Multa) MultaRow {
	return MultaRow{
		ID:                   m.ID,
		AutoInfracao:         m.AutoInfracao,
		Veiculo:              m.Veiculo,
		Motorista:            m.Motorista,
		DataCometimento:      m.DataCometimento,
		HoraCometimento:      m.HoraCometimento,
		Descricao:            m.Descricao,
		CodigoInfracao:       sql.NullInt64{Int64: int64(m.CodigoInfracao), Valid: m.CodigoInfracao != 0},
		Valor:                multas.FormatAmount(m.Valor),
		ValorBoleto:          multas.FormatAmount(m.ValorBoleto),
		Estado:               m.Estado,
		StatusBoleto:         string(m.StatusBoleto),
		Boleto:               m.Boleto,
		Consulta:             m.Consulta,
		ExpiracaoBoleto:      m.ExpiracaoBoleto,
		ComprovantePagamento: m.ComprovantePagamento,
		Resposabilidade:      string(m.Liability),
		ExpiracaoIndicacao:   m.ExpiracaoIndicacao,
		StatusIndicacao:      nullIndicacao(m.StatusIndicacao),
		Notas:                m.Notas,
	}
}
