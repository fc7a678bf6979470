package multas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []Multa {
	return []Multa{
		{ID: 1, Veiculo: "ABC1D23", Motorista: "João", StatusBoleto: BoletoPendente, Valor: ParseAmount("100,00"), ValorBoleto: ParseAmount("80,00"), ExpiracaoBoleto: today.AddDays(2).String()},
		{ID: 2, Veiculo: "ABC1D23", Motorista: "Maria", StatusBoleto: BoletoDisponivel, Valor: ParseAmount("200,00"), ValorBoleto: ParseAmount("160,00"), ExpiracaoBoleto: today.AddDays(5).String()},
		{ID: 3, Veiculo: "XYZ9K87", StatusBoleto: BoletoVencido, Valor: ParseAmount("50,00"), ValorBoleto: ParseAmount("40,00"), ExpiracaoBoleto: today.AddDays(-3).String()},
		{ID: 4, Veiculo: "XYZ9K87", StatusBoleto: BoletoDescontar, Liability: LiabilityMotorista, Valor: ParseAmount("10,00")},
		{ID: 5, StatusBoleto: BoletoConcluido, Liability: LiabilityMotorista, Valor: ParseAmount("20,00")},
		{ID: 6, StatusBoleto: BoletoConcluido, Liability: LiabilityEmpresa, Valor: ParseAmount("30,00")},
		{ID: 7, StatusBoleto: BoletoDisponivel, Liability: LiabilityMotorista, StatusIndicacao: IndicacaoFaltandoIndicar, ExpiracaoBoleto: "sem data"},
	}
}

func ids(records []Multa) []int64 {
	out := make([]int64, len(records))
	for i, m := range records {
		out[i] = m.ID
	}
	return out
}

func TestFinanceiroNeverSeesPendente(t *testing.T) {
	agg := NewAggregator(fixture(), RoleFinanceiro, today)

	for _, v := range []View{ViewRecentes, ViewPendentes, ViewDisponiveis, ViewVencimento, ViewTodas, View("x")} {
		for _, m := range agg.Select(v) {
			assert.NotEqual(t, BoletoPendente, m.StatusBoleto, "view %s", v)
		}
	}

	stats := agg.Stats()
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 0, stats.Pendentes.Count)
	assert.True(t, stats.ValorPendente.IsZero())
	assert.Equal(t, []int64{2}, ids(agg.DueSoon()))
}

func TestDueSoonOrderedByDueDate(t *testing.T) {
	records := []Multa{
		{ID: 1, StatusBoleto: BoletoDisponivel, ExpiracaoBoleto: today.AddDays(5).String()},
		{ID: 2, StatusBoleto: BoletoPendente, ExpiracaoBoleto: today.AddDays(1).String()},
		{ID: 3, StatusBoleto: BoletoDisponivel, ExpiracaoBoleto: today.AddDays(7).String()},
		{ID: 4, StatusBoleto: BoletoDisponivel, ExpiracaoBoleto: today.AddDays(8).String()},
		{ID: 5, StatusBoleto: BoletoDisponivel, ExpiracaoBoleto: today.String()},
		{ID: 6, StatusBoleto: BoletoVencido, ExpiracaoBoleto: today.AddDays(2).String()},
		{ID: 7, StatusBoleto: BoletoDisponivel, ExpiracaoBoleto: "invalid"},
	}

	got := NewAggregator(records, RoleAdmin, today).DueSoon()
	assert.Equal(t, []int64{5, 2, 1, 3}, ids(got))
}

func TestRecentesByDescendingID(t *testing.T) {
	var records []Multa
	for i := int64(1); i <= 25; i++ {
		records = append(records, Multa{ID: i, StatusBoleto: BoletoDisponivel})
	}

	agg := NewAggregator(records, RoleAdmin, today)
	recent := agg.Recentes()
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, int64(25), recent[0].ID)
	assert.Equal(t, int64(6), recent[RecentLimit-1].ID)
	assert.Equal(t, RecentLimit, agg.Stats().Recentes)
}

func TestSelectIsRoleConditioned(t *testing.T) {
	admin := NewAggregator(fixture(), RoleAdmin, today)
	rh := NewAggregator(fixture(), RoleRH, today)

	assert.Equal(t, []int64{5, 6}, ids(admin.Select(ViewConcluidas)))
	assert.Equal(t, []int64{5}, ids(rh.Select(ViewConcluidas)))

	assert.Len(t, admin.Select(ViewTodas), 7)
	assert.Equal(t, []int64{4, 5}, ids(rh.Select(ViewTodas)))

	assert.Equal(t, []int64{4}, ids(rh.Select(ViewPagasMotorista)))
	assert.Len(t, admin.Select(View("desconhecida")), 7)
	assert.Equal(t, []int64{4, 5}, ids(rh.Select(View("desconhecida"))))
	assert.Equal(t, []int64{3}, ids(admin.Select(ViewVencidas)))
}

func TestCountsFollowMenu(t *testing.T) {
	rh := NewAggregator(fixture(), RoleRH, today).Counts()
	assert.Equal(t, map[View]int{
		ViewPagasMotorista: 1,
		ViewConcluidas:     1,
		ViewTodas:          2,
	}, rh)

	admin := NewAggregator(fixture(), RoleAdmin, today).Counts()
	assert.Equal(t, 1, admin[ViewPendentes])
	assert.Equal(t, 2, admin[ViewDisponiveis])
	assert.Equal(t, 2, admin[ViewVencimento])
	assert.Equal(t, 7, admin[ViewTodas])
	assert.NotContains(t, admin, ViewDashboard)
}

func TestStatsSums(t *testing.T) {
	stats := NewAggregator(fixture(), RoleAdmin, today).Stats()

	assert.Equal(t, 7, stats.Total)
	assert.True(t, decimal.RequireFromString("410").Equal(stats.ValorTotal), stats.ValorTotal.String())
	assert.True(t, decimal.RequireFromString("160").Equal(stats.ValorBoletoTotal))
	assert.True(t, decimal.RequireFromString("80").Equal(stats.ValorPendente))
	assert.True(t, decimal.RequireFromString("300").Equal(stats.ValorMultaVencimento))
	assert.True(t, decimal.RequireFromString("240").Equal(stats.ValorBoletoVencimento))
	assert.Equal(t, 1, stats.ConcluidosMotorista.Count)
	assert.Equal(t, 1, stats.FaltandoIndicar.Count)
	assert.Equal(t, 2, stats.ProximoVencimento.Count)
}

func TestFilter(t *testing.T) {
	records := []Multa{
		{ID: 1, Veiculo: "ABC1D23", Motorista: "JOSÉ", StatusBoleto: BoletoDisponivel},
		{ID: 2, Descricao: "Excesso de velocidade", CodigoInfracao: 74550, StatusBoleto: BoletoVencido},
		{ID: 3, AutoInfracao: "S012345678", StatusBoleto: BoletoDisponivel},
	}

	assert.Equal(t, []int64{1}, ids(Filter(records, ListFilter{Search: "josé"})))
	assert.Equal(t, []int64{1}, ids(Filter(records, ListFilter{Search: "abc1"})))
	assert.Equal(t, []int64{2}, ids(Filter(records, ListFilter{Search: "VELOCIDADE"})))
	assert.Equal(t, []int64{2}, ids(Filter(records, ListFilter{Search: "7455"})))
	assert.Equal(t, []int64{3}, ids(Filter(records, ListFilter{Search: "s0123"})))
	assert.Equal(t, []int64{1, 3}, ids(Filter(records, ListFilter{Status: "Disponível"})))
	assert.Len(t, Filter(records, ListFilter{Status: "todos"}), 3)
	assert.Empty(t, Filter(records, ListFilter{Status: "Pago"}))
	assert.Empty(t, Filter(records, ListFilter{Search: "abc", Status: "Vencido"}))
}

func TestTotalsOf(t *testing.T) {
	totals := TotalsOf(fixture()[:2])
	assert.Equal(t, 2, totals.Quantidade)
	assert.True(t, decimal.RequireFromString("300").Equal(totals.ValorMultas))
	assert.True(t, decimal.RequireFromString("240").Equal(totals.ValorBoletos))
}

func TestMenuFor(t *testing.T) {
	assert.NotContains(t, MenuFor(RoleFinanceiro), ViewPendentes)
	assert.Equal(t, []View{ViewDashboard, ViewPagasMotorista, ViewConcluidas, ViewTodas}, MenuFor(RoleRH))
	assert.Empty(t, MenuFor(Role("x")))
}

func TestOffers(t *testing.T) {
	assert.True(t, Offers(RoleAdmin, ViewPendentes))
	assert.False(t, Offers(RoleFinanceiro, ViewPendentes))
	assert.False(t, Offers(RoleRH, ViewPendentes))
	assert.False(t, Offers(RoleRH, ViewVencidas))
	assert.True(t, Offers(RoleRH, ViewTodas))
	assert.False(t, Offers(Role("x"), ViewTodas))

	assert.True(t, ViewVencimento.Known())
	assert.False(t, View("desconhecida").Known())
}
