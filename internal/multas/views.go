package multas

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// View is a named tab of the dashboard.
type View string

const (
	ViewDashboard      View = "dashboard"
	ViewRecentes       View = "recentes"
	ViewPendentes      View = "pendentes"
	ViewDisponiveis    View = "disponiveis"
	ViewPagasMotorista View = "pagas-motorista"
	ViewConcluidas     View = "concluidas"
	ViewVencidas       View = "vencidas"
	ViewVencimento     View = "vencimento"
	ViewTodas          View = "todas"
)

const (
	RecentLimit = 20
	DueSoonDays = 7
)

var roleMenus = map[Role][]View{
	RoleAdmin: {
		ViewDashboard, ViewRecentes, ViewPendentes, ViewDisponiveis, ViewPagasMotorista,
		ViewConcluidas, ViewVencidas, ViewVencimento, ViewTodas,
	},
	RoleFinanceiro: {
		ViewDashboard, ViewRecentes, ViewDisponiveis, ViewPagasMotorista,
		ViewConcluidas, ViewVencidas, ViewVencimento, ViewTodas,
	},
	RoleRH: {
		ViewDashboard, ViewPagasMotorista, ViewConcluidas, ViewTodas,
	},
}

// MenuFor lists the tabs offered to role, in display order.
func MenuFor(role Role) []View {
	return roleMenus[role]
}

// Known reports whether v names a dashboard tab.
func (v View) Known() bool {
	return Offers(RoleAdmin, v)
}

// Offers reports whether v is in role's menu.
func Offers(role Role, v View) bool {
	for _, m := range roleMenus[role] {
		if m == v {
			return true
		}
	}
	return false
}

// Visible applies the base role filter: financeiro never sees pending slips.
func Visible(records []Multa, role Role) []Multa {
	if role != RoleFinanceiro {
		out := make([]Multa, len(records))
		copy(out, records)
		return out
	}
	return filter(records, func(m Multa) bool { return m.StatusBoleto != BoletoPendente })
}

func filter(records []Multa, keep func(Multa) bool) []Multa {
	out := make([]Multa, 0, len(records))
	for _, m := range records {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func withBoleto(s BoletoStatus) func(Multa) bool {
	return func(m Multa) bool { return m.StatusBoleto == s }
}

func withIndicacao(s IndicacaoStatus) func(Multa) bool {
	return func(m Multa) bool { return m.StatusIndicacao == s }
}

func concludedForDriver(m Multa) bool {
	return m.StatusBoleto == BoletoConcluido && m.Liability == LiabilityMotorista
}

// Aggregator derives the named subsets, statistics and chart tallies of one role's
// view of the record set.
type Aggregator struct {
	role    Role
	today   Date
	visible []Multa
}

func NewAggregator(records []Multa, role Role, today Date) *Aggregator {
	return &Aggregator{
		role:    role,
		today:   today,
		visible: Visible(records, role),
	}
}

func (a *Aggregator) All() []Multa { return a.visible }

func (a *Aggregator) Pendentes() []Multa { return filter(a.visible, withBoleto(BoletoPendente)) }

func (a *Aggregator) Disponiveis() []Multa { return filter(a.visible, withBoleto(BoletoDisponivel)) }

func (a *Aggregator) Concluidas() []Multa { return filter(a.visible, withBoleto(BoletoConcluido)) }

func (a *Aggregator) ConcluidasMotorista() []Multa { return filter(a.visible, concludedForDriver) }

// Descontar holds the slips already paid that wait for payroll deduction.
func (a *Aggregator) Descontar() []Multa { return filter(a.visible, withBoleto(BoletoDescontar)) }

func (a *Aggregator) Vencidas() []Multa { return filter(a.visible, withBoleto(BoletoVencido)) }

func (a *Aggregator) FaltandoIndicar() []Multa {
	return filter(a.visible, withIndicacao(IndicacaoFaltandoIndicar))
}

func (a *Aggregator) IndicacaoExpirada() []Multa {
	return filter(a.visible, withIndicacao(IndicacaoExpirado))
}

func (a *Aggregator) Indicadas() []Multa { return filter(a.visible, withIndicacao(IndicacaoIndicado)) }

func (a *Aggregator) Recusadas() []Multa { return filter(a.visible, withIndicacao(IndicacaoRecusado)) }

// DueSoon returns unpaid slips due within DueSoonDays, earliest first. Records without a
// readable due date are left out.
func (a *Aggregator) DueSoon() []Multa {
	type dated struct {
		m   Multa
		due Date
	}
	var due []dated
	for _, m := range a.visible {
		if m.StatusBoleto != BoletoPendente && m.StatusBoleto != BoletoDisponivel {
			continue
		}
		d, ok := ParseDate(m.ExpiracaoBoleto)
		if !ok {
			continue
		}
		days := a.today.DaysUntil(d)
		if days < 0 || days > DueSoonDays {
			continue
		}
		due = append(due, dated{m: m, due: d})
	}

	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })

	out := make([]Multa, len(due))
	for i, d := range due {
		out[i] = d.m
	}
	return out
}

// Recentes approximates "latest registered" by descending id.
func (a *Aggregator) Recentes() []Multa {
	out := make([]Multa, len(a.visible))
	copy(out, a.visible)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}

// Select returns the rows of a tab. rh sees a narrower universe on the concluded and
// all-records tabs. Unknown views fall back to the all-records tab.
func (a *Aggregator) Select(v View) []Multa {
	switch v {
	case ViewRecentes:
		return a.Recentes()
	case ViewPendentes:
		return a.Pendentes()
	case ViewDisponiveis:
		return a.Disponiveis()
	case ViewPagasMotorista:
		return a.Descontar()
	case ViewConcluidas:
		if a.role == RoleRH {
			return a.ConcluidasMotorista()
		}
		return a.Concluidas()
	case ViewVencidas:
		return a.Vencidas()
	case ViewVencimento:
		return a.DueSoon()
	}
	if a.role == RoleRH {
		return filter(a.visible, func(m Multa) bool {
			return m.StatusBoleto == BoletoDescontar || concludedForDriver(m)
		})
	}
	return a.All()
}

// Counts returns the badge number of every tab in role's menu.
func (a *Aggregator) Counts() map[View]int {
	counts := make(map[View]int)
	for _, v := range MenuFor(a.role) {
		if v == ViewDashboard {
			continue
		}
		counts[v] = len(a.Select(v))
	}
	return counts
}

// Bucket is the size and money total of a subset.
type Bucket struct {
	Count       int             `json:"count"`
	Valor       decimal.Decimal `json:"valor"`
	ValorBoleto decimal.Decimal `json:"valor_boleto"`
}

func bucketOf(records []Multa) Bucket {
	return Bucket{
		Count:       len(records),
		Valor:       SumAmounts(records, func(m Multa) decimal.Decimal { return m.Valor }),
		ValorBoleto: SumAmounts(records, func(m Multa) decimal.Decimal { return m.ValorBoleto }),
	}
}

type Stats struct {
	Total               int    `json:"total"`
	Recentes            int    `json:"recentes"`
	Pendentes           Bucket `json:"pendentes"`
	Disponiveis         Bucket `json:"disponiveis"`
	Concluidos          Bucket `json:"concluidos"`
	ConcluidosMotorista Bucket `json:"concluidos_motorista"`
	Descontar           Bucket `json:"descontar"`
	Vencidos            Bucket `json:"vencidos"`
	ProximoVencimento   Bucket `json:"proximo_vencimento"`
	FaltandoIndicar     Bucket `json:"faltando_indicar"`
	IndicacaoExpirada   Bucket `json:"indicacao_expirada"`
	Indicadas           Bucket `json:"indicadas"`
	Recusadas           Bucket `json:"recusadas"`

	ValorTotal            decimal.Decimal `json:"valor_total"`
	ValorBoletoTotal      decimal.Decimal `json:"valor_boleto_total"`
	ValorPendente         decimal.Decimal `json:"valor_pendente"`
	ValorMultaVencimento  decimal.Decimal `json:"valor_multa_vencimento"`
	ValorBoletoVencimento decimal.Decimal `json:"valor_boleto_vencimento"`
}

func (a *Aggregator) Stats() Stats {
	all := bucketOf(a.visible)
	dueSoon := bucketOf(a.DueSoon())
	pendentes := bucketOf(a.Pendentes())
	disponiveis := bucketOf(a.Disponiveis())

	recent := len(a.visible)
	if recent > RecentLimit {
		recent = RecentLimit
	}

	return Stats{
		Total:               all.Count,
		Recentes:            recent,
		Pendentes:           pendentes,
		Disponiveis:         disponiveis,
		Concluidos:          bucketOf(a.Concluidas()),
		ConcluidosMotorista: bucketOf(a.ConcluidasMotorista()),
		Descontar:           bucketOf(a.Descontar()),
		Vencidos:            bucketOf(a.Vencidas()),
		ProximoVencimento:   dueSoon,
		FaltandoIndicar:     bucketOf(a.FaltandoIndicar()),
		IndicacaoExpirada:   bucketOf(a.IndicacaoExpirada()),
		Indicadas:           bucketOf(a.Indicadas()),
		Recusadas:           bucketOf(a.Recusadas()),

		ValorTotal:            all.Valor,
		ValorBoletoTotal:      disponiveis.ValorBoleto,
		ValorPendente:         pendentes.ValorBoleto,
		ValorMultaVencimento:  dueSoon.Valor,
		ValorBoletoVencimento: dueSoon.ValorBoleto,
	}
}

// ListFilter narrows a tab by free text and slip status. "todos" or "" means any status.
type ListFilter struct {
	Search string
	Status string
}

var folder = cases.Fold()

// Filter keeps the records matching f. The search term is matched case-insensitively
// against vehicle, driver, description, auto code and infraction code.
func Filter(records []Multa, f ListFilter) []Multa {
	term := folder.String(strings.TrimSpace(f.Search))

	status := strings.TrimSpace(f.Status)
	anyStatus := status == "" || strings.EqualFold(status, "todos")
	wanted, _ := ParseBoletoStatus(status)

	return filter(records, func(m Multa) bool {
		if !anyStatus && m.StatusBoleto != wanted {
			return false
		}
		if term == "" {
			return true
		}
		fields := []string{m.Veiculo, m.Motorista, m.Descricao, m.AutoInfracao}
		if m.CodigoInfracao != 0 {
			fields = append(fields, strconv.Itoa(m.CodigoInfracao))
		}
		for _, field := range fields {
			if strings.Contains(folder.String(field), term) {
				return true
			}
		}
		return false
	})
}

type Totals struct {
	Quantidade   int             `json:"quantidade"`
	ValorMultas  decimal.Decimal `json:"valor_multas"`
	ValorBoletos decimal.Decimal `json:"valor_boletos"`
}

func TotalsOf(records []Multa) Totals {
	b := bucketOf(records)
	return Totals{Quantidade: b.Count, ValorMultas: b.Valor, ValorBoletos: b.ValorBoleto}
}
