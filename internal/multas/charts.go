package multas

import (
	"sort"
	"strings"
)

// Period restricts chart data to records committed on or after a start day.
type Period string

const (
	PeriodWeek     Period = "week"
	PeriodMonth    Period = "month"
	PeriodQuarter  Period = "quarter"
	PeriodSemester Period = "semester"
	PeriodYear     Period = "year"
	PeriodAll      Period = "all"
)

func ParsePeriod(s string) (Period, bool) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodSemester, PeriodYear, PeriodAll:
		return p, true
	case "":
		return PeriodAll, true
	}
	return "", false
}

// Start returns the first day of the period and false for PeriodAll.
func (p Period) Start(today Date) (Date, bool) {
	switch p {
	case PeriodWeek:
		return today.AddDays(-7), true
	case PeriodMonth:
		return today.AddMonths(-1), true
	case PeriodQuarter:
		return today.AddMonths(-3), true
	case PeriodSemester:
		return today.AddMonths(-6), true
	case PeriodYear:
		return today.AddMonths(-12), true
	}
	return Date{}, false
}

// InPeriod keeps the records committed inside p. Outside PeriodAll, records without a
// readable commission date are dropped.
func InPeriod(records []Multa, p Period, today Date) []Multa {
	start, bounded := p.Start(today)
	if !bounded {
		return records
	}
	return filter(records, func(m Multa) bool {
		d, ok := ParseDate(m.DataCometimento)
		return ok && !d.Before(start)
	})
}

const (
	DefaultTopVehicles     = 10
	DefaultTopDescriptions = 8

	OthersLabel        = "Outros"
	OtherStatusLabel   = "Outro"
	NoDescriptionLabel = "Sem descrição"
)

// Tally is one bar or slice of a chart.
type Tally struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartOptions struct {
	Period Period
	// TopVehicles bounds the vehicle ranking; the remainder is folded into "Outros".
	TopVehicles     int
	TopDescriptions int
	// IgnoredVehicles are plates left out of the vehicle ranking (pool cars, test plates).
	IgnoredVehicles []string
}

type Charts struct {
	Period              Period         `json:"period"`
	Total               int            `json:"total"`
	PorMes              map[string]int `json:"por_mes"`
	PorVeiculo          map[string]int `json:"por_veiculo"`
	TopVeiculos         []Tally        `json:"top_veiculos"`
	TotalVeiculos       int            `json:"total_veiculos"`
	PorStatus           map[string]int `json:"por_status"`
	PorResponsabilidade []Tally        `json:"por_responsabilidade"`
	PorDescricao        []Tally        `json:"por_descricao"`
}

// Charts tallies the visible records committed inside opts.Period.
func (a *Aggregator) Charts(opts ChartOptions) Charts {
	if opts.Period == "" {
		opts.Period = PeriodAll
	}
	if opts.TopVehicles <= 0 {
		opts.TopVehicles = DefaultTopVehicles
	}
	if opts.TopDescriptions <= 0 {
		opts.TopDescriptions = DefaultTopDescriptions
	}

	records := InPeriod(a.visible, opts.Period, a.today)

	c := Charts{
		Period:     opts.Period,
		Total:      len(records),
		PorMes:     make(map[string]int),
		PorVeiculo: make(map[string]int),
		PorStatus:  make(map[string]int),
	}

	ignored := make(map[string]bool, len(opts.IgnoredVehicles))
	for _, v := range opts.IgnoredVehicles {
		ignored[strings.ToUpper(strings.TrimSpace(v))] = true
	}

	descriptions := make(map[string]int)
	var motorista, empresa int

	for _, m := range records {
		if d, ok := ParseDate(m.DataCometimento); ok {
			c.PorMes[d.MonthKey()]++
		}

		if m.Veiculo != "" && !ignored[strings.ToUpper(m.Veiculo)] {
			c.PorVeiculo[m.Veiculo]++
		}

		status := string(m.StatusBoleto)
		if status == "" {
			status = OtherStatusLabel
		}
		c.PorStatus[status]++

		switch m.Liability {
		case LiabilityMotorista:
			motorista++
		case LiabilityEmpresa:
			empresa++
		}

		desc := m.Descricao
		if desc == "" {
			desc = NoDescriptionLabel
		}
		descriptions[desc]++
	}

	ranked := rank(c.PorVeiculo)
	c.TotalVeiculos = len(ranked)
	c.TopVeiculos = foldOthers(ranked, opts.TopVehicles)

	for _, t := range []Tally{{string(LiabilityMotorista), motorista}, {string(LiabilityEmpresa), empresa}} {
		if t.Value > 0 {
			c.PorResponsabilidade = append(c.PorResponsabilidade, t)
		}
	}

	c.PorDescricao = rank(descriptions)
	if len(c.PorDescricao) > opts.TopDescriptions {
		c.PorDescricao = c.PorDescricao[:opts.TopDescriptions]
	}

	return c
}

// rank orders a tally map by count descending, then by name.
func rank(counts map[string]int) []Tally {
	out := make([]Tally, 0, len(counts))
	for name, n := range counts {
		out = append(out, Tally{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func foldOthers(ranked []Tally, top int) []Tally {
	if len(ranked) <= top {
		return ranked
	}
	out := make([]Tally, top, top+1)
	copy(out, ranked[:top])
	rest := Tally{Name: OthersLabel}
	for _, t := range ranked[top:] {
		rest.Value += t.Value
	}
	return append(out, rest)
}
