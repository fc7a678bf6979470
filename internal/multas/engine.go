package multas

import "strings"

type BoletoInput struct {
	Paid      bool
	Completed bool
	Link      string
	DueDate   string
}

// DeriveBoletoStatus computes the slip status; first matching rule wins:
// completed, paid, overdue due date, slip link present, otherwise pending.
// Descontar is never produced here, only by transitions.
func DeriveBoletoStatus(in BoletoInput, today Date) BoletoStatus {
	if in.Completed {
		return BoletoConcluido
	}
	if in.Paid {
		return BoletoPago
	}
	if due, ok := ParseDate(in.DueDate); ok && due.Before(today) {
		return BoletoVencido
	}
	if strings.TrimSpace(in.Link) != "" {
		return BoletoDisponivel
	}
	return BoletoPendente
}

type IndicacaoInput struct {
	Indicated bool
	Deadline  string
}

// DeriveIndicacaoStatus returns IndicacaoNone when there is no deadline to meet.
// A deadline equal to today is still open. Recusado is never produced here.
func DeriveIndicacaoStatus(in IndicacaoInput, today Date) IndicacaoStatus {
	if in.Indicated {
		return IndicacaoIndicado
	}
	if strings.TrimSpace(in.Deadline) == "" {
		return IndicacaoNone
	}
	if deadline, ok := ParseDate(in.Deadline); ok && deadline.Before(today) {
		return IndicacaoExpirado
	}
	return IndicacaoFaltandoIndicar
}

// Recompute refreshes the derived statuses of a freshly loaded record. Protected statuses
// are left alone and records that are not the driver's never carry an indication status.
func Recompute(m Multa, today Date) Multa {
	if !m.StatusBoleto.Protected() {
		m.StatusBoleto = DeriveBoletoStatus(BoletoInput{
			Link:    m.Boleto,
			DueDate: m.ExpiracaoBoleto,
		}, today)
	}

	switch {
	case m.Liability != LiabilityMotorista:
		m.StatusIndicacao = IndicacaoNone
	case m.StatusIndicacao.Protected():
	default:
		m.StatusIndicacao = DeriveIndicacaoStatus(IndicacaoInput{Deadline: m.ExpiracaoIndicacao}, today)
	}
	return m
}

// RecomputeAll applies Recompute to every record, returning a new slice.
func RecomputeAll(records []Multa, today Date) []Multa {
	out := make([]Multa, len(records))
	for i, m := range records {
		out[i] = Recompute(m, today)
	}
	return out
}
