package multas

import "strings"

// BoletoStatus is the payment-slip lifecycle state of a multa.
type BoletoStatus string

const (
	BoletoUnknown    BoletoStatus = ""
	BoletoPendente   BoletoStatus = "Pendente"
	BoletoDisponivel BoletoStatus = "Disponível"
	BoletoPago       BoletoStatus = "Pago"
	BoletoVencido    BoletoStatus = "Vencido"
	BoletoConcluido  BoletoStatus = "Concluído"
	// BoletoDescontar means the slip was paid and now waits for payroll deduction from the driver.
	BoletoDescontar BoletoStatus = "Descontar"
)

var boletoStatuses = []BoletoStatus{
	BoletoPendente,
	BoletoDisponivel,
	BoletoPago,
	BoletoVencido,
	BoletoConcluido,
	BoletoDescontar,
}

var boletoAliases = map[string]BoletoStatus{
	"disponivel": BoletoDisponivel,
	"concluido":  BoletoConcluido,
}

// ParseBoletoStatus normalizes a stored status. Unknown strings map to BoletoUnknown.
func ParseBoletoStatus(s string) (BoletoStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range boletoStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	if st, ok := boletoAliases[strings.ToLower(s)]; ok {
		return st, true
	}
	return BoletoUnknown, false
}

// Protected statuses are driven by manual transitions and survive the reload recompute.
func (s BoletoStatus) Protected() bool {
	switch s {
	case BoletoConcluido, BoletoDescontar, BoletoPago:
		return true
	}
	return false
}

// IndicacaoStatus tracks the indication of the real offender to SENATRAN.
type IndicacaoStatus string

const (
	IndicacaoNone            IndicacaoStatus = ""
	IndicacaoFaltandoIndicar IndicacaoStatus = "Faltando Indicar"
	IndicacaoIndicado        IndicacaoStatus = "Indicado"
	IndicacaoExpirado        IndicacaoStatus = "Indicar Expirado"
	IndicacaoRecusado        IndicacaoStatus = "Recusado"
)

var indicacaoStatuses = []IndicacaoStatus{
	IndicacaoFaltandoIndicar,
	IndicacaoIndicado,
	IndicacaoExpirado,
	IndicacaoRecusado,
}

func ParseIndicacaoStatus(s string) (IndicacaoStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range indicacaoStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return IndicacaoNone, false
}

// Protected indication statuses are only left through an explicit undo.
func (s IndicacaoStatus) Protected() bool {
	return s == IndicacaoIndicado || s == IndicacaoRecusado
}

// Liability says who pays the fine in the end.
type Liability string

const (
	LiabilityUnknown   Liability = ""
	LiabilityEmpresa   Liability = "Empresa"
	LiabilityMotorista Liability = "Motorista"
)

// ParseLiability is the single normalization point for the free-text liability column.
func ParseLiability(s string) Liability {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empresa":
		return LiabilityEmpresa
	case "motorista":
		return LiabilityMotorista
	}
	return LiabilityUnknown
}
