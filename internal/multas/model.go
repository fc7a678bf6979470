package multas

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Multa is a traffic violation of a fleet vehicle.
type Multa struct {
	ID                   int64           `json:"id"`
	AutoInfracao         string          `json:"Auto_Infracao"`
	Veiculo              string          `json:"Veiculo"`
	Motorista            string          `json:"Motorista"`
	DataCometimento      string          `json:"Data_Cometimento"`
	HoraCometimento      string          `json:"Hora_Cometimento"`
	Descricao            string          `json:"Descricao"`
	CodigoInfracao       int             `json:"Codigo_Infracao,omitempty"`
	Valor                decimal.Decimal `json:"Valor"`
	ValorBoleto          decimal.Decimal `json:"Valor_Boleto"`
	Estado               string          `json:"Estado"`
	StatusBoleto         BoletoStatus    `json:"Status_Boleto"`
	Boleto               string          `json:"Boleto"`
	Consulta             string          `json:"Consulta"`
	ExpiracaoBoleto      string          `json:"Expiracao_Boleto"`
	ComprovantePagamento string          `json:"Comprovante_Pagamento,omitempty"`
	Liability            Liability       `json:"Resposabilidade"`
	ExpiracaoIndicacao   string          `json:"Expiracao_Indicacao,omitempty"`
	StatusIndicacao      IndicacaoStatus `json:"Status_Indicacao,omitempty"`
	Notas                string          `json:"Notas"`
}

// Label identifies a multa in activity entries: "<vehicle> - <auto>".
func (m Multa) Label() string {
	return m.Veiculo + " - " + m.AutoInfracao
}

// Patch is a partial update; nil fields are left untouched by the store.
type Patch struct {
	StatusBoleto         *BoletoStatus
	StatusIndicacao      *IndicacaoStatus
	ComprovantePagamento *string
}

func (p Patch) Empty() bool {
	return p.StatusBoleto == nil && p.StatusIndicacao == nil && p.ComprovantePagamento == nil
}

// RecordStore is the remote table of multas. Filtering happens in-process.
type RecordStore interface {
	List(ctx context.Context) ([]Multa, error)
	ExistsAutoInfracao(ctx context.Context, auto string) (bool, error)
	Insert(ctx context.Context, m *Multa) error
	Replace(ctx context.Context, m Multa) error
	Patch(ctx context.Context, id int64, p Patch) error
	Delete(ctx context.Context, id int64) error
}

// Input carries the editable fields of the create and edit forms, as typed by the user.
type Input struct {
	AutoInfracao       string `json:"Auto_Infracao"`
	Veiculo            string `json:"Veiculo"`
	Motorista          string `json:"Motorista"`
	DataCometimento    string `json:"Data_Cometimento"`
	HoraCometimento    string `json:"Hora_Cometimento"`
	Descricao          string `json:"Descricao"`
	CodigoInfracao     string `json:"Codigo_Infracao"`
	Valor              string `json:"Valor"`
	ValorBoleto        string `json:"Valor_Boleto"`
	Estado             string `json:"Estado"`
	Boleto             string `json:"Boleto"`
	Consulta           string `json:"Consulta"`
	ExpiracaoBoleto    string `json:"Expiracao_Boleto"`
	Resposabilidade    string `json:"Resposabilidade"`
	ExpiracaoIndicacao string `json:"Expiracao_Indicacao"`
	Notas              string `json:"Notas"`
}

// Validate checks the fields a record cannot be stored without.
func (in Input) Validate() error {
	if strings.TrimSpace(in.AutoInfracao) == "" {
		return ErrValidation.WithMessage("Auto de Infração é obrigatório")
	}
	if ParseLiability(in.Resposabilidade) == LiabilityUnknown {
		return ErrValidation.WithMessagef("responsabilidade inválida: %q", in.Resposabilidade)
	}
	if !ValidAmount(in.Valor) {
		return ErrValidation.WithMessagef("valor inválido: %q", in.Valor)
	}
	if !ValidAmount(in.ValorBoleto) {
		return ErrValidation.WithMessagef("valor do boleto inválido: %q", in.ValorBoleto)
	}
	if c := strings.TrimSpace(in.CodigoInfracao); c != "" {
		if _, err := strconv.Atoi(c); err != nil {
			return ErrValidation.WithMessagef("código de infração inválido: %q", in.CodigoInfracao)
		}
	}
	dates := []struct{ field, value string }{
		{"data de cometimento", in.DataCometimento},
		{"vencimento do boleto", in.ExpiracaoBoleto},
		{"prazo de indicação", in.ExpiracaoIndicacao},
	}
	for _, d := range dates {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		if _, ok := ParseDate(d.value); !ok {
			return ErrValidation.WithMessagef("%s inválida: %q (esperado DD/MM/AAAA)", d.field, d.value)
		}
	}
	return nil
}

// apply copies the editable fields onto m. Derived statuses are left to the caller.
func (in Input) apply(m *Multa) {
	m.AutoInfracao = strings.TrimSpace(in.AutoInfracao)
	m.Veiculo = strings.TrimSpace(in.Veiculo)
	m.Motorista = strings.TrimSpace(in.Motorista)
	m.DataCometimento = strings.TrimSpace(in.DataCometimento)
	m.HoraCometimento = strings.TrimSpace(in.HoraCometimento)
	m.Descricao = strings.TrimSpace(in.Descricao)
	m.CodigoInfracao = 0
	if c, err := strconv.Atoi(strings.TrimSpace(in.CodigoInfracao)); err == nil {
		m.CodigoInfracao = c
	}
	m.Valor = ParseAmount(in.Valor)
	m.ValorBoleto = ParseAmount(in.ValorBoleto)
	m.Estado = strings.ToUpper(strings.TrimSpace(in.Estado))
	m.Boleto = strings.TrimSpace(in.Boleto)
	m.Consulta = strings.TrimSpace(in.Consulta)
	m.ExpiracaoBoleto = strings.TrimSpace(in.ExpiracaoBoleto)
	m.Liability = ParseLiability(in.Resposabilidade)
	m.ExpiracaoIndicacao = strings.TrimSpace(in.ExpiracaoIndicacao)
	m.Notas = in.Notas
}
