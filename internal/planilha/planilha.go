// Package planilha reads the fleet's multas spreadsheet (exported as CSV) into create
// inputs for the multas service.
package planilha

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/farxc/frota-multas/internal/multas"
)

type Encoding string

const (
	EncodingUTF8        Encoding = "utf8"
	EncodingWindows1252 Encoding = "windows1252"
)

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "", "utf8":
		return EncodingUTF8, nil
	case "windows1252", "cp1252", "latin1":
		return EncodingWindows1252, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", s)
}

type Options struct {
	Delimiter rune
	Encoding  Encoding
}

// Row is one spreadsheet line. Line counts from 2, the header being line 1.
type Row struct {
	Line  int
	Input multas.Input
}

// columns lists the accepted headers of each field. The first one is the table column name.
var columns = []struct {
	headers []string
	set     func(in *multas.Input, v string)
}{
	{[]string{"Auto_Infracao", "Auto de Infração", "Auto"}, func(in *multas.Input, v string) { in.AutoInfracao = v }},
	{[]string{"Veiculo", "Veículo", "Placa"}, func(in *multas.Input, v string) { in.Veiculo = v }},
	{[]string{"Motorista", "Condutor"}, func(in *multas.Input, v string) { in.Motorista = v }},
	{[]string{"Data_Cometimento", "Data"}, func(in *multas.Input, v string) { in.DataCometimento = v }},
	{[]string{"Hora_Cometimento", "Hora"}, func(in *multas.Input, v string) { in.HoraCometimento = v }},
	{[]string{"Descricao", "Descrição"}, func(in *multas.Input, v string) { in.Descricao = v }},
	{[]string{"Codigo_Infracao", "Código"}, func(in *multas.Input, v string) { in.CodigoInfracao = v }},
	{[]string{"Valor"}, func(in *multas.Input, v string) { in.Valor = v }},
	{[]string{"Valor_Boleto", "Valor do Boleto"}, func(in *multas.Input, v string) { in.ValorBoleto = v }},
	{[]string{"Estado", "UF"}, func(in *multas.Input, v string) { in.Estado = v }},
	{[]string{"Boleto"}, func(in *multas.Input, v string) { in.Boleto = v }},
	{[]string{"Consulta"}, func(in *multas.Input, v string) { in.Consulta = v }},
	{[]string{"Expiracao_Boleto", "Vencimento"}, func(in *multas.Input, v string) { in.ExpiracaoBoleto = v }},
	{[]string{"Resposabilidade", "Responsabilidade"}, func(in *multas.Input, v string) { in.Resposabilidade = v }},
	{[]string{"Expiracao_Indicacao", "Prazo Indicação"}, func(in *multas.Input, v string) { in.ExpiracaoIndicacao = v }},
	{[]string{"Notas", "Observações"}, func(in *multas.Input, v string) { in.Notas = v }},
}

func decode(r io.Reader, enc Encoding) io.Reader {
	if enc == EncodingWindows1252 {
		return charmap.Windows1252.NewDecoder().Reader(r)
	}
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// Read parses the spreadsheet. Every cell is kept as text; validation is left to the
// service so that each bad line can be reported on its own.
func Read(r io.Reader, opts Options) ([]Row, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}

	df := dataframe.ReadCSV(decode(r, opts.Encoding),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
	)
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("read planilha: %w", err)
	}

	present := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		present[strings.ToLower(strings.TrimSpace(name))] = name
	}

	type binding struct {
		col string
		set func(*multas.Input, string)
	}
	var bindings []binding
	for i, c := range columns {
		found := false
		for _, h := range c.headers {
			if col, ok := present[strings.ToLower(h)]; ok {
				bindings = append(bindings, binding{col: col, set: c.set})
				found = true
				break
			}
		}
		if i == 0 && !found {
			return nil, fmt.Errorf("read planilha: missing %q column", c.headers[0])
		}
	}

	rows := make([]Row, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		var in multas.Input
		for _, b := range bindings {
			b.set(&in, cell(df, b.col, i))
		}
		if blank(in) {
			continue
		}
		rows = append(rows, Row{Line: i + 2, Input: in})
	}
	return rows, nil
}

func cell(df dataframe.DataFrame, col string, row int) string {
	e := df.Col(col).Elem(row)
	if e.IsNA() {
		return ""
	}
	return strings.TrimSpace(e.String())
}

func blank(in multas.Input) bool {
	return in == multas.Input{}
}
