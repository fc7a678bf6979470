package store

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// MultaRow represents the '"Multas"' table. Column names keep the spreadsheet headers the
// table was first imported from, including the misspelled "Resposabilidade".
type MultaRow struct {
	ID                   int64          `db:"id"`
	AutoInfracao         string         `db:"Auto_Infracao"`
	Veiculo              string         `db:"Veiculo"`
	Motorista            string         `db:"Motorista"`
	DataCometimento      string         `db:"Data_Cometimento"`
	HoraCometimento      string         `db:"Hora_Cometimento"`
	Descricao            string         `db:"Descricao"`
	CodigoInfracao       sql.NullInt64  `db:"Codigo_Infracao"`
	Valor                string         `db:"Valor"`
	ValorBoleto          string         `db:"Valor_Boleto"`
	Estado               string         `db:"Estado"`
	StatusBoleto         string         `db:"Status_Boleto"`
	Boleto               string         `db:"Boleto"`
	Consulta             string         `db:"Consulta"`
	ExpiracaoBoleto      string         `db:"Expiracao_Boleto"`
	ComprovantePagamento string         `db:"Comprovante_Pagamento"`
	Resposabilidade      string         `db:"Resposabilidade"`
	ExpiracaoIndicacao   string         `db:"Expiracao_Indicacao"`
	StatusIndicacao      sql.NullString `db:"Status_Indicacao"`
	Notas                string         `db:"Notas"`
}

// ActivityLog represents the 'activity_logs' table.
type ActivityLog struct {
	ID                int64              `db:"id" json:"id"`
	UserID            string             `db:"user_id" json:"user_id"`
	UserName          string             `db:"user_name" json:"user_name"`
	UserRole          string             `db:"user_role" json:"user_role"`
	Action            string             `db:"action" json:"action"`
	EntityType        string             `db:"entity_type" json:"entity_type"`
	EntityID          *int64             `db:"entity_id" json:"entity_id"`
	EntityDescription *string            `db:"entity_description" json:"entity_description"`
	Details           types.NullJSONText `db:"details" json:"details"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
}

type LogUser struct {
	UserID   string `db:"user_id" json:"user_id"`
	UserName string `db:"user_name" json:"user_name"`
}

// User represents the 'usuarios' table.
type User struct {
	ID        int64  `db:"id"`
	Nome      string `db:"nome"`
	Usuario   string `db:"usuario"`
	SenhaHash string `db:"senha_hash"`
	Role      string `db:"role"`
}

// ImportHistory represents the 'import_history' table: one row per spreadsheet import.
type ImportHistory struct {
	ID          int64     `db:"id" json:"id"`
	SourceFile  string    `db:"source_file" json:"source_file"`
	TriggerType string    `db:"trigger_type" json:"trigger_type"`
	Status      string    `db:"status" json:"status"`
	TotalRows   int       `db:"total_rows" json:"total_rows"`
	Imported    int       `db:"imported" json:"imported"`
	Skipped     int       `db:"skipped" json:"skipped"`
	Failed      int       `db:"failed" json:"failed"`
	ProcessedAt time.Time `db:"processed_at" json:"processed_at"`
}
