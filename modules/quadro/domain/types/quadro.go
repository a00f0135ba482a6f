package types

// Funcionario is one row of the relatorio_oris snapshot. The raw date and
// hours columns come through as text and are only coerced at the point of
// use; a value that fails coercion disqualifies the row from whatever is
// being computed, it never fails the load.
type Funcionario struct {
	Nome             string `json:"nome"`
	Cargo            string `json:"cargo"`
	CentroCusto      string `json:"centro_custo"`
	NomeFantasia     string `json:"nome_fantasia"`
	CargaHoraria     string `json:"carga_horaria_semanal"`
	Situacao         string `json:"situacao"`
	DtRescisao       string `json:"dt_rescisao"`
	DtInicioSituacao string `json:"dt_inicio_situacao"`
	// Older extracts name the status-change column differently; the first
	// parseable value wins.
	DtInicioSituacaoAlt string `json:"dt_inicio_situacao_alt"`
	DtSituacao          string `json:"dt_situacao"`
}

// Situation codes treated as "still on payroll" for headcount purposes.
const (
	SituacaoAtivo    = "01-ATIVO"
	SituacaoAtestado = "18-ATESTADO MÉDICO"
	SituacaoDemitido = "99-Demitido"
)

// TLPEntry is one row of the tlp snapshot (authorized headcount).
type TLPEntry struct {
	Contrato        string `json:"contrato"`
	Unidade         string `json:"unidade"`
	Cargo           string `json:"cargo"`
	CargaHoraria    string `json:"carga_hora"`
	QuantidadeIdeal int    `json:"quantidade_ideal"`
}

// Snapshot holds one fully refreshed load of both source tables. It is
// immutable for the duration of an operation and superseded wholesale by
// the next load.
type Snapshot struct {
	Relatorio []Funcionario
	TLP       []TLPEntry
}

// AnaliseTLP is the advisory gap assessment for one employee's staffing
// key. PodeAprovar is always true in the current policy: the numbers are
// context for a human decision, never a hard gate.
type AnaliseTLP struct {
	VagaPrevista         bool   `json:"vaga_prevista"`
	QuantidadeIdeal      int    `json:"quantidade_ideal"`
	QuantidadeIdealTotal int    `json:"quantidade_ideal_total"`
	QuantidadeAtual      int    `json:"quantidade_atual"`
	QuantidadeMesmaCarga int    `json:"quantidade_atual_mesma_carga"`
	Deficit              int    `json:"deficit"`
	PodeAprovar          bool   `json:"pode_aprovar"`
	Motivo               string `json:"motivo"`
	Observacao           string `json:"observacao"`
}

// DeficitRow is one line of the deficit board: the plan for a
// (unidade, cargo, carga horária) key joined against the roster.
type DeficitRow struct {
	Unidade       string `json:"centro_custo"`
	Cargo         string `json:"cargo"`
	CargaHoraria  string `json:"carga_horaria_semanal"`
	QtdNecessaria int    `json:"qtd_necessaria"`
	QtdAtivos     int    `json:"qtd_ativos"`
	QtdAfastados  int    `json:"qtd_afastados"`
	Deficit       int    `json:"deficit"`
	Excedente     int    `json:"excedente"`
	Contratar     int    `json:"contratar"`
}
