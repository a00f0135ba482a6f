package types

import (
	"time"

	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

const (
	StatusPendente  = "pendente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
	StatusCancelado = "cancelado"
)

const (
	TipoDemissao    = "demissao"
	TipoAfastamento = "afastamento"
)

// AvaliacaoTLP is the gap-assessment snapshot copied onto a vacancy record
// when it is created or decided. It is an audit value frozen at that
// moment, never recomputed against later snapshots.
type AvaliacaoTLP struct {
	QuantidadeIdeal int  `json:"quantidade_ideal"`
	QuantidadeAtual int  `json:"quantidade_atual"`
	Deficit         int  `json:"deficit"`
	VagaPrevista    bool `json:"vaga_prevista_tlp"`
}

// CandidateVaga is a termination or leave event detected in the roster,
// before any persistence. Origem keeps the source row so the gap
// calculator can run against it.
type CandidateVaga struct {
	Nome             string     `json:"nome"`
	Cargo            string     `json:"cargo"`
	CentroCusto      string     `json:"centro_custo"`
	NomeFantasia     string     `json:"nome_fantasia"`
	CargaHoraria     string     `json:"carga_horaria_semanal"`
	Situacao         string     `json:"situacao"`
	Tipo             string     `json:"tipo_vaga"`
	Motivo           string     `json:"motivo_vaga"`
	DataEvento       time.Time  `json:"data_evento"`
	DtRescisao       *time.Time `json:"dt_rescisao,omitempty"`
	DtInicioSituacao *time.Time `json:"dt_inicio_situacao,omitempty"`
	// Days on leave at detection time; a snapshot, not a live value.
	DiasAfastamento *int `json:"dias_afastamento,omitempty"`

	Origem quadrotypes.Funcionario `json:"-"`
}

// Vaga is the persisted vacancy record. Records are never deleted, only
// status-transitioned, so the table doubles as the audit trail.
type Vaga struct {
	ID               int64      `json:"id"`
	Nome             string     `json:"nome"`
	CentroCusto      string     `json:"centro_custo"`
	Cargo            string     `json:"cargo"`
	Situacao         string     `json:"situacao"`
	NomeFantasia     string     `json:"nome_fantasia"`
	CargaHoraria     string     `json:"carga_horaria_semanal"`
	DtInicioSituacao *time.Time `json:"dt_inicio_situacao,omitempty"`
	DtRescisao       *time.Time `json:"dt_rescisao,omitempty"`
	DataEvento       *time.Time `json:"data_evento,omitempty"`
	Tipo             string     `json:"tipo_vaga"`
	Motivo           string     `json:"motivo_vaga"`
	DiasAfastamento  *int       `json:"dias_afastamento,omitempty"`
	Status           string     `json:"status"`
	DataDecisao      *time.Time `json:"data_decisao,omitempty"`
	UsuarioAprovador string     `json:"usuario_aprovador,omitempty"`
	Observacao       string     `json:"observacao,omitempty"`
	Avaliacao        AvaliacaoTLP
	DataCriacao      time.Time `json:"data_criacao"`
	DataAtualizacao  time.Time `json:"data_atualizacao"`
}

// ListFilter narrows Listar; zero values mean "all".
type ListFilter struct {
	Status      string
	Tipo        string
	CentroCusto string
}

// SyncResult aggregates one synchronization pass. Atualizadas counts
// candidates that already had a record; no field of those records is
// mutated in the current policy.
type SyncResult struct {
	RunID            string   `json:"run_id"`
	Novas            int      `json:"novas"`
	Atualizadas      int      `json:"atualizadas"`
	TotalProcessadas int      `json:"total_processadas"`
	Erros            int      `json:"erros"`
	AvisosTLP        []string `json:"avisos_tlp,omitempty"`
}

type CargoTotal struct {
	Cargo string `json:"cargo"`
	Total int    `json:"total"`
}

type Stats struct {
	PorStatus       map[string]int `json:"por_status"`
	PorTipo         map[string]int `json:"por_tipo"`
	TopCargos       []CargoTotal   `json:"top_cargos"`
	TaxaAprovacao   float64        `json:"taxa_aprovacao"`
	TotalAprovadas  int            `json:"total_aprovadas"`
	TotalRejeitadas int            `json:"total_rejeitadas"`
	TotalCanceladas int            `json:"total_canceladas"`
}
