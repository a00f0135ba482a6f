package services

import (
	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
	"github.com/madukisp/oris-vagas/pkg/dateparse"
)

// CabecalhoExportacao holds the human-readable column labels of the
// spreadsheet export, in output order.
var CabecalhoExportacao = []string{
	"ID", "Nome", "Cargo", "Centro de Custo", "Situação",
	"Tipo", "Data Evento", "Status", "Data Decisão",
	"Aprovador", "Déficit", "Dias Afastamento",
}

// LinhasExportacao projects vacancy records into spreadsheet rows
// matching CabecalhoExportacao. Dates are rendered in the report's
// DD/MM/YYYY form; absent values become empty cells.
func LinhasExportacao(vagas []types.Vaga) [][]any {
	rows := make([][]any, 0, len(vagas))
	for _, v := range vagas {
		var dataEvento, dataDecisao string
		if v.DataEvento != nil {
			dataEvento = dateparse.FormatBR(*v.DataEvento)
		}
		if v.DataDecisao != nil {
			dataDecisao = dateparse.FormatBR(*v.DataDecisao)
		}
		var dias any
		if v.DiasAfastamento != nil {
			dias = *v.DiasAfastamento
		} else {
			dias = ""
		}
		rows = append(rows, []any{
			v.ID, v.Nome, v.Cargo, v.CentroCusto, v.Situacao,
			v.Tipo, dataEvento, v.Status, dataDecisao,
			v.UsuarioAprovador, v.Avaliacao.Deficit, dias,
		})
	}
	return rows
}
