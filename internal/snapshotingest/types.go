package snapshotingest

// Planilha is one parsed spreadsheet: the normalized header row plus the
// data rows, every cell as text.
type Planilha struct {
	Colunas []string
	Linhas  [][]string
}

type Resultado struct {
	LinhasRelatorio int64
	LinhasTLP       int64
}

const (
	TabelaRelatorio = "relatorio_oris"
	TabelaTLP       = "tlp"
)
