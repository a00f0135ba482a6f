package snapshotingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LerPlanilha parses the first sheet of an xlsx export. The first
// non-empty row is the header; headers are normalized so the same report
// imports identically whether the export used display titles or
// snake_case column names.
func LerPlanilha(r io.Reader) (Planilha, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Planilha{}, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Planilha{}, errors.New("planilha sem abas")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Planilha{}, err
	}

	var colunas []string
	var linhas [][]string
	for _, row := range rows {
		if colunas == nil {
			if linhaVazia(row) {
				continue
			}
			colunas, err = normalizarColunas(row)
			if err != nil {
				return Planilha{}, err
			}
			continue
		}
		if linhaVazia(row) {
			continue
		}
		linhas = append(linhas, preencherLinha(row, len(colunas)))
	}
	if colunas == nil {
		return Planilha{}, errors.New("planilha sem cabeçalho")
	}
	return Planilha{Colunas: colunas, Linhas: linhas}, nil
}

func linhaVazia(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// preencherLinha pads or truncates a row to the header width. The xlsx
// reader drops trailing empty cells.
func preencherLinha(row []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(row) {
			out[i] = row[i]
		}
	}
	return out
}

func normalizarColunas(row []string) ([]string, error) {
	out := make([]string, 0, len(row))
	vistas := map[string]bool{}
	for _, h := range row {
		c := NormalizarColuna(h)
		if c == "" {
			return nil, errors.New("cabeçalho com coluna vazia")
		}
		if vistas[c] {
			return nil, fmt.Errorf("cabeçalho com coluna duplicada: %s", c)
		}
		vistas[c] = true
		out = append(out, c)
	}
	return out, nil
}

var semAcento = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// NormalizarColuna turns a report header into a portable column name:
// "Carga Horária Semanal" and "carga_horaria_semanal" both come out as
// the latter.
func NormalizarColuna(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = semAcento.Replace(h)
	return strings.Join(strings.Fields(h), "_")
}
