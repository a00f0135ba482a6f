package snapshotingest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func planilhaXLSX(t *testing.T, linhas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, linha := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &linha); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestLerPlanilha(t *testing.T) {
	buf := planilhaXLSX(t, [][]any{
		{"Nome", "Cargo", "Centro custo", "Situação", "Dt Rescisão"},
		{"Maria", "Enfermeiro", "UPA Norte", "01-ATIVO"},
		{},
		{"Ana", "Técnico", "UPA Sul", "99-Demitido", "15/03/2025"},
	})

	p, err := LerPlanilha(buf)
	if err != nil {
		t.Fatalf("ler: %v", err)
	}

	esperado := []string{"nome", "cargo", "centro_custo", "situacao", "dt_rescisao"}
	if len(p.Colunas) != len(esperado) {
		t.Fatalf("colunas=%v", p.Colunas)
	}
	for i, c := range esperado {
		if p.Colunas[i] != c {
			t.Fatalf("coluna %d: esperado %q, veio %q", i, c, p.Colunas[i])
		}
	}

	if len(p.Linhas) != 2 {
		t.Fatalf("linhas=%d", len(p.Linhas))
	}
	if len(p.Linhas[0]) != 5 || p.Linhas[0][4] != "" {
		t.Fatalf("linha curta não preenchida: %v", p.Linhas[0])
	}
	if p.Linhas[1][4] != "15/03/2025" {
		t.Fatalf("linha=%v", p.Linhas[1])
	}
}

func TestLerPlanilhaCabecalhoDuplicado(t *testing.T) {
	buf := planilhaXLSX(t, [][]any{
		{"Nome", "nome"},
		{"a", "b"},
	})
	if _, err := LerPlanilha(buf); err == nil {
		t.Fatal("expected error")
	}
}

func TestLerPlanilhaSemCabecalho(t *testing.T) {
	buf := planilhaXLSX(t, nil)
	if _, err := LerPlanilha(buf); err == nil {
		t.Fatal("expected error")
	}
}

func TestNormalizarColuna(t *testing.T) {
	casos := map[string]string{
		"Nome":                  "nome",
		"  Centro custo ":       "centro_custo",
		"Carga Horária Semanal": "carga_horaria_semanal",
		"Dt Início Situação":    "dt_inicio_situacao",
		"quantidade_ideal":      "quantidade_ideal",
		"Situação":              "situacao",
	}
	for entrada, esperado := range casos {
		if got := NormalizarColuna(entrada); got != esperado {
			t.Fatalf("%q: esperado %q, veio %q", entrada, esperado, got)
		}
	}
}
