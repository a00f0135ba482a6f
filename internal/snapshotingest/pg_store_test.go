package snapshotingest

import (
	"context"
	"testing"
)

func TestSubstituirTabelaRejeitaTabelaDesconhecida(t *testing.T) {
	s := NewPGStore(nil)
	if _, err := s.SubstituirTabela(context.Background(), "vagas", planilhaTLP()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubstituirTabelaRejeitaPlanilhaVazia(t *testing.T) {
	s := NewPGStore(nil)
	if _, err := s.SubstituirTabela(context.Background(), TabelaTLP, Planilha{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCriarTabelaSQL(t *testing.T) {
	got := criarTabelaSQL("tlp", []string{"contrato", "quantidade_ideal"})
	want := `CREATE TABLE tlp ("contrato" text, "quantidade_ideal" text)`
	if got != want {
		t.Fatalf("sql=%s", got)
	}
}
