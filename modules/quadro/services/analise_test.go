package services

import (
	"strings"
	"testing"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

func ativo(contrato, unidade, cargo, carga string) types.Funcionario {
	return types.Funcionario{
		NomeFantasia: contrato,
		CentroCusto:  unidade,
		Cargo:        cargo,
		CargaHoraria: carga,
		Situacao:     types.SituacaoAtivo,
	}
}

func TestContarAtivos(t *testing.T) {
	relatorio := []types.Funcionario{
		ativo("A", "B", "C", "40"),
		ativo("A", "B", "C", "40"),
		ativo("A", "B", "C", "30"),
		{NomeFantasia: "A", CentroCusto: "B", Cargo: "C", CargaHoraria: "40", Situacao: types.SituacaoAtestado},
		{NomeFantasia: "A", CentroCusto: "B", Cargo: "C", CargaHoraria: "40", Situacao: types.SituacaoDemitido},
		{NomeFantasia: "A", CentroCusto: "B", Cargo: "C", CargaHoraria: "40", Situacao: "30-AFAST. INSS"},
		ativo("A", "B", "D", "40"),
	}

	t.Run("role-wide count treats short medical leave as on payroll", func(t *testing.T) {
		if got := ContarAtivos(relatorio, "A", "B", "C", ""); got != 4 {
			t.Fatalf("got=%d", got)
		}
	})

	t.Run("hours-specific count", func(t *testing.T) {
		if got := ContarAtivos(relatorio, "A", "B", "C", "40"); got != 3 {
			t.Fatalf("got=%d", got)
		}
	})

	t.Run("unparseable employee hours never match", func(t *testing.T) {
		rel := append(relatorio, ativo("A", "B", "C", "quarenta"))
		if got := ContarAtivos(rel, "A", "B", "C", "40"); got != 3 {
			t.Fatalf("got=%d", got)
		}
	})
}

func TestAnalisar_DeficitSign(t *testing.T) {
	snap := types.Snapshot{
		Relatorio: []types.Funcionario{
			ativo("A", "B", "C", "40"),
			ativo("A", "B", "C", "40"),
			ativo("A", "B", "C", "40"),
		},
		TLP: []types.TLPEntry{
			{Contrato: "A", Unidade: "B", Cargo: "C", CargaHoraria: "40", QuantidadeIdeal: 5},
		},
	}
	ix, _ := BuildTLPIndex(snap.TLP)

	got := Analisar(ativo("A", "B", "C", "40"), snap, ix)
	if !got.VagaPrevista {
		t.Fatalf("expected vaga prevista")
	}
	if got.Deficit != 2 {
		t.Fatalf("deficit=%d", got.Deficit)
	}
	if !got.PodeAprovar {
		t.Fatalf("expected pode aprovar")
	}
	if !strings.Contains(got.Motivo, "Déficit de 2") {
		t.Fatalf("motivo=%q", got.Motivo)
	}
}

func TestAnalisar_Bands(t *testing.T) {
	tlp := []types.TLPEntry{
		{Contrato: "A", Unidade: "B", Cargo: "C", CargaHoraria: "40", QuantidadeIdeal: 2},
	}

	t.Run("headcount complete", func(t *testing.T) {
		snap := types.Snapshot{
			Relatorio: []types.Funcionario{ativo("A", "B", "C", "40"), ativo("A", "B", "C", "40")},
			TLP:       tlp,
		}
		ix, _ := BuildTLPIndex(tlp)
		got := Analisar(ativo("A", "B", "C", "40"), snap, ix)
		if got.Deficit != 0 || !strings.Contains(got.Motivo, "Quadro completo (2/2)") {
			t.Fatalf("deficit=%d motivo=%q", got.Deficit, got.Motivo)
		}
		if !got.PodeAprovar {
			t.Fatalf("advisory assessment must not block approval")
		}
	})

	t.Run("over headcount", func(t *testing.T) {
		snap := types.Snapshot{
			Relatorio: []types.Funcionario{
				ativo("A", "B", "C", "40"), ativo("A", "B", "C", "40"), ativo("A", "B", "C", "40"),
			},
			TLP: tlp,
		}
		ix, _ := BuildTLPIndex(tlp)
		got := Analisar(ativo("A", "B", "C", "40"), snap, ix)
		if got.Deficit != -1 || !strings.Contains(got.Motivo, "Excedente de 1") {
			t.Fatalf("deficit=%d motivo=%q", got.Deficit, got.Motivo)
		}
		if !got.PodeAprovar {
			t.Fatalf("advisory assessment must not block approval")
		}
	})
}

func TestAnalisar_UnplannedHoursFallback(t *testing.T) {
	snap := types.Snapshot{
		Relatorio: []types.Funcionario{
			ativo("A", "B", "C", "40"),
			ativo("A", "B", "C", "30"),
			ativo("A", "B", "C", "30"),
		},
		TLP: []types.TLPEntry{
			{Contrato: "A", Unidade: "B", Cargo: "C", CargaHoraria: "40", QuantidadeIdeal: 3},
			{Contrato: "A", Unidade: "B", Cargo: "C", CargaHoraria: "30", QuantidadeIdeal: 1},
		},
	}
	ix, _ := BuildTLPIndex(snap.TLP)

	got := Analisar(ativo("A", "B", "C", "20"), snap, ix)
	if got.VagaPrevista {
		t.Fatalf("expected not prevista")
	}
	if got.QuantidadeIdealTotal != 4 {
		t.Fatalf("ideal total=%d", got.QuantidadeIdealTotal)
	}
	if got.QuantidadeAtual != 3 {
		t.Fatalf("atual=%d", got.QuantidadeAtual)
	}
	if got.Deficit != 0 || got.QuantidadeIdeal != 0 {
		t.Fatalf("deficit=%d ideal=%d", got.Deficit, got.QuantidadeIdeal)
	}
	if !got.PodeAprovar {
		t.Fatalf("absence of an hours-specific plan entry must not block approval")
	}
	if !strings.Contains(got.Observacao, "Existem 3 ativos no cargo (previsão total: 4)") {
		t.Fatalf("observacao=%q", got.Observacao)
	}
}

func TestAnalisar_UnparseableHoursFallsToUnplanned(t *testing.T) {
	snap := types.Snapshot{
		Relatorio: []types.Funcionario{ativo("A", "B", "C", "40")},
		TLP: []types.TLPEntry{
			{Contrato: "A", Unidade: "B", Cargo: "C", CargaHoraria: "40", QuantidadeIdeal: 1},
		},
	}
	ix, _ := BuildTLPIndex(snap.TLP)

	got := Analisar(ativo("A", "B", "C", "n/d"), snap, ix)
	if got.VagaPrevista {
		t.Fatalf("expected unplanned branch for unparseable hours")
	}
	if !got.PodeAprovar {
		t.Fatalf("expected pode aprovar")
	}
}
