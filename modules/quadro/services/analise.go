package services

import (
	"fmt"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

func empregado(situacao string) bool {
	return situacao == types.SituacaoAtivo || situacao == types.SituacaoAtestado
}

// ContarAtivos counts roster rows still on payroll for a role key. When
// carga is non-empty it must be the canonical hours form; employees whose
// own hours fail coercion then never match.
func ContarAtivos(relatorio []types.Funcionario, contrato, unidade, cargo, carga string) int {
	n := 0
	for _, f := range relatorio {
		if !empregado(f.Situacao) {
			continue
		}
		if f.NomeFantasia != contrato || f.CentroCusto != unidade || f.Cargo != cargo {
			continue
		}
		if carga != "" {
			c, ok := CanonCarga(f.CargaHoraria)
			if !ok || c != carga {
				continue
			}
		}
		n++
	}
	return n
}

// Analisar produces the advisory gap assessment for one employee's
// staffing key. It never blocks approval: the deficit math is context for
// the reviewer, and PodeAprovar stays true in every branch.
func Analisar(f types.Funcionario, snap types.Snapshot, ix TLPIndex) types.AnaliseTLP {
	contrato := f.NomeFantasia
	unidade := f.CentroCusto
	cargo := f.Cargo

	atualTotal := ContarAtivos(snap.Relatorio, contrato, unidade, cargo, "")
	idealTotal := ix.TotalCargo(contrato, unidade, cargo)

	carga, cargaOK := CanonCarga(f.CargaHoraria)
	var ideal int
	var prevista bool
	if cargaOK {
		ideal, prevista = ix.QuantidadeIdeal(ChaveTLP{Contrato: contrato, Unidade: unidade, Cargo: cargo, Carga: carga})
	}

	if !prevista {
		return types.AnaliseTLP{
			VagaPrevista:         false,
			QuantidadeIdeal:      0,
			QuantidadeIdealTotal: idealTotal,
			QuantidadeAtual:      atualTotal,
			QuantidadeMesmaCarga: 0,
			Deficit:              0,
			PodeAprovar:          true,
			Motivo:               "Vaga não prevista na TLP (carga horária específica)",
			Observacao:           fmt.Sprintf("Existem %d ativos no cargo (previsão total: %d)", atualTotal, idealTotal),
		}
	}

	mesmaCarga := ContarAtivos(snap.Relatorio, contrato, unidade, cargo, carga)
	deficit := ideal - mesmaCarga

	var motivo string
	switch {
	case deficit > 0:
		motivo = fmt.Sprintf("Vaga aprovável - Déficit de %d funcionário(s)", deficit)
	case deficit == 0:
		motivo = fmt.Sprintf("Quadro completo (%d/%d)", mesmaCarga, ideal)
	default:
		motivo = fmt.Sprintf("Excedente de %d funcionário(s) (%d/%d)", -deficit, mesmaCarga, ideal)
	}

	return types.AnaliseTLP{
		VagaPrevista:         true,
		QuantidadeIdeal:      ideal,
		QuantidadeIdealTotal: idealTotal,
		QuantidadeAtual:      atualTotal,
		QuantidadeMesmaCarga: mesmaCarga,
		Deficit:              deficit,
		PodeAprovar:          true,
		Motivo:               motivo,
		Observacao:           fmt.Sprintf("Total no cargo: %d ativos (previsão: %d)", atualTotal, idealTotal),
	}
}
