package services

import (
	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

type chaveQuadro struct {
	Unidade string
	Cargo   string
	Carga   string
}

// CalcularDeficit joins the full plan against the roster per
// (unidade, cargo, carga horária) key and returns one board row per plan
// entry, in plan order. The optional filter narrows which roster rows are
// counted; the plan side is never filtered. Plan entries with unparseable
// hours still appear on the board but match no employees.
func CalcularDeficit(snap types.Snapshot, filtro *FiltroRelatorio) ([]types.DeficitRow, []string, error) {
	_, warnings := BuildTLPIndex(snap.TLP)

	ativos := make(map[chaveQuadro]int)
	afastados := make(map[chaveQuadro]int)
	for _, f := range snap.Relatorio {
		ok, err := filtro.Admite(f)
		if err != nil {
			return nil, warnings, err
		}
		if !ok {
			continue
		}
		carga, cargaOK := CanonCarga(f.CargaHoraria)
		if !cargaOK {
			continue
		}
		key := chaveQuadro{Unidade: f.CentroCusto, Cargo: f.Cargo, Carga: carga}
		switch {
		case f.Situacao == types.SituacaoAtivo:
			ativos[key]++
		case f.Situacao != types.SituacaoDemitido:
			afastados[key]++
		}
	}

	rows := make([]types.DeficitRow, 0, len(snap.TLP))
	for _, e := range snap.TLP {
		row := types.DeficitRow{
			Unidade:       e.Unidade,
			Cargo:         e.Cargo,
			CargaHoraria:  e.CargaHoraria,
			QtdNecessaria: e.QuantidadeIdeal,
		}
		if carga, ok := CanonCarga(e.CargaHoraria); ok {
			key := chaveQuadro{Unidade: e.Unidade, Cargo: e.Cargo, Carga: carga}
			row.QtdAtivos = ativos[key]
			row.QtdAfastados = afastados[key]
		}
		row.Deficit = row.QtdNecessaria - row.QtdAtivos
		if row.Deficit > 0 {
			row.Contratar = row.Deficit
		} else if row.Deficit < 0 {
			row.Excedente = -row.Deficit
		}
		rows = append(rows, row)
	}
	return rows, warnings, nil
}
