package snapshotingest

import (
	"context"
	"fmt"
	"strings"
)

type Store interface {
	SubstituirTabela(ctx context.Context, tabela string, p Planilha) (int64, error)
}

var colunasObrigatoriasRelatorio = []string{"nome", "cargo", "centro_custo", "situacao"}

var colunasObrigatoriasTLP = []string{"contrato", "unidade", "cargo", "carga_hora", "quantidade_ideal"}

// Carregar replaces both source tables from freshly parsed exports.
// Both sheets are validated before the first write, so a malformed plan
// file never clobbers an already loaded roster.
func Carregar(ctx context.Context, store Store, relatorio Planilha, plano Planilha) (Resultado, error) {
	if err := exigirColunas(TabelaRelatorio, relatorio, colunasObrigatoriasRelatorio); err != nil {
		return Resultado{}, err
	}
	if err := exigirColunas(TabelaTLP, plano, colunasObrigatoriasTLP); err != nil {
		return Resultado{}, err
	}

	nRelatorio, err := store.SubstituirTabela(ctx, TabelaRelatorio, relatorio)
	if err != nil {
		return Resultado{}, fmt.Errorf("%s: %w", TabelaRelatorio, err)
	}
	nPlano, err := store.SubstituirTabela(ctx, TabelaTLP, plano)
	if err != nil {
		return Resultado{}, fmt.Errorf("%s: %w", TabelaTLP, err)
	}

	return Resultado{LinhasRelatorio: nRelatorio, LinhasTLP: nPlano}, nil
}

func exigirColunas(tabela string, p Planilha, obrigatorias []string) error {
	presentes := map[string]bool{}
	for _, c := range p.Colunas {
		presentes[c] = true
	}
	var faltando []string
	for _, c := range obrigatorias {
		if !presentes[c] {
			faltando = append(faltando, c)
		}
	}
	if len(faltando) > 0 {
		return fmt.Errorf("%s: colunas ausentes: %s", tabela, strings.Join(faltando, ", "))
	}
	return nil
}
