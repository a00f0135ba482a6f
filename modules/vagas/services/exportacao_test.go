package services

import (
	"testing"
	"time"

	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

func TestLinhasExportacao(t *testing.T) {
	evento := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	decisao := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	dias := 30

	vagas := []types.Vaga{
		{
			ID: 7, Nome: "Maria", Cargo: "C", CentroCusto: "B", Situacao: "99-Demitido",
			Tipo: types.TipoDemissao, DataEvento: &evento, Status: types.StatusAprovado,
			DataDecisao: &decisao, UsuarioAprovador: "Admin",
			Avaliacao: types.AvaliacaoTLP{Deficit: 2},
		},
		{
			ID: 8, Nome: "Ana", Cargo: "D", CentroCusto: "B", Situacao: "30-AFAST. INSS",
			Tipo: types.TipoAfastamento, Status: types.StatusPendente, DiasAfastamento: &dias,
		},
	}

	rows := LinhasExportacao(vagas)
	if len(rows) != 2 {
		t.Fatalf("rows=%d", len(rows))
	}
	if len(rows[0]) != len(CabecalhoExportacao) {
		t.Fatalf("cols=%d want=%d", len(rows[0]), len(CabecalhoExportacao))
	}
	if rows[0][6] != "10/03/2025" || rows[0][8] != "12/03/2025" {
		t.Fatalf("dates=%v %v", rows[0][6], rows[0][8])
	}
	if rows[0][10] != 2 {
		t.Fatalf("deficit=%v", rows[0][10])
	}
	if rows[1][6] != "" || rows[1][8] != "" {
		t.Fatalf("expected empty cells for absent dates")
	}
	if rows[1][11] != 30 {
		t.Fatalf("dias=%v", rows[1][11])
	}
}
