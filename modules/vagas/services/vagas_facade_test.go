package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	quadroservices "github.com/madukisp/oris-vagas/modules/quadro/services"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

type fakeSnapshotStore struct {
	snap quadrotypes.Snapshot
	err  error
}

func (f fakeSnapshotStore) Load(context.Context) (quadrotypes.Snapshot, error) {
	return f.snap, f.err
}

type aprovadorStore struct {
	*fakeVagaStore

	ultimaAvaliacao types.AvaliacaoTLP
	ultimoUsuario   string
}

func (s *aprovadorStore) AprovarECriar(_ context.Context, c types.CandidateVaga, av types.AvaliacaoTLP, usuario string) (int64, error) {
	s.ultimaAvaliacao = av
	s.ultimoUsuario = usuario
	return 77, nil
}

func mustFiltro(t *testing.T, expr string) *quadroservices.FiltroRelatorio {
	t.Helper()
	f, err := quadroservices.CompileFiltro(expr)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFacadeSincronizarAplicaFiltro(t *testing.T) {
	snap := quadrotypes.Snapshot{
		Relatorio: []quadrotypes.Funcionario{
			{Nome: "Maria", Cargo: "C", CentroCusto: "B", NomeFantasia: "A", CargaHoraria: "40",
				Situacao: quadrotypes.SituacaoDemitido, DtRescisao: "10/03/2025"},
			{Nome: "José", Cargo: "C", CentroCusto: "B", NomeFantasia: "OUTRA", CargaHoraria: "40",
				Situacao: quadrotypes.SituacaoDemitido, DtRescisao: "12/03/2025"},
		},
	}
	store := newFakeVagaStore()
	corte := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewVagasFacade(store, fakeSnapshotStore{snap: snap}, corte,
		mustFiltro(t, `f["nome_fantasia"] == "A"`), zerolog.Nop())

	res, err := f.Sincronizar(context.Background())
	if err != nil {
		t.Fatalf("sincronizar: %v", err)
	}
	if res.Novas != 1 {
		t.Fatalf("expected 1 nova, got %d", res.Novas)
	}
	if _, ok := store.vagas[chaveFuncionario{"Maria", "C", "B"}]; !ok {
		t.Fatal("expected vaga for Maria")
	}
	if _, ok := store.vagas[chaveFuncionario{"José", "C", "B"}]; ok {
		t.Fatal("filtered row must not produce a vaga")
	}
}

func TestFacadeFiltroComErroExcluiLinha(t *testing.T) {
	snap := quadrotypes.Snapshot{
		Relatorio: []quadrotypes.Funcionario{
			{Nome: "Maria", Cargo: "C", CentroCusto: "B", NomeFantasia: "A",
				Situacao: quadrotypes.SituacaoDemitido, DtRescisao: "10/03/2025"},
		},
	}
	store := newFakeVagaStore()
	corte := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// The roster ctx has no such key, so evaluation errors per row.
	f := NewVagasFacade(store, fakeSnapshotStore{snap: snap}, corte,
		mustFiltro(t, `f["coluna_inexistente"] == "x"`), zerolog.Nop())

	res, err := f.Sincronizar(context.Background())
	if err != nil {
		t.Fatalf("sincronizar: %v", err)
	}
	if res.Novas != 0 || len(store.vagas) != 0 {
		t.Fatalf("expected empty sync, got %+v", res)
	}
}

func TestFacadeAprovarECriar(t *testing.T) {
	origem := quadrotypes.Funcionario{
		Nome: "Maria", Cargo: "Enfermeiro", CentroCusto: "UPA Norte",
		NomeFantasia: "Contrato A", CargaHoraria: "36",
		Situacao: quadrotypes.SituacaoDemitido,
	}
	snap := quadrotypes.Snapshot{
		Relatorio: []quadrotypes.Funcionario{origem},
		TLP: []quadrotypes.TLPEntry{
			{Contrato: "Contrato A", Unidade: "UPA Norte", Cargo: "Enfermeiro",
				CargaHoraria: "36", QuantidadeIdeal: 3},
		},
	}
	store := &aprovadorStore{fakeVagaStore: newFakeVagaStore()}
	corte := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewVagasFacade(store, fakeSnapshotStore{snap: snap}, corte, nil, zerolog.Nop())

	c := types.CandidateVaga{
		Nome: origem.Nome, Cargo: origem.Cargo, CentroCusto: origem.CentroCusto,
		Tipo: types.TipoDemissao, Origem: origem,
	}
	id, err := f.AprovarECriar(context.Background(), c, "")
	if err != nil {
		t.Fatalf("aprovar e criar: %v", err)
	}
	if id != 77 {
		t.Fatalf("id=%d", id)
	}
	if store.ultimoUsuario != "Sistema" {
		t.Fatalf("expected usuario Sistema, got %q", store.ultimoUsuario)
	}
	if !store.ultimaAvaliacao.VagaPrevista || store.ultimaAvaliacao.QuantidadeIdeal != 3 {
		t.Fatalf("avaliacao=%+v", store.ultimaAvaliacao)
	}
	if store.ultimaAvaliacao.Deficit != 3 {
		t.Fatalf("expected deficit 3 with no active headcount, got %d", store.ultimaAvaliacao.Deficit)
	}
}

func TestFacadeDeficitPropagaErro(t *testing.T) {
	boom := errors.New("boom")
	f := NewVagasFacade(newFakeVagaStore(), fakeSnapshotStore{err: boom}, time.Time{}, nil, zerolog.Nop())
	if _, _, err := f.Deficit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}
