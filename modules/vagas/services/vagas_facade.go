package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	quadroports "github.com/madukisp/oris-vagas/modules/quadro/domain/ports"
	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	quadroservices "github.com/madukisp/oris-vagas/modules/quadro/services"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/ports"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

// VagasFacade is the single entry point the HTTP layer talks to. Each
// method is one atomic unit of work against the store, computed from a
// fresh snapshot where the roster is involved.
type VagasFacade struct {
	store     ports.VagaStore
	snapshots quadroports.SnapshotStore
	corte     time.Time
	filtro    *quadroservices.FiltroRelatorio
	log       zerolog.Logger
}

func NewVagasFacade(store ports.VagaStore, snapshots quadroports.SnapshotStore, corte time.Time, filtro *quadroservices.FiltroRelatorio, log zerolog.Logger) VagasFacade {
	return VagasFacade{store: store, snapshots: snapshots, corte: corte, filtro: filtro, log: log}
}

func usuarioOuSistema(usuario string) string {
	if usuario == "" {
		return "Sistema"
	}
	return usuario
}

func (f VagasFacade) Aprovar(ctx context.Context, id int64, usuario string) error {
	return f.store.Aprovar(ctx, id, usuarioOuSistema(usuario))
}

func (f VagasFacade) Rejeitar(ctx context.Context, id int64, usuario string, observacao string) error {
	return f.store.Rejeitar(ctx, id, usuarioOuSistema(usuario), observacao)
}

func (f VagasFacade) Cancelar(ctx context.Context, id int64, usuario string, observacao string) error {
	return f.store.Cancelar(ctx, id, usuarioOuSistema(usuario), observacao)
}

func (f VagasFacade) Desfazer(ctx context.Context, id int64) error {
	return f.store.Desfazer(ctx, id)
}

func (f VagasFacade) Listar(ctx context.Context, filtro types.ListFilter) ([]types.Vaga, error) {
	return f.store.Listar(ctx, filtro)
}

func (f VagasFacade) Estatisticas(ctx context.Context) (types.Stats, error) {
	return f.store.Estatisticas(ctx)
}

// AprovarECriar persists a candidate straight into the approved state,
// with the gap assessment recomputed against a fresh snapshot so the
// audit numbers reflect the moment of the decision.
func (f VagasFacade) AprovarECriar(ctx context.Context, c types.CandidateVaga, usuario string) (int64, error) {
	snap, err := f.carregar(ctx)
	if err != nil {
		return 0, err
	}
	ix, _ := quadroservices.BuildTLPIndex(snap.TLP)
	analise := quadroservices.Analisar(c.Origem, snap, ix)
	return f.store.AprovarECriar(ctx, c, avaliacao(analise), usuarioOuSistema(usuario))
}

func (f VagasFacade) Sincronizar(ctx context.Context) (types.SyncResult, error) {
	snap, err := f.carregar(ctx)
	if err != nil {
		return types.SyncResult{}, err
	}
	s := Sincronizador{Store: f.store, Log: f.log}
	return s.Sincronizar(ctx, snap, f.corte)
}

// Deficit computes the staffing board from a fresh snapshot.
func (f VagasFacade) Deficit(ctx context.Context) ([]quadrotypes.DeficitRow, []string, error) {
	snap, err := f.snapshots.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return quadroservices.CalcularDeficit(snap, f.filtro)
}

// carregar loads a snapshot with the configured roster filter already
// applied. A row the filter fails to evaluate is excluded and logged.
func (f VagasFacade) carregar(ctx context.Context) (quadrotypes.Snapshot, error) {
	snap, err := f.snapshots.Load(ctx)
	if err != nil {
		return quadrotypes.Snapshot{}, err
	}
	if f.filtro == nil {
		return snap, nil
	}

	filtrado := make([]quadrotypes.Funcionario, 0, len(snap.Relatorio))
	for _, fn := range snap.Relatorio {
		ok, err := f.filtro.Admite(fn)
		if err != nil {
			f.log.Warn().Err(err).Str("nome", fn.Nome).Msg("filtro do relatorio falhou, linha excluida")
			continue
		}
		if ok {
			filtrado = append(filtrado, fn)
		}
	}
	snap.Relatorio = filtrado
	return snap, nil
}
