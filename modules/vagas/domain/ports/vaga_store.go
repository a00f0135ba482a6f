package ports

import (
	"context"
	"errors"

	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

// ErrNaoEncontrada reports a guarded transition that matched no row: the
// id does not exist or the record is not in the required source state.
// The store never distinguishes the two; both are a reported no-op.
var ErrNaoEncontrada = errors.New("vaga não encontrada ou já processada")

// ErrDuplicada reports a create-and-approve against a tuple that already
// has a pending or approved record. This is an expected condition under
// repeated synchronization, not a generic failure, so callers can render
// "já aprovada" instead of an error.
var ErrDuplicada = errors.New("vaga já registrada para este funcionário")

type VagaStore interface {
	Criar(ctx context.Context, c types.CandidateVaga, av types.AvaliacaoTLP) (int64, error)
	AprovarECriar(ctx context.Context, c types.CandidateVaga, av types.AvaliacaoTLP, usuario string) (int64, error)
	Aprovar(ctx context.Context, id int64, usuario string) error
	Rejeitar(ctx context.Context, id int64, usuario string, observacao string) error
	Cancelar(ctx context.Context, id int64, usuario string, observacao string) error
	Desfazer(ctx context.Context, id int64) error
	BuscarPorFuncionario(ctx context.Context, nome, cargo, centroCusto string) (types.Vaga, error)
	Listar(ctx context.Context, f types.ListFilter) ([]types.Vaga, error)
	Estatisticas(ctx context.Context) (types.Stats, error)
}
