package ports

import (
	"context"
	"errors"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

// ErrTabelasAusentes reports that one or both source tables are missing.
// This is a fatal precondition: computing against partial data would
// silently produce wrong gap numbers, so the whole operation refuses to
// run instead.
var ErrTabelasAusentes = errors.New("tabelas de origem ausentes")

type SnapshotStore interface {
	Load(ctx context.Context) (types.Snapshot, error)
}
