package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	quadroservices "github.com/madukisp/oris-vagas/modules/quadro/services"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/ports"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

// Sincronizador reconciles detected roster events against the vacancy
// store, inserting only genuinely new candidates.
type Sincronizador struct {
	Store ports.VagaStore
	Log   zerolog.Logger
	Agora func() time.Time
}

func avaliacao(a quadrotypes.AnaliseTLP) types.AvaliacaoTLP {
	return types.AvaliacaoTLP{
		QuantidadeIdeal: a.QuantidadeIdeal,
		QuantidadeAtual: a.QuantidadeAtual,
		Deficit:         a.Deficit,
		VagaPrevista:    a.VagaPrevista,
	}
}

// Sincronizar runs one reconciliation pass. Candidates with an existing
// record for (nome, cargo, centro_custo) are counted as atualizadas but
// deliberately not mutated; the pass only ever inserts. Each candidate is
// independent: a failed insert is logged, counted, and does not stop the
// batch.
func (s Sincronizador) Sincronizar(ctx context.Context, snap quadrotypes.Snapshot, corte time.Time) (types.SyncResult, error) {
	agora := time.Now()
	if s.Agora != nil {
		agora = s.Agora()
	}

	ix, avisos := quadroservices.BuildTLPIndex(snap.TLP)
	res := types.SyncResult{
		RunID:     uuid.NewString(),
		AvisosTLP: avisos,
	}
	log := s.Log.With().Str("sync_run", res.RunID).Logger()
	for _, aviso := range avisos {
		log.Warn().Msg(aviso)
	}

	for c := range Detectar(snap, corte, agora) {
		res.TotalProcessadas++

		_, err := s.Store.BuscarPorFuncionario(ctx, c.Nome, c.Cargo, c.CentroCusto)
		switch {
		case err == nil:
			res.Atualizadas++
			continue
		case !errors.Is(err, ports.ErrNaoEncontrada):
			log.Error().Err(err).Str("nome", c.Nome).Msg("falha ao consultar vaga existente")
			res.Erros++
			continue
		}

		analise := quadroservices.Analisar(c.Origem, snap, ix)
		id, err := s.Store.Criar(ctx, c, avaliacao(analise))
		if err != nil {
			log.Error().Err(err).Str("nome", c.Nome).Str("cargo", c.Cargo).Msg("falha ao salvar vaga")
			res.Erros++
			continue
		}
		log.Info().Int64("vaga_id", id).Str("nome", c.Nome).Str("tipo", c.Tipo).Msg("vaga registrada")
		res.Novas++
	}

	log.Info().
		Int("novas", res.Novas).
		Int("atualizadas", res.Atualizadas).
		Int("total", res.TotalProcessadas).
		Int("erros", res.Erros).
		Msg("sincronização concluída")
	return res, nil
}
