package services

import (
	"iter"
	"time"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	vagatypes "github.com/madukisp/oris-vagas/modules/vagas/domain/types"
	"github.com/madukisp/oris-vagas/pkg/dateparse"
)

// Detectar scans the roster snapshot for termination and leave events on
// or after the cutoff date and yields candidate vacancies in roster order.
// The sequence is restartable and performs no deduplication; that is the
// synchronizer's job.
func Detectar(snap types.Snapshot, corte time.Time, agora time.Time) iter.Seq[vagatypes.CandidateVaga] {
	return func(yield func(vagatypes.CandidateVaga) bool) {
		for _, f := range snap.Relatorio {
			c, ok := classificar(f, corte, agora)
			if !ok {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// classificar applies the detection precedence: a termination date on or
// after the cutoff always wins; only then is a non-working situation with
// a status-change date considered a leave.
func classificar(f types.Funcionario, corte time.Time, agora time.Time) (vagatypes.CandidateVaga, bool) {
	base := vagatypes.CandidateVaga{
		Nome:         f.Nome,
		Cargo:        f.Cargo,
		CentroCusto:  f.CentroCusto,
		NomeFantasia: f.NomeFantasia,
		CargaHoraria: f.CargaHoraria,
		Situacao:     f.Situacao,
		Origem:       f,
	}

	if rescisao, ok := dateparse.Parse(f.DtRescisao); ok && !rescisao.Before(corte) {
		base.Tipo = vagatypes.TipoDemissao
		base.Motivo = "Demissão"
		base.DataEvento = rescisao
		base.DtRescisao = &rescisao
		return base, true
	}

	switch f.Situacao {
	case types.SituacaoAtivo, types.SituacaoDemitido, types.SituacaoAtestado:
		return vagatypes.CandidateVaga{}, false
	}

	inicio, ok := dateparse.ParseFirst(f.DtInicioSituacao, f.DtInicioSituacaoAlt, f.DtSituacao)
	if !ok || inicio.Before(corte) {
		return vagatypes.CandidateVaga{}, false
	}

	situacao := f.Situacao
	if situacao == "" {
		situacao = "Não informado"
	}
	dias := diasCorridos(inicio, agora)

	base.Tipo = vagatypes.TipoAfastamento
	base.Motivo = "Afastamento - " + situacao
	base.DataEvento = inicio
	base.DtInicioSituacao = &inicio
	base.DiasAfastamento = &dias
	return base, true
}

// diasCorridos counts whole days between two dates, ignoring the time of
// day on either side.
func diasCorridos(de, ate time.Time) int {
	d0 := time.Date(de.Year(), de.Month(), de.Day(), 0, 0, 0, 0, time.UTC)
	d1 := time.Date(ate.Year(), ate.Month(), ate.Day(), 0, 0, 0, 0, time.UTC)
	return int(d1.Sub(d0).Hours() / 24)
}
