package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/madukisp/oris-vagas/internal/routing"
	quadroports "github.com/madukisp/oris-vagas/modules/quadro/domain/ports"
	vagaports "github.com/madukisp/oris-vagas/modules/vagas/domain/ports"
	vagatypes "github.com/madukisp/oris-vagas/modules/vagas/domain/types"
	"github.com/madukisp/oris-vagas/pkg/dateparse"
	"github.com/madukisp/oris-vagas/pkg/httperr"
)

func handleListarVagas(w http.ResponseWriter, r *http.Request, vagas VagasService) {
	filtro := vagatypes.ListFilter{
		Status:      strings.TrimSpace(r.URL.Query().Get("status")),
		Tipo:        strings.TrimSpace(r.URL.Query().Get("tipo")),
		CentroCusto: strings.TrimSpace(r.URL.Query().Get("centro_custo")),
	}

	out, err := vagas.Listar(r.Context(), filtro)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if out == nil {
		out = []vagatypes.Vaga{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"vagas": out, "total": len(out)})
}

func handleEstatisticas(w http.ResponseWriter, r *http.Request, vagas VagasService) {
	st, err := vagas.Estatisticas(r.Context())
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type decisao int

const (
	decisaoAprovar decisao = iota
	decisaoRejeitar
	decisaoCancelar
	decisaoDesfazer
)

type decisaoRequest struct {
	ID         int64  `json:"id"`
	Usuario    string `json:"usuario"`
	Observacao string `json:"observacao"`
}

func handleDecisao(w http.ResponseWriter, r *http.Request, vagas VagasService, d decisao) {
	var req decisaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		routing.WriteError(w, r, routing.RouteClassInternalAPI, http.StatusBadRequest, "bad_json", "bad json")
		return
	}
	if req.ID <= 0 {
		routing.WriteError(w, r, routing.RouteClassInternalAPI, http.StatusBadRequest, "invalid_request", "id required")
		return
	}
	req.Usuario = strings.TrimSpace(req.Usuario)
	req.Observacao = strings.TrimSpace(req.Observacao)

	var err error
	switch d {
	case decisaoAprovar:
		err = vagas.Aprovar(r.Context(), req.ID, req.Usuario)
	case decisaoRejeitar:
		err = vagas.Rejeitar(r.Context(), req.ID, req.Usuario, req.Observacao)
	case decisaoCancelar:
		err = vagas.Cancelar(r.Context(), req.ID, req.Usuario, req.Observacao)
	case decisaoDesfazer:
		err = vagas.Desfazer(r.Context(), req.ID)
	}
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": req.ID, "ok": true})
}

type candidatoRequest struct {
	Nome            string `json:"nome"`
	Cargo           string `json:"cargo"`
	CentroCusto     string `json:"centro_custo"`
	NomeFantasia    string `json:"nome_fantasia"`
	CargaHoraria    string `json:"carga_horaria_semanal"`
	Situacao        string `json:"situacao"`
	Tipo            string `json:"tipo_vaga"`
	Motivo          string `json:"motivo_vaga"`
	DataEvento      string `json:"data_evento"`
	DiasAfastamento *int   `json:"dias_afastamento"`
	Usuario         string `json:"usuario"`
}

func (req candidatoRequest) candidato() (vagatypes.CandidateVaga, error) {
	if strings.TrimSpace(req.Nome) == "" || strings.TrimSpace(req.Cargo) == "" || strings.TrimSpace(req.CentroCusto) == "" {
		return vagatypes.CandidateVaga{}, httperr.NewBadRequest("nome/cargo/centro_custo required")
	}
	if req.Tipo != vagatypes.TipoDemissao && req.Tipo != vagatypes.TipoAfastamento {
		return vagatypes.CandidateVaga{}, httperr.NewBadRequest("tipo_vaga must be demissao or afastamento")
	}
	evento, ok := dateparse.Parse(req.DataEvento)
	if !ok {
		return vagatypes.CandidateVaga{}, httperr.NewBadRequestf("invalid data_evento: %q", req.DataEvento)
	}

	c := vagatypes.CandidateVaga{
		Nome:            strings.TrimSpace(req.Nome),
		Cargo:           strings.TrimSpace(req.Cargo),
		CentroCusto:     strings.TrimSpace(req.CentroCusto),
		NomeFantasia:    strings.TrimSpace(req.NomeFantasia),
		CargaHoraria:    strings.TrimSpace(req.CargaHoraria),
		Situacao:        strings.TrimSpace(req.Situacao),
		Tipo:            req.Tipo,
		Motivo:          strings.TrimSpace(req.Motivo),
		DataEvento:      evento,
		DiasAfastamento: req.DiasAfastamento,
	}
	if c.Tipo == vagatypes.TipoDemissao {
		c.DtRescisao = &evento
	} else {
		c.DtInicioSituacao = &evento
	}
	c.Origem.Nome = c.Nome
	c.Origem.Cargo = c.Cargo
	c.Origem.CentroCusto = c.CentroCusto
	c.Origem.NomeFantasia = c.NomeFantasia
	c.Origem.CargaHoraria = c.CargaHoraria
	c.Origem.Situacao = c.Situacao
	return c, nil
}

func handleAprovarECriar(w http.ResponseWriter, r *http.Request, vagas VagasService) {
	var req candidatoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		routing.WriteError(w, r, routing.RouteClassInternalAPI, http.StatusBadRequest, "bad_json", "bad json")
		return
	}
	c, err := req.candidato()
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	id, err := vagas.AprovarECriar(r.Context(), c, strings.TrimSpace(req.Usuario))
	if err != nil {
		if errors.Is(err, vagaports.ErrDuplicada) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"code":        "vaga_duplicada",
				"message":     err.Error(),
				"id_anterior": id,
			})
			return
		}
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "status": vagatypes.StatusAprovado})
}

func handleSincronizar(w http.ResponseWriter, r *http.Request, vagas VagasService, log zerolog.Logger) {
	inicio := time.Now()
	res, err := vagas.Sincronizar(r.Context())
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	log.Info().
		Str("run_id", res.RunID).
		Int("novas", res.Novas).
		Int("atualizadas", res.Atualizadas).
		Int("erros", res.Erros).
		Dur("duracao", time.Since(inicio)).
		Msg("sincronizacao concluida")
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeAPIError maps domain sentinels onto distinguishable HTTP codes.
func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	rc := routing.RouteClassInternalAPI
	switch {
	case errors.Is(err, vagaports.ErrNaoEncontrada):
		routing.WriteError(w, r, rc, http.StatusConflict, "ja_processada", err.Error())
	case errors.Is(err, vagaports.ErrDuplicada):
		routing.WriteError(w, r, rc, http.StatusConflict, "vaga_duplicada", err.Error())
	case errors.Is(err, quadroports.ErrTabelasAusentes):
		routing.WriteError(w, r, rc, http.StatusServiceUnavailable, "tabelas_ausentes", err.Error())
	case isBadRequestError(err):
		routing.WriteError(w, r, rc, http.StatusBadRequest, "invalid_request", err.Error())
	case isPgInvalidInput(err), isPgCheckViolation(err):
		routing.WriteError(w, r, rc, http.StatusBadRequest, "invalid_input", pgErrorMessage(err))
	default:
		routing.WriteError(w, r, rc, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
