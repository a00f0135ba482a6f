package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/madukisp/oris-vagas/internal/routing"
	quadrotypes "github.com/madukisp/oris-vagas/modules/quadro/domain/types"
	quadropersistence "github.com/madukisp/oris-vagas/modules/quadro/infrastructure/persistence"
	quadroservices "github.com/madukisp/oris-vagas/modules/quadro/services"
	vagatypes "github.com/madukisp/oris-vagas/modules/vagas/domain/types"
	vagapersistence "github.com/madukisp/oris-vagas/modules/vagas/infrastructure/persistence"
	vagaservices "github.com/madukisp/oris-vagas/modules/vagas/services"
	"github.com/madukisp/oris-vagas/pkg/config"
)

// VagasService is what the handlers need from the vagas module.
type VagasService interface {
	Listar(ctx context.Context, filtro vagatypes.ListFilter) ([]vagatypes.Vaga, error)
	Estatisticas(ctx context.Context) (vagatypes.Stats, error)
	Aprovar(ctx context.Context, id int64, usuario string) error
	Rejeitar(ctx context.Context, id int64, usuario string, observacao string) error
	Cancelar(ctx context.Context, id int64, usuario string, observacao string) error
	Desfazer(ctx context.Context, id int64) error
	AprovarECriar(ctx context.Context, c vagatypes.CandidateVaga, usuario string) (int64, error)
	Sincronizar(ctx context.Context) (vagatypes.SyncResult, error)
	Deficit(ctx context.Context) ([]quadrotypes.DeficitRow, []string, error)
}

type HandlerOptions struct {
	Config config.Config
	Log    zerolog.Logger

	// Vagas overrides the default pg-backed facade; tests inject fakes
	// here.
	Vagas      VagasService
	Authorizer authorizer
	Pool       *pgxpool.Pool
}

func NewHandlerWithOptions(opts HandlerOptions) (http.Handler, error) {
	allowlistPath := opts.Config.RoutingAllowlist
	if v := os.Getenv("ALLOWLIST_PATH"); v != "" {
		allowlistPath = v
	}
	if allowlistPath == "" {
		p, err := defaultAllowlistPath()
		if err != nil {
			return nil, err
		}
		allowlistPath = p
	}

	a, err := routing.LoadAllowlist(allowlistPath)
	if err != nil {
		return nil, err
	}
	classifier, err := routing.NewClassifier(a, "server")
	if err != nil {
		return nil, err
	}

	vagas := opts.Vagas
	if vagas == nil {
		pool := opts.Pool
		if pool == nil {
			p, err := pgxpool.New(context.Background(), dbDSNFromEnv())
			if err != nil {
				return nil, err
			}
			pool = p
		}

		filtro, err := quadroservices.CompileFiltro(opts.Config.FiltroRelatorio)
		if err != nil {
			return nil, err
		}

		vagas = vagaservices.NewVagasFacade(
			vagapersistence.NewVagaPGStore(pool),
			quadropersistence.NewSnapshotPGStore(pool),
			opts.Config.DataMinima(),
			filtro,
			opts.Log,
		)
	}

	auth := opts.Authorizer
	if auth == nil {
		a, err := loadAuthorizer(opts.Config)
		if err != nil {
			return nil, err
		}
		auth = a
	}

	router := routing.NewRouter(classifier)
	api := routing.RouteClassInternalAPI

	router.Handle(routing.RouteClassOps, http.MethodGet, "/healthz", http.HandlerFunc(handleHealthz))

	router.Handle(api, http.MethodGet, "/api/vagas", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleListarVagas(w, r, vagas)
	}))
	router.Handle(api, http.MethodGet, "/api/vagas/estatisticas", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleEstatisticas(w, r, vagas)
	}))
	router.Handle(api, http.MethodGet, "/api/vagas/export", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleExportVagas(w, r, vagas)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/aprovar", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDecisao(w, r, vagas, decisaoAprovar)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/rejeitar", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDecisao(w, r, vagas, decisaoRejeitar)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/cancelar", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDecisao(w, r, vagas, decisaoCancelar)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/desfazer", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDecisao(w, r, vagas, decisaoDesfazer)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/aprovar-e-criar", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleAprovarECriar(w, r, vagas)
	}))
	router.Handle(api, http.MethodPost, "/api/vagas/sincronizar", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleSincronizar(w, r, vagas, opts.Log)
	}))
	router.Handle(api, http.MethodGet, "/api/quadro/deficit", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDeficit(w, r, vagas)
	}))

	return withAuthz(classifier, auth, router), nil
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func defaultAllowlistPath() (string, error) {
	path := "config/routing/allowlist.yaml"
	for range 8 {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = filepath.Join("..", path)
	}
	return "", errors.New("server: allowlist not found")
}
