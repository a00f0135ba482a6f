package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/ports"
	"github.com/madukisp/oris-vagas/modules/vagas/domain/types"
)

type pgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// VagaPGStore persists vacancy records. Every transition is a single
// guarded UPDATE whose WHERE clause encodes the required source status;
// a concurrent decision simply makes the other one miss its guard.
type VagaPGStore struct {
	pool pgBeginner
}

func NewVagaPGStore(pool pgBeginner) ports.VagaStore {
	return &VagaPGStore{pool: pool}
}

const vagaColunas = `
	id, nome, centro_custo, cargo, situacao, nome_fantasia,
	carga_horaria_semanal, dt_inicio_situacao, dt_rescisao, data_evento,
	tipo_vaga, motivo_vaga, dias_afastamento, status, data_decisao,
	usuario_aprovador, observacao, quantidade_ideal, quantidade_atual,
	deficit, vaga_prevista_tlp, data_criacao, data_atualizacao`

func (s *VagaPGStore) Criar(ctx context.Context, c types.CandidateVaga, av types.AvaliacaoTLP) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var id int64
	err = tx.QueryRow(ctx, `
	INSERT INTO vagas (
	  nome, centro_custo, cargo, situacao, nome_fantasia,
	  carga_horaria_semanal, dt_inicio_situacao, dt_rescisao, data_evento,
	  tipo_vaga, motivo_vaga, dias_afastamento, status,
	  quantidade_ideal, quantidade_atual, deficit, vaga_prevista_tlp
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'pendente', $13, $14, $15, $16)
	RETURNING id
	`, c.Nome, c.CentroCusto, c.Cargo, c.Situacao, c.NomeFantasia,
		c.CargaHoraria, c.DtInicioSituacao, c.DtRescisao, c.DataEvento,
		c.Tipo, c.Motivo, c.DiasAfastamento,
		av.QuantidadeIdeal, av.QuantidadeAtual, av.Deficit, av.VagaPrevista).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *VagaPGStore) AprovarECriar(ctx context.Context, c types.CandidateVaga, av types.AvaliacaoTLP, usuario string) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	// The duplicate guard lives inside the INSERT itself so two concurrent
	// calls cannot both pass a separate existence check: the loser's
	// WHERE NOT EXISTS sees the winner's row and inserts nothing.
	var id int64
	err = tx.QueryRow(ctx, `
	INSERT INTO vagas (
	  nome, centro_custo, cargo, situacao, nome_fantasia,
	  carga_horaria_semanal, dt_inicio_situacao, dt_rescisao, data_evento,
	  tipo_vaga, motivo_vaga, dias_afastamento, status, data_decisao,
	  usuario_aprovador, quantidade_ideal, quantidade_atual, deficit,
	  vaga_prevista_tlp
	)
	SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'aprovado', now(), $13, $14, $15, $16, $17
	WHERE NOT EXISTS (
	  SELECT 1 FROM vagas
	  WHERE nome = $1 AND cargo = $3 AND centro_custo = $2
	    AND status IN ('pendente', 'aprovado')
	)
	RETURNING id
	`, c.Nome, c.CentroCusto, c.Cargo, c.Situacao, c.NomeFantasia,
		c.CargaHoraria, c.DtInicioSituacao, c.DtRescisao, c.DataEvento,
		c.Tipo, c.Motivo, c.DiasAfastamento, usuario,
		av.QuantidadeIdeal, av.QuantidadeAtual, av.Deficit, av.VagaPrevista).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		var existente int64
		err = tx.QueryRow(ctx, `
		SELECT id FROM vagas
		WHERE nome = $1 AND cargo = $2 AND centro_custo = $3
		  AND status IN ('pendente', 'aprovado')
		LIMIT 1
		`, c.Nome, c.Cargo, c.CentroCusto).Scan(&existente)
		if err != nil {
			return 0, err
		}
		return existente, fmt.Errorf("%w (id %d)", ports.ErrDuplicada, existente)
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *VagaPGStore) Aprovar(ctx context.Context, id int64, usuario string) error {
	return s.transicao(ctx, `
	UPDATE vagas
	SET status = 'aprovado', data_decisao = now(), usuario_aprovador = $2
	WHERE id = $1 AND status = 'pendente'
	`, id, usuario)
}

func (s *VagaPGStore) Rejeitar(ctx context.Context, id int64, usuario string, observacao string) error {
	return s.transicao(ctx, `
	UPDATE vagas
	SET status = 'rejeitado', data_decisao = now(), usuario_aprovador = $2, observacao = NULLIF($3, '')
	WHERE id = $1 AND status = 'pendente'
	`, id, usuario, observacao)
}

func (s *VagaPGStore) Cancelar(ctx context.Context, id int64, usuario string, observacao string) error {
	return s.transicao(ctx, `
	UPDATE vagas
	SET status = 'cancelado', data_decisao = now(), usuario_aprovador = $2, observacao = NULLIF($3, '')
	WHERE id = $1 AND status = 'aprovado'
	`, id, usuario, observacao)
}

func (s *VagaPGStore) Desfazer(ctx context.Context, id int64) error {
	return s.transicao(ctx, `
	UPDATE vagas
	SET status = 'pendente', data_decisao = NULL, usuario_aprovador = NULL, observacao = NULL
	WHERE id = $1
	`, id)
}

func (s *VagaPGStore) transicao(ctx context.Context, sql string, args ...any) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNaoEncontrada
	}
	return tx.Commit(ctx)
}

func (s *VagaPGStore) BuscarPorFuncionario(ctx context.Context, nome, cargo, centroCusto string) (types.Vaga, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return types.Vaga{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	row := tx.QueryRow(ctx, `
	SELECT `+vagaColunas+`
	FROM vagas
	WHERE nome = $1 AND cargo = $2 AND centro_custo = $3
	ORDER BY data_criacao DESC
	LIMIT 1
	`, nome, cargo, centroCusto)

	v, err := scanVaga(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Vaga{}, ports.ErrNaoEncontrada
		}
		return types.Vaga{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return types.Vaga{}, err
	}
	return v, nil
}

func (s *VagaPGStore) Listar(ctx context.Context, f types.ListFilter) ([]types.Vaga, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	sql, args := listarQuery(f)
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Vaga
	for rows.Next() {
		v, err := scanVaga(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// listarQuery assembles the filtered listing statement. Zero-value
// filter fields are omitted entirely.
func listarQuery(f types.ListFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT " + vagaColunas + "\n\tFROM vagas")

	var conds []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		conds = append(conds, fmt.Sprintf("tipo_vaga = $%d", len(args)))
	}
	if f.CentroCusto != "" {
		args = append(args, f.CentroCusto)
		conds = append(conds, fmt.Sprintf("centro_custo = $%d", len(args)))
	}
	if len(conds) > 0 {
		b.WriteString("\n\tWHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString("\n\tORDER BY data_evento DESC")
	return b.String(), args
}

func (s *VagaPGStore) Estatisticas(ctx context.Context) (types.Stats, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return types.Stats{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	st := types.Stats{
		PorStatus: map[string]int{},
		PorTipo:   map[string]int{},
	}

	rows, err := tx.Query(ctx, `SELECT status, count(*) FROM vagas GROUP BY status`)
	if err != nil {
		return types.Stats{}, err
	}
	if err := contarGrupos(rows, st.PorStatus); err != nil {
		return types.Stats{}, err
	}

	rows, err = tx.Query(ctx, `SELECT tipo_vaga, count(*) FROM vagas GROUP BY tipo_vaga`)
	if err != nil {
		return types.Stats{}, err
	}
	if err := contarGrupos(rows, st.PorTipo); err != nil {
		return types.Stats{}, err
	}

	rows, err = tx.Query(ctx, `
	SELECT cargo, count(*) AS total
	FROM vagas
	GROUP BY cargo
	ORDER BY total DESC, cargo ASC
	LIMIT 5
	`)
	if err != nil {
		return types.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ct types.CargoTotal
		if err := rows.Scan(&ct.Cargo, &ct.Total); err != nil {
			return types.Stats{}, err
		}
		st.TopCargos = append(st.TopCargos, ct)
	}
	if err := rows.Err(); err != nil {
		return types.Stats{}, err
	}

	var decididas int
	err = tx.QueryRow(ctx, `
	SELECT
	  count(*) FILTER (WHERE status = 'aprovado'),
	  count(*) FILTER (WHERE status = 'rejeitado'),
	  count(*) FILTER (WHERE status = 'cancelado'),
	  count(*)
	FROM vagas
	WHERE status <> 'pendente'
	`).Scan(&st.TotalAprovadas, &st.TotalRejeitadas, &st.TotalCanceladas, &decididas)
	if err != nil {
		return types.Stats{}, err
	}
	st.TaxaAprovacao = taxaAprovacao(st.TotalAprovadas, decididas)

	if err := tx.Commit(ctx); err != nil {
		return types.Stats{}, err
	}
	return st, nil
}

func contarGrupos(rows pgx.Rows, dest map[string]int) error {
	defer rows.Close()
	for rows.Next() {
		var chave string
		var total int
		if err := rows.Scan(&chave, &total); err != nil {
			return err
		}
		dest[chave] = total
	}
	return rows.Err()
}

// taxaAprovacao is the approved share of decided records, in percent.
// Pending records never enter the denominator.
func taxaAprovacao(aprovadas, decididas int) float64 {
	if decididas == 0 {
		return 0
	}
	return float64(aprovadas) / float64(decididas) * 100
}

// scanVaga tolerates NULLs in every optional column, including the
// assessment fields: rows inserted before the assessment columns existed
// carry NULL there.
func scanVaga(row pgx.Row) (types.Vaga, error) {
	var v types.Vaga
	var carga, motivo, usuario, observacao *string
	var ideal, atual, deficit *int
	var prevista *bool
	err := row.Scan(
		&v.ID, &v.Nome, &v.CentroCusto, &v.Cargo, &v.Situacao, &v.NomeFantasia,
		&carga, &v.DtInicioSituacao, &v.DtRescisao, &v.DataEvento,
		&v.Tipo, &motivo, &v.DiasAfastamento, &v.Status, &v.DataDecisao,
		&usuario, &observacao, &ideal, &atual,
		&deficit, &prevista, &v.DataCriacao, &v.DataAtualizacao,
	)
	if err != nil {
		return types.Vaga{}, err
	}
	if carga != nil {
		v.CargaHoraria = *carga
	}
	if motivo != nil {
		v.Motivo = *motivo
	}
	if usuario != nil {
		v.UsuarioAprovador = *usuario
	}
	if observacao != nil {
		v.Observacao = *observacao
	}
	if ideal != nil {
		v.Avaliacao.QuantidadeIdeal = *ideal
	}
	if atual != nil {
		v.Avaliacao.QuantidadeAtual = *atual
	}
	if deficit != nil {
		v.Avaliacao.Deficit = *deficit
	}
	if prevista != nil {
		v.Avaliacao.VagaPrevista = *prevista
	}
	return v, nil
}
