package persistence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/madukisp/oris-vagas/modules/quadro/domain/ports"
	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

type pgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SnapshotPGStore reads the two imported source tables. The ORIS extract
// keeps the report's original headers as quoted column names, and older
// extracts rename the status-date column, so the roster is read
// positionally by header instead of by a fixed column list.
type SnapshotPGStore struct {
	pool pgBeginner
}

func NewSnapshotPGStore(pool pgBeginner) ports.SnapshotStore {
	return &SnapshotPGStore{pool: pool}
}

func (s *SnapshotPGStore) Load(ctx context.Context) (types.Snapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return types.Snapshot{}, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	missing, err := tabelasAusentes(ctx, tx, "relatorio_oris", "tlp")
	if err != nil {
		return types.Snapshot{}, err
	}
	if len(missing) > 0 {
		return types.Snapshot{}, fmt.Errorf("%w: %s", ports.ErrTabelasAusentes, strings.Join(missing, ", "))
	}

	relatorio, err := carregarRelatorio(ctx, tx)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("relatorio_oris: %w", err)
	}
	plano, err := carregarTLP(ctx, tx)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("tlp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return types.Snapshot{}, err
	}
	return types.Snapshot{Relatorio: relatorio, TLP: plano}, nil
}

func tabelasAusentes(ctx context.Context, tx pgx.Tx, nomes ...string) ([]string, error) {
	rows, err := tx.Query(ctx, `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = current_schema() AND table_name = ANY($1)
	`, nomes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presentes := map[string]bool{}
	for rows.Next() {
		var nome string
		if err := rows.Scan(&nome); err != nil {
			return nil, err
		}
		presentes[nome] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, nome := range nomes {
		if !presentes[nome] {
			missing = append(missing, nome)
		}
	}
	return missing, nil
}

func carregarRelatorio(ctx context.Context, tx pgx.Tx) ([]types.Funcionario, error) {
	rows, err := tx.Query(ctx, `SELECT * FROM relatorio_oris`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colunas := make([]string, 0, len(rows.FieldDescriptions()))
	for _, fd := range rows.FieldDescriptions() {
		colunas = append(colunas, fd.Name)
	}

	var out []types.Funcionario
	for rows.Next() {
		valores, err := rows.Values()
		if err != nil {
			return nil, err
		}
		var f types.Funcionario
		for i, coluna := range colunas {
			atribuirCampo(&f, coluna, textoCelula(valores[i]))
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// atribuirCampo maps a report header onto the roster row. Unknown
// columns are ignored so extra export columns never break the load.
func atribuirCampo(f *types.Funcionario, coluna, valor string) {
	switch strings.ToLower(strings.TrimSpace(coluna)) {
	case "nome":
		f.Nome = valor
	case "cargo":
		f.Cargo = valor
	case "centro custo", "centro_custo":
		f.CentroCusto = valor
	case "nome fantasia", "nome_fantasia":
		f.NomeFantasia = valor
	case "carga horária semanal", "carga_horaria_semanal":
		f.CargaHoraria = valor
	case "situação", "situacao":
		f.Situacao = valor
	case "dt rescisão", "dt_rescisao":
		f.DtRescisao = valor
	case "dt início situação", "dt_inicio_situacao":
		f.DtInicioSituacao = valor
	case "dt inicio situação", "dt inicio situacao":
		f.DtInicioSituacaoAlt = valor
	case "dt situação", "dt_situacao":
		f.DtSituacao = valor
	}
}

func carregarTLP(ctx context.Context, tx pgx.Tx) ([]types.TLPEntry, error) {
	rows, err := tx.Query(ctx, `SELECT contrato, unidade, cargo, carga_hora, quantidade_ideal FROM tlp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.TLPEntry
	for rows.Next() {
		valores, err := rows.Values()
		if err != nil {
			return nil, err
		}
		out = append(out, types.TLPEntry{
			Contrato:        textoCelula(valores[0]),
			Unidade:         textoCelula(valores[1]),
			Cargo:           textoCelula(valores[2]),
			CargaHoraria:    textoCelula(valores[3]),
			QuantidadeIdeal: inteiroCelula(valores[4]),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// textoCelula renders a cell as its raw text form. The source tables are
// imported from spreadsheets with loose typing, so a numeric or date
// column in one import may come back as text in another.
func textoCelula(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func inteiroCelula(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int64:
		return int(t)
	case int32:
		return int(t)
	case int16:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}
