package snapshotingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type pgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PGStore replaces an imported source table wholesale: each load drops
// the previous snapshot and copies the new rows in, all text columns.
type PGStore struct {
	pool pgBeginner
}

func NewPGStore(pool pgBeginner) *PGStore {
	return &PGStore{pool: pool}
}

var tabelasPermitidas = map[string]bool{
	TabelaRelatorio: true,
	TabelaTLP:       true,
}

func (s *PGStore) SubstituirTabela(ctx context.Context, tabela string, p Planilha) (int64, error) {
	if !tabelasPermitidas[tabela] {
		return 0, fmt.Errorf("tabela não suportada: %s", tabela)
	}
	if len(p.Colunas) == 0 {
		return 0, fmt.Errorf("%s: planilha sem colunas", tabela)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tabela)); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, criarTabelaSQL(tabela, p.Colunas)); err != nil {
		return 0, err
	}

	linhas := make([][]any, len(p.Linhas))
	for i, l := range p.Linhas {
		valores := make([]any, len(p.Colunas))
		for j := range p.Colunas {
			if j < len(l) && strings.TrimSpace(l[j]) != "" {
				valores[j] = l[j]
			}
		}
		linhas[i] = valores
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{tabela}, p.Colunas, pgx.CopyFromRows(linhas))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func criarTabelaSQL(tabela string, colunas []string) string {
	defs := make([]string, len(colunas))
	for i, c := range colunas {
		defs[i] = pgx.Identifier{c}.Sanitize() + " text"
	}
	return fmt.Sprintf(`CREATE TABLE %s (%s)`, tabela, strings.Join(defs, ", "))
}
