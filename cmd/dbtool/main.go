package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/madukisp/oris-vagas/internal/snapshotingest"
)

func main() {
	if len(os.Args) < 2 {
		fatalf("usage: dbtool <migrate-vagas|load-snapshots|vagas-smoke> [args]")
	}

	switch os.Args[1] {
	case "migrate-vagas":
		migrateVagas(os.Args[2:])
	case "load-snapshots":
		loadSnapshots(os.Args[2:])
	case "vagas-smoke":
		vagasSmoke(os.Args[2:])
	default:
		fatalf("unknown subcommand: %s", os.Args[1])
	}
}

const criarTabelaVagas = `
CREATE TABLE %s (
  id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  nome text NOT NULL,
  centro_custo text NOT NULL,
  cargo text NOT NULL,
  situacao text NOT NULL,
  nome_fantasia text NOT NULL,
  carga_horaria_semanal text,
  dt_inicio_situacao date,
  dt_rescisao date,
  data_evento date,
  tipo_vaga text NOT NULL CHECK (tipo_vaga IN ('demissao', 'afastamento')),
  motivo_vaga text,
  dias_afastamento integer,
  status text NOT NULL DEFAULT 'pendente' CHECK (status IN ('pendente', 'aprovado', 'rejeitado', 'cancelado')),
  data_decisao timestamptz,
  usuario_aprovador text,
  observacao text,
  quantidade_ideal integer,
  quantidade_atual integer,
  deficit integer,
  vaga_prevista_tlp boolean,
  data_criacao timestamptz NOT NULL DEFAULT now(),
  data_atualizacao timestamptz NOT NULL DEFAULT now()
)`

var indicesVagas = []string{
	`CREATE INDEX idx_vagas_status ON vagas (status)`,
	`CREATE INDEX idx_vagas_tipo ON vagas (tipo_vaga)`,
	`CREATE INDEX idx_vagas_centro_custo ON vagas (centro_custo)`,
	`CREATE INDEX idx_vagas_cargo ON vagas (cargo)`,
	`CREATE INDEX idx_vagas_data_evento ON vagas (data_evento)`,
	`CREATE INDEX idx_vagas_data_decisao ON vagas (data_decisao)`,
}

var viewsVagas = []string{
	`CREATE VIEW vagas_pendentes AS
	 SELECT id, nome, cargo, centro_custo, tipo_vaga, motivo_vaga,
	        data_evento, dias_afastamento, deficit, vaga_prevista_tlp
	 FROM vagas WHERE status = 'pendente' ORDER BY data_evento DESC`,
	`CREATE VIEW vagas_aprovadas AS
	 SELECT id, nome, cargo, centro_custo, tipo_vaga, data_evento,
	        data_decisao, usuario_aprovador, deficit
	 FROM vagas WHERE status = 'aprovado' ORDER BY data_decisao DESC`,
	`CREATE VIEW vagas_canceladas AS
	 SELECT id, nome, cargo, centro_custo, tipo_vaga, data_evento,
	        data_decisao, usuario_aprovador, observacao, deficit
	 FROM vagas WHERE status = 'cancelado' ORDER BY data_decisao DESC`,
}

const gatilhoVagas = `
CREATE OR REPLACE FUNCTION vagas_touch_data_atualizacao() RETURNS trigger AS $$
BEGIN
  NEW.data_atualizacao = now();
  RETURN NEW;
END;
$$ LANGUAGE plpgsql;

CREATE TRIGGER update_vagas_timestamp
BEFORE UPDATE ON vagas
FOR EACH ROW EXECUTE FUNCTION vagas_touch_data_atualizacao()`

const colunasVagas = `nome, centro_custo, cargo, situacao, nome_fantasia,
  carga_horaria_semanal, dt_inicio_situacao, dt_rescisao, data_evento,
  tipo_vaga, motivo_vaga, dias_afastamento, status, data_decisao,
  usuario_aprovador, observacao, quantidade_ideal, quantidade_atual,
  deficit, vaga_prevista_tlp, data_criacao, data_atualizacao`

// statusCanceladoPresente reports whether any CHECK definition already
// admits the 'cancelado' status.
func statusCanceladoPresente(defs []string) bool {
	for _, def := range defs {
		if strings.Contains(def, "status") && strings.Contains(def, "cancelado") {
			return true
		}
	}
	return false
}

func migrateVagas(args []string) {
	fs := flag.NewFlagSet("migrate-vagas", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var url string
	fs.StringVar(&url, "url", "", "postgres connection string")
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if url == "" {
		fatalf("missing --url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		fatal(err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := executarMigracaoVagas(ctx, tx); err != nil {
		fatal(err)
	}

	rows, err := tx.Query(ctx, `SELECT status, count(*) FROM vagas GROUP BY status ORDER BY status`)
	if err != nil {
		fatal(err)
	}
	type linha struct {
		status string
		total  int
	}
	var linhas []linha
	for rows.Next() {
		var l linha
		if err := rows.Scan(&l.status, &l.total); err != nil {
			fatal(err)
		}
		linhas = append(linhas, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		fatal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		fatal(err)
	}

	if len(linhas) == 0 {
		fmt.Println("[migrate-vagas] nenhuma vaga cadastrada")
	} else {
		for _, l := range linhas {
			fmt.Printf("[migrate-vagas] %s: %d\n", l.status, l.total)
		}
	}
	fmt.Println("[migrate-vagas] OK")
}

// executarMigracaoVagas brings the vagas table to the current definition
// inside the caller's transaction. Running it against an up-to-date table
// changes nothing.
func executarMigracaoVagas(ctx context.Context, tx pgx.Tx) error {
	var existe bool
	if err := tx.QueryRow(ctx, `
	SELECT EXISTS (
	  SELECT 1 FROM information_schema.tables
	  WHERE table_schema = current_schema() AND table_name = 'vagas'
	)`).Scan(&existe); err != nil {
		return err
	}

	switch {
	case !existe:
		fmt.Println("[migrate-vagas] tabela vagas ausente, criando")
		if _, err := tx.Exec(ctx, fmt.Sprintf(criarTabelaVagas, "vagas")); err != nil {
			return err
		}
		for _, stmt := range indicesVagas {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, gatilhoVagas); err != nil {
			return err
		}
		for _, stmt := range viewsVagas {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}

	default:
		defs, err := checkDefs(ctx, tx)
		if err != nil {
			return err
		}
		if statusCanceladoPresente(defs) {
			fmt.Println("[migrate-vagas] status 'cancelado' ja presente, nada a fazer")
			break
		}

		fmt.Println("[migrate-vagas] reconstruindo tabela vagas com status 'cancelado'")
		for _, view := range []string{"vagas_pendentes", "vagas_aprovadas", "vagas_canceladas"} {
			if _, err := tx.Exec(ctx, "DROP VIEW IF EXISTS "+view); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `DROP TABLE IF EXISTS vagas_new`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(criarTabelaVagas, "vagas_new")); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
		INSERT INTO vagas_new (id, `+colunasVagas+`)
		OVERRIDING SYSTEM VALUE
		SELECT id, `+colunasVagas+` FROM vagas
		`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DROP TABLE vagas`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `ALTER TABLE vagas_new RENAME TO vagas`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('vagas', 'id'), COALESCE(max(id), 1))
		FROM vagas
		`); err != nil {
			return err
		}
		for _, stmt := range indicesVagas {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, gatilhoVagas); err != nil {
			return err
		}
		for _, stmt := range viewsVagas {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkDefs(ctx context.Context, tx pgx.Tx) ([]string, error) {
	rows, err := tx.Query(ctx, `
	SELECT pg_get_constraintdef(oid)
	FROM pg_constraint
	WHERE conrelid = 'vagas'::regclass AND contype = 'c'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func loadSnapshots(args []string) {
	fs := flag.NewFlagSet("load-snapshots", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var url, relatorioPath, tlpPath string
	fs.StringVar(&url, "url", "", "postgres connection string")
	fs.StringVar(&relatorioPath, "relatorio", "", "ORIS roster export (xlsx)")
	fs.StringVar(&tlpPath, "tlp", "", "headcount plan export (xlsx)")
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if url == "" {
		fatalf("missing --url")
	}
	if relatorioPath == "" || tlpPath == "" {
		fatalf("missing --relatorio or --tlp")
	}

	relatorio := lerPlanilhaArquivo(relatorioPath)
	plano := lerPlanilhaArquivo(tlpPath)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		fatal(err)
	}
	defer conn.Close(context.Background())

	res, err := snapshotingest.Carregar(ctx, snapshotingest.NewPGStore(conn), relatorio, plano)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("[load-snapshots] relatorio_oris: %d linha(s)\n", res.LinhasRelatorio)
	fmt.Printf("[load-snapshots] tlp: %d linha(s)\n", res.LinhasTLP)
}

func lerPlanilhaArquivo(path string) snapshotingest.Planilha {
	f, err := os.Open(path)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = f.Close() }()

	p, err := snapshotingest.LerPlanilha(f)
	if err != nil {
		fatalf("%s: %v", path, err)
	}
	return p
}

// vagasSmoke exercises the transition guards against a scratch row and
// rolls everything back, so it is safe to point at a live database.
func vagasSmoke(args []string) {
	fs := flag.NewFlagSet("vagas-smoke", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var url string
	fs.StringVar(&url, "url", "", "postgres connection string")
	if err := fs.Parse(args); err != nil {
		fatal(err)
	}
	if url == "" {
		fatalf("missing --url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		fatal(err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	var id int64
	if err := tx.QueryRow(ctx, `
	INSERT INTO vagas (nome, centro_custo, cargo, situacao, nome_fantasia, tipo_vaga, data_evento)
	VALUES ('__smoke__', '__smoke__', '__smoke__', '99-Demitido', '__smoke__', 'demissao', now()::date)
	RETURNING id
	`).Scan(&id); err != nil {
		fatal(err)
	}

	exigir := func(sql string, esperado int64, rotulo string) {
		tag, err := tx.Exec(ctx, sql, id)
		if err != nil {
			fatal(err)
		}
		if tag.RowsAffected() != esperado {
			fatalf("%s: expected %d row(s), got %d", rotulo, esperado, tag.RowsAffected())
		}
	}

	exigir(`UPDATE vagas SET status='cancelado', data_decisao=now() WHERE id=$1 AND status='aprovado'`, 0, "cancelar pendente")
	exigir(`UPDATE vagas SET status='aprovado', data_decisao=now(), usuario_aprovador='smoke' WHERE id=$1 AND status='pendente'`, 1, "aprovar")
	exigir(`UPDATE vagas SET status='aprovado', data_decisao=now() WHERE id=$1 AND status='pendente'`, 0, "aprovar duas vezes")
	exigir(`UPDATE vagas SET status='cancelado', data_decisao=now(), observacao='smoke' WHERE id=$1 AND status='aprovado'`, 1, "cancelar aprovada")
	exigir(`UPDATE vagas SET status='pendente', data_decisao=NULL, usuario_aprovador=NULL, observacao=NULL WHERE id=$1`, 1, "desfazer")

	var status string
	if err := tx.QueryRow(ctx, `SELECT status FROM vagas WHERE id=$1`, id).Scan(&status); err != nil {
		fatal(err)
	}
	if status != "pendente" {
		fatalf("expected status pendente after undo, got %s", status)
	}

	// Scratch row never persists.
	if err := tx.Rollback(ctx); err != nil {
		fatal(err)
	}

	fmt.Println("[vagas-smoke] OK")
}

func fatal(err error) {
	if err == nil {
		os.Exit(1)
	}
	fatalf("%v", err)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
