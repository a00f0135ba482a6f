package services

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

// FiltroRelatorio restricts which roster rows participate in the deficit
// board. The expression sees the row as a string map bound to `f`, e.g.
// `f.nome_fantasia == "SBCD - REDE ASSIST. NORTE-SP"`.
type FiltroRelatorio struct {
	program cel.Program
}

func newFiltroCELEnv() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable("f", cel.MapType(cel.StringType, cel.StringType)))
}

// CompileFiltro validates and compiles a filter expression. An empty
// expression yields a nil filter that admits every row.
func CompileFiltro(expr string) (*FiltroRelatorio, error) {
	if expr == "" {
		return nil, nil
	}
	env, err := newFiltroCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filtro_relatorio: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, errors.New("filtro_relatorio: expressão deve retornar bool")
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	return &FiltroRelatorio{program: program}, nil
}

// Admite reports whether a roster row passes the filter. A nil filter
// admits everything; an evaluation error rejects the row and surfaces the
// error to the caller.
func (fr *FiltroRelatorio) Admite(f types.Funcionario) (bool, error) {
	if fr == nil {
		return true, nil
	}
	out, _, err := fr.program.Eval(map[string]any{"f": filtroCtx(f)})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("filtro_relatorio: resultado não booleano")
	}
	return b, nil
}

func filtroCtx(f types.Funcionario) map[string]string {
	return map[string]string{
		"nome":          f.Nome,
		"cargo":         f.Cargo,
		"centro_custo":  f.CentroCusto,
		"nome_fantasia": f.NomeFantasia,
		"carga_horaria": f.CargaHoraria,
		"situacao":      f.Situacao,
	}
}
