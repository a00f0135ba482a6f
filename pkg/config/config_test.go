package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/madukisp/oris-vagas/pkg/authz"
)

func limparEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ORIS_CONFIG", "HTTP_ADDR", "LOG_LEVEL", "DATA_MINIMA_VAGAS", "FILTRO_RELATORIO", "AUTHZ_MODE", "AUTHZ_MODEL_PATH", "AUTHZ_POLICY_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	limparEnv(t)

	c, err := Load(filepath.Join(t.TempDir(), "inexistente.yaml"))
	if err == nil {
		t.Fatal("explicit missing file must error")
	}

	c, err = Load("")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.HTTPAddr != ":8084" || c.LogLevel != "info" {
		t.Fatalf("defaults: %+v", c)
	}
	if got := c.DataMinima(); !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("data minima=%v", got)
	}
}

func TestLoadFile(t *testing.T) {
	limparEnv(t)

	path := filepath.Join(t.TempDir(), "oris.yaml")
	if err := os.WriteFile(path, []byte(`
http_addr: ":9000"
data_minima_vagas: "01/02/2025"
filtro_relatorio: 'f["nome_fantasia"] == "SBCD"'
authz:
  mode: shadow
`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.HTTPAddr != ":9000" {
		t.Fatalf("addr=%q", c.HTTPAddr)
	}
	if got := c.DataMinima(); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("data minima=%v", got)
	}
	if c.FiltroRelatorio == "" {
		t.Fatal("filtro vazio")
	}
	mode, err := c.AuthzMode()
	if err != nil || mode != authz.ModeShadow {
		t.Fatalf("mode=%v err=%v", mode, err)
	}
}

func TestEnvOverrides(t *testing.T) {
	limparEnv(t)
	t.Setenv("HTTP_ADDR", ":7777")
	t.Setenv("DATA_MINIMA_VAGAS", "2025-03-01")

	c, err := Load("")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.HTTPAddr != ":7777" {
		t.Fatalf("addr=%q", c.HTTPAddr)
	}
	if got := c.DataMinima(); !got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("data minima=%v", got)
	}
}

func TestValidateRejeita(t *testing.T) {
	limparEnv(t)

	t.Setenv("DATA_MINIMA_VAGAS", "nunca")
	if _, err := Load(""); err == nil {
		t.Fatal("expected invalid cutoff error")
	}
	t.Setenv("DATA_MINIMA_VAGAS", "")

	path := filepath.Join(t.TempDir(), "oris.yaml")
	if err := os.WriteFile(path, []byte("authz:\n  mode: talvez\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected invalid authz mode error")
	}
}
