package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/madukisp/oris-vagas/internal/routing"
)

type stubAuthorizer struct {
	allowed  bool
	enforced bool
	err      error

	lastSubject string
	lastObject  string
	lastAction  string
}

func (a *stubAuthorizer) Authorize(subject string, _ string, object string, action string) (bool, bool, error) {
	a.lastSubject = subject
	a.lastObject = object
	a.lastAction = action
	return a.allowed, a.enforced, a.err
}

func mustTestClassifier(t *testing.T) *routing.Classifier {
	t.Helper()

	c, err := routing.NewClassifier(routing.Allowlist{Version: 1, Entrypoints: map[string]routing.Entrypoint{
		"server": {Routes: []routing.Route{{Path: "/healthz", Methods: []string{"GET"}, RouteClass: "ops"}}},
	}}, "server")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestWithAuthz_AllowsHealthz(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := withAuthz(mustTestClassifier(t), &stubAuthorizer{allowed: false, enforced: true}, next)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestWithAuthz_DeniesDecisionRoute(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	stub := &stubAuthorizer{allowed: false, enforced: true}
	h := withAuthz(mustTestClassifier(t), stub, next)

	req := httptest.NewRequest(http.MethodPost, "/api/vagas/aprovar", nil)
	req.Header.Set("X-Role", "analista")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d", rec.Code)
	}
	if stub.lastSubject != "role:analista" || stub.lastObject != "vagas.decisoes" || stub.lastAction != "admin" {
		t.Fatalf("checked %q %q %q", stub.lastSubject, stub.lastObject, stub.lastAction)
	}
}

func TestWithAuthz_ShadowDenyPasses(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := withAuthz(mustTestClassifier(t), &stubAuthorizer{allowed: false, enforced: false}, next)

	req := httptest.NewRequest(http.MethodPost, "/api/vagas/sincronizar", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestAuthzRequirementForRoute(t *testing.T) {
	cases := []struct {
		method, path   string
		object, action string
		check          bool
	}{
		{http.MethodGet, "/api/vagas", "vagas.registros", "read", true},
		{http.MethodGet, "/api/vagas/estatisticas", "vagas.registros", "read", true},
		{http.MethodGet, "/api/vagas/export", "vagas.export", "read", true},
		{http.MethodPost, "/api/vagas/rejeitar", "vagas.decisoes", "admin", true},
		{http.MethodPost, "/api/vagas/aprovar-e-criar", "vagas.decisoes", "admin", true},
		{http.MethodPost, "/api/vagas/sincronizar", "vagas.sincronizacao", "admin", true},
		{http.MethodGet, "/api/quadro/deficit", "quadro.deficit", "read", true},
		{http.MethodGet, "/api/vagas/aprovar", "", "", false},
		{http.MethodGet, "/outra", "", "", false},
	}
	for _, tc := range cases {
		object, action, check := authzRequirementForRoute(tc.method, tc.path)
		if object != tc.object || action != tc.action || check != tc.check {
			t.Fatalf("%s %s: got %q %q %v", tc.method, tc.path, object, action, check)
		}
	}
}

func TestRoleFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/vagas", nil)
	if got := roleFromRequest(req); got != "anonymous" {
		t.Fatalf("got %q", got)
	}
	req.Header.Set("X-Role", " Gestor ")
	if got := roleFromRequest(req); got != "Gestor" {
		t.Fatalf("got %q", got)
	}
}
