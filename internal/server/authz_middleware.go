package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/madukisp/oris-vagas/internal/routing"
	"github.com/madukisp/oris-vagas/pkg/authz"
	"github.com/madukisp/oris-vagas/pkg/config"
)

func loadAuthorizer(c config.Config) (*authz.Authorizer, error) {
	modelPath := c.Authz.ModelPath
	if modelPath == "" {
		p, err := defaultAuthzModelPath()
		if err != nil {
			return nil, err
		}
		modelPath = p
	}

	policyPath := c.Authz.PolicyPath
	if policyPath == "" {
		p, err := defaultAuthzPolicyPath()
		if err != nil {
			return nil, err
		}
		policyPath = p
	}

	mode, err := c.AuthzMode()
	if err != nil {
		return nil, err
	}

	return authz.NewAuthorizer(modelPath, policyPath, mode)
}

func defaultAuthzModelPath() (string, error) {
	path := "config/access/model.conf"
	for range 8 {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = filepath.Join("..", path)
	}
	return "", errors.New("server: authz model not found")
}

func defaultAuthzPolicyPath() (string, error) {
	path := "config/access/policy.csv"
	for range 8 {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = filepath.Join("..", path)
	}
	return "", errors.New("server: authz policy not found")
}

type authorizer interface {
	Authorize(subject string, domain string, object string, action string) (allowed bool, enforced bool, err error)
}

// roleFromRequest trusts the X-Role header. The service runs behind an
// authenticating proxy that sets it; absent means anonymous.
func roleFromRequest(r *http.Request) string {
	role := strings.TrimSpace(r.Header.Get("X-Role"))
	if role == "" {
		return authz.RoleAnonymous
	}
	return role
}

func withAuthz(classifier *routing.Classifier, a authorizer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		rc := routing.RouteClassUI
		if classifier != nil {
			rc = classifier.Classify(path)
		}

		if path == "/health" || path == "/healthz" || path == "/readyz" {
			next.ServeHTTP(w, r)
			return
		}

		object, action, shouldCheck := authzRequirementForRoute(r.Method, path)
		if !shouldCheck {
			next.ServeHTTP(w, r)
			return
		}

		subject := authz.SubjectFromRoleSlug(roleFromRequest(r))
		allowed, enforced, err := a.Authorize(subject, authz.DomainGlobal, object, action)
		if err != nil {
			routing.WriteError(w, r, rc, http.StatusInternalServerError, "authz_error", "authz error")
			return
		}
		if enforced && !allowed {
			routing.WriteError(w, r, rc, http.StatusForbidden, "forbidden", "forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func authzRequirementForRoute(method string, path string) (object string, action string, ok bool) {
	switch path {
	case "/api/vagas", "/api/vagas/estatisticas":
		if method == http.MethodGet {
			return authz.ObjectVagasRegistros, authz.ActionRead, true
		}
		return "", "", false
	case "/api/vagas/export":
		if method == http.MethodGet {
			return authz.ObjectVagasExport, authz.ActionRead, true
		}
		return "", "", false
	case "/api/vagas/aprovar", "/api/vagas/rejeitar", "/api/vagas/cancelar", "/api/vagas/desfazer", "/api/vagas/aprovar-e-criar":
		if method == http.MethodPost {
			return authz.ObjectVagasDecisoes, authz.ActionAdmin, true
		}
		return "", "", false
	case "/api/vagas/sincronizar":
		if method == http.MethodPost {
			return authz.ObjectVagasSincronizacao, authz.ActionAdmin, true
		}
		return "", "", false
	case "/api/quadro/deficit":
		if method == http.MethodGet {
			return authz.ObjectQuadroDeficit, authz.ActionRead, true
		}
		return "", "", false
	default:
		return "", "", false
	}
}
