package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"depot-rest-api/internal/model"
	"depot-rest-api/internal/service"
)

func issue(t *testing.T, s *service.TokenService, id uint64, name, flag string) string {
	t.Helper()
	token, err := s.Issue(id, name, flag)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("error envelope: %v (body %q)", err, body)
	}
	return envelope.Error
}

func TestRequireUserRejections(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService([]byte("test-secret"), 15*time.Minute)
	expiredTokens := service.NewTokenService([]byte("test-secret"), -time.Minute)
	auth := NewAuth(tokens)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on rejected requests")
	})

	good := issue(t, tokens, 1, "alice", "operator")
	tampered := good[:len(good)-4] + "AAAA"

	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{"missing header", "", "missing authentication token"},
		{"not bearer", "Basic abc123", "missing authentication token"},
		{"tampered", "Bearer " + tampered, "invalid token"},
		{"garbage", "Bearer not.a.token", "invalid token"},
		{"expired", "Bearer " + issue(t, expiredTokens, 1, "alice", "operator"),
			"login token expired, please log in again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.RequireUser(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", rec.Code)
			}
			if got := errorMessage(t, rec.Body.Bytes()); got != tt.wantMessage {
				t.Fatalf("message: got %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestRequireUserSetsPrincipal(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService([]byte("test-secret"), 15*time.Minute)
	auth := NewAuth(tokens)

	var seen model.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			t.Fatal("principal missing from context")
		}
		seen = p
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, 42, "alice", "operator"))
	rec := httptest.NewRecorder()

	auth.RequireUser(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if seen.Kind != model.PrincipalUser || seen.ID != 42 || seen.Name != "alice" {
		t.Fatalf("principal: got %+v", seen)
	}
	if seen.Flag != model.FlagOperator {
		t.Fatalf("flag: got %v, want operator", seen.Flag)
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService([]byte("test-secret"), 15*time.Minute)
	auth := NewAuth(tokens)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	// Operator token on an admin route
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, 1, "alice", "operator"))
	rec := httptest.NewRecorder()
	auth.RequireAdmin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("operator status: got %d, want 403", rec.Code)
	}
	if got := errorMessage(t, rec.Body.Bytes()); got != "admin privileges required" {
		t.Fatalf("message: got %q", got)
	}
	if called {
		t.Fatal("handler ran for non-admin")
	}

	// Admin token passes
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, 2, "root", "admin"))
	rec = httptest.NewRecorder()
	auth.RequireAdmin(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("admin status: got %d, called=%v", rec.Code, called)
	}
}

func TestRequireClientPrincipal(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService([]byte("test-secret"), 15*time.Minute)
	auth := NewAuth(tokens)

	var seen model.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, 9, "acme", "important"))
	rec := httptest.NewRecorder()
	auth.RequireClient(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if seen.Kind != model.PrincipalClient || seen.ID != 9 {
		t.Fatalf("principal: got %+v", seen)
	}
	if seen.Ctype != model.ClientImportant {
		t.Fatalf("ctype: got %v, want important", seen.Ctype)
	}
}

func TestBearerPrefixIsExact(t *testing.T) {
	t.Parallel()

	tokens := service.NewTokenService([]byte("test-secret"), 15*time.Minute)
	auth := NewAuth(tokens)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", strings.ToLower("bearer ")+issue(t, tokens, 1, "alice", "admin"))
	rec := httptest.NewRecorder()
	auth.RequireUser(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("lowercase bearer accepted: status %d", rec.Code)
	}
}
