package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	manager, err := NewTokenManager(TokenManagerConfig{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return manager
}

func TestRequireStaffAllowsBearerToken(t *testing.T) {
	manager := newTestManager(t)
	token, _, err := manager.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var reached bool
	handler := RequireStaff(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !reached {
		t.Fatal("expected handler to be reached")
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestRequireStaffAllowsCookie(t *testing.T) {
	manager := newTestManager(t)
	token, _, err := manager.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	handler := RequireStaff(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestRequireStaffRejectsMissingAndBadTokens(t *testing.T) {
	manager := newTestManager(t)
	handler := RequireStaff(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	cases := []struct {
		name  string
		setup func(*http.Request)
	}{
		{name: "no credentials", setup: func(*http.Request) {}},
		{name: "malformed header", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc")
		}},
		{name: "bad token", setup: func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			tc.setup(req)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
		})
	}
}
