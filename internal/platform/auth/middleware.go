package auth

import (
	"net/http"
	"strings"

	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
)

// TokenCookieName is the cookie fallback for staff tokens.
const TokenCookieName = "admin_token"

// RequireStaff rejects requests that do not carry a valid staff token in the
// Authorization header or the admin cookie.
func RequireStaff(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if tokens == nil {
				httpx.WriteError(ctx, w, httpx.NewError("auth_unavailable", "authentication unavailable", http.StatusServiceUnavailable))
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				if cookie, err := r.Cookie(TokenCookieName); err == nil {
					raw = strings.TrimSpace(cookie.Value)
				}
			}
			if raw == "" {
				httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "staff authentication required", http.StatusUnauthorized))
				return
			}

			if err := tokens.Verify(raw); err != nil {
				code := "token_invalid"
				if err == ErrTokenExpired {
					code = "token_expired"
				}
				httpx.WriteError(ctx, w, httpx.NewError(code, "staff authentication failed", http.StatusUnauthorized))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
