package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"depot-rest-api/internal/errs"
	"depot-rest-api/internal/model"
	"depot-rest-api/internal/service"
	"depot-rest-api/pkg/apierror"
	"depot-rest-api/pkg/response"
)

// principalKey is the context key for the authenticated principal.
const principalKey contextKey = "principal"

// Auth turns bearer tokens into typed principals. Dependencies are injected;
// the middleware itself never touches the store.
type Auth struct {
	tokens *service.TokenService
}

// NewAuth creates the auth middleware collection.
func NewAuth(tokens *service.TokenService) *Auth {
	return &Auth{tokens: tokens}
}

// extract runs the shared extraction path: bearer header, signature check,
// expiry check. Every failure short-circuits before the handler body runs.
func (a *Auth) extract(r *http.Request) (*service.Claims, error) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, errs.ErrMissingToken
	}

	claims, err := a.tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return nil, errs.ErrInvalidToken
	}

	if a.tokens.Expired(claims) {
		return nil, errs.ErrTokenExpired
	}

	return claims, nil
}

// authError maps an auth sentinel to its outward envelope. Missing, invalid
// and expired tokens deliberately read as distinct messages.
func authError(err error) *apierror.Error {
	switch {
	case errors.Is(err, errs.ErrMissingToken):
		return apierror.Unauthorized("missing authentication token")
	case errors.Is(err, errs.ErrTokenExpired):
		return apierror.Unauthorized("login token expired, please log in again")
	case errors.Is(err, errs.ErrInsufficientRole):
		return apierror.Forbidden("admin privileges required")
	default:
		return apierror.Unauthorized("invalid token")
	}
}

// RequireUser admits any caller with a valid, unexpired token and stores a
// user principal in the request context.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.extract(r)
		if err != nil {
			response.Error(w, authError(err))
			return
		}

		p := model.Principal{
			Kind: model.PrincipalUser,
			ID:   claims.UserID,
			Name: claims.Username,
			Flag: model.ParseUserFlag(claims.Flag),
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// RequireAdmin additionally gates on the admin role, rejecting with 403.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.extract(r)
		if err != nil {
			response.Error(w, authError(err))
			return
		}

		p := model.Principal{
			Kind: model.PrincipalUser,
			ID:   claims.UserID,
			Name: claims.Username,
			Flag: model.ParseUserFlag(claims.Flag),
		}
		if !p.IsAdmin() {
			response.Error(w, authError(errs.ErrInsufficientRole))
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// RequireClient admits a caller with a valid client token and stores a client
// principal; the flag claim carries the client type.
func (a *Auth) RequireClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.extract(r)
		if err != nil {
			response.Error(w, authError(err))
			return
		}

		p := model.Principal{
			Kind:  model.PrincipalClient,
			ID:    claims.UserID,
			Name:  claims.Username,
			Ctype: model.ParseClientType(claims.Flag),
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

// withPrincipal stores the principal in the context.
func withPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal set by the auth
// middleware. The zero Principal is returned on unauthenticated requests.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}
