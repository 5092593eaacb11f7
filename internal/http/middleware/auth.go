package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/session"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/response"
	"jobboard/internal/security"
)

type userIDKey struct{}
type userRoleKey struct{}
type tokenIDKey struct{}

// AccountSource resolves the token subject to the live account record.
type AccountSource interface {
	GetByID(ctx context.Context, id common.UUID) (*user.User, error)
}

// AuthMiddleware authenticates bearer tokens and checks the session
// store, so a logged-out token is rejected before its expiry. The
// account status is re-checked on every request: banning a user cuts
// off their live sessions, not just future logins.
type AuthMiddleware struct {
	jwt      *security.JWTProvider
	sessions session.Store
	accounts AccountSource
}

func NewAuthMiddleware(jwt *security.JWTProvider, sessions session.Store, accounts AccountSource) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, sessions: sessions, accounts: accounts}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		if _, err := m.sessions.Get(r.Context(), claims.ID); err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "session expired", nil))
			return
		}
		if err := m.checkAccount(r.Context(), common.UUID(claims.UserID)); err != nil {
			response.Error(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, common.UUID(claims.UserID))
		ctx = context.WithValue(ctx, userRoleKey{}, user.Role(claims.Role))
		ctx = context.WithValue(ctx, tokenIDKey{}, claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the actor when a valid token is present
// and passes the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := m.sessions.Get(r.Context(), claims.ID); err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if err := m.checkAccount(r.Context(), common.UUID(claims.UserID)); err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey{}, common.UUID(claims.UserID))
		ctx = context.WithValue(ctx, userRoleKey{}, user.Role(claims.Role))
		ctx = context.WithValue(ctx, tokenIDKey{}, claims.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) checkAccount(ctx context.Context, userID common.UUID) error {
	account, err := m.accounts.GetByID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewError(common.CodeUnauthorized, "account no longer exists", nil)
		}
		return err
	}
	if account.AccountStatus != user.StatusActive {
		return common.NewError(common.CodeUnauthorized, "account is not active", nil)
	}
	return nil
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*security.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, common.NewError(common.CodeUnauthorized, "missing authorization header", nil)
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	return m.jwt.Parse(token)
}

func RequireRole(roles ...user.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				response.Error(w, common.NewError(common.CodeUnauthorized, "authentication required", nil))
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Error(w, common.NewDenied(common.ReasonForbiddenRole, "insufficient role"))
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(userRoleKey{}).(user.Role)
	return role, ok
}

func TokenIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tokenIDKey{}).(string)
	return id, ok
}

// ActorFromContext returns the authenticated actor, or nil for
// anonymous requests.
func ActorFromContext(ctx context.Context) *authz.Actor {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return nil
	}
	return &authz.Actor{ID: id, Role: role}
}
