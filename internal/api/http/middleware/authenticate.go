package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
)

// Authenticate validates bearer tokens and injects decoded claims into the
// request context. Requests without a token pass through unauthenticated;
// the role check decides whether that is acceptable for the route.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle parses the Authorization header when present. A token that fails
// validation rejects the request outright.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.tokenManager.Parse(tokenString)
		if err != nil {
			m.logger.Warn("Authenticate middleware: invalid token",
				"error", err.Error())
			writeAuthError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Access token is invalid or expired.")
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetClaimsToContext(r.Context(), claims)))
	})
}

// Authorize checks the authenticated role against a route's allowed roles.
type Authorize struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates a new Authorize middleware instance.
func NewAuthorize(contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{
		contextManager: contextManager,
		logger:         logger,
	}
}

// Require rejects requests without claims and, when roles are given,
// requests whose role is not among them.
func (m *Authorize) Require(next http.Handler, roles ...model.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.contextManager.GetClaimsFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.")
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			m.logger.Warn("Authorize middleware: insufficient role",
				"nickname", claims.Nickname,
				"role", string(claims.Role))
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Access denied. Insufficient permissions.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasRole(role model.Role, roles []model.Role) bool {
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"code":    code,
		"message": message,
	})
}
