package http

import (
	"database/sql"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/kevserarslan/car-rental-management/internal/config"
	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
	"github.com/kevserarslan/car-rental-management/internal/security"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates X-Request-ID, generating one when absent, and attaches
// a request-scoped logger to the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := withRequestID(r.Context(), id)
		ctx = logger.NewContext(ctx, logger.Get().With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger middleware logs HTTP requests with structured logging
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logger.InfoContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

// Recovery turns a panic into a 500 and logs the stack.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(r.Context(), "Panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				InternalServerError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS builds the cross-origin handler from config.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposedHeaders:   []string{"Authorization", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           cfg.MaxAgeSeconds,
	})
}

// AuthMiddleware enforces the route security table and injects the caller.
// The role comes from the stored user, so a demotion or deletion takes effect
// before the token expires.
type AuthMiddleware struct {
	tokens security.TokenManager
	users  repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.GetSecurityLevel(r.Method, r.URL.Path)

		token := bearerToken(r)
		if level == config.SecurityPublic && token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if token == "" {
			Unauthorized(w, "Authentication required")
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}
			logger.WarnContext(r.Context(), "Rejected token", "path", r.URL.Path, "error", err)
			Unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := a.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if level == config.SecurityPublic {
				next.ServeHTTP(w, r)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				logger.WarnContext(r.Context(), "Token for unknown user", "user_id", claims.UserID)
				Unauthorized(w, "User no longer exists")
				return
			}
			logger.ErrorContext(r.Context(), "Failed to load caller", "user_id", claims.UserID, "error", err)
			InternalServerError(w, "Internal server error")
			return
		}

		caller := domain.Caller{UserID: user.ID, Email: user.Email, Role: user.Role}
		if level == config.SecurityAdmin && caller.Role != domain.RoleAdmin {
			Forbidden(w, "Access denied")
			return
		}

		ctx := withCaller(r.Context(), caller)
		ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("user_id", caller.UserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// responseWriter is a wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}
