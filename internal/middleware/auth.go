package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/response"
	"github.com/Dan9191/post-service/internal/service"
)

// TokenHeader carries the access token issued at login
const TokenHeader = "x-access-token"

type contextKey string

const userKey contextKey = "user"

// Authenticator verifies tokens and resolves the user they were issued for
type Authenticator interface {
	VerifyToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid token and stores the
// acting user in the request context
func AuthMiddleware(auth Authenticator, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Token missing")
				return
			}

			id, err := auth.VerifyToken(token)
			if err != nil {
				log.Debugf("Token rejected: %v", err)
				response.Error(w, http.StatusUnauthorized, "Token invalid")
				return
			}

			user, err := auth.UserByID(r.Context(), id)
			if err != nil {
				if service.KindOf(err) == service.KindInvalidToken {
					response.Error(w, http.StatusUnauthorized, "Token invalid")
					return
				}
				response.ServiceError(w, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by AuthMiddleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
