package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/service"
)

type stubAuthenticator struct {
	userID    int64
	verifyErr error
	user      *models.User
	userErr   error
}

func (s *stubAuthenticator) VerifyToken(token string) (int64, error) {
	return s.userID, s.verifyErr
}

func (s *stubAuthenticator) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.user, s.userErr
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func serveGated(t *testing.T, auth Authenticator, token string) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()
	var seen *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	AuthMiddleware(auth, quietLogger())(next).ServeHTTP(rec, req)
	return rec, seen
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	msg, _ := payload["error"].(string)
	return msg
}

func TestAuthMiddlewarePassesUser(t *testing.T) {
	ada := &models.User{ID: 1, Name: "Ada"}
	rec, seen := serveGated(t, &stubAuthenticator{userID: 1, user: ada}, "token")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if seen != ada {
		t.Fatalf("handler saw %+v, want %+v", seen, ada)
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	rec, seen := serveGated(t, &stubAuthenticator{}, "")

	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "Token missing" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	if seen != nil {
		t.Fatal("wrapped handler must not run")
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	auth := &stubAuthenticator{verifyErr: &service.Error{Kind: service.KindInvalidToken, Message: "Token invalid"}}
	rec, _ := serveGated(t, auth, "expired")

	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "Token invalid" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareUnknownUser(t *testing.T) {
	auth := &stubAuthenticator{userID: 9, userErr: &service.Error{Kind: service.KindInvalidToken, Message: "Token invalid"}}
	rec, _ := serveGated(t, auth, "token")

	if rec.Code != http.StatusUnauthorized || errorMessage(t, rec) != "Token invalid" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	auth := &stubAuthenticator{userID: 1, userErr: errors.New("connection reset")}
	rec, _ := serveGated(t, auth, "token")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestRecovery(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	Recovery(quietLogger())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
