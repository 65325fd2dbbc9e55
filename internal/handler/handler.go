package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/post-service/internal/middleware"
	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/response"
	"github.com/Dan9191/post-service/internal/service"
)

// Handler is the application context shared by all endpoints
type Handler struct {
	auth  *service.AuthService
	users *service.UserService
	posts *service.PostService
	log   *logrus.Logger

	usersRequireAuth bool
}

// NewHandler wires the services into HTTP handlers. When usersRequireAuth
// is set the user listing is placed behind the token gate.
func NewHandler(auth *service.AuthService, users *service.UserService, posts *service.PostService, log *logrus.Logger, usersRequireAuth bool) *Handler {
	return &Handler{
		auth:             auth,
		users:            users,
		posts:            posts,
		log:              log,
		usersRequireAuth: usersRequireAuth,
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "post-service",
	})
}

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// decode reads exactly one JSON value from the body into v
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("unexpected data after JSON value")
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		response.Error(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// actingUser returns the user resolved by the token gate
func (h *Handler) actingUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Token missing")
	}
	return user, ok
}

// pageParam reads ?page=N; missing or malformed values mean the first page.
// Numbers too large for an int clamp to the last representable page so the
// listing comes back empty.
func pageParam(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	page, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt
	}
	if err != nil || page < 1 {
		return 1
	}
	return page
}
