package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/post-service/internal/middleware"
	"github.com/Dan9191/post-service/internal/response"
)

// Router builds the HTTP routes
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(h.log), middleware.Recovery(h.log))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", h.Health).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	gate := middleware.AuthMiddleware(h.auth, h.log)

	// Public routes
	v1.HandleFunc("/user/register", h.Register).Methods("POST")
	v1.HandleFunc("/user/login", h.Login).Methods("POST")
	if h.usersRequireAuth {
		v1.Handle("/users", gate(http.HandlerFunc(h.ListUsers))).Methods("GET")
	} else {
		v1.HandleFunc("/users", h.ListUsers).Methods("GET")
	}

	// Protected routes
	authRouter := v1.NewRoute().Subrouter()
	authRouter.Use(gate)
	authRouter.HandleFunc("/new/post", h.CreatePost).Methods("POST")
	authRouter.HandleFunc("/posts", h.ListPosts).Methods("GET")
	authRouter.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	authRouter.HandleFunc("/posts/{id}", h.UpdatePost).Methods("PATCH")
	authRouter.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")

	return r
}
