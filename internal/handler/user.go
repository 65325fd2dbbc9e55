package handler

import (
	"net/http"

	"github.com/Dan9191/post-service/internal/response"
	"github.com/Dan9191/post-service/internal/service"
)

type registerRequest struct {
	Name           string `json:"name"`
	PhoneNumber    string `json:"phone_number"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeat_password"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type messageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type loginUser struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Token       string `json:"token"`
}

type loginResponse struct {
	Status  int       `json:"status"`
	Message string    `json:"message"`
	User    loginUser `json:"user"`
}

type publicUser struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type usersResponse struct {
	Status int          `json:"status"`
	Users  []publicUser `json:"users"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.auth.Register(r.Context(), service.RegisterInput{
		Name:           req.Name,
		PhoneNumber:    req.PhoneNumber,
		Password:       req.Password,
		RepeatPassword: req.RepeatPassword,
	})
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Status: http.StatusOK, Message: "User has been registered"})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Status:  http.StatusOK,
		Message: "User logged in successfully",
		User: loginUser{
			Name:        user.Name,
			PhoneNumber: user.PhoneNumber,
			Token:       token,
		},
	})
}

// ListUsers returns a page of public user fields
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), pageParam(r))
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	out := make([]publicUser, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser{Name: u.Name, PhoneNumber: u.PhoneNumber})
	}
	response.JSON(w, http.StatusOK, usersResponse{Status: http.StatusOK, Users: out})
}
