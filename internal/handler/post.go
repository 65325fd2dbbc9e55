package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/response"
)

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updatePostRequest uses pointers so absent keys can be told from empty ones
type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type postView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type postResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message,omitempty"`
	Post    postView `json:"post"`
}

type postsResponse struct {
	Status int        `json:"status"`
	Posts  []postView `json:"posts"`
}

func viewOf(p *models.Post) postView {
	return postView{ID: p.ID, Title: p.Title, Description: p.Description}
}

// CreatePost handles POST /v1/new/post
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	var req createPostRequest
	if !h.decode(w, r, &req) {
		return
	}

	post, err := h.posts.CreatePost(r.Context(), user, req.Title, req.Description)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, postResponse{
		Status:  http.StatusOK,
		Message: "Post has been created",
		Post:    viewOf(post),
	})
}

// ListPosts handles GET /v1/posts
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	posts, err := h.posts.ListPosts(r.Context(), user, pageParam(r))
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	out := make([]postView, 0, len(posts))
	for i := range posts {
		out = append(out, viewOf(&posts[i]))
	}
	response.JSON(w, http.StatusOK, postsResponse{Status: http.StatusOK, Posts: out})
}

// GetPost handles GET /v1/posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, postResponse{
		Status:  http.StatusOK,
		Message: "Post has been retrieved",
		Post:    viewOf(post),
	})
}

// UpdatePost handles PATCH /v1/posts/{id}
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	var req updatePostRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Title == nil || req.Description == nil {
		response.Error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), user, mux.Vars(r)["id"], *req.Title, *req.Description)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, postResponse{
		Status:  http.StatusOK,
		Message: "Post has been updated",
		Post:    viewOf(post),
	})
}

// DeletePost handles DELETE /v1/posts/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	if err := h.posts.DeletePost(r.Context(), user, mux.Vars(r)["id"]); err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Status: http.StatusOK, Message: "Post has been deleted"})
}
