package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akarpov/blogbox/internal/logging"
	"github.com/akarpov/blogbox/internal/server/blogs"
	"github.com/akarpov/blogbox/internal/server/users"
	"github.com/akarpov/blogbox/internal/shared"
	"github.com/go-chi/chi/v5"
)

type authHandler struct {
	users  *users.Service
	logger logging.Logger
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.ErrorValidation)
		return
	}

	res, err := h.users.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "signup rejected", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Token:   res.Token,
		User:    toUserPayload(res.User),
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, shared.ErrorValidation)
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "login rejected", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Token:   res.Token,
		User:    toUserPayload(res.User),
	})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), userID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, toUserPayload(user))
}

type blogHandler struct {
	blogs  *blogs.Service
	logger logging.Logger
}

type draftRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

func (h *blogHandler) decodeDraft(ctx context.Context, r *http.Request) (blogs.Draft, error) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug(ctx, "malformed draft payload", "error", err)
		return blogs.Draft{}, shared.ErrorValidation
	}
	return blogs.Draft{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		ImageURL: req.ImageURL,
	}, nil
}

func (h *blogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := blogs.ListFilter{
		Category: r.URL.Query().Get("category"),
		Author:   r.URL.Query().Get("author"),
	}

	list, err := h.blogs.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, toBlogPayloads(list))
}

func (h *blogHandler) MyBlogs(w http.ResponseWriter, r *http.Request) {
	list, err := h.blogs.ListByAuthor(r.Context(), userID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, toBlogPayloads(list))
}

func (h *blogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, toBlogPayload(blog))
}

func (h *blogHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := h.decodeDraft(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), userID(r.Context()), draft)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: toBlogPayload(blog)})
}

func (h *blogHandler) Update(w http.ResponseWriter, r *http.Request) {
	draft, err := h.decodeDraft(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Update(r.Context(), userID(r.Context()), chi.URLParam(r, "id"), draft)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, toBlogPayload(blog))
}

func (h *blogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blogs.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "blog deleted"})
}
