// Package rest exposes the HTTP API under /api: auth endpoints issuing
// JWTs and the blog CRUD endpoints behind bearer authentication.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akarpov/blogbox/internal/server/blogs"
	"github.com/akarpov/blogbox/internal/server/users"
	"github.com/akarpov/blogbox/internal/shared"
)

// envelope is the JSON response shape. Auth endpoints set token/user at
// the top level; everything else returns its payload in data.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type blogPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPayload(u *users.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toBlogPayload(b *blogs.Blog) blogPayload {
	return blogPayload{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Category:  b.Category,
		Author:    b.AuthorName,
		ImageURL:  b.ImageURL,
		CreatedAt: b.CreatedAt,
	}
}

func toBlogPayloads(list []*blogs.Blog) []blogPayload {
	// empty list, not null, so clients can range without a nil check
	result := make([]blogPayload, 0, len(list))
	for _, b := range list {
		result = append(result, toBlogPayload(b))
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), envelope{Success: false, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrorValidation),
		errors.Is(err, shared.ErrorInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrorUnauthorized),
		errors.Is(err, shared.ErrorInvalidToken),
		errors.Is(err, shared.ErrorInvalidEmailPassword),
		errors.Is(err, shared.ErrorInvalidAuthheaderFormat):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrorEmailAlreadyExists),
		errors.Is(err, shared.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
