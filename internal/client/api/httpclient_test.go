package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 2*time.Second)
}

func TestLoginSuccess(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ann@example.com", body["email"])
		require.Equal(t, "pw", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok-1",
			"user":    map[string]string{"id": "u1", "name": "Ann", "email": "ann@example.com"},
		})
	})

	token, user, err := c.Login(context.Background(), "ann@example.com", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)
	require.Equal(t, UserProfile{ID: "u1", Name: "Ann", Email: "ann@example.com"}, user)
}

func TestLoginRejected(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid email/password"})
	})

	_, _, err := c.Login(context.Background(), "ann@example.com", []byte("bad"))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore
	c := NewHTTPClient(srv.URL, time.Second)

	_, _, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMeSendsBearerToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"id": "u1", "name": "Ann", "email": "ann@example.com"},
		})
	})

	user, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

func TestMeFoldsFailuresIntoUnauthorized(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "rejected token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not json"))
			},
		},
		{
			name: "empty profile",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]string{}})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newServer(t, tc.handler)
			_, err := c.Me(context.Background(), "tok")
			require.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestListBlogsFilters(t *testing.T) {
	var gotQuery string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]string{
				{"id": "b1", "title": "First", "author": "Ann", "category": "Travel"},
			},
		})
	})

	blogs, err := c.ListBlogs(context.Background(), "tok", ListFilter{Category: "Travel", Author: "ann"})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	require.Equal(t, "First", blogs[0].Title)
	require.Contains(t, gotQuery, "category=Travel")
	require.Contains(t, gotQuery, "author=ann")
}

func TestListBlogsNoFilters(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	blogs, err := c.ListBlogs(context.Background(), "tok", ListFilter{})
	require.NoError(t, err)
	require.Empty(t, blogs)
}

func TestListBlogsTransientFailure(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "db down"})
	})

	_, err := c.ListBlogs(context.Background(), "tok", ListFilter{})
	require.ErrorIs(t, err, ErrRequestFailed)
	require.Contains(t, err.Error(), "db down")
}

func TestCreateAndDeleteBlog(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var draft BlogDraft
			require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]string{"id": "b9", "title": draft.Title, "category": draft.Category},
			})
		case http.MethodDelete:
			require.Equal(t, "/api/blogs/b9", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "deleted"})
		}
	})

	blog, err := c.CreateBlog(context.Background(), "tok", BlogDraft{Title: "Hi", Content: "x", Category: "Other"})
	require.NoError(t, err)
	require.Equal(t, "b9", blog.ID)

	require.NoError(t, c.DeleteBlog(context.Background(), "tok", "b9"))
}
