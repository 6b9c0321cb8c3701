package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akarpov/blogbox/internal/logging"
	"github.com/akarpov/blogbox/internal/server/blogs"
	"github.com/akarpov/blogbox/internal/server/config"
	"github.com/akarpov/blogbox/internal/server/users"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, rl *RateLimiter) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := NewRouter(&RouterDeps{
		Users:       users.NewService(users.NewInMemoryRepository(), cfg),
		Blogs:       blogs.NewService(blogs.NewInMemoryRepository()),
		SecretKey:   []byte(cfg.SecretKey),
		RateLimiter: rl,
		Logger:      logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (int, testEnvelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func signup(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, env.Token)
	return env.Token
}

func TestSignupLoginMe(t *testing.T) {
	srv := newTestServer(t, nil)

	token := signup(t, srv, "Ann", "ann@example.com")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
	require.NotEmpty(t, env.Token)

	var user struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.User, &user))
	require.Equal(t, "Ann", user.Name)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &user))
	require.Equal(t, "ann@example.com", user.Email)
}

func TestMeRejectsBadTokens(t *testing.T) {
	srv := newTestServer(t, nil)

	status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginRejected(t *testing.T) {
	srv := newTestServer(t, nil)
	signup(t, srv, "Ann", "ann@example.com")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Message)
}

func TestSignupDuplicateEmail(t *testing.T) {
	srv := newTestServer(t, nil)
	signup(t, srv, "Ann", "ann@example.com")

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "", map[string]string{
		"name": "Ann Again", "email": "ann@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusConflict, status)
}

func TestBlogCRUD(t *testing.T) {
	srv := newTestServer(t, nil)
	token := signup(t, srv, "Ann", "ann@example.com")

	draft := map[string]string{
		"title": "First Post", "content": "Hello", "category": "Travel",
	}
	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", token, draft)
	require.Equal(t, http.StatusCreated, status)

	var blog struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Author   string `json:"author"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &blog))
	require.Equal(t, "First Post", blog.Title)
	require.Equal(t, "Ann", blog.Author)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/blogs", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	status, env = doJSON(t, http.MethodPut, srv.URL+"/api/blogs/"+blog.ID, token, map[string]string{
		"title": "Renamed", "content": "Hello", "category": "Health",
	})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &blog))
	require.Equal(t, "Renamed", blog.Title)
	require.Equal(t, "Health", blog.Category)

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/blogs/"+blog.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/blogs/"+blog.ID, token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestBlogListFilters(t *testing.T) {
	srv := newTestServer(t, nil)
	ann := signup(t, srv, "Alice", "alice@example.com")
	bob := signup(t, srv, "Bob", "bob@example.com")

	for _, d := range []struct {
		token, title, category string
	}{
		{ann, "Trip to Rome", "Travel"},
		{ann, "Budgeting 101", "Finance"},
		{bob, "Bob on Travel", "Travel"},
	} {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", d.token, map[string]string{
			"title": d.title, "content": "c", "category": d.category,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := doJSON(t, http.MethodGet, srv.URL+"/api/blogs?category=Travel", ann, nil)
	require.Equal(t, http.StatusOK, status)
	var list []struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/blogs?category=Travel&author=ali", ann, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Trip to Rome", list[0].Title)

	status, env = doJSON(t, http.MethodGet, srv.URL+"/api/blogs/my-blogs", bob, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	require.Equal(t, "Bob", list[0].Author)
}

func TestBlogOwnership(t *testing.T) {
	srv := newTestServer(t, nil)
	ann := signup(t, srv, "Ann", "ann@example.com")
	bob := signup(t, srv, "Bob", "bob@example.com")

	status, env := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", ann, map[string]string{
		"title": "Mine", "content": "c", "category": "Career",
	})
	require.Equal(t, http.StatusCreated, status)

	var blog struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &blog))

	status, _ = doJSON(t, http.MethodPut, srv.URL+"/api/blogs/"+blog.ID, bob, map[string]string{
		"title": "Stolen", "content": "c", "category": "Career",
	})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/blogs/"+blog.ID, bob, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestInvalidCategoryRejected(t *testing.T) {
	srv := newTestServer(t, nil)
	token := signup(t, srv, "Ann", "ann@example.com")

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/blogs", token, map[string]string{
		"title": "t", "content": "c", "category": "Gardening",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestAuthRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	t.Cleanup(rl.Stop)

	srv := newTestServer(t, rl)

	// burst of 2 goes through, the third is throttled
	var last int
	for i := 0; i < 3; i++ {
		last, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
			"email": "x@example.com", "password": "pw",
		})
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
