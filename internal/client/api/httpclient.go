package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// envelope mirrors the backend's JSON response shape. Auth endpoints set
// token/user at the top level; everything else returns its payload in data.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    *UserProfile    `json:"user,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HTTPClient is the Client implementation backed by net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://localhost:5000". The "/api" prefix is appended per request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 400:
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	case decodeErr != nil:
		return nil, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, decodeErr)
	}

	return &env, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, UserProfile, error) {
	payload := map[string]string{"email": email, "password": string(password)}

	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return "", UserProfile{}, err
	}
	if env.Token == "" || env.User == nil {
		return "", UserProfile{}, ErrUnauthorized
	}
	return env.Token, *env.User, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (string, UserProfile, error) {
	payload := map[string]string{"name": name, "email": email, "password": string(password)}

	env, err := c.do(ctx, http.MethodPost, "/auth/signup", "", payload)
	if err != nil {
		return "", UserProfile{}, err
	}
	if env.Token == "" || env.User == nil {
		return "", UserProfile{}, ErrUnauthorized
	}
	return env.Token, *env.User, nil
}

// Me verifies the token against the identity endpoint. Any transport
// error, non-success status, or malformed body folds into ErrUnauthorized:
// the caller's only recovery is to treat the session as logged out.
func (c *HTTPClient) Me(ctx context.Context, token string) (UserProfile, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return UserProfile{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var user UserProfile
	if err := json.Unmarshal(env.Data, &user); err != nil || user.ID == "" {
		return UserProfile{}, ErrUnauthorized
	}
	return user, nil
}

func (c *HTTPClient) ListBlogs(ctx context.Context, token string, filter ListFilter) ([]BlogSummary, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Author != "" {
		q.Set("author", filter.Author)
	}

	path := "/blogs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	return c.listBlogs(ctx, path, token)
}

func (c *HTTPClient) MyBlogs(ctx context.Context, token string) ([]BlogSummary, error) {
	return c.listBlogs(ctx, "/blogs/my-blogs", token)
}

func (c *HTTPClient) listBlogs(ctx context.Context, path, token string) ([]BlogSummary, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var blogs []BlogSummary
	if err := json.Unmarshal(env.Data, &blogs); err != nil {
		return nil, fmt.Errorf("%w: decoding blog list: %v", ErrRequestFailed, err)
	}
	return blogs, nil
}

func (c *HTTPClient) GetBlog(ctx context.Context, token, id string) (BlogSummary, error) {
	env, err := c.do(ctx, http.MethodGet, "/blogs/"+id, token, nil)
	if err != nil {
		return BlogSummary{}, err
	}
	return decodeBlog(env.Data)
}

func (c *HTTPClient) CreateBlog(ctx context.Context, token string, draft BlogDraft) (BlogSummary, error) {
	env, err := c.do(ctx, http.MethodPost, "/blogs", token, draft)
	if err != nil {
		return BlogSummary{}, err
	}
	return decodeBlog(env.Data)
}

func (c *HTTPClient) UpdateBlog(ctx context.Context, token, id string, draft BlogDraft) (BlogSummary, error) {
	env, err := c.do(ctx, http.MethodPut, "/blogs/"+id, token, draft)
	if err != nil {
		return BlogSummary{}, err
	}
	return decodeBlog(env.Data)
}

func (c *HTTPClient) DeleteBlog(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/blogs/"+id, token, nil)
	return err
}

func decodeBlog(data json.RawMessage) (BlogSummary, error) {
	var blog BlogSummary
	if err := json.Unmarshal(data, &blog); err != nil {
		return BlogSummary{}, fmt.Errorf("%w: decoding blog: %v", ErrRequestFailed, err)
	}
	return blog, nil
}
