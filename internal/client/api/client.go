// Package api implements the REST client for the blogbox backend.
// All authenticated calls carry the token as a bearer credential.
package api

import "context"

// Client defines the backend operations the CLI needs.
//
// Contract:
//   - Login / Signup: exchange credentials for a {token, user} pair.
//   - Me: verify a token and fetch the profile it authorizes.
//   - ListBlogs / MyBlogs / GetBlog: read-only listing calls.
//   - CreateBlog / UpdateBlog / DeleteBlog: CRUD on posts.
//
// All methods honor context cancellation. Auth failures are reported as
// ErrUnauthorized, connectivity failures as ErrUnavailable.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (string, UserProfile, error)
	Signup(ctx context.Context, name, email string, password []byte) (string, UserProfile, error)
	Me(ctx context.Context, token string) (UserProfile, error)
	ListBlogs(ctx context.Context, token string, filter ListFilter) ([]BlogSummary, error)
	MyBlogs(ctx context.Context, token string) ([]BlogSummary, error)
	GetBlog(ctx context.Context, token, id string) (BlogSummary, error)
	CreateBlog(ctx context.Context, token string, draft BlogDraft) (BlogSummary, error)
	UpdateBlog(ctx context.Context, token, id string, draft BlogDraft) (BlogSummary, error)
	DeleteBlog(ctx context.Context, token, id string) error
}
