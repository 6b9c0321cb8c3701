// Package route decides which view a visitor may see, given the current
// session. Guards are pure and never call the network; the single
// authoritative server check is the bootstrap Resolver's one-time Verify.
package route

import "github.com/akarpov/blogbox/internal/client/session"

// Route names mirror the paths of the web frontend this client replaces.
type Route string

const (
	Root       Route = "/"
	Login      Route = "/login"
	Signup     Route = "/signup"
	Blogs      Route = "/blogs"
	MyBlogs    Route = "/my-blogs"
	CreateBlog Route = "/create-blog"
	EditBlog   Route = "/edit-blog/:id"
)

// Decision is the outcome of a guard: render the requested view, or go
// somewhere else instead.
type Decision struct {
	Allow      bool
	RedirectTo Route
}

// Protect gates a protected view on token presence. This is a fast local
// check, deliberately optimistic: a stale token that no Verify call has
// invalidated yet passes here and only fails when the view's own data
// request is rejected by the backend.
func Protect(s session.Session) Decision {
	if s.Token != "" {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: Login}
}

// RedirectAuthed keeps an already-authenticated visitor away from the
// login and signup views, sending them to the main listing instead.
func RedirectAuthed(s session.Session) Decision {
	if s.User.ID != "" {
		return Decision{RedirectTo: Blogs}
	}
	return Decision{Allow: true}
}
