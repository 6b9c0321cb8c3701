// Package session owns the client-side session: the durable {token, user}
// pair, the in-memory copy, and the controller that keeps the two mirrored.
package session

import "github.com/akarpov/blogbox/internal/client/api"

// Session pairs an auth token with the user profile it authorizes.
// The two are set together and cleared together; no consumer ever
// observes a half-populated pair.
type Session struct {
	Token string
	User  api.UserProfile
}

// IsEmpty reports whether no session is present.
func (s Session) IsEmpty() bool {
	return s.Token == ""
}

// Equal compares sessions by value.
func (s Session) Equal(other Session) bool {
	return s.Token == other.Token && s.User.Equal(other.User)
}
