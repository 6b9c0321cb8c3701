package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/akarpov/blogbox/internal/server/auth"
	"github.com/akarpov/blogbox/internal/shared"
)

type contextKey string

const userIDKey contextKey = "userID"

// userID returns the authenticated user's ID stored by the bearer
// middleware, or "" for unauthenticated requests.
func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// bearerAuth validates the Authorization header and puts the token's
// user ID into the request context. Requests without a valid token get
// 401 and never reach the wrapped handler.
func bearerAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, shared.ErrorUnauthorized)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeError(w, shared.ErrorInvalidAuthheaderFormat)
				return
			}

			id, err := auth.GetUserIDFromToken(token, secretKey)
			if err != nil {
				writeError(w, shared.ErrorInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
