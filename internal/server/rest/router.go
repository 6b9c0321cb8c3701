package rest

import (
	"net/http"

	"github.com/akarpov/blogbox/internal/logging"
	"github.com/akarpov/blogbox/internal/server/blogs"
	"github.com/akarpov/blogbox/internal/server/users"
	"github.com/go-chi/chi/v5"
)

// RouterDeps bundles what NewRouter needs.
type RouterDeps struct {
	Users       *users.Service
	Blogs       *blogs.Service
	SecretKey   []byte
	RateLimiter *RateLimiter
	Logger      logging.Logger
}

// NewRouter builds the /api routing tree.
//
// The auth endpoints sit behind the per-IP rate limiter; everything under
// /api/blogs additionally requires a bearer token.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	authH := &authHandler{users: deps.Users, logger: deps.Logger}
	blogH := &blogHandler{blogs: deps.Blogs, logger: deps.Logger}

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.Middleware())
			}

			r.Post("/signup", authH.Signup)
			r.Post("/login", authH.Login)
			r.With(bearerAuth(deps.SecretKey)).Get("/me", authH.Me)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Use(bearerAuth(deps.SecretKey))

			r.Get("/", blogH.List)
			r.Post("/", blogH.Create)
			r.Get("/my-blogs", blogH.MyBlogs)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", blogH.Get)
				r.Put("/", blogH.Update)
				r.Delete("/", blogH.Delete)
			})
		})
	})

	return r
}
