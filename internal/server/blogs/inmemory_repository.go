package blogs

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/akarpov/blogbox/internal/shared"
	"github.com/google/uuid"
)

// InMemoryRepository keeps blogs in a map. It backs the REST handler
// tests and local development without Postgres.
type InMemoryRepository struct {
	mu    sync.RWMutex
	blogs map[string]*Blog
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{blogs: make(map[string]*Blog)}
}

func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Blog
	for _, b := range r.blogs {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Author != "" &&
			!strings.Contains(strings.ToLower(b.AuthorName), strings.ToLower(filter.Author)) {
			continue
		}
		clone := *b
		result = append(result, &clone)
	}

	sortNewestFirst(result)
	return result, nil
}

func (r *InMemoryRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Blog
	for _, b := range r.blogs {
		if b.AuthorID == authorID {
			clone := *b
			result = append(result, &clone)
		}
	}

	sortNewestFirst(result)
	return result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, blog *Blog) (*Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blog.ID = uuid.NewString()
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt

	clone := *blog
	r.blogs[blog.ID] = &clone
	return blog, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, blog *Blog) (*Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.blogs[blog.ID]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	stored.Title = blog.Title
	stored.Content = blog.Content
	stored.Category = blog.Category
	stored.ImageURL = blog.ImageURL
	stored.UpdatedAt = time.Now()

	clone := *stored
	return &clone, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return shared.ErrorNotFound
	}
	delete(r.blogs, id)
	return nil
}

func sortNewestFirst(blogs []*Blog) {
	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
}
