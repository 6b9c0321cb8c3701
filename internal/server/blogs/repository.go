package blogs

import (
	"context"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error)
	Get(ctx context.Context, id string) (*Blog, error)
	Create(ctx context.Context, blog *Blog) (*Blog, error)
	Update(ctx context.Context, blog *Blog) (*Blog, error)
	Delete(ctx context.Context, id string) error
}
