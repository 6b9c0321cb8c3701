package blogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov/blogbox/internal/shared"
)

// Draft carries the caller-supplied fields of a create or update.
type Draft struct {
	Title    string
	Content  string
	Category string
	ImageURL string
}

func (d *Draft) validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	d.Category = strings.TrimSpace(d.Category)

	if d.Title == "" || d.Content == "" {
		return shared.ErrorValidation
	}
	if !ValidCategory(d.Category) {
		return shared.ErrorInvalidCategory
	}
	return nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Blog, error) {
	blogs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing blogs: %v", err)
	}
	return blogs, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error) {
	blogs, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("error listing blogs: %v", err)
	}
	return blogs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Blog, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, authorID string, draft Draft) (*Blog, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	blog := &Blog{
		Title:    draft.Title,
		Content:  draft.Content,
		Category: draft.Category,
		AuthorID: authorID,
		ImageURL: draft.ImageURL,
	}

	blog, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("error creating blog: %v", err)
	}
	return blog, nil
}

// Update rewrites a post. Only its author may do so.
func (s *Service) Update(ctx context.Context, authorID, id string, draft Draft) (*Blog, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.AuthorID != authorID {
		return nil, shared.ErrorForbidden
	}

	stored.Title = draft.Title
	stored.Content = draft.Content
	stored.Category = draft.Category
	stored.ImageURL = draft.ImageURL

	blog, err := s.repo.Update(ctx, stored)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating blog: %v", err)
	}
	return blog, nil
}

// Delete removes a post. Only its author may do so.
func (s *Service) Delete(ctx context.Context, authorID, id string) error {
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if stored.AuthorID != authorID {
		return shared.ErrorForbidden
	}

	return s.repo.Delete(ctx, id)
}
