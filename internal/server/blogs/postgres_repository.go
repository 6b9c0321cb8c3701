package blogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akarpov/blogbox/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const blogColumns = `b.id, b.title, b.content, b.category, b.author_id, u.name, b.image_url, b.created_at, b.updated_at`

func scanBlog(row interface{ Scan(...any) error }) (*Blog, error) {
	b := &Blog{}
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Category,
		&b.AuthorID, &b.AuthorName, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Blog, error) {

	query := `SELECT ` + blogColumns + `
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE ($1 = '' OR b.category = $1)
		   AND ($2 = '' OR u.name ILIKE '%' || $2 || '%')
		 ORDER BY b.created_at DESC
		 `

	return r.queryBlogs(ctx, query, filter.Category, filter.Author)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Blog, error) {

	query := `SELECT ` + blogColumns + `
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.author_id = $1
		 ORDER BY b.created_at DESC
		 `

	return r.queryBlogs(ctx, query, authorID)
}

func (r *PostgresRepository) queryBlogs(ctx context.Context, query string, args ...any) ([]*Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []*Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Blog, error) {

	query := `SELECT ` + blogColumns + `
		 FROM blogs b JOIN users u ON u.id = b.author_id
		 WHERE b.id = $1
		 `

	b, err := scanBlog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return b, nil
}

func (r *PostgresRepository) Create(ctx context.Context, blog *Blog) (*Blog, error) {

	query :=
		`INSERT INTO blogs (title, content, category, author_id, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		blog.Title, blog.Content, blog.Category, blog.AuthorID, blog.ImageURL).
		Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return blog, nil
}

func (r *PostgresRepository) Update(ctx context.Context, blog *Blog) (*Blog, error) {

	query :=
		`UPDATE blogs
		 SET title = $2, content = $3, category = $4, image_url = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		blog.ID, blog.Title, blog.Content, blog.Category, blog.ImageURL).
		Scan(&blog.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return blog, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %v", err)
	}
	if affected == 0 {
		return shared.ErrorNotFound
	}

	return nil
}
