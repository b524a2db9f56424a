package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

const createBlogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	likes INTEGER NOT NULL DEFAULT 0,
	owner_id TEXT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBlogsTable); err != nil {
		return fmt.Errorf("create blogs table: %w", err)
	}
	return nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, author, url, likes, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		nullString(blog.OwnerID),
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.Blog, error) {
	row := r.db.QueryRowContext(ctx, selectBlogs+`WHERE b.id = ?`, id)
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return blog, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogs+`ORDER BY b.created_at, b.id`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs: %w", err)
	}
	return blogs, nil
}

// Update applies only the fields present in the patch. The id and owner
// columns are never touched.
func (r *BlogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch) error {
	sets := []string{"updated_at=?"}
	args := []any{time.Now().UTC()}

	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Author != nil {
		sets = append(sets, "author=?")
		args = append(args, *patch.Author)
	}
	if patch.URL != nil {
		sets = append(sets, "url=?")
		args = append(args, *patch.URL)
	}
	if patch.Likes != nil {
		sets = append(sets, "likes=?")
		args = append(args, *patch.Likes)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE blogs SET %s WHERE id=?`, strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update blog rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete blog rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const selectBlogs = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, b.created_at, b.updated_at,
       u.id, u.username, u.name
FROM blogs b
LEFT JOIN users u ON u.id = b.owner_id
`

func scanBlog(row interface {
	Scan(dest ...any) error
}) (*domain.Blog, error) {
	var (
		blog          domain.Blog
		ownerID       sql.NullString
		joinedID      sql.NullString
		ownerUsername sql.NullString
		ownerName     sql.NullString
	)
	if err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&ownerID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&joinedID,
		&ownerUsername,
		&ownerName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	blog.OwnerID = ownerID.String
	if joinedID.Valid {
		blog.Owner = &domain.Owner{
			ID:       joinedID.String,
			Username: ownerUsername.String,
			Name:     ownerName.String,
		}
	}
	return &blog, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
