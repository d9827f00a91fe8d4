package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpost/inkpost/internal/domain/entity"
	"github.com/inkpost/inkpost/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `
	b.id, b.author_id, u.username, b.title, b.content, b.tags, b.image_url,
	b.created_at, b.updated_at`

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{}
	if err := row.Scan(&b.ID, &b.AuthorID, &b.AuthorUsername, &b.Title, &b.Content,
		&b.Tags, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (author_id, title, content, tags, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, b.AuthorID, b.Title, b.Content, b.Tags, b.ImageURL)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+blogColumns+`
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1
	`, id)

	b, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List applies the filter as a dynamically built WHERE clause. The sort column
// is chosen from a fixed whitelist, never from raw input.
func (r *BlogRepository) List(ctx context.Context, f repository.BlogFilter) ([]*entity.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE 1=1`
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += ` AND (b.title ILIKE $` + strconv.Itoa(n) + ` OR b.content ILIKE $` + strconv.Itoa(n) + `)`
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		query += ` AND b.author_id = $` + strconv.Itoa(len(args))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		query += ` AND $` + strconv.Itoa(len(args)) + ` = ANY(b.tags)`
	}

	switch f.Sort {
	case repository.SortOldest:
		query += ` ORDER BY b.created_at ASC`
	case repository.SortTitleAZ:
		query += ` ORDER BY b.title ASC`
	case repository.SortTitleZA:
		query += ` ORDER BY b.title DESC`
	default:
		query += ` ORDER BY b.created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []*entity.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	b.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE blogs
		SET title = $1, content = $2, tags = $3, image_url = $4, updated_at = $5
		WHERE id = $6
	`, b.Title, b.Content, b.Tags, b.ImageURL, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *BlogRepository) DistinctTags(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT unnest(tags) AS tag FROM blogs ORDER BY tag
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
