package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpost/inkpost/internal/domain/entity"
	"github.com/inkpost/inkpost/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (blog_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.BlogID, c.AuthorID, c.Content)

	return row.Scan(&c.ID, &c.CreatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.blog_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`, id)

	if err := row.Scan(&c.ID, &c.BlogID, &c.AuthorID, &c.AuthorUsername, &c.Content, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.blog_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC
	`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		c := &entity.Comment{}
		if err := rows.Scan(&c.ID, &c.BlogID, &c.AuthorID, &c.AuthorUsername, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
