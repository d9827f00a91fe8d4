package repository

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain/entity"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
}
