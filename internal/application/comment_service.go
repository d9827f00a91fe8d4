package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService owns comment creation, listing, and deletion.
type CommentService struct {
	Repo   repo.CommentRepository
	Blogs  repo.BlogRepository
	Logger *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, blogs repo.BlogRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Repo: comments, Blogs: blogs, Logger: logger}
}

func (s *CommentService) ListForBlog(ctx context.Context, blogID string) ([]*entity.Comment, error) {
	return s.Repo.ListByBlog(ctx, blogID)
}

// Create requires only a valid session plus an existing parent blog; there is
// no prior ownership since the comment does not exist yet.
func (s *CommentService) Create(ctx context.Context, userID, blogID, content string) (*entity.Comment, error) {
	if _, err := s.Blogs.GetByID(ctx, blogID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}

	c := &entity.Comment{BlogID: blogID, AuthorID: userID, Content: content}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}

	// re-read to populate the author join
	return s.Repo.GetByID(ctx, c.ID)
}

// Delete removes a comment the requester owns.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if err := RequireOwner(c, userID); err != nil {
		return err
	}
	deleted, err := s.Repo.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCommentNotFound
	}
	return nil
}
