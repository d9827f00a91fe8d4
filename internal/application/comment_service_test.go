package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
)

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		comments := new(MockCommentRepo)
		blogs := new(MockBlogRepo)
		svc := NewCommentService(comments, blogs, nil)

		blogs.On("GetByID", ctx, "blog-1").Return(&entity.Blog{ID: "blog-1", AuthorID: "user-a"}, nil).Once()
		comments.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Comment).ID = "comment-1"
		}).Return(nil).Once()
		comments.On("GetByID", ctx, "comment-1").
			Return(&entity.Comment{ID: "comment-1", BlogID: "blog-1", AuthorID: "user-b", AuthorUsername: "bob", Content: "nice"}, nil).Once()

		c, err := svc.Create(ctx, "user-b", "blog-1", "nice")

		assert.NoError(t, err)
		assert.Equal(t, "bob", c.AuthorUsername)
		comments.AssertExpectations(t)
		blogs.AssertExpectations(t)
	})

	t.Run("MissingParentBlog", func(t *testing.T) {
		comments := new(MockCommentRepo)
		blogs := new(MockBlogRepo)
		svc := NewCommentService(comments, blogs, nil)

		blogs.On("GetByID", ctx, "missing").Return(nil, repo.ErrNotFound).Once()

		_, err := svc.Create(ctx, "user-b", "missing", "nice")

		assert.ErrorIs(t, err, ErrBlogNotFound)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()
	comment := &entity.Comment{ID: "comment-1", BlogID: "blog-1", AuthorID: "user-b"}

	t.Run("OwnerDeletes", func(t *testing.T) {
		comments := new(MockCommentRepo)
		svc := NewCommentService(comments, new(MockBlogRepo), nil)

		comments.On("GetByID", ctx, "comment-1").Return(comment, nil).Once()
		comments.On("Delete", ctx, "comment-1").Return(true, nil).Once()

		assert.NoError(t, svc.Delete(ctx, "user-b", "comment-1"))
		comments.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		comments := new(MockCommentRepo)
		svc := NewCommentService(comments, new(MockBlogRepo), nil)

		comments.On("GetByID", ctx, "comment-1").Return(comment, nil).Once()

		err := svc.Delete(ctx, "user-a", "comment-1")

		assert.ErrorIs(t, err, ErrNotOwner)
		comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyGoneIsNotFound", func(t *testing.T) {
		comments := new(MockCommentRepo)
		svc := NewCommentService(comments, new(MockBlogRepo), nil)

		comments.On("GetByID", ctx, "comment-1").Return(nil, repo.ErrNotFound).Once()

		err := svc.Delete(ctx, "user-b", "comment-1")

		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
