package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
)

func newBlogService(r repo.BlogRepository) *BlogService {
	return NewBlogService(r, nil, "", nil, nil, nil, "", nil)
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go, web", []string{"go", "web"}},
		{" go ,, web , ", []string{"go", "web"}},
		{",,,", []string{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SplitTags(tc.in), "input %q", tc.in)
	}
}

func TestBlogUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	blog := &entity.Blog{ID: "blog-1", AuthorID: "user-a", Title: "old", Content: "old body"}

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "blog-1").Return(blog, nil).Once()

		_, err := svc.Update(ctx, "user-b", "blog-1", BlogInput{Title: "hijacked"})

		assert.ErrorIs(t, err, ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("MissingBlog", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "missing").Return(nil, repo.ErrNotFound).Once()

		_, err := svc.Update(ctx, "user-a", "missing", BlogInput{Title: "x"})

		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("OwnerKeepsUnsetFields", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		b := &entity.Blog{ID: "blog-1", AuthorID: "user-a", Title: "old", Content: "old body", Tags: []string{"go"}}
		mockRepo.On("GetByID", ctx, "blog-1").Return(b, nil).Once()
		mockRepo.On("Update", ctx, b).Return(nil).Once()

		updated, err := svc.Update(ctx, "user-a", "blog-1", BlogInput{Title: "new"})

		assert.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		assert.Equal(t, "old body", updated.Content)
		assert.Equal(t, []string{"go"}, updated.Tags)
		mockRepo.AssertExpectations(t)
	})
}

func TestBlogDelete(t *testing.T) {
	ctx := context.Background()
	blog := &entity.Blog{ID: "blog-1", AuthorID: "user-a"}

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "blog-1").Return(blog, nil).Once()

		err := svc.Delete(ctx, "user-b", "blog-1")

		assert.ErrorIs(t, err, ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "blog-1").Return(blog, nil).Once()
		mockRepo.On("Delete", ctx, "blog-1").Return(true, nil).Once()

		assert.NoError(t, svc.Delete(ctx, "user-a", "blog-1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("LostRaceIsNotFound", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "blog-1").Return(blog, nil).Once()
		mockRepo.On("Delete", ctx, "blog-1").Return(false, nil).Once()

		err := svc.Delete(ctx, "user-a", "blog-1")

		assert.ErrorIs(t, err, ErrBlogNotFound)
	})

	t.Run("AlreadyGoneIsNotFound", func(t *testing.T) {
		mockRepo := new(MockBlogRepo)
		svc := newBlogService(mockRepo)
		mockRepo.On("GetByID", ctx, "blog-1").Return(nil, repo.ErrNotFound).Once()

		err := svc.Delete(ctx, "user-a", "blog-1")

		assert.ErrorIs(t, err, ErrBlogNotFound)
	})
}

func TestBlogTagsWithoutCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepo)
	svc := newBlogService(mockRepo)
	mockRepo.On("DistinctTags", ctx).Return([]string{"go", "web"}, nil).Once()

	tags, err := svc.Tags(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, tags)
}

func TestBlogCreateWithoutImage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepo)
	svc := newBlogService(mockRepo)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.Blog")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Blog).ID = "blog-1"
	}).Return(nil).Once()
	mockRepo.On("GetByID", ctx, "blog-1").
		Return(&entity.Blog{ID: "blog-1", AuthorID: "user-a", AuthorUsername: "alice", Title: "t", Content: "c", Tags: []string{"go", "web"}}, nil).Once()

	b, err := svc.Create(ctx, "user-a", BlogInput{Title: "t", Content: "c", Tags: "go, web"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", b.AuthorUsername)
	mockRepo.AssertExpectations(t)
}

func TestRequireOwner(t *testing.T) {
	b := &entity.Blog{AuthorID: "user-a"}
	c := &entity.Comment{AuthorID: "user-b"}

	assert.NoError(t, RequireOwner(b, "user-a"))
	assert.ErrorIs(t, RequireOwner(b, "user-b"), ErrNotOwner)
	assert.NoError(t, RequireOwner(c, "user-b"))
	assert.ErrorIs(t, RequireOwner(c, "user-a"), ErrNotOwner)
}
