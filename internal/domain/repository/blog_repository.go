package repository

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain/entity"
)

// BlogSort is a whitelisted sort order for blog listings.
type BlogSort string

const (
	SortNewest  BlogSort = "newest"
	SortOldest  BlogSort = "oldest"
	SortTitleAZ BlogSort = "a-z"
	SortTitleZA BlogSort = "z-a"
)

// BlogFilter narrows a blog listing. Zero values mean "no constraint".
type BlogFilter struct {
	// Search matches title or content, case-insensitive substring.
	Search string
	// AuthorID restricts to a single author.
	AuthorID string
	// Tag restricts to blogs carrying the tag.
	Tag string
	Sort BlogSort
}

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context, f BlogFilter) ([]*entity.Blog, error)
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) (bool, error)
	// DistinctTags returns the de-duplicated union of all tags across blogs.
	DistinctTags(ctx context.Context) ([]string, error)
}
