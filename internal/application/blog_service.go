package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
	"github.com/inkpost/inkpost/internal/search"
	"github.com/inkpost/inkpost/pkg/helpers"
)

var ErrBlogNotFound = errors.New("blog not found")

const tagsCacheKey = "blogs:tags"
const tagsCacheTTL = 10 * time.Minute

// BlogService owns blog CRUD, tag aggregation, image upload, and the async
// search-index feed.
type BlogService struct {
	Repo      repo.BlogRepository
	GCS       *storage.Client
	GCSBucket string
	Redis     *redis.Client
	IndexPub  *helpers.RabbitPublisher
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewBlogService(repo repo.BlogRepository, gcs *storage.Client, gcsBucket string, rdb *redis.Client, indexPub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *BlogService {
	return &BlogService{
		Repo:      repo,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Redis:     rdb,
		IndexPub:  indexPub,
		ES:        es,
		ESIndex:   esIndex,
		Logger:    logger,
	}
}

// ImageUpload carries an optional multipart image for a blog.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// BlogInput is the client-supplied portion of a blog. Tags arrives as the raw
// comma-separated string the form sends.
type BlogInput struct {
	Title   string
	Content string
	Tags    string
	Image   *ImageUpload
}

// SplitTags turns "go, web , " into ["go","web"].
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func (s *BlogService) Create(ctx context.Context, authorID string, in BlogInput) (*entity.Blog, error) {
	b := &entity.Blog{
		AuthorID: authorID,
		Title:    in.Title,
		Content:  in.Content,
		Tags:     SplitTags(in.Tags),
	}
	if in.Image != nil {
		url, err := s.uploadImage(ctx, authorID, in.Image)
		if err != nil {
			return nil, err
		}
		b.ImageURL = url
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// re-read to populate the author join
	created, err := s.Repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	s.invalidateTagsCache(ctx)
	s.publishIndex(ctx, created)
	return created, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BlogService) List(ctx context.Context, f repo.BlogFilter) ([]*entity.Blog, error) {
	return s.Repo.List(ctx, f)
}

// ListByAuthor returns the author's own blogs, newest first.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Blog, error) {
	return s.Repo.List(ctx, repo.BlogFilter{AuthorID: authorID, Sort: repo.SortNewest})
}

// Update mutates a blog the requester owns. Empty input fields keep the
// previous values; tags are reprocessed only when supplied.
func (s *BlogService) Update(ctx context.Context, userID, blogID string, in BlogInput) (*entity.Blog, error) {
	b, err := s.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(b, userID); err != nil {
		return nil, err
	}

	if in.Title != "" {
		b.Title = in.Title
	}
	if in.Content != "" {
		b.Content = in.Content
	}
	if in.Tags != "" {
		b.Tags = SplitTags(in.Tags)
	}
	if in.Image != nil {
		url, err := s.uploadImage(ctx, userID, in.Image)
		if err != nil {
			return nil, err
		}
		b.ImageURL = url
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	s.invalidateTagsCache(ctx)
	s.publishIndex(ctx, b)
	return b, nil
}

// Delete removes a blog the requester owns. Deleting an already absent blog
// reports not-found, never a second success.
func (s *BlogService) Delete(ctx context.Context, userID, blogID string) error {
	b, err := s.Get(ctx, blogID)
	if err != nil {
		return err
	}
	if err := RequireOwner(b, userID); err != nil {
		return err
	}
	deleted, err := s.Repo.Delete(ctx, blogID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBlogNotFound
	}
	s.invalidateTagsCache(ctx)
	if s.IndexPub != nil {
		job := search.IndexJob{Action: search.ActionDelete, ID: blogID}
		if pErr := s.IndexPub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("blog_id", blogID).Warn("index delete publish failed")
		}
	}
	return nil
}

// Tags returns the de-duplicated union of all tags, cached in Redis.
func (s *BlogService) Tags(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		var cached []string
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, tagsCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	tags, err := s.Repo.DistinctTags(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, tagsCacheKey, tags, tagsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("tags cache write failed")
		}
	}
	return tags, nil
}

// Search queries the Elasticsearch index fed by the worker.
func (s *BlogService) Search(ctx context.Context, q string, size int) ([]search.BlogDoc, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []search.BlogDoc{}, nil
	}
	return search.SearchBlogs(ctx, s.ES, s.ESIndex, q, size)
}

func (s *BlogService) uploadImage(ctx context.Context, userID string, img *ImageUpload) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("image storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(img.Filename))
	objectPath := filepath.ToSlash(filepath.Join("blog-images", userID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, img.ContentType, img.Reader)
}

func (s *BlogService) invalidateTagsCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, tagsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("tags cache invalidation failed")
	}
}

func (s *BlogService) publishIndex(ctx context.Context, b *entity.Blog) {
	if s.IndexPub == nil {
		return
	}
	job := search.IndexJob{Action: search.ActionIndex, ID: b.ID, Doc: search.DocFromBlog(b)}
	if err := s.IndexPub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("blog_id", b.ID).Warn("index publish failed")
	}
}
