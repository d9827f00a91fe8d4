package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/inkpost/inkpost/internal/domain/entity"
)

// IndexJob is the JSON payload put on the RabbitMQ queue for blog indexing.
// Action is "index" (upsert Doc) or "delete" (remove by ID).
type IndexJob struct {
	Action string  `json:"action"`
	ID     string  `json:"id"`
	Doc    BlogDoc `json:"doc,omitempty"`
}

const (
	ActionIndex  = "index"
	ActionDelete = "delete"
)

// BlogDoc is the searchable projection of a blog.
type BlogDoc struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	AuthorID       string   `json:"author_id"`
	AuthorUsername string   `json:"author_username"`
	ImageURL       string   `json:"image_url"`
	CreatedAt      string   `json:"created_at"`
}

func DocFromBlog(b *entity.Blog) BlogDoc {
	return BlogDoc{
		ID:             b.ID,
		Title:          b.Title,
		Content:        b.Content,
		Tags:           b.Tags,
		AuthorID:       b.AuthorID,
		AuthorUsername: b.AuthorUsername,
		ImageURL:       b.ImageURL,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339Nano),
	}
}

// IndexBlog upserts a blog document.
func IndexBlog(ctx context.Context, es *elasticsearch.Client, index string, doc BlogDoc) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: doc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", doc.ID, res.Status())
	}
	return nil
}

// DeleteBlog removes a blog document. A missing document is not an error.
func DeleteBlog(ctx context.Context, es *elasticsearch.Client, index, id string) error {
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// SearchBlogs runs a multi_match over title, content, and tags.
func SearchBlogs(ctx context.Context, es *elasticsearch.Client, index, q string, size int) ([]BlogDoc, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content", "tags"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := es.Search(
		es.Search.WithContext(c),
		es.Search.WithIndex(index),
		es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source BlogDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]BlogDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
