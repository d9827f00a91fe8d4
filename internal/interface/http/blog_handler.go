package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkpost/inkpost/internal/application"
	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
	"github.com/inkpost/inkpost/internal/interface/middleware"
	"github.com/inkpost/inkpost/pkg/response"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

func blogJSON(b *entity.Blog) gin.H {
	return gin.H{
		"id":         b.ID,
		"title":      b.Title,
		"content":    b.Content,
		"tags":       b.Tags,
		"image_url":  b.ImageURL,
		"author":     gin.H{"id": b.AuthorID, "username": b.AuthorUsername},
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	}
}

func blogsJSON(blogs []*entity.Blog) []gin.H {
	out := make([]gin.H, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogJSON(b))
	}
	return out
}

// failBlog maps service errors onto the response taxonomy.
func (h *BlogHandler) failBlog(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrBlogNotFound):
		response.Error[any](c, http.StatusNotFound, "blog not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusForbidden, "not authorized", nil)
	default:
		h.Logger.WithError(err).Error("blog operation failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
	}
}

// List GET /api/blogs?search=&author=&tag=&sortBy=
func (h *BlogHandler) List(c *gin.Context) {
	f := repo.BlogFilter{
		Search:   c.Query("search"),
		AuthorID: c.Query("author"),
		Tag:      c.Query("tag"),
		Sort:     repo.BlogSort(c.Query("sortBy")),
	}
	blogs, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogsJSON(blogs), "blogs", gin.H{"count": len(blogs)})
}

// Get GET /api/blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogJSON(b), "blog", nil)
}

// ListMine GET /api/blogs/user/blogs
func (h *BlogHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	blogs, err := h.Svc.ListByAuthor(c.Request.Context(), uid)
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogsJSON(blogs), "your blogs", gin.H{"count": len(blogs)})
}

// Tags GET /api/blogs/tags
func (h *BlogHandler) Tags(c *gin.Context) {
	tags, err := h.Svc.Tags(c.Request.Context())
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags, "tags", nil)
}

// Search GET /api/blogs/search?q=&size=
func (h *BlogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "search results", gin.H{"count": len(docs)})
}

// blogInput reads the multipart form shared by Create and Update.
func blogInput(c *gin.Context) (application.BlogInput, *multipart.FileHeader, error) {
	in := application.BlogInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Tags:    c.PostForm("tags"),
	}
	fh, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return in, nil, err
	}
	return in, fh, nil
}

// attachImage opens the uploaded file into the input and returns it for the
// caller to close once the service is done reading.
func attachImage(in *application.BlogInput, fh *multipart.FileHeader) (io.Closer, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	in.Image = &application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}
	return f, nil
}

// Create POST /api/blogs (multipart: title, content, tags, image)
func (h *BlogHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	in, fh, err := blogInput(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if in.Title == "" || in.Content == "" {
		details := gin.H{}
		if in.Title == "" {
			details["title"] = "is required"
		}
		if in.Content == "" {
			details["content"] = "is required"
		}
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}
	img, err := attachImage(&in, fh)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image", nil)
		return
	}
	if img != nil {
		defer func() { _ = img.Close() }()
	}

	b, err := h.Svc.Create(c.Request.Context(), uid, in)
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusCreated, blogJSON(b), "blog created", nil)
}

// Update PUT /api/blogs/:id (multipart; empty fields keep previous values)
func (h *BlogHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	in, fh, err := blogInput(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	img, err := attachImage(&in, fh)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image", nil)
		return
	}
	if img != nil {
		defer func() { _ = img.Close() }()
	}

	b, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), in)
	if err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success(c, http.StatusOK, blogJSON(b), "blog updated", nil)
}

// Delete DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.failBlog(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "blog removed", nil)
}
