package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inkpost/inkpost/internal/application"
	"github.com/inkpost/inkpost/internal/domain/entity"
	"github.com/inkpost/inkpost/internal/interface/middleware"
	"github.com/inkpost/inkpost/pkg/response"
	"github.com/inkpost/inkpost/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

func commentJSON(m *entity.Comment) gin.H {
	return gin.H{
		"id":         m.ID,
		"blog_id":    m.BlogID,
		"content":    m.Content,
		"author":     gin.H{"id": m.AuthorID, "username": m.AuthorUsername},
		"created_at": m.CreatedAt,
	}
}

func (h *CommentHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrBlogNotFound):
		response.Error[any](c, http.StatusNotFound, "blog not found", nil)
	case errors.Is(err, application.ErrCommentNotFound):
		response.Error[any](c, http.StatusNotFound, "comment not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusForbidden, "not authorized", nil)
	default:
		h.Logger.WithError(err).Error("comment operation failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
	}
}

// ListForBlog GET /api/comments/blog/:blogId
func (h *CommentHandler) ListForBlog(c *gin.Context) {
	comments, err := h.Svc.ListForBlog(c.Request.Context(), c.Param("blogId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(comments))
	for _, m := range comments {
		out = append(out, commentJSON(m))
	}
	response.Success(c, http.StatusOK, out, "comments", gin.H{"count": len(out)})
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create POST /api/comments/blog/:blogId
func (h *CommentHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	m, err := h.Svc.Create(c.Request.Context(), uid, c.Param("blogId"), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, commentJSON(m), "comment created", nil)
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment removed", nil)
}
