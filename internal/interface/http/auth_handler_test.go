package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/inkpost/inkpost/internal/application"
	"github.com/inkpost/inkpost/internal/domain/entity"
	"github.com/inkpost/inkpost/internal/interface/middleware"
	"github.com/inkpost/inkpost/pkg/helpers"
)

// brokenUserRepo fails every query, standing in for an unreachable store.
type brokenUserRepo struct {
	err error
}

func (r *brokenUserRepo) Create(ctx context.Context, u *entity.User) error { return r.err }

func (r *brokenUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, r.err
}

func (r *brokenUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, r.err
}

func (r *brokenUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return false, r.err
}

func newBrokenAuthHandler() *AuthHandler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := application.NewAuthService(
		&brokenUserRepo{err: errors.New("connection refused")},
		helpers.NewJWTManager("test-secret", time.Hour),
		nil,
		logger,
	)
	return NewAuthHandler(svc, logger)
}

func TestLoginStoreOutageIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newBrokenAuthHandler()
	r := gin.New()
	r.POST("/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "invalid credentials")
}

func TestGetProfileStoreOutageIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newBrokenAuthHandler()
	r := gin.New()
	r.GET("/profile", func(c *gin.Context) {
		c.Set(middleware.CtxUserIDKey, "user-1")
		h.GetProfile(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "user not found")
}
