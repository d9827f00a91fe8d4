package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
	"github.com/inkpost/inkpost/pkg/helpers"
)

func newTestJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("test-secret", 30*24*time.Hour)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)

		mockRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
			u := args.Get(1).(*entity.User)
			u.ID = "user-1"
		}).Return(nil).Once()

		u, token, exp, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.NotEmpty(t, token)
		assert.True(t, exp.After(time.Now().Add(29*24*time.Hour)))
		// stored credential must be a verifying bcrypt hash, not the plaintext
		assert.NotEqual(t, "secret123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)

		mockRepo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil).Once()

		_, _, _, err := svc.Register(ctx, "alice", "alice@example.com", "secret123")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Password: string(hash)}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()

		u, token, _, err := svc.Login(ctx, "alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnknownEmailAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repo.ErrNotFound).Once()
		mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()

		_, _, _, errUnknown := svc.Login(ctx, "nobody@example.com", "whatever")
		_, _, _, errWrongPwd := svc.Login(ctx, "alice@example.com", "wrong-password")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
	})

	t.Run("StoreFailureIsNotACredentialError", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		storeErr := errors.New("connection refused")
		mockRepo.On("GetByEmail", ctx, "alice@example.com").Return(nil, storeErr).Once()

		_, _, _, err := svc.Login(ctx, "alice@example.com", "secret123")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		mockRepo.On("GetByID", ctx, "user-1").
			Return(&entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Password: "hash"}, nil).Once()

		u, err := svc.GetProfile(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("Gone", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		mockRepo.On("GetByID", ctx, "user-gone").Return(nil, repo.ErrNotFound).Once()

		_, err := svc.GetProfile(ctx, "user-gone")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("StoreFailureIsNotNotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		svc := NewAuthService(mockRepo, newTestJWT(), nil, nil)
		storeErr := errors.New("connection refused")
		mockRepo.On("GetByID", ctx, "user-1").Return(nil, storeErr).Once()

		_, err := svc.GetProfile(ctx, "user-1")

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrUserNotFound)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	jwt := newTestJWT()
	token, _, err := jwt.Generate("user-1")
	assert.NoError(t, err)

	claims, err := jwt.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}
