package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inkpost/inkpost/internal/domain/entity"
	repo "github.com/inkpost/inkpost/internal/domain/repository"
	"github.com/inkpost/inkpost/pkg/helpers"
	"github.com/inkpost/inkpost/pkg/mailer"
)

var (
	// ErrUserExists deliberately does not say which field collided.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService registers and authenticates users and issues session tokens.
type AuthService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	EmailPub *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, emailPub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, EmailPub: emailPub, Logger: logger}
}

// Register creates a user and returns it with a fresh session token.
// Username and email are checked in a single existence query; a match on
// either field is a conflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, string, time.Time, error) {
	exists, err := s.Repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exists {
		return nil, "", time.Time{}, ErrUserExists
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	u := &entity.User{Username: username, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.EmailPub != nil {
		if pErr := s.EmailPub.PublishJSON(ctx, mailer.WelcomeEmail(u.Username, u.Email)); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("welcome email publish failed")
		}
	}

	return u, token, exp, nil
}

// Login validates email/password and returns the user with a new token.
// Only an unknown email maps to ErrInvalidCredentials; a store failure
// propagates so it is not reported as a credential problem.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// GetProfile resolves a verified user id to its public profile.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
