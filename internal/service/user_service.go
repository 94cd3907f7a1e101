package service

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type UserService struct {
	repo    *repository.UserRepository
	checker *repository.Checker
	events  *EventPublisher
}

func NewUserService(repo *repository.UserRepository, checker *repository.Checker, events *EventPublisher) *UserService {
	return &UserService{repo: repo, checker: checker, events: events}
}

// Register creates a user after a duplicate check, hashing the password
// before it touches storage. The returned user never carries the password.
func (s *UserService) Register(ctx context.Context, req entity.RegisterRequest) (*entity.User, error) {
	exists, err := s.checker.UserExists(ctx, req.Username)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking user %s", req.Username)
		return nil, err
	}
	if exists {
		return nil, apperr.BadRequest("%s already exists", req.Username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:   req.Username,
		Password:   string(hashed),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ProfilePic: req.ProfilePic,
		IsAdmin:    false,
	}
	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error registering user")
		return nil, err
	}

	if err := s.events.Publish(ctx, "user", "registered", created.Username, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate verifies a username/password pair. Both an unknown username
// and a wrong password surface as the same Unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user %s", username)
		return nil, err
	}
	if user != nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
			user.Password = ""
			return user, nil
		}
	}
	return nil, apperr.Unauthorized("invalid username/password")
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

// Get fetches a user with their sorted wishlist summaries attached.
func (s *UserService) Get(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("%s doesn't exist", username)
	}
	user.Password = ""

	wishlists, err := s.repo.ListWishlistSummaries(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Wishlists = wishlists
	return user, nil
}

// Update applies a partial update. A provided password is re-hashed before
// the clause builder sees it; everything else passes through untouched.
func (s *UserService) Update(ctx context.Context, username string, upd entity.UserUpdate) (*entity.User, error) {
	fields := upd.Fields()
	if pw, ok := fields["password"]; ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pw.(string)), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hashed)
	}

	user, err := s.repo.Update(ctx, username, fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("%s doesn't exist", username)
	}
	return user, nil
}

// Delete removes a user and returns a human-readable confirmation.
func (s *UserService) Delete(ctx context.Context, username string) (string, error) {
	found, err := s.repo.Delete(ctx, username)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %s", username)
		return "", err
	}
	if !found {
		return "", apperr.NotFound("%s doesn't exist", username)
	}

	if err := s.events.Publish(ctx, "user", "deleted", username, map[string]string{"username": username}); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s has been deleted!", username), nil
}
