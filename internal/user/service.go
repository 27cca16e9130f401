package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
	apperrors "github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/errors"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/repository"
)

// ErrNotFound is returned when a lookup targets an unknown identity.
var ErrNotFound = errors.New("user not found")

// Service provides business operations over users.
type Service struct {
	repo repository.UserRepository
	log  *slog.Logger
}

// NewService constructs a new Service instance.
func NewService(repo repository.UserRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// RegisterOrRefresh upserts the sender's profile: a first contact creates the
// row with both timestamps set, repeated contacts only refresh handle, display
// name, and last_active.
func (s *Service) RegisterOrRefresh(ctx context.Context, sender *telebot.User) error {
	if sender == nil {
		return errors.New("telegram user is nil")
	}

	if err := s.repo.Upsert(ctx, sender.ID, sender.Username, displayName(sender)); err != nil {
		s.logError("register_or_refresh", sender.ID, err)
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// Touch advances last_active for the user. Unknown ids are silently ignored.
func (s *Service) Touch(ctx context.Context, userID int64) error {
	if err := s.repo.Touch(ctx, userID); err != nil {
		s.logError("touch", userID, err)
		return err
	}

	return nil
}

// SaveContentLink persists a validated content link.
func (s *Service) SaveContentLink(ctx context.Context, userID int64, link string) error {
	if err := s.repo.UpdateContentLink(ctx, userID, link); err != nil {
		s.logError("save_content_link", userID, err)
		return err
	}

	return nil
}

// SaveRealName persists the user's submitted name.
func (s *Service) SaveRealName(ctx context.Context, userID int64, name string) error {
	if err := s.repo.UpdateRealName(ctx, userID, name); err != nil {
		s.logError("save_real_name", userID, err)
		return err
	}

	return nil
}

// SavePhone persists the platform-verified phone number.
func (s *Service) SavePhone(ctx context.Context, userID int64, phone string) error {
	if err := s.repo.UpdatePhone(ctx, userID, phone); err != nil {
		s.logError("save_phone", userID, err)
		return err
	}

	return nil
}

// SetMetrics writes likes and views and returns the recomputed rating.
func (s *Service) SetMetrics(ctx context.Context, userID, likes, views int64) (int64, error) {
	if likes < 0 || views < 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("metrics must be non-negative: likes=%d views=%d", likes, views))
	}

	rating, err := s.repo.SetMetrics(ctx, userID, likes, views)
	if err != nil {
		s.logError("set_metrics", userID, err)
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return rating, nil
}

// Find returns the user's full profile or ErrNotFound.
func (s *Service) Find(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}

		s.logError("find", userID, err)
		return nil, err
	}

	return user, nil
}

// ListAll returns every user in registration order.
func (s *Service) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logError("list_all", 0, err)
		return nil, err
	}

	return users, nil
}

// ListActive returns users active within the trailing windowDays-day window.
func (s *Service) ListActive(ctx context.Context, windowDays int) ([]domain.User, error) {
	users, err := s.repo.ListActive(ctx, windowDays)
	if err != nil {
		s.logError("list_active", 0, err)
		return nil, err
	}

	return users, nil
}

// CountActive reports how many users were active within the window.
func (s *Service) CountActive(ctx context.Context, windowDays int) (int, error) {
	users, err := s.ListActive(ctx, windowDays)
	if err != nil {
		return 0, err
	}

	return len(users), nil
}

func displayName(sender *telebot.User) string {
	name := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	return name
}

func (s *Service) logError(operation string, userID int64, err error) {
	if s == nil || s.log == nil || err == nil {
		return
	}

	s.log.Error("user service operation failed",
		slog.String("operation", operation),
		slog.Int64("user_id", userID),
		slog.Any("error", err),
	)
}
