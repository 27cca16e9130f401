package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/repository"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Upsert(ctx context.Context, id int64, handle, displayName string) error {
	return m.Called(ctx, id, handle, displayName).Error(0)
}

func (m *mockRepo) Touch(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) UpdateContentLink(ctx context.Context, id int64, link string) error {
	return m.Called(ctx, id, link).Error(0)
}

func (m *mockRepo) UpdateRealName(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *mockRepo) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return m.Called(ctx, id, phone).Error(0)
}

func (m *mockRepo) SetMetrics(ctx context.Context, id int64, likes, views int64) (int64, error) {
	args := m.Called(ctx, id, likes, views)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *mockRepo) ListActive(ctx context.Context, windowDays int) ([]domain.User, error) {
	args := m.Called(ctx, windowDays)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterOrRefreshComposesDisplayName(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("Upsert", mock.Anything, int64(42), "jdoe", "John Doe").Return(nil).Twice()

	svc := NewService(repo, testLogger())
	sender := &telebot.User{ID: 42, Username: "jdoe", FirstName: "John", LastName: "Doe"}

	// Upsert is idempotent: repeated identical calls issue identical writes.
	require.NoError(t, svc.RegisterOrRefresh(ctx, sender))
	require.NoError(t, svc.RegisterOrRefresh(ctx, sender))

	repo.AssertExpectations(t)
}

func TestRegisterOrRefreshNilSender(t *testing.T) {
	svc := NewService(&mockRepo{}, testLogger())
	require.Error(t, svc.RegisterOrRefresh(context.Background(), nil))
}

func TestSetMetricsReturnsRepositoryRating(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("SetMetrics", mock.Anything, int64(7), int64(10), int64(32)).Return(int64(42), nil).Once()

	svc := NewService(repo, testLogger())
	rating, err := svc.SetMetrics(ctx, 7, 10, 32)
	require.NoError(t, err)
	require.Equal(t, int64(42), rating)

	repo.AssertExpectations(t)
}

func TestSetMetricsRejectsNegativeValues(t *testing.T) {
	svc := NewService(&mockRepo{}, testLogger())

	_, err := svc.SetMetrics(context.Background(), 7, -1, 5)
	require.Error(t, err)
}

func TestFindMapsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("FindByID", mock.Anything, int64(404)).Return((*domain.User)(nil), repository.ErrUserNotFound).Once()

	svc := NewService(repo, testLogger())
	_, err := svc.Find(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)

	repo.AssertExpectations(t)
}

func TestCountActiveDelegatesWindow(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("ListActive", mock.Anything, 90).Return([]domain.User{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()

	svc := NewService(repo, testLogger())
	count, err := svc.CountActive(ctx, 90)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	repo.AssertExpectations(t)
}

func TestListActivePropagatesErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	dbErr := errors.New("connection lost")
	repo.On("ListActive", mock.Anything, 90).Return(([]domain.User)(nil), dbErr).Once()

	svc := NewService(repo, testLogger())
	_, err := svc.ListActive(ctx, 90)
	require.ErrorIs(t, err, dbErr)
}
