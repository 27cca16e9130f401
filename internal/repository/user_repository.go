package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/domain"
)

// ErrUserNotFound indicates that no user row exists for the requested identity.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Upsert inserts a new user with both timestamps set to now, or refreshes
	// handle, display name, and last_active for an existing one. It never
	// touches any other field.
	Upsert(ctx context.Context, id int64, handle, displayName string) error
	// Touch advances last_active for an existing user; unknown ids are ignored.
	Touch(ctx context.Context, id int64) error
	UpdateContentLink(ctx context.Context, id int64, link string) error
	UpdateRealName(ctx context.Context, id int64, name string) error
	UpdatePhone(ctx context.Context, id int64, phone string) error
	// SetMetrics writes likes and views and recomputes rating = likes+views,
	// returning the new rating.
	SetMetrics(ctx context.Context, id int64, likes, views int64) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	// ListActive returns users whose last_active falls within the trailing
	// windowDays-day window, in registration order. Users with a NULL
	// last_active are excluded.
	ListActive(ctx context.Context, windowDays int) ([]domain.User, error)
}

type userRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewUserRepository creates a new SQL-backed user repository.
func NewUserRepository(db *sql.DB, log *slog.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log,
	}
}

const userColumns = `id, handle, display_name, content_link, real_name, phone, likes, views, rating, created_at, last_active`

func (r *userRepository) Upsert(ctx context.Context, id int64, handle, displayName string) error {
	const query = `
		INSERT INTO users (id, handle, display_name, created_at, last_active)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET handle = EXCLUDED.handle,
		    display_name = EXCLUDED.display_name,
		    last_active = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, id, handle, displayName); err != nil {
		r.logError("upsert", id, err)
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

func (r *userRepository) Touch(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_active = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logError("touch", id, err)
		return fmt.Errorf("touch user: %w", err)
	}

	return nil
}

func (r *userRepository) UpdateContentLink(ctx context.Context, id int64, link string) error {
	return r.updateField(ctx, "content_link", id, link)
}

func (r *userRepository) UpdateRealName(ctx context.Context, id int64, name string) error {
	return r.updateField(ctx, "real_name", id, name)
}

func (r *userRepository) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return r.updateField(ctx, "phone", id, phone)
}

func (r *userRepository) updateField(ctx context.Context, column string, id int64, value string) error {
	// column is one of three fixed identifiers chosen by the wrappers above.
	query := fmt.Sprintf(`UPDATE users SET %s = $2 WHERE id = $1`, column)

	if _, err := r.db.ExecContext(ctx, query, id, value); err != nil {
		r.logError("update_"+column, id, err)
		return fmt.Errorf("update %s: %w", column, err)
	}

	return nil
}

func (r *userRepository) SetMetrics(ctx context.Context, id int64, likes, views int64) (int64, error) {
	const query = `
		UPDATE users
		SET likes = $2, views = $3, rating = $2 + $3
		WHERE id = $1
		RETURNING rating
	`

	var rating int64
	if err := r.db.QueryRowContext(ctx, query, id, likes, views).Scan(&rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}

		r.logError("set_metrics", id, err)
		return 0, fmt.Errorf("set metrics: %w", err)
	}

	return rating, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		r.logError("find_by_id", id, err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}

	return user, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logError("list_all", 0, err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepository) ListActive(ctx context.Context, windowDays int) ([]domain.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE last_active IS NOT NULL
		  AND last_active >= NOW() - ($1 * INTERVAL '1 day')
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, windowDays)
	if err != nil {
		r.logError("list_active", 0, err)
		return nil, fmt.Errorf("list active users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user        domain.User
		handle      sql.NullString
		displayName sql.NullString
		contentLink sql.NullString
		realName    sql.NullString
		phone       sql.NullString
	)

	if err := row.Scan(
		&user.ID,
		&handle,
		&displayName,
		&contentLink,
		&realName,
		&phone,
		&user.Likes,
		&user.Views,
		&user.Rating,
		&user.CreatedAt,
		&user.LastActive,
	); err != nil {
		return nil, err
	}

	user.Handle = handle.String
	user.DisplayName = displayName.String
	user.ContentLink = contentLink.String
	user.RealName = realName.String
	user.Phone = phone.String

	return &user, nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) logError(operation string, id int64, err error) {
	if r.log == nil || err == nil {
		return
	}

	r.log.Error("user repository operation failed",
		slog.String("operation", operation),
		slog.Int64("user_id", id),
		slog.Any("error", err),
	)
}
