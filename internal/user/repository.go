package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	LogActivity(ctx context.Context, entry ActivityLog) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, username, email, password, role, full_name, phone, address, is_active, created_at, last_login`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.FullName,
		&u.Phone, &u.Address, &u.IsActive, &u.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.FromCtx(ctx).Error("db: failed to find user by username",
			zap.String("layer", "repository"),
			zap.String("username", username),
			zap.Error(err),
		)
	}
	return u, err
}

// FindCustomerByPhone matches only active customer accounts; staff may share
// a phone number with a customer.
func (r *repository) FindCustomerByPhone(ctx context.Context, phone string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE phone = $1 AND role = $2 AND is_active = $3
		ORDER BY created_at
		LIMIT 1
	`, phone, utils.RoleCustomer, true))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.FromCtx(ctx).Error("db: failed to find customer by phone",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

func (r *repository) LogActivity(ctx context.Context, entry ActivityLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.UserID, entry.Action, entry.Details, entry.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to write activity log",
			zap.String("layer", "repository"),
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
	return err
}
