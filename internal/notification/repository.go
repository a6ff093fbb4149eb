package notification

import (
	"context"
	"database/sql"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	ListForViewer(ctx context.Context, viewerID string, limit int) ([]*Notification, error)
	UnreadCount(ctx context.Context, viewerID string) (int64, error)
	MarkRead(ctx context.Context, id, viewerID string, isAdmin bool) error
	MarkAllRead(ctx context.Context, viewerID string) error
	Delete(ctx context.Context, id, viewerID string, isAdmin bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, ex execer, n *Notification) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, priority, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, n.ID, n.UserID, n.Type, n.Title, n.Message, n.Priority, n.IsRead, n.CreatedAt)
	return err
}

func (r *repository) Insert(ctx context.Context, n *Notification) error {
	if err := insert(ctx, r.db, n); err != nil {
		logger.FromCtx(ctx).Error("failed to insert notification",
			zap.String("layer", "repository"),
			zap.String("method", "Insert"),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) ListForViewer(ctx context.Context, viewerID string, limit int) ([]*Notification, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListForViewer"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, title, message, priority, is_read, created_at
		FROM notifications
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2
	`, viewerID, limit)
	if err != nil {
		log.Error("failed to query notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []*Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Priority, &n.IsRead, &n.CreatedAt); err != nil {
			log.Error("failed to scan notification", zap.Error(err))
			return nil, err
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *repository) UnreadCount(ctx context.Context, viewerID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE (user_id = $1 OR user_id IS NULL) AND is_read = FALSE
	`, viewerID).Scan(&count)
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id, viewerID string, isAdmin bool) error {
	var (
		res sql.Result
		err error
	)
	if isAdmin {
		res, err = r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	} else {
		res, err = r.db.ExecContext(ctx, `
			UPDATE notifications SET is_read = TRUE
			WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)
		`, id, viewerID)
	}
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrNotificationNotFound)
}

func (r *repository) MarkAllRead(ctx context.Context, viewerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 OR user_id IS NULL
	`, viewerID)
	return err
}

func (r *repository) Delete(ctx context.Context, id, viewerID string, isAdmin bool) error {
	var (
		res sql.Result
		err error
	)
	if isAdmin {
		res, err = r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	} else {
		res, err = r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, viewerID)
	}
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrNotificationNotFound)
}
