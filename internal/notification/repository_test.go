package notification

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListForViewer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 12, 17, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM notifications\s+WHERE user_id = \$1 OR user_id IS NULL\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs("U-1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "title", "message", "priority", "is_read", "created_at"}).
			AddRow("NOTIF-1", "U-1", "order", "Pesanan Baru", "m", "high", false, ts).
			AddRow("NOTIF-2", nil, "inventory", "Stok Menipis", "m", "medium", true, ts))

	list, err := NewRepository(db).ListForViewer(context.Background(), "U-1", listLimit)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[1].UserID)
	assert.True(t, list[1].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("ScopedForCustomer", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE\s+WHERE id = \$1 AND \(user_id = \$2 OR user_id IS NULL\)`).
			WithArgs("NOTIF-9", "U-C").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkRead(ctx, "NOTIF-9", "U-C", false), ErrNotificationNotFound)
	})

	t.Run("AdminAny", func(t *testing.T) {
		mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1`).
			WithArgs("NOTIF-9").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkRead(ctx, "NOTIF-9", "U-A", true))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("OtherUsersRow", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM notifications WHERE id = \$1 AND user_id = \$2`).
			WithArgs("NOTIF-ADMIN", "U-C").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "NOTIF-ADMIN", "U-C", false), ErrNotificationNotFound)
	})

	t.Run("Admin", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM notifications WHERE id = \$1$`).
			WithArgs("NOTIF-ADMIN").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "NOTIF-ADMIN", "U-A", true))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UnreadCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications`).
		WithArgs("U-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := NewRepository(db).UnreadCount(context.Background(), "U-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
