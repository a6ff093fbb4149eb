package member

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberCols = []string{"id", "name", "phone", "avatar", "join_date", "expiry_date", "points", "total_spend", "is_active"}

func TestRepository_ListGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM members ORDER BY name`).
			WillReturnRows(sqlmock.NewRows(memberCols).
				AddRow("M-TEST-001", "Software Testing", "081234567890", nil, "2025-12-03", "2026-12-03", 12, 125000, true))

		members, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, int64(125000), members[0].TotalSpend)
	})

	t.Run("GetMissing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM members WHERE id = \$1`).
			WithArgs("M-404").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "M-404")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateDuplicatePhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO members`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"members_phone_key\""})

	err = NewRepository(db).Create(context.Background(), &Member{ID: "M-2", Name: "Budi", Phone: "081234567890"})

	assert.ErrorIs(t, err, ErrPhoneTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AdjustPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT points FROM members WHERE id = \$1`).
			WithArgs("M-TEST-001").
			WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(10))
		mock.ExpectExec(`UPDATE members SET points = \$1 WHERE id = \$2`).
			WithArgs(int64(15), "M-TEST-001").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		newPoints, err := repo.AdjustPoints(ctx, "M-TEST-001", 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(15), newPoints)
	})

	t.Run("BelowZero", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT points FROM members`).
			WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(3))
		mock.ExpectRollback()

		_, err := repo.AdjustPoints(ctx, "M-TEST-001", -4)
		assert.ErrorIs(t, err, ErrNegativePoints)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT points FROM members`).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.AdjustPoints(ctx, "M-404", 1)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM members WHERE id = \$1`).
		WithArgs("M-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewRepository(db).Delete(context.Background(), "M-404"), ErrMemberNotFound)
}
