package member

import (
	"context"
	"database/sql"
	"errors"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
	AdjustPoints(ctx context.Context, id string, delta int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const memberColumns = `id, name, phone, avatar, join_date, expiry_date, points, total_spend, is_active`

func scanMember(row interface{ Scan(...any) error }) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Avatar, &m.JoinDate, &m.ExpiryDate, &m.Points, &m.TotalSpend, &m.IsActive)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context) ([]*Member, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query members", zap.String("layer", "repository"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, name, phone, avatar, join_date, expiry_date, points, total_spend, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID, m.Name, m.Phone, m.Avatar, m.JoinDate, m.ExpiryDate, m.Points, m.TotalSpend, m.IsActive)
	if db.IsUniqueViolation(err) {
		return ErrPhoneTaken
	}
	return err
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET name = $1, phone = $2, avatar = $3, join_date = $4, expiry_date = $5,
			points = $6, total_spend = $7, is_active = $8
		WHERE id = $9
	`, m.Name, m.Phone, m.Avatar, m.JoinDate, m.ExpiryDate, m.Points, m.TotalSpend, m.IsActive, m.ID)
	if db.IsUniqueViolation(err) {
		return ErrPhoneTaken
	}
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrMemberNotFound)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrMemberNotFound)
}

// AdjustPoints adds delta to the member's points in one transaction and
// returns the new balance.
func (r *repository) AdjustPoints(ctx context.Context, id string, delta int64) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdjustPoints"),
		zap.String("member_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var points int64
	err = tx.QueryRowContext(ctx, `SELECT points FROM members WHERE id = $1`, id).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMemberNotFound
	}
	if err != nil {
		return 0, err
	}

	newPoints := points + delta
	if newPoints < 0 {
		return 0, ErrNegativePoints
	}

	if _, err = tx.ExecContext(ctx, `UPDATE members SET points = $1 WHERE id = $2`, newPoints, id); err != nil {
		log.Error("failed to update points", zap.Error(err))
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return 0, err
	}
	committed = true

	return newPoints, nil
}
