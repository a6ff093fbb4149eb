package catalog

import (
	"context"
	"database/sql"
	"errors"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, s *Service) error
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const serviceColumns = `id, name, price, unit, category, icon, description, is_active`

func scanService(row interface{ Scan(...any) error }) (*Service, error) {
	var s Service
	if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.Unit, &s.Category, &s.Icon, &s.Description, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]*Service, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		log.Error("failed to query services", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	services := []*Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			log.Error("failed to scan service", zap.Error(err))
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get service",
			zap.String("layer", "repository"),
			zap.String("service_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, s *Service) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, name, price, unit, category, icon, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Name, s.Price, s.Unit, s.Category, s.Icon, s.Description, s.IsActive)
	if db.IsUniqueViolation(err) {
		return ErrServiceExists
	}
	return err
}

func (r *repository) Update(ctx context.Context, s *Service) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET name = $1, price = $2, unit = $3, category = $4, icon = $5, description = $6, is_active = $7
		WHERE id = $8
	`, s.Name, s.Price, s.Unit, s.Category, s.Icon, s.Description, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrServiceNotFound)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrServiceNotFound)
}
