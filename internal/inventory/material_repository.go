package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type MaterialRepository interface {
	List(ctx context.Context, serviceID string) ([]*ServiceMaterial, error)
	ListForServices(ctx context.Context, serviceIDs []string) ([]*ServiceMaterial, error)
	GetByID(ctx context.Context, id string) (*ServiceMaterial, error)
	Create(ctx context.Context, m *ServiceMaterial) error
	Update(ctx context.Context, m *ServiceMaterial) error
	Delete(ctx context.Context, id string) error
}

type materialRepository struct {
	db *sql.DB
}

func NewMaterialRepository(db *sql.DB) MaterialRepository {
	return &materialRepository{db: db}
}

const materialSelect = `
	SELECT sm.id, sm.service_id, sm.inventory_id, sm.quantity, sm.unit, sm.created_at, sm.updated_at,
		s.name, i.name, i.unit, i.stock
	FROM service_materials sm
	JOIN services s ON s.id = sm.service_id
	JOIN inventory i ON i.id = sm.inventory_id
`

func scanMaterial(row interface{ Scan(...any) error }) (*ServiceMaterial, error) {
	var m ServiceMaterial
	err := row.Scan(&m.ID, &m.ServiceID, &m.InventoryID, &m.Quantity, &m.Unit, &m.CreatedAt, &m.UpdatedAt,
		&m.ServiceName, &m.InventoryName, &m.InventoryUnit, &m.CurrentStock)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) query(ctx context.Context, query string, args ...any) ([]*ServiceMaterial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query service materials",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	out := []*ServiceMaterial{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// List returns every mapping, or only those of serviceID when it is set.
func (r *materialRepository) List(ctx context.Context, serviceID string) ([]*ServiceMaterial, error) {
	if serviceID == "" {
		return r.query(ctx, materialSelect+` ORDER BY sm.service_id, sm.id`)
	}
	return r.query(ctx, materialSelect+` WHERE sm.service_id = $1 ORDER BY sm.id`, serviceID)
}

func (r *materialRepository) ListForServices(ctx context.Context, serviceIDs []string) ([]*ServiceMaterial, error) {
	if len(serviceIDs) == 0 {
		return []*ServiceMaterial{}, nil
	}

	placeholders := make([]string, len(serviceIDs))
	args := make([]any, len(serviceIDs))
	for i, id := range serviceIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return r.query(ctx,
		materialSelect+` WHERE sm.service_id IN (`+strings.Join(placeholders, ", ")+`) ORDER BY sm.inventory_id`,
		args...)
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*ServiceMaterial, error) {
	m, err := scanMaterial(r.db.QueryRowContext(ctx, materialSelect+` WHERE sm.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMaterialNotFound
	}
	return m, err
}

func (r *materialRepository) Create(ctx context.Context, m *ServiceMaterial) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO service_materials (id, service_id, inventory_id, quantity, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.ServiceID, m.InventoryID, m.Quantity, m.Unit, m.CreatedAt, m.UpdatedAt)
	switch {
	case db.IsUniqueViolation(err):
		return ErrMaterialExists
	case db.IsForeignKeyViolation(err):
		return ErrUnknownReference
	}
	return err
}

func (r *materialRepository) Update(ctx context.Context, m *ServiceMaterial) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE service_materials
		SET service_id = $1, inventory_id = $2, quantity = $3, unit = $4, updated_at = $5
		WHERE id = $6
	`, m.ServiceID, m.InventoryID, m.Quantity, m.Unit, m.UpdatedAt, m.ID)
	switch {
	case db.IsUniqueViolation(err):
		return ErrMaterialExists
	case db.IsForeignKeyViolation(err):
		return ErrUnknownReference
	case err != nil:
		return err
	}
	return db.RequireAffected(res, ErrMaterialNotFound)
}

func (r *materialRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrMaterialNotFound)
}
