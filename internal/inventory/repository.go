package inventory

import (
	"context"
	"database/sql"
	"errors"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	LowStock(ctx context.Context) ([]*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, it *Item) error
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, quantity int64, operation, today string) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, code, name, stock, unit, min_stock, supplier, supplier_contact, price, category, last_restock_date, is_active`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Stock, &it.Unit, &it.MinStock,
		&it.Supplier, &it.SupplierContact, &it.Price, &it.Category, &it.LastRestockDate, &it.IsActive)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) queryItems(ctx context.Context, method, query string, args ...any) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query inventory", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan inventory item", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]*Item, error) {
	return r.queryItems(ctx, "List", `SELECT `+itemColumns+` FROM inventory ORDER BY name`)
}

func (r *repository) LowStock(ctx context.Context) ([]*Item, error) {
	return r.queryItems(ctx, "LowStock", `SELECT `+itemColumns+` FROM inventory WHERE stock < min_stock ORDER BY name`)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM inventory WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) Create(ctx context.Context, it *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory (id, code, name, stock, unit, min_stock, supplier, supplier_contact, price, category, last_restock_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, it.ID, it.Code, it.Name, it.Stock, it.Unit, it.MinStock, it.Supplier, it.SupplierContact,
		it.Price, it.Category, it.LastRestockDate, it.IsActive)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	return err
}

func (r *repository) Update(ctx context.Context, it *Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET code = $1, name = $2, stock = $3, unit = $4, min_stock = $5, supplier = $6,
			supplier_contact = $7, price = $8, category = $9, is_active = $10
		WHERE id = $11
	`, it.Code, it.Name, it.Stock, it.Unit, it.MinStock, it.Supplier, it.SupplierContact,
		it.Price, it.Category, it.IsActive, it.ID)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrItemNotFound)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrItemNotFound)
}

// AdjustStock reads, checks and writes the stock level in one transaction.
// An add also stamps last_restock_date with today.
func (r *repository) AdjustStock(ctx context.Context, id string, quantity int64, operation, today string) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AdjustStock"),
		zap.String("inventory_id", id),
		zap.String("operation", operation),
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

	var stock int64
	err = tx.QueryRowContext(ctx, `SELECT stock FROM inventory WHERE id = $1`, id).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		log.Error("failed to read stock", zap.Error(err))
		return 0, err
	}

	newStock := stock - quantity
	if operation == OperationAdd {
		newStock = stock + quantity
	}
	if newStock < 0 {
		log.Info("stock adjustment rejected", zap.Int64("stock", stock), zap.Int64("quantity", quantity))
		return 0, ErrInsufficientStock
	}

	if operation == OperationAdd {
		_, err = tx.ExecContext(ctx, `UPDATE inventory SET stock = $1, last_restock_date = $2 WHERE id = $3`, newStock, today, id)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE inventory SET stock = $1 WHERE id = $2`, newStock, id)
	}
	if err != nil {
		log.Error("failed to write stock", zap.Error(err))
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return 0, err
	}
	committed = true

	log.Info("stock adjusted", zap.Int64("old_stock", stock), zap.Int64("new_stock", newStock))
	return newStock, nil
}
