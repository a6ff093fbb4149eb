package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	RevenueSince(ctx context.Context, from string) (int64, error)
	MembersJoinedSince(ctx context.Context, from string) (int64, error)
	ActiveOrders(ctx context.Context) (int64, error)
	LowStockCount(ctx context.Context) (int64, error)
	RevenueByDate(ctx context.Context, start, end string) ([]DateRevenue, error)
	OrdersBetween(ctx context.Context, start, end string) ([]OrderRow, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scalar(ctx context.Context, method, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromCtx(ctx).Error("failed to read stat",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return 0, fmt.Errorf("%s: %w", method, err)
	}
	return n, nil
}

func (r *repository) RevenueSince(ctx context.Context, from string) (int64, error) {
	return r.scalar(ctx, "RevenueSince", `SELECT COALESCE(SUM(total), 0) FROM orders WHERE date >= $1`, from)
}

func (r *repository) MembersJoinedSince(ctx context.Context, from string) (int64, error) {
	return r.scalar(ctx, "MembersJoinedSince", `SELECT COUNT(*) FROM members WHERE join_date >= $1`, from)
}

func (r *repository) ActiveOrders(ctx context.Context) (int64, error) {
	return r.scalar(ctx, "ActiveOrders", `SELECT COUNT(*) FROM orders WHERE status IN ('pending', 'washing', 'ready')`)
}

func (r *repository) LowStockCount(ctx context.Context) (int64, error) {
	return r.scalar(ctx, "LowStockCount", `SELECT COUNT(*) FROM inventory WHERE stock < min_stock`)
}

func (r *repository) RevenueByDate(ctx context.Context, start, end string) ([]DateRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, SUM(total)
		FROM orders
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DateRevenue{}
	for rows.Next() {
		var d DateRevenue
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repository) OrdersBetween(ctx context.Context, start, end string) ([]OrderRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.date, o.customer_name, o.customer_id, o.status, o.payment_method,
			(SELECT COALESCE(SUM(i.quantity), 0) FROM order_items i WHERE i.order_id = o.id),
			o.total, o.created_at
		FROM orders o
		WHERE o.date BETWEEN $1 AND $2
		ORDER BY o.date, o.created_at
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []OrderRow{}
	for rows.Next() {
		var (
			row        OrderRow
			customerID *string
			createdAt  time.Time
		)
		if err := rows.Scan(&row.ID, &row.Date, &row.CustomerName, &customerID, &row.Status,
			&row.PaymentMethod, &row.Items, &row.Total, &createdAt); err != nil {
			return nil, err
		}
		row.CustomerID = utils.PtrString(customerID)
		row.CreatedAt = createdAt.Format(time.RFC3339)
		out = append(out, row)
	}
	return out, rows.Err()
}
