package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry-be/internal/db"
	"laundry-be/internal/logger"
	"laundry-be/internal/notification"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (eventID string, err error)
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, status Status) ([]*Order, error)
	ListVisible(ctx context.Context, viewerID string, status Status) ([]*Order, error)
	IsVisible(ctx context.Context, id, viewerID string) (bool, error)
	Update(ctx context.Context, o *Order) (eventID string, err error)
	UpdateStatus(ctx context.Context, id string, to Status, at time.Time) (eventID string, err error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const orderColumns = `o.id, o.customer_name, o.customer_id, o.owner_id, o.total, o.status, o.date, o.payment_method, o.created_by, o.created_at, o.updated_at`

// visibleTo matches orders a customer ($1) may see: owned, created by them,
// named after them, or placed for a member sharing their phone or name.
const visibleTo = `(
	o.owner_id = $1
	OR o.created_by = $1
	OR EXISTS (
		SELECT 1 FROM users u
		WHERE u.id = $1 AND TRIM(u.full_name) <> ''
			AND LOWER(o.customer_name) = LOWER(TRIM(u.full_name))
	)
	OR EXISTS (
		SELECT 1 FROM members m JOIN users u ON u.id = $1
		WHERE m.id = o.customer_id
			AND ((COALESCE(u.phone, '') <> '' AND m.phone = u.phone)
				OR (TRIM(u.full_name) <> '' AND LOWER(m.name) = LOWER(TRIM(u.full_name))))
	)
)`

const itemBatch = 500

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerID, &o.OwnerID, &o.Total, &o.Status,
		&o.Date, &o.PaymentMethod, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Items = []Item{}
	return &o, nil
}

func (r *repository) withTx(ctx context.Context, method string, fn func(tx *sql.Tx) error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}
	committed = true
	return nil
}

// Create stores the order, its items, the member's loyalty credit and an
// order_created event in one transaction.
func (r *repository) Create(ctx context.Context, o *Order) (string, error) {
	var eventID string
	err := r.withTx(ctx, "Create", func(tx *sql.Tx) error {
		if o.CustomerID != nil {
			if err := requireMember(ctx, tx, *o.CustomerID); err != nil {
				return err
			}
			if o.OwnerID == nil {
				owner, err := memberUser(ctx, tx, *o.CustomerID)
				if err != nil {
					return fmt.Errorf("resolve owner: %w", err)
				}
				o.OwnerID = owner
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_name, customer_id, owner_id, total, status, date, payment_method, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, o.ID, o.CustomerName, o.CustomerID, o.OwnerID, o.Total, o.Status, o.Date, o.PaymentMethod,
			o.CreatedBy, o.CreatedAt, o.UpdatedAt)
		switch {
		case db.IsUniqueViolation(err):
			return ErrOrderExists
		case db.IsForeignKeyViolation(err):
			return ErrMemberNotFound
		case err != nil:
			return fmt.Errorf("insert order: %w", err)
		}

		if err := insertItems(ctx, tx, o); err != nil {
			return err
		}

		if o.CustomerID != nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE members SET points = points + $1, total_spend = total_spend + $2
				WHERE id = $3
			`, o.Total/pointsPerRupiah, o.Total, *o.CustomerID)
			if err != nil {
				return fmt.Errorf("credit member: %w", err)
			}
		}

		ev, err := notification.NewOrderEvent(notification.EventOrderCreated, notification.OrderPayload{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			Total:        o.Total,
			Status:       string(o.Status),
			RecipientID:  utils.PtrString(o.OwnerID),
		}, o.CreatedAt)
		if err != nil {
			return err
		}
		eventID = ev.ID
		return insertEvent(ctx, tx, ev)
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

func requireMember(ctx context.Context, q querier, memberID string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM members WHERE id = $1`, memberID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberNotFound
	}
	return err
}

// memberUser finds the customer account sharing the member's phone or name.
func memberUser(ctx context.Context, q querier, memberID string) (*string, error) {
	var id string
	err := q.QueryRowContext(ctx, `
		SELECT u.id FROM users u, members m
		WHERE m.id = $1 AND u.role = 'customer'
			AND ((m.phone <> '' AND u.phone = m.phone) OR u.full_name = m.name)
		ORDER BY u.created_at, u.id
		LIMIT 1
	`, memberID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// recipient picks the customer to tell about a status change: the owner, a
// customer creator, or the member's linked account.
func recipient(ctx context.Context, q querier, o *Order) (string, error) {
	if o.OwnerID != nil {
		return *o.OwnerID, nil
	}
	if o.CreatedBy != nil {
		var role string
		err := q.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, *o.CreatedBy).Scan(&role)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		if role == utils.RoleCustomer {
			return *o.CreatedBy, nil
		}
	}
	if o.CustomerID != nil {
		id, err := memberUser(ctx, q, *o.CustomerID)
		if err != nil {
			return "", err
		}
		return utils.PtrString(id), nil
	}
	return "", nil
}

func insertItems(ctx context.Context, tx *sql.Tx, o *Order) error {
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = utils.NewID("OI")
		}
		it.OrderID = o.ID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, service_id, service_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, it.ID, it.OrderID, it.ServiceID, it.ServiceName, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func insertEvent(ctx context.Context, tx *sql.Tx, ev *notification.OrderEvent) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_events (id, order_id, kind, status, payload, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ev.ID, ev.OrderID, ev.Kind, ev.Status, ev.Payload, ev.Attempts, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order event: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, status Status) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o`
	var args []any
	if status != "" {
		query += ` WHERE o.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY o.date DESC, o.created_at DESC`
	return r.queryOrders(ctx, "List", query, args...)
}

func (r *repository) ListVisible(ctx context.Context, viewerID string, status Status) ([]*Order, error) {
	if viewerID == "" {
		return []*Order{}, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE ` + visibleTo
	args := []any{viewerID}
	if status != "" {
		query += ` AND o.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY o.date DESC, o.created_at DESC`
	return r.queryOrders(ctx, "ListVisible", query, args...)
}

func (r *repository) IsVisible(ctx context.Context, id, viewerID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders o WHERE `+visibleTo+` AND o.id = $2`, viewerID, id).Scan(&n)
	return n > 0, err
}

func (r *repository) queryOrders(ctx context.Context, method, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			log.Error("failed to scan order", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		log.Error("failed to load order items", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// loadItems attaches items to orders, querying in batches of itemBatch ids.
func (r *repository) loadItems(ctx context.Context, orders []*Order) error {
	byID := make(map[string]*Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	for start := 0; start < len(orders); start += itemBatch {
		end := min(start+itemBatch, len(orders))
		placeholders := make([]string, 0, end-start)
		args := make([]any, 0, end-start)
		for i, o := range orders[start:end] {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, o.ID)
		}

		rows, err := r.db.QueryContext(ctx, `
			SELECT id, order_id, service_id, service_name, quantity, price
			FROM order_items
			WHERE order_id IN (`+strings.Join(placeholders, ", ")+`)
			ORDER BY order_id, id
		`, args...)
		if err != nil {
			return err
		}
		for rows.Next() {
			var it Item
			if err := rows.Scan(&it.ID, &it.OrderID, &it.ServiceID, &it.ServiceName, &it.Quantity, &it.Price); err != nil {
				rows.Close()
				return err
			}
			if o, ok := byID[it.OrderID]; ok {
				o.Items = append(o.Items, it)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the order header and items. An empty status keeps the
// stored one; a status change must be a legal transition and yields a
// status_changed event.
func (r *repository) Update(ctx context.Context, o *Order) (string, error) {
	var eventID string
	err := r.withTx(ctx, "Update", func(tx *sql.Tx) error {
		current, err := readOrder(ctx, tx, o.ID)
		if err != nil {
			return err
		}
		if o.Status == "" {
			o.Status = current.Status
		}
		if o.Status != current.Status && !CanTransition(current.Status, o.Status) {
			return ErrInvalidTransition
		}
		if o.CustomerID != nil {
			if err := requireMember(ctx, tx, *o.CustomerID); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE orders
			SET customer_name = $1, customer_id = $2, total = $3, status = $4, date = $5,
				payment_method = $6, updated_at = $7
			WHERE id = $8
		`, o.CustomerName, o.CustomerID, o.Total, o.Status, o.Date, o.PaymentMethod, o.UpdatedAt, o.ID)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
			return fmt.Errorf("clear order items: %w", err)
		}
		if err := insertItems(ctx, tx, o); err != nil {
			return err
		}

		if o.Status == current.Status {
			return nil
		}
		current.CustomerName, current.Total, current.CustomerID = o.CustomerName, o.Total, o.CustomerID
		eventID, err = statusEvent(ctx, tx, current, o.Status, o.UpdatedAt)
		return err
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, to Status, at time.Time) (string, error) {
	var eventID string
	err := r.withTx(ctx, "UpdateStatus", func(tx *sql.Tx) error {
		current, err := readOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanTransition(current.Status, to) {
			return ErrInvalidTransition
		}

		_, err = tx.ExecContext(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, to, at, id)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		eventID, err = statusEvent(ctx, tx, current, to, at)
		return err
	})
	if err != nil {
		return "", err
	}
	return eventID, nil
}

// readOrder reads the order header inside tx.
func readOrder(ctx context.Context, tx *sql.Tx, id string) (*Order, error) {
	o, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func statusEvent(ctx context.Context, tx *sql.Tx, o *Order, to Status, at time.Time) (string, error) {
	recipientID, err := recipient(ctx, tx, o)
	if err != nil {
		return "", fmt.Errorf("resolve recipient: %w", err)
	}
	ev, err := notification.NewOrderEvent(notification.EventStatusChanged, notification.OrderPayload{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		Status:       string(to),
		RecipientID:  recipientID,
	}, at)
	if err != nil {
		return "", err
	}
	if err := insertEvent(ctx, tx, ev); err != nil {
		return "", err
	}
	return ev.ID, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return db.RequireAffected(res, ErrOrderNotFound)
}
