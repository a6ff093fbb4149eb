package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"laundry-be/internal/logger"
	"laundry-be/internal/metrics"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

// Dispatcher turns pending order events into notifications. Claiming the
// event, inserting its notifications and stamping dispatched_at share one
// transaction, so each event yields its notifications exactly once.
type Dispatcher struct {
	db    *sql.DB
	stats *metrics.Dispatch
	now   func() time.Time
}

func NewDispatcher(db *sql.DB, stats *metrics.Dispatch) *Dispatcher {
	if stats == nil {
		stats = metrics.NewDispatch()
	}
	return &Dispatcher{db: db, stats: stats, now: time.Now}
}

func (d *Dispatcher) Stats() *metrics.Dispatch {
	return d.stats
}

// Dispatch delivers one event. An event that is already dispatched is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, eventID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "dispatcher"),
		zap.String("event_id", eventID),
	)
	timer := metrics.StartTimer()
	defer d.stats.Observe(timer)

	delivered, err := d.deliver(ctx, eventID)
	if err != nil {
		d.stats.Failed.Inc()
		log.Error("failed to dispatch order event", zap.Error(err))
		d.recordFailure(ctx, eventID, err)
		return err
	}
	if delivered < 0 {
		d.stats.Skipped.Inc()
		log.Debug("order event already dispatched")
		return nil
	}

	d.stats.Delivered.Inc()
	d.stats.Notifications.Add(uint64(delivered))
	log.Info("order event dispatched", zap.Int("notifications", delivered))
	return nil
}

// deliver returns the number of notifications created, or -1 when the event
// was claimed by someone else.
func (d *Dispatcher) deliver(ctx context.Context, eventID string) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.FromCtx(ctx).Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	now := d.now()
	res, err := tx.ExecContext(ctx, `
		UPDATE order_events
		SET dispatched_at = $1, attempts = attempts + 1
		WHERE id = $2 AND dispatched_at IS NULL
	`, now, eventID)
	if err != nil {
		return 0, fmt.Errorf("claim event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return -1, nil
	}

	var kind, payload string
	err = tx.QueryRowContext(ctx, `SELECT kind, payload FROM order_events WHERE id = $1`, eventID).Scan(&kind, &payload)
	if err != nil {
		return 0, fmt.Errorf("load event: %w", err)
	}

	var p OrderPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return 0, fmt.Errorf("decode payload: %w", err)
	}

	adminIDs, err := adminIDs(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("load admins: %w", err)
	}

	notes, err := fanOut(kind, p, adminIDs)
	if err != nil {
		return 0, err
	}
	for _, note := range notes {
		note.ID = utils.NewID("NOTIF")
		note.CreatedAt = now
		if err := insert(ctx, tx, note); err != nil {
			return 0, fmt.Errorf("insert notification: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(notes), nil
}

func adminIDs(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM users WHERE role = 'admin' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (d *Dispatcher) recordFailure(ctx context.Context, eventID string, cause error) {
	_, err := d.db.ExecContext(ctx, `
		UPDATE order_events SET attempts = attempts + 1, last_error = $1
		WHERE id = $2 AND dispatched_at IS NULL
	`, cause.Error(), eventID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to record dispatch failure",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}
}

// DispatchPending retries up to limit undispatched events that have not yet
// exhausted MaxAttempts. It returns how many were delivered.
func (d *Dispatcher) DispatchPending(ctx context.Context, limit int) (int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id FROM order_events
		WHERE dispatched_at IS NULL AND attempts < $1
		ORDER BY created_at
		LIMIT $2
	`, MaxAttempts, limit)
	if err != nil {
		return 0, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	delivered := 0
	var errs []error
	for _, id := range ids {
		if err := d.Dispatch(ctx, id); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}
