package scheduler

import (
	"context"
	"errors"
	"testing"

	"laundry-be/internal/inventory"
	"laundry-be/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) DispatchPending(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type MockStock struct {
	mock.Mock
}

func (m *MockStock) LowStock(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID *string, kind, title, message, priority string) (*notification.Notification, error) {
	args := m.Called(ctx, userID, kind, title, message, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func TestScheduler_StartRegistersJobs(t *testing.T) {
	s := New(new(MockDispatcher), new(MockStock), new(MockNotifier))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 2)
}

func TestScheduler_RetryOutbox(t *testing.T) {
	t.Run("Delivers", func(t *testing.T) {
		d := new(MockDispatcher)
		d.On("DispatchPending", mock.Anything, outboxBatch).Return(2, nil)

		New(d, nil, nil).RetryOutbox()
		d.AssertExpectations(t)
	})

	t.Run("ErrorIsSwallowed", func(t *testing.T) {
		d := new(MockDispatcher)
		d.On("DispatchPending", mock.Anything, outboxBatch).Return(0, errors.New("locked"))

		assert.NotPanics(t, New(d, nil, nil).RetryOutbox)
	})
}

func TestScheduler_BroadcastLowStock(t *testing.T) {
	t.Run("Broadcasts", func(t *testing.T) {
		stock, n := new(MockStock), new(MockNotifier)
		stock.On("LowStock", mock.Anything).Return([]*inventory.Item{
			{Name: "Pewangi", Stock: 2, Unit: "liter", MinStock: 5},
			{Name: "Plastik", Stock: 0, Unit: "pack", MinStock: 10},
		}, nil)
		n.On("Notify", mock.Anything, (*string)(nil), notification.TypeInventory, "Stok Menipis",
			"2 item di bawah stok minimum: Pewangi (2 liter), Plastik (0 pack)", notification.PriorityHigh).
			Return(&notification.Notification{ID: "NOTIF-1"}, nil)

		New(nil, stock, n).BroadcastLowStock()
		n.AssertExpectations(t)
	})

	t.Run("NothingLow", func(t *testing.T) {
		stock, n := new(MockStock), new(MockNotifier)
		stock.On("LowStock", mock.Anything).Return([]*inventory.Item{}, nil)

		New(nil, stock, n).BroadcastLowStock()
		n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PanicRecovered", func(t *testing.T) {
		assert.NotPanics(t, New(nil, nil, nil).BroadcastLowStock)
	})
}

func TestLowStockNotice_MediumWhenNoneEmpty(t *testing.T) {
	_, _, priority := lowStockNotice([]*inventory.Item{{Name: "A", Stock: 1, Unit: "kg"}})
	assert.Equal(t, notification.PriorityMedium, priority)
}
