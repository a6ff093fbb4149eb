package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]*Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

func (m *MockRepository) LowStock(ctx context.Context) ([]*Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Item), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, it *Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, it *Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) AdjustStock(ctx context.Context, id string, quantity int64, operation, today string) (int64, error) {
	args := m.Called(ctx, id, quantity, operation, today)
	return args.Get(0).(int64), args.Error(1)
}

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) List(ctx context.Context, serviceID string) ([]*ServiceMaterial, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ServiceMaterial), args.Error(1)
}

func (m *MockMaterialRepository) ListForServices(ctx context.Context, serviceIDs []string) ([]*ServiceMaterial, error) {
	args := m.Called(ctx, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ServiceMaterial), args.Error(1)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id string) (*ServiceMaterial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ServiceMaterial), args.Error(1)
}

func (m *MockMaterialRepository) Create(ctx context.Context, sm *ServiceMaterial) error {
	return m.Called(ctx, sm).Error(0)
}

func (m *MockMaterialRepository) Update(ctx context.Context, sm *ServiceMaterial) error {
	return m.Called(ctx, sm).Error(0)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = func() time.Time {
	return time.Date(2025, 12, 17, 9, 30, 0, 0, time.Local)
}

func TestService_Create(t *testing.T) {
	t.Run("StampsRestockWhenStocked", func(t *testing.T) {
		repo := new(MockRepository)
		svc := &service{repo: repo, now: fixedNow}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(it *Item) bool {
			return it.LastRestockDate != nil && *it.LastRestockDate == "2025-12-17" && it.IsActive
		})).Return(nil)

		it, err := svc.Create(context.Background(), ItemInput{Code: "DET-002", Name: "Deterjen Bubuk", Stock: 10, Unit: "kg", Category: "Deterjen"})
		require.NoError(t, err)
		assert.Contains(t, it.ID, "INV-")
		repo.AssertExpectations(t)
	})

	t.Run("EmptyStockNoRestockDate", func(t *testing.T) {
		repo := new(MockRepository)
		svc := &service{repo: repo, now: fixedNow}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(it *Item) bool {
			return it.LastRestockDate == nil && it.Supplier == nil
		})).Return(nil)

		_, err := svc.Create(context.Background(), ItemInput{ID: "INV099", Code: "X", Name: "X", Unit: "pcs", Category: "Lainnya"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_AdjustStock(t *testing.T) {
	t.Run("PassesToday", func(t *testing.T) {
		repo := new(MockRepository)
		svc := &service{repo: repo, now: fixedNow}
		repo.On("AdjustStock", mock.Anything, "INV001", int64(10), OperationAdd, "2025-12-17").Return(int64(55), nil)

		got, err := svc.AdjustStock(context.Background(), "INV001", StockInput{Quantity: 10, Operation: OperationAdd})
		require.NoError(t, err)
		assert.Equal(t, int64(55), got)
	})

	t.Run("RejectsZero", func(t *testing.T) {
		repo := new(MockRepository)
		svc := &service{repo: repo, now: fixedNow}

		_, err := svc.AdjustStock(context.Background(), "INV001", StockInput{Quantity: 0, Operation: OperationAdd})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient", func(t *testing.T) {
		repo := new(MockRepository)
		svc := &service{repo: repo, now: fixedNow}
		repo.On("AdjustStock", mock.Anything, "INV002", int64(6), OperationSubtract, mock.Anything).Return(int64(0), ErrInsufficientStock)

		_, err := svc.AdjustStock(context.Background(), "INV002", StockInput{Quantity: 6, Operation: OperationSubtract})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})
}

func TestMaterialService_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		repo := new(MockMaterialRepository)
		svc := &materialService{repo: repo, now: fixedNow}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(sm *ServiceMaterial) bool {
			return sm.Quantity.Equal(decimal.RequireFromString("0.05")) && sm.CreatedAt.Equal(fixedNow())
		})).Return(nil)

		sm, err := svc.Create(context.Background(), MaterialInput{
			ServiceID: "1", InventoryID: "INV001", Quantity: decimal.RequireFromString("0.05"), Unit: "liter",
		})
		require.NoError(t, err)
		assert.Contains(t, sm.ID, "SM-")
		repo.AssertExpectations(t)
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		repo := new(MockMaterialRepository)
		svc := &materialService{repo: repo, now: fixedNow}

		_, err := svc.Create(context.Background(), MaterialInput{ServiceID: "1", InventoryID: "INV001", Unit: "liter"})
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		err = svc.Update(context.Background(), "SM-1", MaterialInput{Quantity: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}
