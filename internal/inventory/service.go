package inventory

import (
	"context"
	"time"

	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Item, error)
	LowStock(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, in ItemInput) (*Item, error)
	Update(ctx context.Context, id string, in ItemInput) error
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, in StockInput) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *service) LowStock(ctx context.Context) ([]*Item, error) {
	return s.repo.LowStock(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in ItemInput) (*Item, error) {
	it := fromInput(in)
	if it.ID == "" {
		it.ID = utils.NewID("INV")
	}
	if it.Stock > 0 {
		it.LastRestockDate = utils.StrPtr(s.now().Format(utils.DateLayout))
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id string, in ItemInput) error {
	it := fromInput(in)
	it.ID = id
	return s.repo.Update(ctx, it)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id string, in StockInput) (int64, error) {
	if in.Quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	newStock, err := s.repo.AdjustStock(ctx, id, in.Quantity, in.Operation, s.now().Format(utils.DateLayout))
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("inventory stock changed",
		zap.String("inventory_id", id),
		zap.String("operation", in.Operation),
		zap.Int64("quantity", in.Quantity),
		zap.Int64("new_stock", newStock),
	)
	return newStock, nil
}

func fromInput(in ItemInput) *Item {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &Item{
		ID:              in.ID,
		Code:            in.Code,
		Name:            in.Name,
		Stock:           in.Stock,
		Unit:            in.Unit,
		MinStock:        in.MinStock,
		Supplier:        utils.NullIfEmpty(in.Supplier),
		SupplierContact: utils.NullIfEmpty(in.SupplierContact),
		Price:           in.Price,
		Category:        in.Category,
		IsActive:        active,
	}
}

type MaterialService interface {
	List(ctx context.Context, serviceID string) ([]*ServiceMaterial, error)
	Get(ctx context.Context, id string) (*ServiceMaterial, error)
	Create(ctx context.Context, in MaterialInput) (*ServiceMaterial, error)
	Update(ctx context.Context, id string, in MaterialInput) error
	Delete(ctx context.Context, id string) error
}

type materialService struct {
	repo MaterialRepository
	now  func() time.Time
}

func NewMaterialService(repo MaterialRepository) MaterialService {
	return &materialService{repo: repo, now: time.Now}
}

func (s *materialService) List(ctx context.Context, serviceID string) ([]*ServiceMaterial, error) {
	return s.repo.List(ctx, serviceID)
}

func (s *materialService) Get(ctx context.Context, id string) (*ServiceMaterial, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *materialService) Create(ctx context.Context, in MaterialInput) (*ServiceMaterial, error) {
	if !in.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	now := s.now()
	m := &ServiceMaterial{
		ID:          in.ID,
		ServiceID:   in.ServiceID,
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if m.ID == "" {
		m.ID = utils.NewID("SM")
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *materialService) Update(ctx context.Context, id string, in MaterialInput) error {
	if !in.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	return s.repo.Update(ctx, &ServiceMaterial{
		ID:          id,
		ServiceID:   in.ServiceID,
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		UpdatedAt:   s.now(),
	})
}

func (s *materialService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
