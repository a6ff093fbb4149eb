package order

import (
	"context"
	"sort"
	"time"

	"laundry-be/internal/inventory"
	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventDispatcher delivers a committed outbox event.
type EventDispatcher interface {
	Dispatch(ctx context.Context, eventID string) error
}

// MaterialLookup lists the material mappings of a set of services.
type MaterialLookup interface {
	ListForServices(ctx context.Context, serviceIDs []string) ([]*inventory.ServiceMaterial, error)
}

type Service interface {
	Create(ctx context.Context, actor utils.Identity, in OrderInput) (*Order, error)
	Get(ctx context.Context, viewer utils.Identity, id string) (*Order, error)
	List(ctx context.Context, viewer utils.Identity, status string) ([]*Order, error)
	Update(ctx context.Context, viewer utils.Identity, id string, in OrderInput) error
	UpdateStatus(ctx context.Context, viewer utils.Identity, id, status string) error
	Delete(ctx context.Context, id string) error
	EstimateMaterials(ctx context.Context, viewer utils.Identity, id string) ([]*MaterialEstimate, error)
}

type service struct {
	repo       Repository
	dispatcher EventDispatcher
	materials  MaterialLookup
	now        func() time.Time
}

func NewService(repo Repository, dispatcher EventDispatcher, materials MaterialLookup) Service {
	return &service{
		repo:       repo,
		dispatcher: dispatcher,
		materials:  materials,
		now:        time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor utils.Identity, in OrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if in.Status != "" && Status(in.Status) != StatusPending {
		return nil, ErrInitialStatus
	}

	now := s.now()
	o, err := s.fromInput(in, now)
	if err != nil {
		return nil, err
	}
	o.ID = in.ID
	if o.ID == "" {
		o.ID = utils.GenerateOrderID()
	}
	o.Status = StatusPending
	o.CreatedAt = now
	o.UpdatedAt = now
	if actor.ID != "" {
		o.CreatedBy = utils.StrPtr(actor.ID)
	}
	if actor.Role == utils.RoleCustomer {
		o.OwnerID = utils.StrPtr(actor.ID)
	}

	eventID, err := s.repo.Create(ctx, o)
	if err != nil {
		log.Warn("order not created", zap.String("order_id", o.ID), zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int64("total", o.Total),
		zap.Int("items", len(o.Items)),
	)
	s.dispatch(ctx, eventID)
	return o, nil
}

// dispatch is best-effort; undelivered events are retried by the scheduler.
func (s *service) dispatch(ctx context.Context, eventID string) {
	if eventID == "" || s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, eventID); err != nil {
		logger.FromCtx(ctx).Warn("order event left for retry",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
	}
}

func (s *service) Get(ctx context.Context, viewer utils.Identity, id string) (*Order, error) {
	if err := s.authorize(ctx, viewer, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// authorize hides orders a customer is not linked to.
func (s *service) authorize(ctx context.Context, viewer utils.Identity, id string) error {
	if viewer.IsAdmin() {
		return nil
	}
	ok, err := s.repo.IsVisible(ctx, id, viewer.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, viewer utils.Identity, status string) ([]*Order, error) {
	var st Status
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	if viewer.IsAdmin() {
		return s.repo.List(ctx, st)
	}
	return s.repo.ListVisible(ctx, viewer.ID, st)
}

func (s *service) Update(ctx context.Context, viewer utils.Identity, id string, in OrderInput) error {
	if err := s.authorize(ctx, viewer, id); err != nil {
		return err
	}

	now := s.now()
	o, err := s.fromInput(in, now)
	if err != nil {
		return err
	}
	o.ID = id
	o.UpdatedAt = now
	if in.Status != "" {
		st, err := ParseStatus(in.Status)
		if err != nil {
			return err
		}
		o.Status = st
	}

	eventID, err := s.repo.Update(ctx, o)
	if err != nil {
		return err
	}
	s.dispatch(ctx, eventID)
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, viewer utils.Identity, id, status string) error {
	to, err := ParseStatus(status)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, viewer, id); err != nil {
		return err
	}

	eventID, err := s.repo.UpdateStatus(ctx, id, to, s.now())
	if err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("order status changed",
		zap.String("order_id", id),
		zap.String("status", string(to)),
	)
	s.dispatch(ctx, eventID)
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// EstimateMaterials projects inventory consumption for an order. It never
// changes stock.
func (s *service) EstimateMaterials(ctx context.Context, viewer utils.Identity, id string) ([]*MaterialEstimate, error) {
	o, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	qty := make(map[string]int64)
	var serviceIDs []string
	for _, it := range o.Items {
		if _, seen := qty[it.ServiceID]; !seen {
			serviceIDs = append(serviceIDs, it.ServiceID)
		}
		qty[it.ServiceID] += it.Quantity
	}

	mappings, err := s.materials.ListForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string]*MaterialEstimate)
	for _, m := range mappings {
		est, ok := byItem[m.InventoryID]
		if !ok {
			est = &MaterialEstimate{
				InventoryID:  m.InventoryID,
				Name:         m.InventoryName,
				Unit:         m.InventoryUnit,
				Required:     decimal.Zero,
				CurrentStock: m.CurrentStock,
			}
			byItem[m.InventoryID] = est
		}
		est.Required = est.Required.Add(m.Quantity.Mul(decimal.NewFromInt(qty[m.ServiceID])))
	}

	out := make([]*MaterialEstimate, 0, len(byItem))
	for _, est := range byItem {
		est.Sufficient = decimal.NewFromInt(est.CurrentStock).GreaterThanOrEqual(est.Required)
		out = append(out, est)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InventoryID < out[j].InventoryID })
	return out, nil
}

// fromInput builds the order header and items, enforcing the total and item
// rules shared by create and update.
func (s *service) fromInput(in OrderInput, now time.Time) (*Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	switch in.PaymentMethod {
	case PaymentCash, PaymentQRIS, PaymentDebit:
	default:
		return nil, ErrPaymentMethod
	}

	o := &Order{
		CustomerName:  in.CustomerName,
		CustomerID:    utils.NullIfEmpty(in.CustomerID),
		Total:         in.Total,
		Date:          in.Date,
		PaymentMethod: in.PaymentMethod,
		Items:         make([]Item, 0, len(in.Items)),
	}
	if o.Date == "" {
		o.Date = now.Format(utils.DateLayout)
	}
	for _, it := range in.Items {
		o.Items = append(o.Items, Item{
			ServiceID:   it.ServiceID,
			ServiceName: it.ServiceName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	if sum, ok := o.ItemsTotal(); !ok || sum != o.Total {
		return nil, ErrTotalMismatch
	}
	return o, nil
}
