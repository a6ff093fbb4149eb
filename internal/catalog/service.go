package catalog

import (
	"context"

	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type ServiceCatalog interface {
	List(ctx context.Context) ([]*Service, error)
	Get(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, in ServiceInput) (*Service, error)
	Update(ctx context.Context, id string, in ServiceInput) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) ServiceCatalog {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Service, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Service, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in ServiceInput) (*Service, error) {
	svc := fromInput(in)
	if svc.ID == "" {
		svc.ID = utils.NewID("SV")
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("service created",
		zap.String("layer", "service"),
		zap.String("service_id", svc.ID),
	)
	return svc, nil
}

func (s *service) Update(ctx context.Context, id string, in ServiceInput) error {
	svc := fromInput(in)
	svc.ID = id
	return s.repo.Update(ctx, svc)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func fromInput(in ServiceInput) *Service {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &Service{
		ID:          in.ID,
		Name:        in.Name,
		Price:       in.Price,
		Unit:        in.Unit,
		Category:    in.Category,
		Icon:        utils.NullIfEmpty(in.Icon),
		Description: utils.NullIfEmpty(in.Description),
		IsActive:    active,
	}
}
