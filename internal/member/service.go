package member

import (
	"context"
	"time"

	"laundry-be/internal/utils"
)

type Service interface {
	List(ctx context.Context) ([]*Member, error)
	Get(ctx context.Context, id string) (*Member, error)
	Create(ctx context.Context, in MemberInput) (*Member, error)
	Update(ctx context.Context, id string, in MemberInput) error
	Delete(ctx context.Context, id string) error
	AddPoints(ctx context.Context, id string, delta int64) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]*Member, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in MemberInput) (*Member, error) {
	m, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = utils.NewID("M")
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, id string, in MemberInput) error {
	m, err := s.fromInput(in)
	if err != nil {
		return err
	}
	m.ID = id
	return s.repo.Update(ctx, m)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddPoints(ctx context.Context, id string, delta int64) (int64, error) {
	return s.repo.AdjustPoints(ctx, id, delta)
}

// fromInput fills membership dates: join defaults to today and expiry to one
// year after join.
func (s *service) fromInput(in MemberInput) (*Member, error) {
	join := in.JoinDate
	if join == "" {
		join = s.now().Format(utils.DateLayout)
	}
	expiry := in.ExpiryDate
	if expiry == "" {
		t, _ := time.Parse(utils.DateLayout, join)
		expiry = t.AddDate(1, 0, 0).Format(utils.DateLayout)
	}
	if expiry < join {
		return nil, ErrInvalidDateSpan
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return &Member{
		ID:         in.ID,
		Name:       in.Name,
		Phone:      in.Phone,
		Avatar:     utils.NullIfEmpty(in.Avatar),
		JoinDate:   join,
		ExpiryDate: expiry,
		Points:     in.Points,
		TotalSpend: in.TotalSpend,
		IsActive:   active,
	}, nil
}
