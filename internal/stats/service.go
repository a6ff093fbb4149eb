package stats

import (
	"context"
	"io"
	"time"

	"laundry-be/internal/utils"

	"github.com/gocarina/gocsv"
)

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Revenue(ctx context.Context, start, end string) ([]DateRevenue, error)
	ExportOrders(ctx context.Context, w io.Writer, start, end string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	monthStart := utils.FirstDayOfMonth(now)

	revenue, err := s.repo.RevenueSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.MembersJoinedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.repo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format(utils.DateLayout)
	weekStart := now.AddDate(0, 0, -6).Format(utils.DateLayout)
	daily, err := s.repo.RevenueByDate(ctx, weekStart, today)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Revenue:       revenue,
		NewMembers:    members,
		ActiveOrders:  active,
		LowStock:      low,
		WeeklyRevenue: byWeekday(daily),
	}, nil
}

// byWeekday folds date totals onto weekdays, keeping first-seen date order.
func byWeekday(daily []DateRevenue) []DayRevenue {
	out := []DayRevenue{}
	index := make(map[time.Weekday]int)
	for _, d := range daily {
		t, err := time.Parse(utils.DateLayout, d.Date)
		if err != nil {
			continue
		}
		wd := t.Weekday()
		if i, ok := index[wd]; ok {
			out[i].Total += d.Total
			continue
		}
		index[wd] = len(out)
		out = append(out, DayRevenue{DayOfWeek: int(wd), Total: d.Total})
	}
	return out
}

func checkRange(start, end string) error {
	if start == "" || end == "" {
		return ErrDateRangeRequired
	}
	if !utils.ValidDate(start) || !utils.ValidDate(end) {
		return ErrInvalidDate
	}
	if start > end {
		return ErrInvalidRange
	}
	return nil
}

func (s *service) Revenue(ctx context.Context, start, end string) ([]DateRevenue, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return s.repo.RevenueByDate(ctx, start, end)
}

// ExportOrders writes the orders dated within [start, end] as CSV with a
// header row.
func (s *service) ExportOrders(ctx context.Context, w io.Writer, start, end string) error {
	if err := checkRange(start, end); err != nil {
		return err
	}
	rows, err := s.repo.OrdersBetween(ctx, start, end)
	if err != nil {
		return err
	}
	return gocsv.Marshal(&rows, w)
}
