package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	chartDays          = 7
	recentOrdersLimit  = 5
	recentReportsLimit = 3
	dateLayout         = "2006-01-02"
)

// AdminService computes the back-office dashboard.
type AdminService struct {
	stats   ports.StatsRepository
	orders  ports.OrderRepository
	users   ports.UserRepository
	catalog ports.CatalogRepository
	reports ports.SampleReportRepository
	prices  *PriceFormatter
	log     zerolog.Logger
	now     func() time.Time
}

func NewAdminService(
	stats ports.StatsRepository,
	orders ports.OrderRepository,
	users ports.UserRepository,
	catalog ports.CatalogRepository,
	reports ports.SampleReportRepository,
	prices *PriceFormatter,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		stats:   stats,
		orders:  orders,
		users:   users,
		catalog: catalog,
		reports: reports,
		prices:  prices,
		log:     log,
		now:     time.Now,
	}
}

// Stats runs every dashboard query concurrently. Calendar boundaries come
// from the server's local time. Any failing query fails the whole snapshot.
func (s *AdminService) Stats(ctx context.Context, identity *domain.Identity) (*ports.DashboardSnapshot, error) {
	if !authz.Authorize(identity, authz.Stats, authz.Read).Allowed() {
		return nil, domain.ErrUnauthorized
	}

	now := s.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	month := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	chartStart := today.AddDate(0, 0, -(chartDays - 1))

	var snap ports.DashboardSnapshot
	g, gctx := errgroup.WithContext(ctx)

	counted := []struct {
		collection string
		dst        *ports.Counts
	}{
		{ports.CollectionUsers, &snap.Users},
		{ports.CollectionOrders, &snap.Orders},
		{ports.CollectionSampleReports, &snap.Reports},
		{ports.CollectionServices, &snap.Services},
		{ports.CollectionContacts, &snap.Contacts},
	}
	for _, c := range counted {
		g.Go(s.count(gctx, c.collection, time.Time{}, &c.dst.Total))
		g.Go(s.count(gctx, c.collection, today, &c.dst.Today))
		g.Go(s.count(gctx, c.collection, month, &c.dst.Month))
	}

	g.Go(s.revenue(gctx, time.Time{}, &snap.Revenue.Total))
	g.Go(s.revenue(gctx, today, &snap.Revenue.Today))
	g.Go(s.revenue(gctx, month, &snap.Revenue.Month))

	var daily []ports.DailyRevenue
	g.Go(func() error {
		var err error
		daily, err = s.stats.DailyRevenue(gctx, chartStart, now.Location())
		if err != nil {
			return fmt.Errorf("daily revenue: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		recent, err := s.recentOrders(gctx)
		if err != nil {
			return err
		}
		snap.RecentOrders = recent
		return nil
	})

	g.Go(func() error {
		reports, err := s.reports.List(gctx, recentReportsLimit)
		if err != nil {
			return fmt.Errorf("recent reports: %w", err)
		}
		snap.RecentReports = reports
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("dashboard stats failed")
		return nil, fmt.Errorf("admin stats: %w", err)
	}

	snap.RevenueChart = fillChart(chartStart, chartDays, daily)
	return &snap, nil
}

func (s *AdminService) count(ctx context.Context, collection string, since time.Time, dst *int64) func() error {
	return func() error {
		n, err := s.stats.Count(ctx, collection, since)
		if err != nil {
			return fmt.Errorf("count %s: %w", collection, err)
		}
		*dst = n
		return nil
	}
}

func (s *AdminService) revenue(ctx context.Context, since time.Time, dst *decimal.Decimal) func() error {
	return func() error {
		sum, err := s.stats.Revenue(ctx, since)
		if err != nil {
			return fmt.Errorf("revenue: %w", err)
		}
		*dst = sum
		return nil
	}
}

// recentOrders loads the newest orders and resolves the customer and service
// names they reference. Stored snapshots are used when a record is gone.
func (s *AdminService) recentOrders(ctx context.Context) ([]ports.RecentOrder, error) {
	orders, _, err := s.orders.List(ctx, ports.ListOrdersFilter{
		SortBy:    ports.DefaultSortBy,
		SortOrder: ports.DefaultSortOrder,
		Page:      1,
		Limit:     recentOrdersLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}

	userIDs := make([]string, 0, len(orders))
	serviceIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.UserID != "" {
			userIDs = append(userIDs, o.UserID)
		}
		serviceIDs = append(serviceIDs, o.ServiceID)
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve order users: %w", err)
	}
	services, err := s.catalog.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve order services: %w", err)
	}

	out := make([]ports.RecentOrder, 0, len(orders))
	for _, o := range orders {
		row := ports.RecentOrder{
			OrderView: ports.OrderView{
				Order:          o,
				FormattedPrice: s.prices.Format(o.Price),
				Status:         domain.PresentStatus(o.PaymentStatus),
			},
			UserName:    o.ContactDetails.Name,
			ServiceName: o.ServiceName,
		}
		if u, ok := users[o.UserID]; ok {
			row.UserName = u.Name
		}
		if svc, ok := services[o.ServiceID]; ok {
			row.ServiceName = svc.ServiceName
		}
		out = append(out, row)
	}
	return out, nil
}

// fillChart lays the aggregated buckets over a fixed run of days so that
// days without orders still appear with zero revenue.
func fillChart(start time.Time, days int, buckets []ports.DailyRevenue) []ports.DailyRevenue {
	byDate := make(map[string]ports.DailyRevenue, len(buckets))
	for _, b := range buckets {
		byDate[b.Date] = b
	}

	out := make([]ports.DailyRevenue, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		b, ok := byDate[date]
		if !ok {
			b = ports.DailyRevenue{Date: date, Revenue: decimal.Zero}
		}
		out = append(out, b)
	}
	return out
}
