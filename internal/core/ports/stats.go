package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

// Collections the dashboard counts.
const (
	CollectionUsers         = "users"
	CollectionOrders        = "orders"
	CollectionSampleReports = "sample_reports"
	CollectionServices      = "services"
	CollectionContacts      = "contacts"
)

// DailyRevenue is one bucket of completed order revenue, keyed by local date.
type DailyRevenue struct {
	Date    string
	Revenue decimal.Decimal
	Orders  int64
}

// StatsRepository answers the dashboard's counting and summing queries.
// A zero since means no lower bound.
type StatsRepository interface {
	Count(ctx context.Context, collection string, since time.Time) (int64, error)
	Revenue(ctx context.Context, since time.Time) (decimal.Decimal, error)
	DailyRevenue(ctx context.Context, since time.Time, loc *time.Location) ([]DailyRevenue, error)
}

type Counts struct {
	Total int64
	Today int64
	Month int64
}

type RevenueTotals struct {
	Total decimal.Decimal
	Today decimal.Decimal
	Month decimal.Decimal
}

// RecentOrder is a dashboard order row with its related names resolved.
type RecentOrder struct {
	OrderView
	UserName    string
	ServiceName string
}

type DashboardSnapshot struct {
	Users         Counts
	Orders        Counts
	Reports       Counts
	Services      Counts
	Contacts      Counts
	Revenue       RevenueTotals
	RevenueChart  []DailyRevenue
	RecentOrders  []RecentOrder
	RecentReports []*domain.SampleReport
}

type AdminService interface {
	Stats(ctx context.Context, identity *domain.Identity) (*DashboardSnapshot, error)
}
