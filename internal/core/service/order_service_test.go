package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

var lifePath = &domain.Service{
	ID:          "svc-life-path",
	ServiceName: "Life Path Report",
	Price:       1499,
	Status:      domain.ServiceActive,
	Category:    domain.ServiceTypeReport,
}

func newOrderFixture() (*OrderService, *stubOrderRepo, *stubGateway, *stubLock) {
	repo := newStubOrderRepo()
	gw := &stubGateway{validSig: true}
	lock := newStubLock()
	catalog := newStubCatalogRepo(lifePath, &domain.Service{ID: "svc-retired", ServiceName: "Retired", Status: domain.ServiceInactive})
	return NewOrderService(repo, catalog, gw, lock, mustPrices(), discardLogger), repo, gw, lock
}

// seedMixedOrders stores orders for two users, spread over several days.
func seedMixedOrders(repo *stubOrderRepo) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	statuses := []domain.PaymentStatus{domain.PaymentPending, domain.PaymentCompleted, domain.PaymentFailed, domain.PaymentCancelled}
	for i := 0; i < 24; i++ {
		owner := ashaIdentity.SubjectID
		name := "Asha"
		if i%2 == 1 {
			owner = raviIdentity.SubjectID
			name = "Ravi"
		}
		repo.seed(&domain.Order{
			OrderID:        fmt.Sprintf("ORD-%012d", i),
			UserID:         owner,
			ServiceName:    []string{"Life Path Report", "Name Correction", "Career Consultation"}[i%3],
			Price:          float64(500 + i*100),
			PaymentStatus:  statuses[i%4],
			ContactDetails: domain.ContactDetails{Name: name, Email: strings.ToLower(name) + "@example.com", Phone: "+9100000000" + fmt.Sprint(i%2)},
			CreatedAt:      base.Add(time.Duration(i) * 6 * time.Hour),
		})
	}
}

func TestOrderService_Query_Defaults(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	seedMixedOrders(repo)

	page, err := svc.Query(context.Background(), ashaIdentity, ports.OrderQuery{})
	require.NoError(t, err)

	assert.Equal(t, ashaIdentity.SubjectID, repo.lastFilter.UserID)
	assert.Equal(t, "", repo.lastFilter.Status, "status all must not filter")
	assert.Equal(t, "createdAt", repo.lastFilter.SortBy)
	assert.Equal(t, "desc", repo.lastFilter.SortOrder)

	assert.Equal(t, ports.Pagination{Page: 1, Limit: 10, Total: 12, TotalPages: 2, HasNext: true, HasPrev: false}, page.Pagination)
	require.Len(t, page.Orders, 10)
	for i := 1; i < len(page.Orders); i++ {
		assert.False(t, page.Orders[i].Order.CreatedAt.After(page.Orders[i-1].Order.CreatedAt), "expected newest first")
	}
}

func TestOrderService_Query_NeverLeaksOtherOwners(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	seedMixedOrders(repo)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)

	queries := []ports.OrderQuery{}
	for _, search := range []string{"", "report", "ravi", "ORD-000000000001"} {
		for _, status := range []string{"", "all", "pending", "completed", "failed", "cancelled"} {
			for _, dated := range []bool{false, true} {
				q := ports.OrderQuery{Search: search, Status: status, Limit: 100}
				if dated {
					q.DateFrom, q.DateTo = from, to
				}
				queries = append(queries, q)
			}
		}
	}

	for _, q := range queries {
		page, err := svc.Query(context.Background(), ashaIdentity, q)
		require.NoError(t, err)
		for _, v := range page.Orders {
			require.Equal(t, ashaIdentity.SubjectID, v.Order.UserID, "query %+v leaked order %s", q, v.Order.OrderID)
		}
	}
}

func TestOrderService_Query_RejectsInsteadOfClamping(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	seedMixedOrders(repo)

	cases := map[string]ports.OrderQuery{
		"limit over max": {Limit: 101},
		"negative limit": {Limit: -1},
		"negative page":  {Page: -3},
		"page too far":   {Page: ports.MaxPage + 1},
		"bad status":     {Status: "refunded"},
		"bad sort field": {SortBy: "userId"},
		"bad sort order": {SortOrder: "up"},
		"inverted range": {DateFrom: time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local), DateTo: time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			repo.lastFilter = ports.ListOrdersFilter{}
			_, err := svc.Query(context.Background(), ashaIdentity, q)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
			assert.Equal(t, ports.ListOrdersFilter{}, repo.lastFilter, "repository must not be queried")
		})
	}
}

func TestOrderService_Query_DateToIsInclusiveEndOfDay(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.seed(&domain.Order{OrderID: "ORD-LATE", UserID: ashaIdentity.SubjectID, CreatedAt: time.Date(2026, 4, 2, 23, 59, 59, 0, time.Local)})
	repo.seed(&domain.Order{OrderID: "ORD-NEXT", UserID: ashaIdentity.SubjectID, CreatedAt: time.Date(2026, 4, 3, 0, 0, 0, 0, time.Local)})

	page, err := svc.Query(context.Background(), ashaIdentity, ports.OrderQuery{
		DateFrom: time.Date(2026, 4, 2, 0, 0, 0, 0, time.Local),
		DateTo:   time.Date(2026, 4, 2, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	wantEnd := time.Date(2026, 4, 2, 23, 59, 59, int(999*time.Millisecond), time.Local)
	assert.True(t, repo.lastFilter.DateTo.Equal(wantEnd), "dateTo = %v, want %v", repo.lastFilter.DateTo, wantEnd)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "ORD-LATE", page.Orders[0].Order.OrderID)
}

func TestOrderService_Query_IsIdempotent(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	seedMixedOrders(repo)
	// Equal sort keys must still page deterministically.
	for i := 0; i < 6; i++ {
		repo.seed(&domain.Order{OrderID: fmt.Sprintf("ORD-SAME%d", i), UserID: ashaIdentity.SubjectID, Price: 999, ServiceName: "Same", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)})
	}

	q := ports.OrderQuery{Page: 2, Limit: 4, SortBy: "price", SortOrder: "asc"}
	first, err := svc.Query(context.Background(), ashaIdentity, q)
	require.NoError(t, err)
	second, err := svc.Query(context.Background(), ashaIdentity, q)
	require.NoError(t, err)

	assert.Equal(t, first.Pagination, second.Pagination)
	require.Len(t, second.Orders, len(first.Orders))
	for i := range first.Orders {
		assert.Equal(t, first.Orders[i].Order.OrderID, second.Orders[i].Order.OrderID)
	}
}

func TestOrderService_Query_DerivedFields(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.seed(&domain.Order{OrderID: "ORD-A", UserID: ashaIdentity.SubjectID, Price: 1499, PaymentStatus: domain.PaymentCompleted, CreatedAt: time.Now()})
	repo.seed(&domain.Order{OrderID: "ORD-B", UserID: ashaIdentity.SubjectID, Price: 0, PaymentStatus: "refunded", CreatedAt: time.Now().Add(-time.Hour)})

	page, err := svc.Query(context.Background(), ashaIdentity, ports.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)

	assert.Equal(t, "₹1,499.00", page.Orders[0].FormattedPrice)
	assert.Equal(t, domain.StatusPresentation{Label: "Completed", Color: "green"}, page.Orders[0].Status)
	assert.Equal(t, domain.StatusPresentation{Label: "Unknown", Color: "gray"}, page.Orders[1].Status)
}

func TestOrderService_Query_RequiresIdentity(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	_, err := svc.Query(context.Background(), nil, ports.OrderQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrderService_QueryAll_AdminOnly(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	seedMixedOrders(repo)

	_, err := svc.QueryAll(context.Background(), ashaIdentity, ports.OrderQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	page, err := svc.QueryAll(context.Background(), adminIdentity, ports.OrderQuery{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, "", repo.lastFilter.UserID)
	assert.EqualValues(t, 24, page.Pagination.Total)
}

func TestOrderService_Get_OwnerScoped(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.seed(&domain.Order{OrderID: "ORD-RAVI", UserID: raviIdentity.SubjectID})

	_, err := svc.Get(context.Background(), ashaIdentity, "ORD-RAVI")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	view, err := svc.Get(context.Background(), raviIdentity, "ORD-RAVI")
	require.NoError(t, err)
	assert.Equal(t, "ORD-RAVI", view.Order.OrderID)
}

func TestOrderService_Lookup(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.seed(&domain.Order{OrderID: "ORD-GUEST", ContactDetails: domain.ContactDetails{Email: "guest@example.com", Phone: "+919876543210"}, CreatedAt: time.Now()})

	t.Run("normalised exact match", func(t *testing.T) {
		orders, err := svc.Lookup(context.Background(), "  Guest@Example.com ", " +919876543210 ")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-GUEST", orders[0].Order.OrderID)
	})

	t.Run("wrong phone", func(t *testing.T) {
		orders, err := svc.Lookup(context.Background(), "guest@example.com", "+919876543211")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("wrong email", func(t *testing.T) {
		orders, err := svc.Lookup(context.Background(), "guest2@example.com", "+919876543210")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := svc.Lookup(context.Background(), "guest@example.com", "  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestOrderService_Lookup_CapsAtTwentyNewest(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	base := time.Now()
	for i := 0; i < 25; i++ {
		repo.seed(&domain.Order{
			OrderID:        fmt.Sprintf("ORD-G%02d", i),
			ContactDetails: domain.ContactDetails{Email: "guest@example.com", Phone: "123"},
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}

	orders, err := svc.Lookup(context.Background(), "guest@example.com", "123")
	require.NoError(t, err)
	require.Len(t, orders, ports.LookupLimit)
	assert.Equal(t, "ORD-G24", orders[0].Order.OrderID)
}

func TestOrderService_Checkout_PricesFromCatalog(t *testing.T) {
	svc, repo, gw, _ := newOrderFixture()

	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Identity:  ashaIdentity,
		ServiceID: lifePath.ID,
		Contact:   domain.ContactDetails{Name: "Asha", Email: "ASHA@example.com", Phone: " +919876543210"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Order.Order.OrderID, "ORD-"))
	assert.Len(t, res.Order.Order.OrderID, len("ORD-")+12)
	assert.Equal(t, 1499.0, res.Order.Order.Price)
	assert.Equal(t, domain.PaymentPending, res.Order.Order.PaymentStatus)
	assert.Equal(t, ashaIdentity.SubjectID, res.Order.Order.UserID)
	assert.Equal(t, "asha@example.com", res.Order.Order.ContactDetails.Email)
	assert.Equal(t, "+919876543210", res.Order.Order.ContactDetails.Phone)

	assert.EqualValues(t, 149900, gw.lastCreate.Amount)
	assert.Equal(t, "INR", gw.lastCreate.Currency)
	assert.Equal(t, res.Order.Order.OrderID, gw.lastCreate.Receipt)
	assert.Equal(t, "rzp_test_key", res.Payment.KeyID)

	stored, err := repo.FindByOrderID(context.Background(), res.Order.Order.OrderID, "")
	require.NoError(t, err)
	assert.Equal(t, res.Payment.GatewayOrderID, stored.GatewayOrderID)
}

func TestOrderService_Checkout_Guest(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		ServiceID: lifePath.ID,
		Contact:   domain.ContactDetails{Name: "Guest", Email: "guest@example.com", Phone: "1"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Order.Order.UserID)
}

func TestOrderService_Checkout_InactiveService(t *testing.T) {
	svc, _, _, _ := newOrderFixture()

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{ServiceID: "svc-retired"})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestOrderService_Checkout_GatewayFailureMarksOrderFailed(t *testing.T) {
	svc, repo, gw, _ := newOrderFixture()
	gw.createFn = func(ports.GatewayOrderRequest) (*ports.GatewayOrder, error) {
		return nil, errors.New("gateway unreachable")
	}

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{ServiceID: lifePath.ID})
	require.Error(t, err)

	require.Len(t, repo.orders, 1)
	for id := range repo.orders {
		assert.Equal(t, domain.PaymentFailed, repo.status(id))
	}
}

func TestOrderService_Cancel(t *testing.T) {
	svc, repo, _, _ := newOrderFixture()
	repo.seed(&domain.Order{OrderID: "ORD-P", UserID: ashaIdentity.SubjectID})
	repo.seed(&domain.Order{OrderID: "ORD-C", UserID: ashaIdentity.SubjectID, PaymentStatus: domain.PaymentCompleted})

	view, err := svc.Cancel(context.Background(), ashaIdentity, "ORD-P")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, view.Order.PaymentStatus)
	assert.Equal(t, "Cancelled", view.Status.Label)

	_, err = svc.Cancel(context.Background(), ashaIdentity, "ORD-C")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Cancel(context.Background(), raviIdentity, "ORD-P")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
