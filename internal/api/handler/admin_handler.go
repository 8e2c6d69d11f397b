package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/api/metrics"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// AdminHandler serves the dashboard aggregate.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type countsResponse struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
	Month int64 `json:"month"`
}

type revenueResponse struct {
	Total float64 `json:"total"`
	Today float64 `json:"today"`
	Month float64 `json:"month"`
}

type dailyRevenueResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// recentOrderResponse overrides serviceName with the current catalog name.
type recentOrderResponse struct {
	orderResponse
	UserName    string `json:"userName"`
	ServiceName string `json:"serviceName"`
}

type statsResponse struct {
	Users         countsResponse         `json:"users"`
	Orders        countsResponse         `json:"orders"`
	Reports       countsResponse         `json:"reports"`
	Services      countsResponse         `json:"services"`
	Contacts      countsResponse         `json:"contacts"`
	Revenue       revenueResponse        `json:"revenue"`
	RevenueChart  []dailyRevenueResponse `json:"revenueChart"`
	RecentOrders  []recentOrderResponse  `json:"recentOrders"`
	RecentReports []*domain.SampleReport `json:"recentReports"`
}

type statsEnvelope struct {
	Success bool          `json:"success"`
	Stats   statsResponse `json:"stats"`
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Dashboard statistics
// @Description  Counts, revenue, a 7-day revenue series and the latest orders and sample reports.
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  statsEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	start := time.Now()
	snap, err := h.service.Stats(c.Request().Context(), identity)
	metrics.AdminStatsDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsEnvelope{Success: true, Stats: toStatsResponse(snap)})
}

func toStatsResponse(s *ports.DashboardSnapshot) statsResponse {
	chart := make([]dailyRevenueResponse, len(s.RevenueChart))
	for i, d := range s.RevenueChart {
		chart[i] = dailyRevenueResponse{Date: d.Date, Revenue: d.Revenue.InexactFloat64(), Orders: d.Orders}
	}

	recent := make([]recentOrderResponse, len(s.RecentOrders))
	for i, o := range s.RecentOrders {
		recent[i] = recentOrderResponse{
			orderResponse: toOrderResponse(o.OrderView),
			UserName:      o.UserName,
			ServiceName:   o.ServiceName,
		}
	}

	reports := s.RecentReports
	if reports == nil {
		reports = []*domain.SampleReport{}
	}

	return statsResponse{
		Users:    toCountsResponse(s.Users),
		Orders:   toCountsResponse(s.Orders),
		Reports:  toCountsResponse(s.Reports),
		Services: toCountsResponse(s.Services),
		Contacts: toCountsResponse(s.Contacts),
		Revenue: revenueResponse{
			Total: s.Revenue.Total.InexactFloat64(),
			Today: s.Revenue.Today.InexactFloat64(),
			Month: s.Revenue.Month.InexactFloat64(),
		},
		RevenueChart:  chart,
		RecentOrders:  recent,
		RecentReports: reports,
	}
}

func toCountsResponse(c ports.Counts) countsResponse {
	return countsResponse{Total: c.Total, Today: c.Today, Month: c.Month}
}
