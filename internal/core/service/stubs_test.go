package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var (
	adminIdentity = &domain.Identity{SubjectID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin"}
	ashaIdentity  = &domain.Identity{SubjectID: "user-asha", Email: "asha@example.com", Role: domain.RoleUser, Name: "Asha"}
	raviIdentity  = &domain.Identity{SubjectID: "user-ravi", Email: "ravi@example.com", Role: domain.RoleUser, Name: "Ravi"}
)

func mustPrices() *PriceFormatter {
	f, err := NewPriceFormatter("en-IN", "INR")
	if err != nil {
		panic(err)
	}
	return f
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by id
	findErr error
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(user)
	if clone.ID == "" {
		r.nextID++
		clone.ID = "user-" + strings.Repeat("x", r.nextID)
	}
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.ProfileImageURL != nil {
		u.ProfileImageURL = *upd.ProfileImageURL
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*domain.Order // keyed by orderId
	listErr    error
	createErr  error
	lastFilter ports.ListOrdersFilter
	casCalls   int
	casWins    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == "" {
		o.ID = "oid-" + o.OrderID
	}
	r.orders[o.OrderID] = cloneOrder(o)
	return nil
}

func (r *stubOrderRepo) FindByOrderID(_ context.Context, orderID, userID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || (userID != "" && o.UserID != userID) {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.GatewayOrderID == gatewayOrderID {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

// List applies the same filters and ordering the Mongo repository uses.
func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	var matched []*domain.Order
	for _, o := range r.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(o.PaymentStatus) != f.Status {
			continue
		}
		if !f.DateFrom.IsZero() && o.CreatedAt.Before(f.DateFrom) {
			continue
		}
		if !f.DateTo.IsZero() && o.CreatedAt.After(f.DateTo) {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(o.ServiceName), needle) &&
				!strings.Contains(strings.ToLower(o.OrderID), needle) &&
				!strings.Contains(strings.ToLower(o.ContactDetails.Name), needle) {
				continue
			}
		}
		matched = append(matched, cloneOrder(o))
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		cmp := 0
		switch f.SortBy {
		case "price":
			cmp = compareFloat(a.Price, b.Price)
		case "serviceName":
			cmp = strings.Compare(a.ServiceName, b.ServiceName)
		default:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		}
		if cmp == 0 {
			cmp = strings.Compare(a.ID, b.ID)
		}
		if f.SortOrder == "desc" {
			return cmp > 0
		}
		return cmp < 0
	})

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *stubOrderRepo) FindByContact(_ context.Context, email, phone string, limit int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ContactDetails.Email == email && o.ContactDetails.Phone == phone {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubOrderRepo) SetGatewayOrder(_ context.Context, orderID, gatewayOrderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.GatewayOrderID = gatewayOrderID
	return nil
}

func (r *stubOrderRepo) CompareAndSetStatus(_ context.Context, c ports.StatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casCalls++
	o, ok := r.orders[c.OrderID]
	if !ok || o.PaymentStatus != c.From {
		return false, nil
	}
	o.PaymentStatus = c.To
	if c.GatewayPaymentID != "" {
		o.GatewayPaymentID = c.GatewayPaymentID
	}
	r.casWins++
	return true, nil
}

func (r *stubOrderRepo) status(orderID string) domain.PaymentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[orderID].PaymentStatus
}

func (r *stubOrderRepo) seed(o *domain.Order) *domain.Order {
	if o.ID == "" {
		o.ID = "oid-" + o.OrderID
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = domain.PaymentPending
	}
	r.orders[o.OrderID] = o
	return o
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubCatalogRepo struct {
	services map[string]*domain.Service
	findErr  error
}

func newStubCatalogRepo(services ...*domain.Service) *stubCatalogRepo {
	r := &stubCatalogRepo{services: make(map[string]*domain.Service)}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *stubCatalogRepo) List(_ context.Context, f ports.CatalogFilter) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if f.ActiveOnly && !s.IsActive() {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubCatalogRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Service, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make(map[string]*domain.Service)
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) Create(_ context.Context, s *domain.Service) error {
	s.ID = "svc-" + strings.ToLower(strings.ReplaceAll(s.ServiceName, " ", "-"))
	clone := *s
	r.services[s.ID] = &clone
	return nil
}

func (r *stubCatalogRepo) Update(_ context.Context, s *domain.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	clone := *s
	r.services[s.ID] = &clone
	return nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type stubGateway struct {
	createFn   func(req ports.GatewayOrderRequest) (*ports.GatewayOrder, error)
	lastCreate ports.GatewayOrderRequest
	validSig   bool
	event      *ports.WebhookEvent
}

func (g *stubGateway) CreateOrder(_ context.Context, req ports.GatewayOrderRequest) (*ports.GatewayOrder, error) {
	g.lastCreate = req
	if g.createFn != nil {
		return g.createFn(req)
	}
	return &ports.GatewayOrder{ID: "order_gw_" + req.Receipt, Amount: req.Amount, Currency: req.Currency}, nil
}

func (g *stubGateway) VerifyPaymentSignature(_, _, signature string) bool {
	return g.validSig && signature != ""
}

func (g *stubGateway) VerifyWebhookSignature(_ []byte, signature string) bool {
	return g.validSig && signature != ""
}

func (g *stubGateway) ParseWebhook(_ []byte) (*ports.WebhookEvent, error) {
	return g.event, nil
}

func (g *stubGateway) KeyID() string { return "rzp_test_key" }

type stubLock struct {
	mu       sync.Mutex
	held     map[string]string
	err      error
	seq      int
	issued   []string
	released []string
}

func newStubLock() *stubLock {
	return &stubLock{held: make(map[string]string)}
}

func (l *stubLock) Acquire(_ context.Context, orderID string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return "", false, l.err
	}
	if _, ok := l.held[orderID]; ok {
		return "", false, nil
	}
	l.seq++
	token := fmt.Sprintf("token-%d", l.seq)
	l.held[orderID] = token
	l.issued = append(l.issued, token)
	return token, true, nil
}

// Release mirrors the Redis compare-and-delete: a stale token leaves the lock alone.
func (l *stubLock) Release(_ context.Context, orderID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[orderID] == token {
		delete(l.held, orderID)
		l.released = append(l.released, orderID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Stats & leads
// ---------------------------------------------------------------------------

type stubStatsRepo struct {
	counts   map[string]int64
	revenue  decimal.Decimal
	daily    []ports.DailyRevenue
	countErr error
	since    []time.Time
	mu       sync.Mutex
}

func (r *stubStatsRepo) Count(_ context.Context, collection string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = append(r.since, since)
	if r.countErr != nil && collection == ports.CollectionContacts {
		return 0, r.countErr
	}
	return r.counts[collection], nil
}

func (r *stubStatsRepo) Revenue(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return r.revenue, nil
}

func (r *stubStatsRepo) DailyRevenue(_ context.Context, _ time.Time, _ *time.Location) ([]ports.DailyRevenue, error) {
	return r.daily, nil
}

type stubReportRepo struct {
	reports []*domain.SampleReport
	nextID  int
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.SampleReport) error {
	r.nextID++
	rep.ID = "report-" + strings.Repeat("r", r.nextID)
	clone := *rep
	r.reports = append(r.reports, &clone)
	return nil
}

func (r *stubReportRepo) List(_ context.Context, limit int) ([]*domain.SampleReport, error) {
	out := make([]*domain.SampleReport, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		out = append(out, r.reports[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id string) error {
	for i, rep := range r.reports {
		if rep.ID == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			return nil
		}
	}
	return domain.ErrReportNotFound
}

type stubContactRepo struct {
	contacts map[string]*domain.Contact
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) error {
	c.ID = "contact-" + c.Email
	clone := *c
	r.contacts[c.ID] = &clone
	return nil
}

func (r *stubContactRepo) List(_ context.Context) ([]*domain.Contact, error) {
	out := make([]*domain.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubContactRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	c.Status = status
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

type stubImageStore struct {
	uploads []string
}

func (s *stubImageStore) Upload(_ context.Context, _ string, folder string) (*ports.UploadedImage, error) {
	s.uploads = append(s.uploads, folder)
	id := folder + "/img"
	return &ports.UploadedImage{SecureURL: "https://cdn.example.com/" + id, PublicID: id}, nil
}
