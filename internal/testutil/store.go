// Package testutil provides in-memory implementations of the domain
// repositories and a recording notifier for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Store keeps every entity in memory. Timestamps come from a clock that
// advances one second per insert so ordering by created_at is stable.
type Store struct {
	mu sync.Mutex

	users        map[uuid.UUID]entity.User
	reps         map[uuid.UUID]entity.MarketingRepresentative
	distributors map[uuid.UUID]entity.Distributor
	fabricators  map[uuid.UUID]entity.Fabricator
	reports      map[uuid.UUID]entity.Report
	tasks        map[uuid.UUID]entity.Task
	activities   map[uuid.UUID]entity.RecentActivity
	idempotency  map[string]entity.IdempotencyKey

	clock time.Time
}

func NewStore() *Store {
	return &Store{
		users:        map[uuid.UUID]entity.User{},
		reps:         map[uuid.UUID]entity.MarketingRepresentative{},
		distributors: map[uuid.UUID]entity.Distributor{},
		fabricators:  map[uuid.UUID]entity.Fabricator{},
		reports:      map[uuid.UUID]entity.Report{},
		tasks:        map[uuid.UUID]entity.Task{},
		activities:   map[uuid.UUID]entity.RecentActivity{},
		idempotency:  map[string]entity.IdempotencyKey{},
		clock:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func duplicate(entity, field string) error {
	return apperror.NewFieldError(field, entity+" with this "+strings.ReplaceAll(field, "_", " ")+" already exists.")
}

func page[T any](items []T, params *pagination.PaginationParams) ([]T, int64) {
	params.Validate()
	total := int64(len(items))
	start := params.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + params.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

func contains(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func matchesAssigned(id *uuid.UUID, assigned *bool) bool {
	return assigned == nil || (*assigned == (id != nil))
}

// TxManager runs fn directly. The store has no rollback.
type TxManager struct{}

func (TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Users

type userRepo struct{ s *Store }

func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return duplicate("user", "username")
		}
		if other.Email == u.Email {
			return duplicate("user", "email")
		}
	}
	u.ID = newID(u.ID)
	u.CreatedAt = r.s.tick()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) find(match func(entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r userRepo) ListAdminEmails(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for _, u := range r.s.users {
		if u.IsAdmin && u.Email != "" {
			out = append(out, u.Email)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Marketing representatives

type repRepo struct{ s *Store }

func (s *Store) Reps() repository.MarketingRepRepository { return repRepo{s} }

func (r repRepo) Create(_ context.Context, m *entity.MarketingRepresentative) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.reps {
		if other.Email == m.Email {
			return duplicate("marketing representative", "email")
		}
	}
	m.ID = newID(m.ID)
	m.CreatedAt = r.s.tick()
	m.UpdatedAt = m.CreatedAt
	r.s.reps[m.ID] = *m
	return nil
}

func (r repRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.MarketingRepresentative, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.reps[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r repRepo) find(match func(entity.MarketingRepresentative) bool) *entity.MarketingRepresentative {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.reps {
		if match(m) {
			return &m
		}
	}
	return nil
}

func (r repRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.MarketingRepresentative, error) {
	return r.find(func(m entity.MarketingRepresentative) bool { return m.UserID == userID }), nil
}

func (r repRepo) GetByEmail(_ context.Context, email string) (*entity.MarketingRepresentative, error) {
	return r.find(func(m entity.MarketingRepresentative) bool { return m.Email == email }), nil
}

func (r repRepo) Update(_ context.Context, m *entity.MarketingRepresentative) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.reps[m.ID]
	if !ok {
		return nil
	}
	m.EmployeeID = old.EmployeeID
	m.CreatedAt = old.CreatedAt
	r.s.reps[m.ID] = *m
	return nil
}

func (r repRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reps, id)
	return nil
}

func (r repRepo) sorted(search string) []entity.MarketingRepresentative {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.MarketingRepresentative{}
	for _, m := range r.s.reps {
		if contains(search, m.Name, m.Email, m.PhoneNumber, m.EmployeeID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r repRepo) List(_ context.Context, search string, params *pagination.PaginationParams) ([]entity.MarketingRepresentative, int64, error) {
	items, total := page(r.sorted(search), params)
	return items, total, nil
}

func (r repRepo) ListAll(_ context.Context) ([]entity.MarketingRepresentative, error) {
	return r.sorted(""), nil
}

func (r repRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.reps)), nil
}

// Distributors

type distributorRepo struct{ s *Store }

func (s *Store) Distributors() repository.DistributorRepository { return distributorRepo{s} }

func (r distributorRepo) Create(_ context.Context, d *entity.Distributor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.distributors {
		if other.Email == d.Email {
			return duplicate("distributor", "email")
		}
	}
	d.ID = newID(d.ID)
	d.CreatedAt = r.s.tick()
	d.UpdatedAt = d.CreatedAt
	stored := *d
	stored.MarketingRepresentative = nil
	r.s.distributors[d.ID] = stored
	return nil
}

// load fills relations; callers hold the lock
func (r distributorRepo) load(d entity.Distributor) entity.Distributor {
	if d.MarketingRepresentativeID != nil {
		if m, ok := r.s.reps[*d.MarketingRepresentativeID]; ok {
			d.MarketingRepresentative = &m
		}
	}
	return d
}

func (r distributorRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Distributor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.distributors[id]; ok {
		d = r.load(d)
		return &d, nil
	}
	return nil, nil
}

func (r distributorRepo) GetByEmail(_ context.Context, email string) (*entity.Distributor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.distributors {
		if d.Email == email {
			return &d, nil
		}
	}
	return nil, nil
}

func (r distributorRepo) Update(_ context.Context, d *entity.Distributor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.distributors[d.ID]
	if !ok {
		return nil
	}
	stored := *d
	stored.CreatedAt = old.CreatedAt
	stored.MarketingRepresentativeID = old.MarketingRepresentativeID
	stored.MarketingRepresentative = nil
	r.s.distributors[d.ID] = stored
	return nil
}

func (r distributorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.distributors, id)
	return nil
}

func (r distributorRepo) SetRepresentative(_ context.Context, id uuid.UUID, repID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.distributors[id]; ok {
		d.MarketingRepresentativeID = repID
		r.s.distributors[id] = d
	}
	return nil
}

func (r distributorRepo) matching(filter repository.DistributorFilter) []entity.Distributor {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Distributor{}
	for _, d := range r.s.distributors {
		if !contains(filter.Search, d.Name, d.Email, d.PhoneNumber, d.District) {
			continue
		}
		if !matchesAssigned(d.MarketingRepresentativeID, filter.Assigned) {
			continue
		}
		if filter.RepID != nil && (d.MarketingRepresentativeID == nil || *d.MarketingRepresentativeID != *filter.RepID) {
			continue
		}
		out = append(out, r.load(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r distributorRepo) List(_ context.Context, filter repository.DistributorFilter, params *pagination.PaginationParams) ([]entity.Distributor, int64, error) {
	items, total := page(r.matching(filter), params)
	return items, total, nil
}

func (r distributorRepo) ListAll(_ context.Context, filter repository.DistributorFilter) ([]entity.Distributor, error) {
	return r.matching(filter), nil
}

func (r distributorRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.distributors)), nil
}

// Fabricators

type fabricatorRepo struct{ s *Store }

func (s *Store) Fabricators() repository.FabricatorRepository { return fabricatorRepo{s} }

func (r fabricatorRepo) Create(_ context.Context, f *entity.Fabricator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.fabricators {
		if other.PhoneNumber == f.PhoneNumber {
			return duplicate("fabricator", "phone_number")
		}
		if other.RegistrationNumber == f.RegistrationNumber {
			return duplicate("fabricator", "registration_number")
		}
	}
	f.ID = newID(f.ID)
	if f.Status == "" {
		f.Status = enum.FabricatorStatusPending
	}
	f.CreatedAt = r.s.tick()
	f.UpdatedAt = f.CreatedAt
	stored := *f
	stored.Distributor, stored.MarketingRepresentative = nil, nil
	r.s.fabricators[f.ID] = stored
	return nil
}

// load fills relations; callers hold the lock
func (r fabricatorRepo) load(f entity.Fabricator) entity.Fabricator {
	if d, ok := r.s.distributors[f.DistributorID]; ok {
		f.Distributor = &d
	}
	if f.MarketingRepresentativeID != nil {
		if m, ok := r.s.reps[*f.MarketingRepresentativeID]; ok {
			f.MarketingRepresentative = &m
		}
	}
	return f
}

func (r fabricatorRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Fabricator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.fabricators[id]; ok {
		f = r.load(f)
		return &f, nil
	}
	return nil, nil
}

func (r fabricatorRepo) GetByPhone(_ context.Context, phone string) (*entity.Fabricator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.fabricators {
		if f.PhoneNumber == phone {
			return &f, nil
		}
	}
	return nil, nil
}

func (r fabricatorRepo) Update(_ context.Context, f *entity.Fabricator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.fabricators[f.ID]
	if !ok {
		return nil
	}
	stored := *f
	stored.RegistrationNumber = old.RegistrationNumber
	stored.Status = old.Status
	stored.MarketingRepresentativeID = old.MarketingRepresentativeID
	stored.CreatedAt = old.CreatedAt
	stored.Distributor, stored.MarketingRepresentative = nil, nil
	r.s.fabricators[f.ID] = stored
	return nil
}

func (r fabricatorRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.FabricatorStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.fabricators[id]; ok {
		f.Status = status
		r.s.fabricators[id] = f
	}
	return nil
}

func (r fabricatorRepo) SetRepresentative(_ context.Context, id uuid.UUID, repID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.fabricators[id]; ok {
		f.MarketingRepresentativeID = repID
		r.s.fabricators[id] = f
	}
	return nil
}

func (r fabricatorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.fabricators, id)
	return nil
}

func (r fabricatorRepo) matching(filter repository.FabricatorFilter) []entity.Fabricator {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Fabricator{}
	for _, f := range r.s.fabricators {
		if !contains(filter.Search, f.Name, f.Institution, f.RegistrationNumber, f.PhoneNumber, f.District) {
			continue
		}
		if filter.Status != nil && f.Status != *filter.Status {
			continue
		}
		if !matchesAssigned(f.MarketingRepresentativeID, filter.Assigned) {
			continue
		}
		if filter.RepID != nil && !f.IsAssignedTo(*filter.RepID) {
			continue
		}
		out = append(out, r.load(f))
	}
	return out
}

func (r fabricatorRepo) List(_ context.Context, filter repository.FabricatorFilter, params *pagination.PaginationParams) ([]entity.Fabricator, int64, error) {
	all := r.matching(filter)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	items, total := page(all, params)
	return items, total, nil
}

func (r fabricatorRepo) ListAll(_ context.Context, filter repository.FabricatorFilter) ([]entity.Fabricator, error) {
	all := r.matching(filter)
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return all, nil
}

func (r fabricatorRepo) Count(_ context.Context, filter repository.FabricatorFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

// Reports

type reportRepo struct{ s *Store }

func (s *Store) Reports() repository.ReportRepository { return reportRepo{s} }

func (r reportRepo) Create(_ context.Context, rp *entity.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.reports {
		if other.InvoiceNumber == rp.InvoiceNumber {
			return duplicate("report", "invoice_number")
		}
	}
	rp.ID = newID(rp.ID)
	if rp.CreatedAt.IsZero() {
		rp.CreatedAt = r.s.tick()
	}
	stored := *rp
	stored.MarketingRep, stored.Fabricator, stored.Distributor = nil, nil, nil
	r.s.reports[rp.ID] = stored
	return nil
}

// load fills relations; callers hold the lock
func (r reportRepo) load(rp entity.Report) entity.Report {
	if m, ok := r.s.reps[rp.MarketingRepID]; ok {
		rp.MarketingRep = &m
	}
	if f, ok := r.s.fabricators[rp.FabricatorID]; ok {
		rp.Fabricator = &f
	}
	if d, ok := r.s.distributors[rp.DistributorID]; ok {
		rp.Distributor = &d
	}
	return rp
}

func (r reportRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rp, ok := r.s.reports[id]; ok {
		rp = r.load(rp)
		return &rp, nil
	}
	return nil, nil
}

func (r reportRepo) GetByInvoiceNumber(_ context.Context, invoice string) (*entity.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rp := range r.s.reports {
		if rp.InvoiceNumber == invoice {
			return &rp, nil
		}
	}
	return nil, nil
}

func (r reportRepo) matching(filter repository.ReportFilter) []entity.Report {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := func(t time.Time) string { return t.Format("2006-01-02") }
	out := []entity.Report{}
	for _, rp := range r.s.reports {
		if filter.From != nil && day(rp.SalesDate) < day(*filter.From) {
			continue
		}
		if filter.To != nil && day(rp.SalesDate) > day(*filter.To) {
			continue
		}
		if filter.FabricatorID != nil && rp.FabricatorID != *filter.FabricatorID {
			continue
		}
		if filter.RepID != nil && rp.MarketingRepID != *filter.RepID {
			continue
		}
		out = append(out, r.load(rp))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.SalesDate.Equal(b.SalesDate) {
			return a.SalesDate.After(b.SalesDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	return out
}

func (r reportRepo) List(_ context.Context, filter repository.ReportFilter, params *pagination.PaginationParams) ([]entity.Report, int64, error) {
	items, total := page(r.matching(filter), params)
	return items, total, nil
}

func (r reportRepo) ListAll(_ context.Context, filter repository.ReportFilter) ([]entity.Report, error) {
	return r.matching(filter), nil
}

func (r reportRepo) Count(_ context.Context, filter repository.ReportFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r reportRepo) SumAmount(_ context.Context, filter repository.ReportFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rp := range r.matching(filter) {
		sum = sum.Add(rp.Amount)
	}
	return sum, nil
}

// Tasks

type taskRepo struct{ s *Store }

func (s *Store) Tasks() repository.TaskRepository { return taskRepo{s} }

func (r taskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = newID(t.ID)
	if t.Status == "" {
		t.Status = enum.TaskStatusPending
	}
	t.CreatedAt = r.s.tick()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	stored.MarketingRep = nil
	r.s.tasks[t.ID] = stored
	return nil
}

func (r taskRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r taskRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.TaskStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok {
		t.Status = status
		r.s.tasks[id] = t
	}
	return nil
}

func (r taskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tasks, id)
	return nil
}

func (r taskRepo) List(_ context.Context, filter repository.TaskFilter, params *pagination.PaginationParams) ([]entity.Task, int64, error) {
	r.s.mu.Lock()
	out := []entity.Task{}
	for _, t := range r.s.tasks {
		if filter.RepID != nil && t.MarketingRepID != *filter.RepID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	items, total := page(out, params)
	return items, total, nil
}

// Activities

type activityRepo struct{ s *Store }

func (s *Store) Activities() repository.ActivityRepository { return activityRepo{s} }

func (r activityRepo) Create(_ context.Context, a *entity.RecentActivity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID(a.ID)
	a.CreatedAt = r.s.tick()
	r.s.activities[a.ID] = *a
	return nil
}

func (r activityRepo) List(_ context.Context, repID uuid.UUID, params *pagination.PaginationParams) ([]entity.RecentActivity, int64, error) {
	r.s.mu.Lock()
	out := []entity.RecentActivity{}
	for _, a := range r.s.activities {
		if a.MarketingRepID == repID {
			out = append(out, a)
		}
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	items, total := page(out, params)
	return items, total, nil
}

// Analytics

type analyticsRepo struct{ s *Store }

func (s *Store) Analytics() repository.AnalyticsRepository { return analyticsRepo{s} }

func (r analyticsRepo) GetFabricatorCounts(_ context.Context) (repository.FabricatorCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c repository.FabricatorCounts
	for _, f := range r.s.fabricators {
		c.Total++
		switch f.Status {
		case enum.FabricatorStatusApproved:
			c.Approved++
		case enum.FabricatorStatusPending:
			c.Pending++
		case enum.FabricatorStatusRejected:
			c.Rejected++
		}
		if f.MarketingRepresentativeID != nil {
			c.Assigned++
		}
	}
	return c, nil
}

func (r analyticsRepo) GetSalesByDate(_ context.Context) ([]repository.DailySalesResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byDate := map[time.Time]decimal.Decimal{}
	for _, rp := range r.s.reports {
		byDate[rp.SalesDate] = byDate[rp.SalesDate].Add(rp.Amount)
	}
	out := make([]repository.DailySalesResult, 0, len(byDate))
	for d, total := range byDate {
		out = append(out, repository.DailySalesResult{SalesDate: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SalesDate.Before(out[j].SalesDate) })
	return out, nil
}

func (r analyticsRepo) GetTopFabricators(_ context.Context, limit int) ([]repository.TopFabricatorResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := map[uuid.UUID]decimal.Decimal{}
	for _, rp := range r.s.reports {
		totals[rp.FabricatorID] = totals[rp.FabricatorID].Add(rp.Amount)
	}
	out := make([]repository.TopFabricatorResult, 0, len(totals))
	for id, total := range totals {
		out = append(out, repository.TopFabricatorResult{FabricatorID: id, Name: r.s.fabricators[id].Name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Idempotency keys

type idempotencyRepo struct{ s *Store }

func (s *Store) Idempotency() repository.IdempotencyRepository { return idempotencyRepo{s} }

func (r idempotencyRepo) Find(_ context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if k, ok := r.s.idempotency[userID.String()+"/"+key]; ok {
		return &k, nil
	}
	return nil, nil
}

func (r idempotencyRepo) Save(_ context.Context, k *entity.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k.ID = newID(k.ID)
	k.CreatedAt = r.s.tick()
	r.s.idempotency[k.UserID.String()+"/"+k.Key] = *k
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for key, k := range r.s.idempotency {
		if k.ExpiresAt.Before(cutoff) {
			delete(r.s.idempotency, key)
			n++
		}
	}
	return n, nil
}

// RecordingNotifier keeps every notification it receives
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, msg notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

// Sent returns a copy of everything received so far
func (n *RecordingNotifier) Sent() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Notification(nil), n.sent...)
}

// Templates lists channel:template for every notification, in order
func (n *RecordingNotifier) Templates() []string {
	var out []string
	for _, msg := range n.Sent() {
		out = append(out, string(msg.Channel)+":"+msg.Template)
	}
	return out
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}
