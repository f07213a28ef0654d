package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/testutil"
)

// env wires every service to one in-memory store
type env struct {
	store    *testutil.Store
	notifier *testutil.RecordingNotifier

	workflow    *WorkflowService
	fabricators *FabricatorService
	reports     *ReportService
	reps        *MarketingRepService
	tasks       *TaskService
	dashboard   *DashboardService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := testutil.NewStore()
	n := &testutil.RecordingNotifier{}
	tx := testutil.TxManager{}
	return &env{
		store:       s,
		notifier:    n,
		workflow:    NewWorkflowService(s.Fabricators(), s.Distributors(), s.Reps(), n),
		fabricators: NewFabricatorService(s.Fabricators(), s.Distributors(), s.Reps(), tx, nil, n),
		reports:     NewReportService(s.Reports(), s.Fabricators(), s.Distributors(), s.Activities(), s.Users(), tx, n, []string{"ops@xylem.io"}),
		reps:        NewMarketingRepService(s.Reps(), s.Users(), tx, nil, n),
		tasks:       NewTaskService(s.Tasks(), s.Reps(), s.Activities(), n),
		dashboard:   NewDashboardService(s.Analytics(), s.Fabricators(), s.Distributors(), s.Reps(), s.Reports(), s.Activities()),
	}
}

func (e *env) rep(t *testing.T, name string) *entity.MarketingRepresentative {
	t.Helper()
	r := &entity.MarketingRepresentative{
		UserID:      uuid.New(),
		Name:        name,
		Email:       name + "@xylem.io",
		PhoneNumber: "0171" + name,
		EmployeeID:  "EMP-" + name,
	}
	require.NoError(t, e.store.Reps().Create(context.Background(), r))
	return r
}

func (e *env) distributor(t *testing.T, name string, rep *entity.MarketingRepresentative) *entity.Distributor {
	t.Helper()
	d := &entity.Distributor{Name: name, Email: name + "@dist.io", PhoneNumber: "0181" + name}
	if rep != nil {
		d.MarketingRepresentativeID = &rep.ID
	}
	require.NoError(t, e.store.Distributors().Create(context.Background(), d))
	return d
}

func (e *env) fabricator(t *testing.T, name string, d *entity.Distributor, status enum.FabricatorStatus) *entity.Fabricator {
	t.Helper()
	f := &entity.Fabricator{
		Name:               name,
		Institution:        name + " Works",
		RegistrationNumber: "REG-" + name,
		PhoneNumber:        "0191" + name,
		District:           "Dhaka",
		SubDistrict:        "Savar",
		DistributorID:      d.ID,
		Status:             status,
	}
	require.NoError(t, e.store.Fabricators().Create(context.Background(), f))
	return f
}

func (e *env) report(t *testing.T, rep *entity.MarketingRepresentative, f *entity.Fabricator, d *entity.Distributor, amount, salesDate string) *entity.Report {
	t.Helper()
	day, err := time.Parse(dateLayout, salesDate)
	require.NoError(t, err)
	r := &entity.Report{
		MarketingRepID: rep.ID,
		FabricatorID:   f.ID,
		DistributorID:  d.ID,
		Amount:         decimal.RequireFromString(amount),
		InvoiceNumber:  uuid.NewString(),
		SalesDate:      day,
	}
	require.NoError(t, e.store.Reports().Create(context.Background(), r))
	return r
}

func ptr[T any](v T) *T { return &v }

func date(s string) *time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}
