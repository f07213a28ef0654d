package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

const (
	topFabricatorsLimit = 10
	recentActivityLimit = 5
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo   repository.AnalyticsRepository
	fabricatorRepo  repository.FabricatorRepository
	distributorRepo repository.DistributorRepository
	repRepo         repository.MarketingRepRepository
	reportRepo      repository.ReportRepository
	activityRepo    repository.ActivityRepository
	now             func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	fabricatorRepo repository.FabricatorRepository,
	distributorRepo repository.DistributorRepository,
	repRepo repository.MarketingRepRepository,
	reportRepo repository.ReportRepository,
	activityRepo repository.ActivityRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo:   analyticsRepo,
		fabricatorRepo:  fabricatorRepo,
		distributorRepo: distributorRepo,
		repRepo:         repRepo,
		reportRepo:      reportRepo,
		activityRepo:    activityRepo,
		now:             time.Now,
	}
}

// AdminDashboard represents the administrator's dashboard
type AdminDashboard struct {
	TotalFabricators         int64                `json:"total_fabricators"`
	ApprovedFabricators      int64                `json:"approved_fabricators"`
	PendingFabricators       int64                `json:"pending_fabricators"`
	RejectedFabricators      int64                `json:"rejected_fabricators"`
	AssignedFabricators      int64                `json:"assigned_fabricators"`
	MarketingRepresentatives int64                `json:"marketing_representatives"`
	Distributors             int64                `json:"distributors"`
	SalesByDate              []DailySalesPoint    `json:"sales_by_date"`
	TopFabricators           []TopFabricatorPoint `json:"top_fabricators"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	SalesDate string `json:"sales_date"`
	Total     string `json:"total"`
}

// TopFabricatorPoint represents a fabricator's sales total
type TopFabricatorPoint struct {
	FabricatorID uuid.UUID `json:"fabricator_id"`
	Name         string    `json:"name"`
	Total        string    `json:"total"`
}

// DashboardCounts returns fabricator, representative and distributor counts
// plus the sales series shown to administrators.
func (s *DashboardService) DashboardCounts(ctx context.Context) (*AdminDashboard, error) {
	counts, err := s.analyticsRepo.GetFabricatorCounts(ctx)
	if err != nil {
		return nil, err
	}
	reps, err := s.repRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	distributors, err := s.distributorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := s.analyticsRepo.GetSalesByDate(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.GetTopFabricators(ctx, topFabricatorsLimit)
	if err != nil {
		return nil, err
	}

	out := &AdminDashboard{
		TotalFabricators:         counts.Total,
		ApprovedFabricators:      counts.Approved,
		PendingFabricators:       counts.Pending,
		RejectedFabricators:      counts.Rejected,
		AssignedFabricators:      counts.Assigned,
		MarketingRepresentatives: reps,
		Distributors:             distributors,
		SalesByDate:              make([]DailySalesPoint, len(daily)),
		TopFabricators:           make([]TopFabricatorPoint, len(top)),
	}
	for i, d := range daily {
		out.SalesByDate[i] = DailySalesPoint{SalesDate: d.SalesDate.Format(dateLayout), Total: d.Total.StringFixed(2)}
	}
	for i, t := range top {
		out.TopFabricators[i] = TopFabricatorPoint{FabricatorID: t.FabricatorID, Name: t.Name, Total: t.Total.StringFixed(2)}
	}
	return out, nil
}

// RepDashboard represents a marketing representative's dashboard
type RepDashboard struct {
	AssignedFabricators int64                   `json:"assigned_fabricators"`
	MonthlySales        string                  `json:"monthly_sales"`
	TotalReports        int64                   `json:"total_reports"`
	RecentActivities    []entity.RecentActivity `json:"recent_activities"`
}

// RepDashboard summarizes one representative's work. Monthly sales cover
// reports whose sales date falls in the current month.
func (s *DashboardService) RepDashboard(ctx context.Context, rep *entity.MarketingRepresentative) (*RepDashboard, error) {
	assigned, err := s.fabricatorRepo.Count(ctx, repository.FabricatorFilter{RepID: &rep.ID})
	if err != nil {
		return nil, err
	}

	m := monthOf(s.now())
	start, end := m.first(), m.last()
	monthly, err := s.reportRepo.SumAmount(ctx, repository.ReportFilter{RepID: &rep.ID, From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	total, err := s.reportRepo.Count(ctx, repository.ReportFilter{RepID: &rep.ID})
	if err != nil {
		return nil, err
	}
	params := &pagination.PaginationParams{Page: 1, PageSize: recentActivityLimit}
	activities, _, err := s.activityRepo.List(ctx, rep.ID, params)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []entity.RecentActivity{}
	}

	return &RepDashboard{
		AssignedFabricators: assigned,
		MonthlySales:        monthly.StringFixed(2),
		TotalReports:        total,
		RecentActivities:    activities,
	}, nil
}
