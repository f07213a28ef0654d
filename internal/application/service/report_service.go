package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/export"
	"github.com/sangkips/xylem-api/pkg/logger"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const trailingMonths = 12

// maxSummaryMonths bounds the month columns of an explicit summary range
const maxSummaryMonths = 120

// ReportService lists, aggregates, exports and records sales reports
type ReportService struct {
	reportRepo      repository.ReportRepository
	fabricatorRepo  repository.FabricatorRepository
	distributorRepo repository.DistributorRepository
	activityRepo    repository.ActivityRepository
	userRepo        repository.UserRepository
	txManager       repository.TxManager
	notifier        notify.Notifier
	adminEmails     []string
	now             func() time.Time
	log             zerolog.Logger
}

// NewReportService creates a new report service. adminEmails are notified of
// new reports in addition to every administrator account.
func NewReportService(
	reportRepo repository.ReportRepository,
	fabricatorRepo repository.FabricatorRepository,
	distributorRepo repository.DistributorRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	txManager repository.TxManager,
	notifier notify.Notifier,
	adminEmails []string,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		fabricatorRepo:  fabricatorRepo,
		distributorRepo: distributorRepo,
		activityRepo:    activityRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		notifier:        notifier,
		adminEmails:     adminEmails,
		now:             time.Now,
		log:             logger.ForPackage("report"),
	}
}

// WithClock replaces the clock used for month buckets and export filenames
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// ReportQuery is the raw query string of a report request
type ReportQuery struct {
	View         string
	FromDate     string
	ToDate       string
	FabricatorID string
	RepID        string
}

// ParseReportQuery validates q. Dates must be YYYY-MM-DD and ordered.
func ParseReportQuery(q ReportQuery) (enum.ReportView, repository.ReportFilter, error) {
	var filter repository.ReportFilter

	view, ok := enum.ParseReportView(q.View)
	if !ok {
		return "", filter, apperror.NewBadRequestError("Invalid view parameter.")
	}
	from, err := ParseDate("from_date", q.FromDate)
	if err != nil {
		return "", filter, err
	}
	to, err := ParseDate("to_date", q.ToDate)
	if err != nil {
		return "", filter, err
	}
	if from != nil && to != nil && from.After(*to) {
		return "", filter, apperror.NewFieldError("from_date", "from_date must not be after to_date.")
	}
	fabricatorID, err := ParseOptionalID("fabricator_id", q.FabricatorID)
	if err != nil {
		return "", filter, err
	}
	repID, err := ParseOptionalID("rep_id", q.RepID)
	if err != nil {
		return "", filter, err
	}

	if view == enum.ReportViewSummary {
		if err := checkSummaryRange(from, to); err != nil {
			return "", filter, err
		}
	}

	filter = repository.ReportFilter{From: from, To: to, FabricatorID: fabricatorID, RepID: repID}
	return view, filter, nil
}

// reportBase holds the fields every report view shares
type reportBase struct {
	ID               uuid.UUID `json:"id"`
	InvoiceNumber    string    `json:"invoice_number"`
	Amount           string    `json:"amount"`
	SalesDate        string    `json:"sales_date"`
	Attachments      []string  `json:"attachments"`
	CreatedAt        time.Time `json:"created_at"`
	MarketingRepID   uuid.UUID `json:"marketing_rep_id"`
	MarketingRepName string    `json:"marketing_rep_name"`
	EmployeeID       string    `json:"employee_id"`
}

// ReportView is a report with every denormalized field
type ReportView struct {
	reportBase
	FabricatorID       uuid.UUID `json:"fabricator_id"`
	FabricatorName     string    `json:"fabricator_name"`
	RegistrationNumber string    `json:"registration_number"`
	DistributorID      uuid.UUID `json:"distributor_id"`
	DistributorName    string    `json:"distributor_name"`
	DistributorPhone   string    `json:"distributor_phone"`
}

// FabricatorReportView is a report without distributor fields
type FabricatorReportView struct {
	reportBase
	FabricatorID       uuid.UUID `json:"fabricator_id"`
	FabricatorName     string    `json:"fabricator_name"`
	RegistrationNumber string    `json:"registration_number"`
}

// DistributorReportView is a report without fabricator fields
type DistributorReportView struct {
	reportBase
	DistributorID    uuid.UUID `json:"distributor_id"`
	DistributorName  string    `json:"distributor_name"`
	DistributorPhone string    `json:"distributor_phone"`
}

// MonthAmount is one month bucket of a summary row
type MonthAmount struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// SummaryReportView is one fabricator's sales grouped by month
type SummaryReportView struct {
	FabricatorID       uuid.UUID     `json:"fabricator_id"`
	FabricatorName     string        `json:"fabricator_name"`
	RegistrationNumber string        `json:"registration_number"`
	DistributorName    string        `json:"distributor_name"`
	DistributorPhone   string        `json:"distributor_phone"`
	MarketingRepName   string        `json:"marketing_rep_name"`
	EmployeeID         string        `json:"employee_id"`
	Months             []MonthAmount `json:"months"`
	Total              string        `json:"total"`

	total decimal.Decimal
}

func newReportView(r *entity.Report) ReportView {
	v := ReportView{
		reportBase: reportBase{
			ID:             r.ID,
			InvoiceNumber:  r.InvoiceNumber,
			Amount:         r.Amount.StringFixed(2),
			SalesDate:      r.SalesDate.Format(dateLayout),
			Attachments:    r.AttachmentURLs(),
			CreatedAt:      r.CreatedAt,
			MarketingRepID: r.MarketingRepID,
		},
		FabricatorID:  r.FabricatorID,
		DistributorID: r.DistributorID,
	}
	if r.MarketingRep != nil {
		v.MarketingRepName = r.MarketingRep.Name
		v.EmployeeID = r.MarketingRep.EmployeeID
	}
	if r.Fabricator != nil {
		v.FabricatorName = r.Fabricator.Name
		v.RegistrationNumber = r.Fabricator.RegistrationNumber
	}
	if r.Distributor != nil {
		v.DistributorName = r.Distributor.Name
		v.DistributorPhone = r.Distributor.PhoneNumber
	}
	return v
}

func (v ReportView) fabricatorView() FabricatorReportView {
	return FabricatorReportView{
		reportBase:         v.reportBase,
		FabricatorID:       v.FabricatorID,
		FabricatorName:     v.FabricatorName,
		RegistrationNumber: v.RegistrationNumber,
	}
}

func (v ReportView) distributorView() DistributorReportView {
	return DistributorReportView{
		reportBase:       v.reportBase,
		DistributorID:    v.DistributorID,
		DistributorName:  v.DistributorName,
		DistributorPhone: v.DistributorPhone,
	}
}

// ListReports returns one page in the shape the view asks for
func (s *ReportService) ListReports(ctx context.Context, view enum.ReportView, filter repository.ReportFilter, params *pagination.PaginationParams) (pagination.Envelope, error) {
	if view == enum.ReportViewSummary {
		rows, err := s.summarize(ctx, filter)
		if err != nil {
			return nil, err
		}
		return pagination.Paginate(rows, params)
	}

	reports, total, err := s.reportRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}

	switch view {
	case enum.ReportViewFabricators:
		out := make([]FabricatorReportView, len(reports))
		for i := range reports {
			out[i] = newReportView(&reports[i]).fabricatorView()
		}
		return pagination.NewPage(out, params, total)
	case enum.ReportViewDistributors:
		out := make([]DistributorReportView, len(reports))
		for i := range reports {
			out[i] = newReportView(&reports[i]).distributorView()
		}
		return pagination.NewPage(out, params, total)
	default:
		out := make([]ReportView, len(reports))
		for i := range reports {
			out[i] = newReportView(&reports[i])
		}
		return pagination.NewPage(out, params, total)
	}
}

// ListHistory pages through one representative's own reports
func (s *ReportService) ListHistory(ctx context.Context, repID uuid.UUID, params *pagination.PaginationParams) (*pagination.Page[ReportView], error) {
	reports, total, err := s.reportRepo.List(ctx, repository.ReportFilter{RepID: &repID}, params)
	if err != nil {
		return nil, err
	}
	out := make([]ReportView, len(reports))
	for i := range reports {
		out[i] = newReportView(&reports[i])
	}
	return pagination.NewPage(out, params, total)
}

// Summarize groups reports by fabricator with monthly subtotals. With both
// dates every calendar month between them is a bucket, otherwise the
// trailing twelve months ending at the current month.
func (s *ReportService) Summarize(ctx context.Context, from, to *time.Time) ([]SummaryReportView, error) {
	return s.summarize(ctx, repository.ReportFilter{From: from, To: to})
}

// SummaryLabels returns the month column labels Summarize would use
func (s *ReportService) SummaryLabels(from, to *time.Time) []string {
	buckets := monthBuckets(from, to, s.now())
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.label()
	}
	return labels
}

func (s *ReportService) summarize(ctx context.Context, filter repository.ReportFilter) ([]SummaryReportView, error) {
	if err := checkSummaryRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	buckets := monthBuckets(filter.From, filter.To, s.now())
	start := buckets[0].first()
	end := buckets[len(buckets)-1].last()

	window := filter
	if window.From == nil || window.From.Before(start) {
		window.From = &start
	}
	if window.To == nil || window.To.After(end) {
		window.To = &end
	}
	reports, err := s.reportRepo.ListAll(ctx, window)
	if err != nil {
		return nil, err
	}

	type group struct {
		snapshot *entity.Report
		months   map[string]decimal.Decimal
		total    decimal.Decimal
	}
	groups := make(map[uuid.UUID]*group)
	for i := range reports {
		r := &reports[i]
		g, ok := groups[r.FabricatorID]
		if !ok {
			g = &group{snapshot: r, months: make(map[string]decimal.Decimal)}
			groups[r.FabricatorID] = g
		} else if earlier(r, g.snapshot) {
			g.snapshot = r
		}
		key := r.SalesDate.Format("2006-01")
		g.months[key] = g.months[key].Add(r.Amount)
		g.total = g.total.Add(r.Amount)
	}

	rows := make([]SummaryReportView, 0, len(groups))
	for fabricatorID, g := range groups {
		row := SummaryReportView{
			FabricatorID: fabricatorID,
			Months:       make([]MonthAmount, len(buckets)),
			Total:        g.total.StringFixed(2),
			total:        g.total,
		}
		if f := g.snapshot.Fabricator; f != nil {
			row.FabricatorName = f.Name
			row.RegistrationNumber = f.RegistrationNumber
		}
		if d := g.snapshot.Distributor; d != nil {
			row.DistributorName = d.Name
			row.DistributorPhone = d.PhoneNumber
		}
		if m := g.snapshot.MarketingRep; m != nil {
			row.MarketingRepName = m.Name
			row.EmployeeID = m.EmployeeID
		}
		for i, b := range buckets {
			row.Months[i] = MonthAmount{Label: b.label(), Amount: g.months[b.key()].StringFixed(2)}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].total.Cmp(rows[j].total); c != 0 {
			return c > 0
		}
		if rows[i].FabricatorName != rows[j].FabricatorName {
			return rows[i].FabricatorName < rows[j].FabricatorName
		}
		return rows[i].FabricatorID.String() < rows[j].FabricatorID.String()
	})
	return rows, nil
}

// earlier orders reports by insertion time, then by id
func earlier(a, b *entity.Report) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

type month struct {
	year  int
	month time.Month
}

func (m month) first() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

func (m month) last() time.Time {
	return m.first().AddDate(0, 1, -1)
}

func (m month) key() string {
	return m.first().Format("2006-01")
}

func (m month) label() string {
	return fmt.Sprintf("%s'%d", m.month.String(), m.year)
}

func (m month) next() month {
	n := m.first().AddDate(0, 1, 0)
	return month{year: n.Year(), month: n.Month()}
}

func monthOf(t time.Time) month {
	return month{year: t.Year(), month: t.Month()}
}

// monthsSpanned counts the calendar months from..to inclusive
func monthsSpanned(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}

func checkSummaryRange(from, to *time.Time) error {
	if from == nil || to == nil {
		return nil
	}
	if monthsSpanned(*from, *to) > maxSummaryMonths {
		return apperror.NewFieldError("to_date", fmt.Sprintf("A summary may span at most %d months.", maxSummaryMonths))
	}
	return nil
}

func monthBuckets(from, to *time.Time, now time.Time) []month {
	if from != nil && to != nil {
		start, end := monthOf(*from), monthOf(*to)
		var out []month
		for m := start; !m.first().After(end.first()); m = m.next() {
			out = append(out, m)
		}
		return out
	}

	start := monthOf(monthOf(now).first().AddDate(0, -(trailingMonths - 1), 0))
	out := make([]month, 0, trailingMonths)
	for m, i := start, 0; i < trailingMonths; m, i = m.next(), i+1 {
		out = append(out, m)
	}
	return out
}

// ExportResult is a rendered report file
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

var (
	fabricatorColumns  = []string{"Sales Date", "Invoice Number", "Fabricator", "Registration Number", "Marketing Representative", "Employee ID", "Amount"}
	distributorColumns = []string{"Sales Date", "Invoice Number", "Distributor", "Distributor Phone", "Marketing Representative", "Employee ID", "Amount"}
	allColumns         = []string{"Sales Date", "Invoice Number", "Fabricator", "Registration Number", "Distributor", "Marketing Representative", "Employee ID", "Amount"}
)

// Export renders every report matching filter as a CSV or XLSX file laid out
// for view.
func (s *ReportService) Export(ctx context.Context, view enum.ReportView, filter repository.ReportFilter, format string) (*ExportResult, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	table, err := s.exportTable(ctx, view, filter)
	if err != nil {
		return nil, err
	}

	data, err := export.Render(f, table)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("report-%s.%s", s.now().Format(dateLayout), f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

func (s *ReportService) exportTable(ctx context.Context, view enum.ReportView, filter repository.ReportFilter) (export.Table, error) {
	if view == enum.ReportViewSummary {
		rows, err := s.summarize(ctx, filter)
		if err != nil {
			return export.Table{}, err
		}
		header := []string{"Fabricator", "Registration Number", "Distributor", "Marketing Representative", "Employee ID"}
		header = append(header, s.SummaryLabels(filter.From, filter.To)...)
		header = append(header, "Total")

		table := export.Table{Header: header, Rows: make([][]string, 0, len(rows))}
		for _, r := range rows {
			line := []string{r.FabricatorName, r.RegistrationNumber, r.DistributorName, r.MarketingRepName, r.EmployeeID}
			for _, m := range r.Months {
				line = append(line, m.Amount)
			}
			table.Rows = append(table.Rows, append(line, r.Total))
		}
		return table, nil
	}

	reports, err := s.reportRepo.ListAll(ctx, filter)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{Rows: make([][]string, 0, len(reports))}
	switch view {
	case enum.ReportViewFabricators:
		table.Header = fabricatorColumns
	case enum.ReportViewDistributors:
		table.Header = distributorColumns
	default:
		table.Header = allColumns
	}
	for i := range reports {
		v := newReportView(&reports[i])
		var line []string
		switch view {
		case enum.ReportViewFabricators:
			line = []string{v.SalesDate, v.InvoiceNumber, v.FabricatorName, v.RegistrationNumber, v.MarketingRepName, v.EmployeeID, v.Amount}
		case enum.ReportViewDistributors:
			line = []string{v.SalesDate, v.InvoiceNumber, v.DistributorName, v.DistributorPhone, v.MarketingRepName, v.EmployeeID, v.Amount}
		default:
			line = []string{v.SalesDate, v.InvoiceNumber, v.FabricatorName, v.RegistrationNumber, v.DistributorName, v.MarketingRepName, v.EmployeeID, v.Amount}
		}
		table.Rows = append(table.Rows, line)
	}
	return table, nil
}

// SubmitReportInput represents a report filed by a representative
type SubmitReportInput struct {
	FabricatorID  string
	DistributorID string
	Amount        string
	InvoiceNumber string
	SalesDate     string
	Attachments   []string
}

// SubmitReport records a report and its activity entry in one transaction
// and notifies administrators after commit. The distributor must be
// assigned to rep.
func (s *ReportService) SubmitReport(ctx context.Context, rep *entity.MarketingRepresentative, input *SubmitReportInput) (*ReportView, error) {
	var v validator
	var fabricatorID, distributorID uuid.UUID
	v.uuid("fabricator", input.FabricatorID, &fabricatorID)
	v.uuid("distributor", input.DistributorID, &distributorID)
	v.required("invoice_number", input.InvoiceNumber)
	v.required("sales_date", input.SalesDate)

	var amount decimal.Decimal
	if strings.TrimSpace(input.Amount) == "" {
		v.add("amount", msgRequired)
	} else if a, err := decimal.NewFromString(strings.TrimSpace(input.Amount)); err != nil {
		v.add("amount", "A valid number is required.")
	} else if !a.IsPositive() {
		v.add("amount", "Ensure this value is greater than 0.")
	} else if a.Exponent() < -2 {
		v.add("amount", "Ensure that there are no more than 2 decimal places.")
	} else if a.GreaterThanOrEqual(decimal.New(1, 10)) {
		v.add("amount", "Ensure that there are no more than 12 digits in total.")
	} else {
		amount = a
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	salesDate, err := ParseDate("sales_date", input.SalesDate)
	if err != nil {
		return nil, err
	}
	invoice := strings.TrimSpace(input.InvoiceNumber)
	existing, err := s.reportRepo.GetByInvoiceNumber(ctx, invoice)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewFieldError("invoice_number", "report with this invoice number already exists.")
	}

	fabricator, err := s.fabricatorRepo.GetByID(ctx, fabricatorID)
	if err != nil {
		return nil, err
	}
	if fabricator == nil {
		return nil, apperror.NewNotFoundError("Fabricator")
	}
	distributor, err := s.distributorRepo.GetByID(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, apperror.NewNotFoundError("Distributor")
	}
	if distributor.MarketingRepresentativeID == nil || *distributor.MarketingRepresentativeID != rep.ID {
		return nil, apperror.NewFieldError("distributor", "Distributor is not assigned to you.")
	}

	report := &entity.Report{
		MarketingRepID: rep.ID,
		FabricatorID:   fabricator.ID,
		DistributorID:  distributor.ID,
		Amount:         amount,
		InvoiceNumber:  invoice,
		SalesDate:      *salesDate,
	}
	if err := report.SetAttachmentURLs(input.Attachments); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.reportRepo.Create(ctx, report); err != nil {
			return err
		}
		return s.activityRepo.Create(ctx, &entity.RecentActivity{
			MarketingRepID: rep.ID,
			Description:    fmt.Sprintf("Report submitted for fabricator %s", fabricator.Name),
		})
	})
	if err != nil {
		return nil, err
	}

	report.MarketingRep = rep
	report.Fabricator = fabricator
	report.Distributor = distributor
	view := newReportView(report)
	s.notifyAdmins(ctx, view)
	return &view, nil
}

func (s *ReportService) notifyAdmins(ctx context.Context, v ReportView) {
	admins, err := s.userRepo.ListAdminEmails(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load admin recipients")
	}
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{s.adminEmails, admins} {
		for _, e := range list {
			key := strings.ToLower(strings.TrimSpace(e))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(e))
		}
	}
	if len(out) == 0 {
		return
	}

	s.notifier.Notify(ctx, notify.Notification{
		Channel:    notify.ChannelEmail,
		Template:   notify.TemplateReportSubmitted,
		Recipients: out,
		Payload: map[string]string{
			"RepName":         v.MarketingRepName,
			"EmployeeID":      v.EmployeeID,
			"FabricatorName":  v.FabricatorName,
			"DistributorName": v.DistributorName,
			"InvoiceNumber":   v.InvoiceNumber,
			"Amount":          v.Amount,
			"SalesDate":       v.SalesDate,
		},
	})
}
