package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/config"
	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/internal/presentation/http/handler"
	"github.com/sangkips/xylem-api/internal/testutil"
	"github.com/sangkips/xylem-api/pkg/districts"
	"github.com/sangkips/xylem-api/pkg/metrics"
	"github.com/sangkips/xylem-api/pkg/storage"
	"github.com/sangkips/xylem-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	return &storage.UploadResult{URL: "https://cdn.test/" + in.Filename, Provider: "stub"}, nil
}

type apiEnv struct {
	router   *gin.Engine
	store    *testutil.Store
	notifier *testutil.RecordingNotifier
	jwt      *utils.JWTManager
	admin    string
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	s := testutil.NewStore()
	n := &testutil.RecordingNotifier{}
	tx := testutil.TxManager{}
	catalog, err := districts.Load("")
	require.NoError(t, err)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 2*time.Hour)

	authService := service.NewAuthService(s.Users(), jwtManager)
	workflowService := service.NewWorkflowService(s.Fabricators(), s.Distributors(), s.Reps(), n)
	fabricatorService := service.NewFabricatorService(s.Fabricators(), s.Distributors(), s.Reps(), tx, catalog, n)
	repService := service.NewMarketingRepService(s.Reps(), s.Users(), tx, catalog, n)
	distributorService := service.NewDistributorService(s.Distributors(), s.Reps(), catalog)
	reportService := service.NewReportService(s.Reports(), s.Fabricators(), s.Distributors(), s.Activities(), s.Users(), tx, n, []string{"ops@xylem.io"}).
		WithClock(func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) })
	taskService := service.NewTaskService(s.Tasks(), s.Reps(), s.Activities(), n)
	dashboardService := service.NewDashboardService(s.Analytics(), s.Fabricators(), s.Distributors(), s.Reps(), s.Reports(), s.Activities())
	uploadService := service.NewUploadService(stubUploader{}, storage.DefaultPolicy())

	cfg := &config.Config{App: config.AppConfig{Name: "xylem-api"}}
	router := Setup(&Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Fabricator:   handler.NewFabricatorHandler(fabricatorService, workflowService),
		MarketingRep: handler.NewMarketingRepHandler(repService, workflowService),
		Distributor:  handler.NewDistributorHandler(distributorService),
		Report:       handler.NewReportHandler(reportService, fabricatorService, distributorService),
		Task:         handler.NewTaskHandler(taskService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Districts:    handler.NewDistrictsHandler(catalog),
		Upload:       handler.NewUploadHandler(uploadService),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: s.Idempotency(),
		RepResolver:     repService,
		Metrics:         metrics.New(),
	})

	e := &apiEnv{router: router, store: s, notifier: n, jwt: jwtManager}
	e.admin = e.token(t, utils.Identity{UserID: uuid.New(), Username: "admin", IsAdmin: true})
	return e
}

func (e *apiEnv) token(t *testing.T, id utils.Identity) string {
	t.Helper()
	tok, err := e.jwt.GenerateAccessToken(id)
	require.NoError(t, err)
	return tok
}

func (e *apiEnv) do(method, target, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seed creates a representative with a login token, an assigned distributor
// and an approved fabricator.
func (e *apiEnv) seed(t *testing.T) (string, *entity.MarketingRepresentative, *entity.Distributor, *entity.Fabricator) {
	t.Helper()
	ctx := context.Background()
	rep := &entity.MarketingRepresentative{
		UserID:      uuid.New(),
		Name:        "Rahim",
		Email:       "rahim@xylem.io",
		PhoneNumber: "01710000000",
		District:    "Dhaka",
		SubDistrict: "Savar",
		EmployeeID:  "EMP-RAHIM",
	}
	require.NoError(t, e.store.Reps().Create(ctx, rep))
	d := &entity.Distributor{Name: "Delta", Email: "delta@dist.io", PhoneNumber: "01810000000", MarketingRepresentativeID: &rep.ID}
	require.NoError(t, e.store.Distributors().Create(ctx, d))
	f := &entity.Fabricator{
		Name:               "Acme",
		Institution:        "Acme Works",
		RegistrationNumber: "FAB-ACME",
		PhoneNumber:        "01910000000",
		District:           "Dhaka",
		SubDistrict:        "Savar",
		DistributorID:      d.ID,
		Status:             enum.FabricatorStatusApproved,
	}
	require.NoError(t, e.store.Fabricators().Create(ctx, f))

	tok := e.token(t, utils.Identity{UserID: rep.UserID, Username: rep.Email, IsMarketingRep: true})
	return tok, rep, d, f
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealthAndMetrics(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = e.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "xylem_http_requests_total")
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	e := newAPIEnv(t)
	repToken, _, _, _ := e.seed(t)

	w := e.do(http.MethodGet, "/api/v1/administrator/fabricator/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodGet, "/api/v1/administrator/fabricator/", repToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/dashboard/", e.admin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRepRoutes_FlagWithoutProfileIsForbidden(t *testing.T) {
	e := newAPIEnv(t)
	tok := e.token(t, utils.Identity{UserID: uuid.New(), Username: "ghost", IsMarketingRep: true})

	w := e.do(http.MethodGet, "/api/v1/marketing-rep/dashboard/", tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User is not a Marketing Representative.", decode(t, w)["message"])
}

func TestFabricator_RegisterThenList(t *testing.T) {
	e := newAPIEnv(t)
	_, _, d, _ := e.seed(t)

	w := e.do(http.MethodPost, "/api/v1/fabricator/", "", map[string]any{
		"name":                  "Beta",
		"institution":           "Beta Steel",
		"phone_number":          "01999999999",
		"district":              "Dhaka",
		"sub_district":          "Savar",
		"distributor":           d.ID.String(),
		"trade_license_img_url": "https://cdn.test/tl.png",
		"visiting_card_img_url": "https://cdn.test/vc.png",
		"profile_img_url":       "https://cdn.test/p.png",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.True(t, strings.HasPrefix(data["registration_number"].(string), "FAB-"))
	assert.Equal(t, []string{"sms:fabricator_registered"}, e.notifier.Templates())

	w = e.do(http.MethodGet, "/api/v1/administrator/fabricator/?view=pending", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 1, page["count"])
	assert.Nil(t, page["next"])
	assert.Len(t, page["results"], 1)
}

func TestFabricator_RegisterValidation(t *testing.T) {
	e := newAPIEnv(t)
	_, _, d, _ := e.seed(t)

	w := e.do(http.MethodPost, "/api/v1/fabricator/", "", map[string]any{
		"name":         "Beta",
		"district":     "Dhaka",
		"sub_district": "Gulshan",
		"distributor":  d.ID.String(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "(institution) This field is required.")
	assert.Contains(t, body["message"], "(sub_district)")
}

func TestFabricator_PaginationLinks(t *testing.T) {
	e := newAPIEnv(t)
	_, _, d, _ := e.seed(t)
	for _, name := range []string{"B", "C"} {
		require.NoError(t, e.store.Fabricators().Create(context.Background(), &entity.Fabricator{
			Name: name, PhoneNumber: "phone-" + name, RegistrationNumber: "FAB-" + name, DistributorID: d.ID,
		}))
	}

	w := e.do(http.MethodGet, "/api/v1/administrator/fabricator/?view=all&page_size=2", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 3, page["count"])
	assert.EqualValues(t, 2, page["num_pages"])
	assert.Equal(t, "http://example.com/api/v1/administrator/fabricator/?p=2&page_size=2&view=all", page["next"])
	assert.Nil(t, page["previous"])

	w = e.do(http.MethodGet, "/api/v1/administrator/fabricator/?view=all&page_size=2&p=2", e.admin, nil, "X-Forwarded-Proto", "https")
	require.Equal(t, http.StatusOK, w.Code)
	page = decode(t, w)
	assert.Nil(t, page["next"])
	assert.Equal(t, "https://example.com/api/v1/administrator/fabricator/?page_size=2&view=all", page["previous"])

	w = e.do(http.MethodGet, "/api/v1/administrator/fabricator/?p=9", e.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid page.", decode(t, w)["message"])
}

func TestFabricator_PatchActions(t *testing.T) {
	e := newAPIEnv(t)
	_, rep, d, _ := e.seed(t)
	pending := &entity.Fabricator{Name: "P", PhoneNumber: "01900000001", RegistrationNumber: "FAB-P", DistributorID: d.ID}
	require.NoError(t, e.store.Fabricators().Create(context.Background(), pending))
	url := "/api/v1/administrator/fabricator/"

	w := e.do(http.MethodPatch, url+"?action=archive", e.admin, map[string]any{"id": pending.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action parameter.", decode(t, w)["message"])

	w = e.do(http.MethodPatch, url+"?action=assign", e.admin, map[string]any{"id": pending.ID, "marketing_representative": rep.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPatch, url+"?action=status", e.admin, map[string]any{"id": pending.ID, "status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	e.notifier.Reset()
	w = e.do(http.MethodPatch, url+"?action=assign", e.admin, map[string]any{"id": pending.ID, "marketing_representative": rep.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []string{"email:rep_assigned", "sms:rep_assigned", "sms:fabricator_assigned"}, e.notifier.Templates())

	w = e.do(http.MethodDelete, url+"?id="+pending.ID.String(), e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do(http.MethodDelete, url+"?action=delete&id="+pending.ID.String(), e.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = e.do(http.MethodGet, url+"?id="+pending.ID.String(), e.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarketingRep_BulkAssignAndUnassign(t *testing.T) {
	e := newAPIEnv(t)
	_, rep, d, f := e.seed(t)
	url := "/api/v1/administrator/marketing-representative/"

	w := e.do(http.MethodPost, url+"?action=assign-fabricators", e.admin, map[string]any{
		"id":          rep.ID,
		"fabricators": []string{f.ID.String(), uuid.NewString()},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	stored, err := e.store.Fabricators().GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAssignedTo(rep.ID))

	w = e.do(http.MethodDelete, url+"?action=unassign-distributor&id="+rep.ID.String()+"&distributor_id="+d.ID.String(), e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = e.do(http.MethodDelete, url+"?action=unassign-distributor&id="+rep.ID.String()+"&distributor_id="+d.ID.String(), e.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPut, url+"?action=create", e.admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarketingRep_Create(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodPost, "/api/v1/administrator/marketing-representative/?action=create", e.admin, map[string]any{
		"name":         "Karim",
		"email":        "karim@xylem.io",
		"phone_number": "01711111111",
		"district":     "Gazipur",
		"sub_district": "Kapasia",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["employee_id"].(string), "EMP-"))
	assert.Equal(t, []string{"email:rep_credentials"}, e.notifier.Templates())
}

func TestReport_SubmitIsIdempotent(t *testing.T) {
	e := newAPIEnv(t)
	tok, rep, d, f := e.seed(t)
	body := map[string]any{
		"fabricator":     f.ID,
		"distributor":    d.ID,
		"amount":         123.45,
		"invoice_number": "INV-1",
		"sales_date":     "2024-03-01",
	}

	first := e.do(http.MethodPost, "/api/v1/marketing-rep/report/", tok, body, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Equal(t, "123.45", decode(t, first)["data"].(map[string]any)["amount"])

	second := e.do(http.MethodPost, "/api/v1/marketing-rep/report/", tok, body, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	body["invoice_number"] = "INV-2"
	w := e.do(http.MethodPost, "/api/v1/marketing-rep/report/", tok, body, "Idempotency-Key", "k-1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	reports, err := e.store.Reports().ListAll(context.Background(), repository.ReportFilter{RepID: &rep.ID})
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/report/?view=history", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/activity/", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestReport_RepLookups(t *testing.T) {
	e := newAPIEnv(t)
	tok, rep, _, f := e.seed(t)
	require.NoError(t, e.store.Fabricators().SetRepresentative(context.Background(), f.ID, &rep.ID))

	w := e.do(http.MethodGet, "/api/v1/marketing-rep/report/?view=fabricators", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/report/?view=distributors", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/report/?view=everything", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport_AdminListAndExport(t *testing.T) {
	e := newAPIEnv(t)
	_, rep, d, f := e.seed(t)
	require.NoError(t, e.store.Reports().Create(context.Background(), &entity.Report{
		MarketingRepID: rep.ID,
		FabricatorID:   f.ID,
		DistributorID:  d.ID,
		Amount:         decimal.RequireFromString("99.5"),
		InvoiceNumber:  "INV-9",
		SalesDate:      time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}))

	w := e.do(http.MethodGet, "/api/v1/administrator/report/?view=fabricators", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	row := decode(t, w)["results"].([]any)[0].(map[string]any)
	assert.Equal(t, "Acme", row["fabricator_name"])
	assert.NotContains(t, row, "distributor_name")

	w = e.do(http.MethodGet, "/api/v1/administrator/report/?view=all&format=csv", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="report-2024-03-20.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "INV-9")
	assert.Contains(t, w.Body.String(), "99.50")

	w = e.do(http.MethodGet, "/api/v1/administrator/report/?from_date=2024-13-01", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/api/v1/administrator/report/?format=pdf", e.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, view := range []string{"summary", "all"} {
		w = e.do(http.MethodGet, "/api/v1/administrator/report/?view="+view+"&p=1000000000000000000", e.admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, view)
		assert.Equal(t, "Invalid page.", decode(t, w)["message"], view)
	}
}

func TestTasks_AssignAndComplete(t *testing.T) {
	e := newAPIEnv(t)
	tok, rep, _, _ := e.seed(t)

	w := e.do(http.MethodPost, "/api/v1/administrator/task/", e.admin, map[string]any{
		"marketing_rep": rep.ID,
		"description":   "Visit Acme",
		"due_date":      "2024-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := decode(t, w)["data"].(map[string]any)["id"].(string)

	w = e.do(http.MethodPatch, "/api/v1/marketing-rep/task/?id="+taskID, tok, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["data"].(map[string]any)["status"])

	w = e.do(http.MethodGet, "/api/v1/administrator/task/?status=completed&rep_id="+rep.ID.String(), e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestDistrictsAndUpload(t *testing.T) {
	e := newAPIEnv(t)

	w := e.do(http.MethodGet, "/api/v1/districts/?district=dhaka", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["data"].(map[string]any)["sub_districts"], "Savar")

	w = e.do(http.MethodGet, "/api/v1/districts/?district=Atlantis", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/api/v1/upload-file/", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, storage.ErrNoFile.Error(), decode(t, w)["message"])

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "card.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload-file/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://cdn.test/card.png", decode(t, rec)["data"].(map[string]any)["url"])
}

func TestDashboards(t *testing.T) {
	e := newAPIEnv(t)
	tok, _, _, _ := e.seed(t)

	w := e.do(http.MethodGet, "/api/v1/administrator/dashboard/", e.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 1, data["total_fabricators"])
	assert.EqualValues(t, 1, data["marketing_representatives"])

	w = e.do(http.MethodGet, "/api/v1/marketing-rep/dashboard/", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "0.00", decode(t, w)["data"].(map[string]any)["monthly_sales"])
}

func TestAuth_LoginAndProfile(t *testing.T) {
	e := newAPIEnv(t)
	hashed, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, e.store.Users().Create(context.Background(), &entity.User{
		Username: "boss", Email: "boss@xylem.io", Password: hashed, IsAdmin: true,
	}))

	w := e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "boss@xylem.io", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	access := data["access"].(string)
	require.NotEmpty(t, data["refresh"])

	w = e.do(http.MethodGet, "/api/v1/auth/profile", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "boss", decode(t, w)["data"].(map[string]any)["username"])

	w = e.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{"refresh": data["refresh"]})
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{"username": "boss", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
