package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
	"github.com/sangkips/xylem-api/pkg/apperror"
)

// ReportHandler serves report listings, exports and submissions
type ReportHandler struct {
	reportService      *service.ReportService
	fabricatorService  *service.FabricatorService
	distributorService *service.DistributorService
}

func NewReportHandler(
	reportService *service.ReportService,
	fabricatorService *service.FabricatorService,
	distributorService *service.DistributorService,
) *ReportHandler {
	return &ReportHandler{
		reportService:      reportService,
		fabricatorService:  fabricatorService,
		distributorService: distributorService,
	}
}

// List pages through reports in the requested view, or downloads them all
// when format is csv or xlsx.
func (h *ReportHandler) List(c *gin.Context) {
	var q request.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	view, filter, err := service.ParseReportQuery(service.ReportQuery{
		View:         q.View,
		FromDate:     q.FromDate,
		ToDate:       q.ToDate,
		FabricatorID: q.FabricatorID,
		RepID:        q.RepID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	ctx := c.Request.Context()

	if q.Format != "" && q.Format != "json" {
		file, err := h.reportService.Export(ctx, view, filter, q.Format)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Attachment(c, file.Filename, file.ContentType, file.Data)
		return
	}

	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.reportService.ListReports(ctx, view, filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

// RepList serves the representative's report form lookups and history
func (h *ReportHandler) RepList(c *gin.Context) {
	rep := middleware.CurrentRep(c)
	ctx := c.Request.Context()

	switch c.Query("view") {
	case "fabricators":
		fabricators, err := h.fabricatorService.ListForRep(ctx, rep.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Assigned fabricators retrieved successfully", fabricators)
	case "distributors":
		distributors, err := h.distributorService.ListForRep(ctx, rep.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Assigned distributors retrieved successfully", distributors)
	case "history":
		params, err := pageParams(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		page, err := h.reportService.ListHistory(ctx, rep.ID, params)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Page(c, page)
	default:
		response.Error(c, apperror.NewBadRequestError("Invalid view parameter."))
	}
}

// Submit files a sales report for the logged in representative
func (h *ReportHandler) Submit(c *gin.Context) {
	var req request.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	report, err := h.reportService.SubmitReport(c.Request.Context(), middleware.CurrentRep(c), &service.SubmitReportInput{
		FabricatorID:  req.Fabricator,
		DistributorID: req.Distributor,
		Amount:        string(req.Amount),
		InvoiceNumber: req.InvoiceNumber,
		SalesDate:     req.SalesDate,
		Attachments:   req.Attachments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Report submitted successfully", report)
}
