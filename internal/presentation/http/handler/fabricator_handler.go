package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
)

// FabricatorHandler serves public registration and the admin fabricator desk
type FabricatorHandler struct {
	fabricatorService *service.FabricatorService
	workflowService   *service.WorkflowService
}

func NewFabricatorHandler(fabricatorService *service.FabricatorService, workflowService *service.WorkflowService) *FabricatorHandler {
	return &FabricatorHandler{
		fabricatorService: fabricatorService,
		workflowService:   workflowService,
	}
}

// Register handles public self-registration
func (h *FabricatorHandler) Register(c *gin.Context) {
	var req request.RegisterFabricatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}

	fabricator, err := h.fabricatorService.Register(c.Request.Context(), &service.RegisterFabricatorInput{
		Name:               req.Name,
		Institution:        req.Institution,
		PhoneNumber:        req.PhoneNumber,
		District:           req.District,
		SubDistrict:        req.SubDistrict,
		Address:            req.Address,
		DistributorID:      req.Distributor,
		TradeLicenseImgURL: req.TradeLicenseImgURL,
		VisitingCardImgURL: req.VisitingCardImgURL,
		ProfileImgURL:      req.ProfileImgURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Fabricator registered successfully", fabricator)
}

// Options lists distributors or representatives for the registration form
func (h *FabricatorHandler) Options(c *gin.Context) {
	options, err := h.fabricatorService.RegistrationOptions(c.Request.Context(), c.Query("view"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Options retrieved successfully", options)
}

// Get returns one fabricator when id is given, otherwise a page of the view
func (h *FabricatorHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("id") != "" {
		id, err := queryID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		fabricator, err := h.fabricatorService.GetFabricator(ctx, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Fabricator retrieved successfully", fabricator)
		return
	}

	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.fabricatorService.ListFabricators(ctx, c.Query("view"), c.Query("search"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

// Patch dispatches status, assign and update
func (h *FabricatorHandler) Patch(c *gin.Context) {
	action, ok := resolveAction(c, enum.FabricatorAdminActions)
	if !ok {
		return
	}
	switch action {
	case enum.ActionStatus:
		h.setStatus(c)
	case enum.ActionAssign:
		h.assign(c)
	case enum.ActionUpdate:
		h.update(c)
	}
}

func (h *FabricatorHandler) setStatus(c *gin.Context) {
	var req request.FabricatorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	id, err := service.ParseID("id", req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	fabricator, err := h.workflowService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabricator status updated to "+fabricator.Status.String(), fabricator)
}

func (h *FabricatorHandler) assign(c *gin.Context) {
	var req request.AssignFabricatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	id, err := service.ParseID("id", req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	repID, err := service.ParseID("marketing_representative", req.MarketingRepresentative)
	if err != nil {
		response.Error(c, err)
		return
	}
	fabricator, err := h.workflowService.AssignRepresentative(c.Request.Context(), id, repID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Marketing representative assigned successfully", fabricator)
}

func (h *FabricatorHandler) update(c *gin.Context) {
	var req request.UpdateFabricatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	id, err := service.ParseID("id", req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	fabricator, err := h.fabricatorService.UpdateFabricator(c.Request.Context(), id, &service.UpdateFabricatorInput{
		Name:               req.Name,
		Institution:        req.Institution,
		PhoneNumber:        req.PhoneNumber,
		District:           req.District,
		SubDistrict:        req.SubDistrict,
		Address:            req.Address,
		DistributorID:      req.Distributor,
		TradeLicenseImgURL: req.TradeLicenseImgURL,
		VisitingCardImgURL: req.VisitingCardImgURL,
		ProfileImgURL:      req.ProfileImgURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabricator updated successfully", fabricator)
}

// Delete handles DELETE ?id=&action=delete
func (h *FabricatorHandler) Delete(c *gin.Context) {
	if _, ok := resolveAction(c, enum.FabricatorAdminActions); !ok {
		return
	}
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.fabricatorService.DeleteFabricator(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Fabricator deleted successfully", nil)
}
