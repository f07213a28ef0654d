package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
)

// MarketingRepHandler is the admin desk for representatives
type MarketingRepHandler struct {
	repService      *service.MarketingRepService
	workflowService *service.WorkflowService
}

func NewMarketingRepHandler(repService *service.MarketingRepService, workflowService *service.WorkflowService) *MarketingRepHandler {
	return &MarketingRepHandler{
		repService:      repService,
		workflowService: workflowService,
	}
}

func (h *MarketingRepHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("id") != "" {
		id, err := queryID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		rep, err := h.repService.GetMarketingRep(ctx, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Marketing representative retrieved successfully", rep)
		return
	}

	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.repService.ListMarketingReps(ctx, c.Query("search"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

// Post dispatches create, assign-fabricators and assign-distributors
func (h *MarketingRepHandler) Post(c *gin.Context) {
	action, ok := resolveAction(c, enum.MarketingRepActions)
	if !ok {
		return
	}
	switch action {
	case enum.ActionCreate:
		h.create(c)
	case enum.ActionAssignFabricators:
		h.assignFabricators(c)
	case enum.ActionAssignDistributors:
		h.assignDistributors(c)
	}
}

func (h *MarketingRepHandler) create(c *gin.Context) {
	var req request.MarketingRepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	rep, err := h.repService.CreateMarketingRep(c.Request.Context(), repInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Marketing representative created successfully", rep)
}

func (h *MarketingRepHandler) assignFabricators(c *gin.Context) {
	var req request.AssignFabricatorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	repID, err := service.ParseID("id", req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := parseIDs("fabricators", req.Fabricators)
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := h.workflowService.AssignFabricatorsBulk(c.Request.Context(), repID, ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fabricators assigned successfully", gin.H{"assigned": n})
}

func (h *MarketingRepHandler) assignDistributors(c *gin.Context) {
	var req request.AssignDistributorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	repID, err := service.ParseID("id", req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := parseIDs("distributors", req.Distributors)
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := h.workflowService.AssignDistributorsBulk(c.Request.Context(), repID, ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Distributors assigned successfully", gin.H{"assigned": n})
}

// Put updates the representative named by ?id=
func (h *MarketingRepHandler) Put(c *gin.Context) {
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.MarketingRepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	rep, err := h.repService.UpdateMarketingRep(c.Request.Context(), id, repInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Marketing representative updated successfully", rep)
}

// Delete dispatches delete, unassign-fabricator and unassign-distributor
func (h *MarketingRepHandler) Delete(c *gin.Context) {
	action, ok := resolveAction(c, enum.MarketingRepActions)
	if !ok {
		return
	}
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ctx := c.Request.Context()

	switch action {
	case enum.ActionDelete:
		if err := h.repService.DeleteMarketingRep(ctx, id); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Marketing representative deleted successfully", nil)
	case enum.ActionUnassignFabricator:
		fabricatorID, err := service.ParseID("fabricator_id", c.Query("fabricator_id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := h.workflowService.UnassignFabricator(ctx, fabricatorID, id); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Fabricator unassigned successfully", nil)
	case enum.ActionUnassignDistributor:
		distributorID, err := service.ParseID("distributor_id", c.Query("distributor_id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := h.workflowService.UnassignDistributor(ctx, distributorID, id); err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Distributor unassigned successfully", nil)
	}
}

func repInput(req *request.MarketingRepRequest) *service.MarketingRepInput {
	return &service.MarketingRepInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		District:    req.District,
		SubDistrict: req.SubDistrict,
	}
}
