package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/request"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
)

type DistributorHandler struct {
	distributorService *service.DistributorService
}

func NewDistributorHandler(distributorService *service.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

func (h *DistributorHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("id") != "" {
		id, err := queryID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		distributor, err := h.distributorService.GetDistributor(ctx, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Distributor retrieved successfully", distributor)
		return
	}

	params, err := pageParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.distributorService.ListDistributors(ctx, c.Query("view"), c.Query("search"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, page)
}

func (h *DistributorHandler) Create(c *gin.Context) {
	var req request.DistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	distributor, err := h.distributorService.CreateDistributor(c.Request.Context(), distributorInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Distributor created successfully", distributor)
}

func (h *DistributorHandler) Update(c *gin.Context) {
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req request.DistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, invalidBody)
		return
	}
	distributor, err := h.distributorService.UpdateDistributor(c.Request.Context(), id, distributorInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Distributor updated successfully", distributor)
}

func (h *DistributorHandler) Delete(c *gin.Context) {
	id, err := queryID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.distributorService.DeleteDistributor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Distributor deleted successfully", nil)
}

func distributorInput(req *request.DistributorRequest) *service.DistributorInput {
	return &service.DistributorInput{
		Name:                    req.Name,
		PhoneNumber:             req.PhoneNumber,
		Email:                   req.Email,
		District:                req.District,
		SubDistrict:             req.SubDistrict,
		MarketingRepresentative: req.MarketingRepresentative,
	}
}
