package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/districts"
)

type DistrictsHandler struct {
	catalog *districts.Catalog
}

func NewDistrictsHandler(catalog *districts.Catalog) *DistrictsHandler {
	return &DistrictsHandler{catalog: catalog}
}

// Get lists every district, or the sub-districts of ?district=
func (h *DistrictsHandler) Get(c *gin.Context) {
	name := c.Query("district")
	if name == "" {
		response.OK(c, "Districts retrieved successfully", h.catalog.All())
		return
	}
	subs, ok := h.catalog.SubDistricts(name)
	if !ok {
		response.Error(c, apperror.NewNotFoundError("District"))
		return
	}
	response.OK(c, "Sub-districts retrieved successfully", gin.H{
		"district":      name,
		"sub_districts": subs,
	})
}
