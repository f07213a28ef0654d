package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/domain/enum"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/pagination"
)

const invalidBody = "Invalid request body"

// pageParams reads p and page_size. A page that is not a positive number is
// an invalid page, a bad page_size falls back to the default.
func pageParams(c *gin.Context) (*pagination.PaginationParams, error) {
	params := pagination.DefaultPagination()
	if raw := c.Query(pagination.PageParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, apperror.ErrInvalidPage
		}
		params.Page = n
	}
	if raw := c.Query(pagination.PageSizeParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			params.PageSize = n
		}
	}
	params.Validate()
	return params, nil
}

// queryID parses the required "id" query parameter
func queryID(c *gin.Context) (uuid.UUID, error) {
	return service.ParseID("id", c.Query("id"))
}

// resolveAction looks up the (method, action) pair in set
func resolveAction(c *gin.Context, set enum.ActionSet) (enum.Action, bool) {
	action, ok := set.Resolve(c.Request.Method, c.Query("action"))
	if !ok {
		response.Error(c, apperror.ErrInvalidAction)
	}
	return action, ok
}

// parseIDs parses a list of ids, reporting the first malformed one
func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := service.ParseID(field, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
