package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-crm/internal/store"
)

const MAX_PAGE_SIZE = 100

// SearchQueryParams holds query parameters for GET /search
type SearchQueryParams struct {
	Query string `form:"q" binding:"required"`
	// Table restricts the search to one CRM table
	Table string `form:"table"`
	Limit int    `form:"limit,default=20"`
}

// ParseSearchQuery parses query parameters for GET /search
func ParseSearchQuery(c *gin.Context) (*SearchQueryParams, error) {
	var params SearchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// AuditQueryParams holds query parameters for GET /audit/:entity_type/:entity_id
type AuditQueryParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ParseAuditQuery parses query parameters for GET /audit/:entity_type/:entity_id
func ParseAuditQuery(c *gin.Context) (*store.Pagination, error) {
	var params AuditQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit < 1 {
		params.Limit = 1
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &store.Pagination{Limit: params.Limit, Offset: params.Offset}, nil
}

// uuidParam parses a path parameter, responding 400 when it is not a uuid
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid "+name, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
