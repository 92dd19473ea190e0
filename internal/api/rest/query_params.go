package rest

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Eras256/FlowFi/internal/records"
)

// ListInvoicesQueryParams holds query parameters for GET /api/v1/invoices
type ListInvoicesQueryParams struct {
	Filter string `form:"filter,default=all" binding:"oneof=all minted funded available"`
	Search string `form:"search"`
	SortBy string `form:"sort,default=amount" binding:"oneof=amount yield term"`
}

// ParseListInvoicesQuery parses query parameters for GET /api/v1/invoices
func ParseListInvoicesQuery(c *gin.Context) (*records.Query, error) {
	var params ListInvoicesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	return &records.Query{
		Filter: params.Filter,
		Search: strings.TrimSpace(params.Search),
		SortBy: params.SortBy,
	}, nil
}

// MarketDataQueryParams holds query parameters for GET /api/market-data
type MarketDataQueryParams struct {
	Endpoint string `form:"endpoint,default=market/overview"`
}

// StreamQueryParams holds query parameters for GET /api/market-data/stream
type StreamQueryParams struct {
	Channel string `form:"channel" binding:"required"`
}
