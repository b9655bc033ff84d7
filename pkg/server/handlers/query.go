package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/statnett/cimsparql/pkg/export"
	"github.com/statnett/cimsparql/pkg/queries"
	"github.com/statnett/cimsparql/pkg/table"
	"github.com/statnett/cimsparql/pkg/template"
)

// QueryRunner is the model surface the handlers need.
type QueryRunner interface {
	Query(ctx context.Context, name string, params template.Parameters) (*table.TypedTable, error)
	Prefixes() map[string]string
}

// QueryHandler serves the query catalog over HTTP
type QueryHandler struct {
	model QueryRunner
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(model QueryRunner) *QueryHandler {
	return &QueryHandler{model: model}
}

// List handles GET /api/v1/queries
func (h *QueryHandler) List(c *gin.Context) {
	names, err := queries.Names()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(names))
	for _, name := range names {
		entry, err := queries.Get(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		items = append(items, gin.H{
			"name":        name,
			"description": entry.Description,
			"required":    entry.Template.Required,
		})
	}
	c.JSON(http.StatusOK, gin.H{"queries": items})
}

// Run handles GET /api/v1/queries/:name with region and rate as query
// parameters.
func (h *QueryHandler) Run(c *gin.Context) {
	if h.model == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no store connection"})
		return
	}

	params := template.Parameters{}
	if region := c.Query("region"); region != "" {
		params["region"] = region
	}
	if rate := c.Query("rate"); rate != "" {
		params["rate"] = rate
	}

	name := c.Param("name")
	if _, err := queries.Get(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	tbl, err := h.model.Query(c.Request.Context(), name, params)
	if err != nil {
		var terr *template.TemplateError
		if errors.As(err, &terr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    name,
		"columns": tbl.Names(),
		"rows":    tbl.Len(),
		"data":    export.Records(tbl),
	})
}

// Prefixes handles GET /api/v1/prefixes
func (h *QueryHandler) Prefixes(c *gin.Context) {
	if h.model == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no store connection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prefixes": h.model.Prefixes()})
}
