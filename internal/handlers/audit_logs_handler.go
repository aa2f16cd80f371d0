package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/store-rating/internal/domain/audit"
	"github.com/BruksfildServices01/store-rating/internal/dto"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/httpresp"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
	dateLayout        = "2006-01-02"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewAuditLogsHandler(repo domain.Repository, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo, log: log}
}

// List supports ?action=&entity=&from=YYYY-MM-DD&to=YYYY-MM-DD&page=&limit=.
// Both dates are inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	filter := domain.ListFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format")
			return
		}
		filter.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must use the YYYY-MM-DD format")
			return
		}
		end := to.Add(24 * time.Hour)
		filter.To = &end
	}

	// --------------------------------------------------
	// Query
	// --------------------------------------------------

	logs, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, h.log, err, "Error fetching audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, "", dto.AuditLogPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}
