package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"github.com/jianshanacademy/camp-portal/pkg/response"
	"github.com/jianshanacademy/camp-portal/pkg/utils"
)

type AuditHandler struct {
	svc   *application.AuditService
	repos *repository.Repos
}

func NewAuditHandler(svc *application.AuditService, repos *repository.Repos) *AuditHandler {
	return &AuditHandler{svc: svc, repos: repos}
}

// QueryLogs lists audit entries, filterable by user, action, resource
// type, and time range. Timestamps are RFC3339.
func (h *AuditHandler) QueryLogs(c *gin.Context) {
	params := repository.AuditQueryParams{
		Limit:  100,
		Offset: 0,
	}

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user_id"})
			return
		}
		uid := uint(id)
		params.UserID = &uid
	}
	if v := c.Query("resource_type"); v != "" {
		params.ResourceType = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	if v := c.Query("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid start_time"})
			return
		}
		params.StartTime = &t
	}
	if v := c.Query("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid end_time"})
			return
		}
		params.EndTime = &t
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			params.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			params.Offset = n
		}
	}

	logs, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// CleanupLogs deletes audit entries older than the retention window.
// Default 90 days.
func (h *AuditHandler) CleanupLogs(c *gin.Context) {
	days := 90
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "days must be a positive integer"})
			return
		}
		days = n
	}

	if err := h.svc.CleanupOldLogs(days); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, "cleanup_audit_logs", "audit_log", "", nil, nil,
		fmt.Sprintf("deleted audit logs older than %d days", days), h.repos.Audit)

	c.JSON(http.StatusOK, response.MessageResponse{Message: fmt.Sprintf("Audit logs older than %d days deleted", days)})
}
