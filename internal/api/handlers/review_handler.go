package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"github.com/jianshanacademy/camp-portal/pkg/response"
	"github.com/jianshanacademy/camp-portal/pkg/utils"
)

// ReviewHandler serves the admin review endpoints. Route-level Admin()
// middleware has already vetted the caller.
type ReviewHandler struct {
	svc   *application.ReviewService
	repos *repository.Repos
}

func NewReviewHandler(svc *application.ReviewService, repos *repository.Repos) *ReviewHandler {
	return &ReviewHandler{svc: svc, repos: repos}
}

func (h *ReviewHandler) ListApplications(c *gin.Context) {
	apps, err := h.svc.ListApplications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ReviewHandler) GetApplication(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	app, err := h.svc.GetApplication(id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SetDecision records the internal verdict without releasing it.
func (h *ReviewHandler) SetDecision(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	var input applicant.DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	app, err := h.svc.SetInternalDecision(id, applicant.Decision(input.Decision))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrNotUnderReview):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "set_decision", "application", fmt.Sprint(id), nil, input,
		"internal decision recorded", h.repos.Audit)

	c.JSON(http.StatusOK, app)
}

func (h *ReviewHandler) ClearDecision(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	app, err := h.svc.ClearInternalDecision(id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrNotUnderReview):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "clear_decision", "application", fmt.Sprint(id), nil, nil,
		"internal decision cleared", h.repos.Audit)

	c.JSON(http.StatusOK, app)
}

// AddNote appends an administrator note to an application.
func (h *ReviewHandler) AddNote(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	var input applicant.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	author, _ := utils.GetUserNameFromContext(c)
	note, err := h.svc.AddNote(id, input.Content, author)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, note)
}

// Release publishes the internal decision to the applicant.
func (h *ReviewHandler) Release(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	app, err := h.svc.Release(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrNoInternalDecision),
			errors.Is(err, application.ErrAlreadyReleased),
			errors.Is(err, applicant.ErrInvalidTransition):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "release_decision", "application", fmt.Sprint(id), nil,
		gin.H{"status": app.Status}, "decision released to applicant", h.repos.Audit)

	c.JSON(http.StatusOK, app)
}

// BatchRelease publishes decisions for many applications at once. Each
// id is processed on its own; the response reports both outcomes.
func (h *ReviewHandler) BatchRelease(c *gin.Context) {
	var input applicant.BatchReleaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	results := h.svc.BatchRelease(c.Request.Context(), input.ApplicationIDs)

	resp := response.BatchReleaseResponse{
		Results: make([]response.BatchReleaseEntry, 0, len(results)),
	}
	for _, r := range results {
		entry := response.BatchReleaseEntry{ApplicationID: r.ApplicationID}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			resp.Failed++
		} else {
			entry.Status = string(r.Status)
			resp.Released++
		}
		resp.Results = append(resp.Results, entry)
	}

	utils.LogAuditWithConsole(c, "batch_release", "application", "", nil,
		gin.H{"released": resp.Released, "failed": resp.Failed},
		fmt.Sprintf("batch release of %d applications", len(input.ApplicationIDs)), h.repos.Audit)

	c.JSON(http.StatusOK, resp)
}

// Progress moves a not-yet-reviewed application into review.
func (h *ReviewHandler) Progress(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	app, err := h.svc.Progress(id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, applicant.ErrInvalidTransition):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "progress", "application", fmt.Sprint(id), nil,
		gin.H{"status": app.Status}, "application moved into review", h.repos.Audit)

	c.JSON(http.StatusOK, app)
}

// Reset rewinds an application to draft, keeping the form content.
func (h *ReviewHandler) Reset(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	app, err := h.svc.Reset(id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, applicant.ErrInvalidTransition):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "reset", "application", fmt.Sprint(id), nil, nil,
		"application reset to draft", h.repos.Audit)

	c.JSON(http.StatusOK, app)
}

func (h *ReviewHandler) DeleteApplication(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid application id"})
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "delete", "application", fmt.Sprint(id), nil, nil,
		"application deleted", h.repos.Audit)

	c.Status(http.StatusNoContent)
}
