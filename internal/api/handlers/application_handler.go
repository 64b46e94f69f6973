package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/offer"
	"github.com/jianshanacademy/camp-portal/pkg/response"
	"github.com/jianshanacademy/camp-portal/pkg/utils"
)

// ApplicationHandler serves the applicant-facing endpoints. Every route
// here operates on the caller's own record; admins use the review routes.
type ApplicationHandler struct {
	svc    *application.ApplicantService
	users  *application.UserService
	offers *offer.Service
}

func NewApplicationHandler(svc *application.ApplicantService, users *application.UserService, offers *offer.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, users: users, offers: offers}
}

// GetMy returns the caller's application, creating the draft on first
// access.
func (h *ApplicationHandler) GetMy(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var email, fullName string
	if usr, err := h.users.FindUserByID(userID); err == nil {
		if usr.Email != nil {
			email = *usr.Email
		}
		if usr.FullName != nil {
			fullName = *usr.FullName
		}
	}

	app, err := h.svc.GetOrCreate(userID, email, fullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, app.OwnerView())
}

// SaveMy applies a partial form update to the caller's draft.
func (h *ApplicationHandler) SaveMy(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input applicant.SaveApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	app, err := h.svc.SaveDraft(userID, input)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrNotDraft):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, app.OwnerView())
}

// Submit moves the caller's draft into review.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	app, err := h.svc.Submit(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrMissingRequiredFields):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, applicant.ErrInvalidTransition):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, app.OwnerView())
}

// Enroll confirms participation after an accepted decision.
func (h *ApplicationHandler) Enroll(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	app, err := h.svc.Enroll(userID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, application.ErrNotAccepted):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, app.OwnerView())
}

// Offer generates the caller's offer letter and returns a short-lived
// download link.
func (h *ApplicationHandler) Offer(c *gin.Context) {
	if h.offers == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "offer letter storage not available"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	app, err := h.svc.GetOrCreate(userID, "", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	link, letter, err := h.offers.Generate(c.Request.Context(), &app)
	if err != nil {
		if errors.Is(err, offer.ErrNotAccepted) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       link,
		"reference": letter.Reference,
	})
}

// Catalog returns the form option lists and programme dates.
func (h *ApplicationHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, config.Catalog)
}
