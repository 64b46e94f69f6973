package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/jianshanacademy/camp-portal/internal/domain/user"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"github.com/jianshanacademy/camp-portal/pkg/response"
	"github.com/jianshanacademy/camp-portal/pkg/types"
	"github.com/jianshanacademy/camp-portal/pkg/utils"
	"gorm.io/gorm"
)

type UserHandler struct {
	svc   *application.UserService
	repos *repository.Repos
}

func NewUserHandler(svc *application.UserService, repos *repository.Repos) *UserHandler {
	return &UserHandler{svc: svc, repos: repos}
}

// Register creates a new applicant account.
func (h *UserHandler) Register(c *gin.Context) {
	var input user.CreateUserInput

	if err := c.ShouldBind(&input); err != nil {
		// Try to produce friendly validation messages for the frontend
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			msgs := make([]string, 0, len(verr))

			labels := map[string]string{
				"Username": "username",
				"Password": "password",
				"Email":    "email",
				"FullName": "full name",
			}

			for _, fe := range verr {
				field := fe.StructField()
				lbl, ok := labels[field]
				if !ok {
					lbl = strings.ToLower(field)
				}

				var msg string
				switch fe.Tag() {
				case "required":
					msg = fmt.Sprintf("%s is required", lbl)
				case "min":
					msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
				case "max":
					msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
				case "email":
					msg = fmt.Sprintf("%s must be a valid email address", lbl)
				default:
					msg = fmt.Sprintf("%s is invalid", lbl)
				}
				msgs = append(msgs, msg)
			}

			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: strings.Join(msgs, "; ")})
			return
		}

		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	err := h.svc.RegisterUser(input)
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, response.MessageResponse{Message: "User registered successfully"})
}

// Login verifies credentials and issues a token, in both the body and a
// cookie so browser and API clients work alike.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}

	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	usr, token, err := h.svc.LoginUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid username or password"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"token",
		token,
		86400,
		"/",
		"",
		config.IsProduction, // Secure only in production
		true,
	)

	c.JSON(http.StatusOK, response.TokenResponse{
		Token:    token,
		UID:      usr.UID,
		Username: usr.Username,
		IsAdmin:  usr.IsAdmin,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(
		"token",
		"",
		-1,
		"/",
		"",
		false,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// AuthStatus echoes the authenticated caller's identity and role so the
// frontend can gate the admin dashboard.
func (h *UserHandler) AuthStatus(c *gin.Context) {
	claims, ok := c.MustGet("claims").(*types.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"is_admin": claims.IsAdmin,
	})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, []user.UserDTO{})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.DTOs(users))
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user id"})
		return
	}

	usr, err := h.svc.FindUserByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "User not found"})
		return
	}
	c.JSON(http.StatusOK, usr.DTO())
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	var input user.UpdateUserInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	updatedUser, err := h.svc.UpdateUser(id, input)
	if err != nil {
		switch err {
		case application.ErrUserNotFound:
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
		case application.ErrMissingOldPassword, application.ErrIncorrectPassword:
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, updatedUser.DTO())
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	if err := h.svc.RemoveUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetAdmin grants or revokes the admin claim on a user. Admin only.
func (h *UserHandler) SetAdmin(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
		return
	}

	var input user.SetAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.SetAdmin(id, input.IsAdmin); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	utils.LogAuditWithConsole(c, "set_admin", "user", fmt.Sprint(id), nil, input,
		fmt.Sprintf("admin flag set to %t", input.IsAdmin), h.repos.Audit)

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Admin flag updated"})
}
