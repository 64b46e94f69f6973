package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/api/handlers"
	"github.com/jianshanacademy/camp-portal/internal/api/middleware"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/internal/mailer"
	"github.com/jianshanacademy/camp-portal/internal/offer"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"github.com/jianshanacademy/camp-portal/internal/storage"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, gdb *gorm.DB) {
	// init
	reposInstance := repository.New(gdb)
	notifier := mailer.NewResendMailer(config.ResendEndpoint, config.ResendAPIKey, config.MailFrom)
	hub := events.NewHub()
	servicesInstance := application.New(reposInstance, notifier, hub)
	authMiddleware := middleware.NewAuth()

	// Offer letters need object storage; the portal still runs without it.
	var offerService *offer.Service
	if store, err := storage.NewMinioStore(); err != nil {
		log.Printf("Offer letter storage unavailable: %v", err)
	} else {
		offerService = offer.NewService(store)
	}

	handlersInstance := handlers.New(servicesInstance, reposInstance, offerService, r)

	// setup
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/register", handlersInstance.User.Register)
	r.POST("/login", handlersInstance.User.Login)
	r.POST("/logout", handlersInstance.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/auth/status", handlersInstance.User.AuthStatus)
		auth.GET("/catalog", handlersInstance.Application.Catalog)

		applications := auth.Group("/applications")
		{
			applications.GET("/my", handlersInstance.Application.GetMy)
			applications.PUT("/my", handlersInstance.Application.SaveMy)
			applications.POST("/my/submit", handlersInstance.Application.Submit)
			applications.POST("/my/enroll", handlersInstance.Application.Enroll)
			applications.GET("/my/offer", handlersInstance.Application.Offer)
		}

		users := auth.Group("/users")
		{
			users.GET("", authMiddleware.Admin(), handlersInstance.User.GetUsers)
			users.GET("/:id", authMiddleware.UserOrAdmin(), handlersInstance.User.GetUserByID)
			users.PUT("/:id", authMiddleware.UserOrAdmin(), handlersInstance.User.UpdateUser)
			users.DELETE("/:id", authMiddleware.UserOrAdmin(), handlersInstance.User.DeleteUser)
		}

		admin := auth.Group("/admin")
		admin.Use(authMiddleware.Admin())
		{
			admin.GET("/applications", handlersInstance.Review.ListApplications)
			admin.GET("/applications/stats", handlersInstance.Review.Stats)
			admin.GET("/applications/:id", handlersInstance.Review.GetApplication)
			admin.PUT("/applications/:id/decision", handlersInstance.Review.SetDecision)
			admin.DELETE("/applications/:id/decision", handlersInstance.Review.ClearDecision)
			admin.POST("/applications/:id/notes", handlersInstance.Review.AddNote)
			admin.POST("/applications/:id/release", handlersInstance.Review.Release)
			admin.POST("/applications/release", handlersInstance.Review.BatchRelease)
			admin.PUT("/applications/:id/progress", handlersInstance.Review.Progress)
			admin.PUT("/applications/:id/reset", handlersInstance.Review.Reset)
			admin.DELETE("/applications/:id", handlersInstance.Review.DeleteApplication)

			admin.PUT("/users/:id/admin", handlersInstance.User.SetAdmin)
			admin.GET("/audit/logs", handlersInstance.Audit.QueryLogs)
			admin.DELETE("/audit/logs", handlersInstance.Audit.CleanupLogs)
		}

		auth.GET("/ws/applications", authMiddleware.Admin(), handlers.WatchApplicationsHandler(hub))
	}
}
