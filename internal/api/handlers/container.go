package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jianshanacademy/camp-portal/internal/application"
	"github.com/jianshanacademy/camp-portal/internal/offer"
	"github.com/jianshanacademy/camp-portal/internal/repository"
)

type Handlers struct {
	Audit       *AuditHandler
	User        *UserHandler
	Application *ApplicationHandler
	Review      *ReviewHandler
	Router      *gin.Engine
}

func New(svc *application.Services, repos *repository.Repos, offers *offer.Service, router *gin.Engine) *Handlers {
	h := &Handlers{
		Audit:       NewAuditHandler(svc.Audit, repos),
		User:        NewUserHandler(svc.User, repos),
		Application: NewApplicationHandler(svc.Applicant, svc.User, offers),
		Review:      NewReviewHandler(svc.Review, repos),
		Router:      router,
	}
	return h
}
