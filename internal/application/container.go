package application

import (
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/internal/mailer"
	"github.com/jianshanacademy/camp-portal/internal/repository"
)

type Services struct {
	Audit     *AuditService
	User      *UserService
	Applicant *ApplicantService
	Review    *ReviewService
}

func New(repos *repository.Repos, notifier mailer.Notifier, hub *events.Hub) *Services {
	return &Services{
		Audit:     NewAuditService(repos),
		User:      NewUserService(repos),
		Applicant: NewApplicantService(repos, notifier, hub),
		Review:    NewReviewService(repos, notifier, hub),
	}
}
