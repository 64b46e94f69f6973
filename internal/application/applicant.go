package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/internal/mailer"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrNotDraft              = errors.New("application can only be edited while in draft")
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrNotAccepted           = errors.New("only an accepted application can be enrolled")
)

// ApplicantService covers every operation the owning applicant may
// perform on their own record.
type ApplicantService struct {
	Repos    *repository.Repos
	Notifier mailer.Notifier
	Hub      *events.Hub
}

func NewApplicantService(repos *repository.Repos, notifier mailer.Notifier, hub *events.Hub) *ApplicantService {
	return &ApplicantService{
		Repos:    repos,
		Notifier: notifier,
		Hub:      hub,
	}
}

// GetOrCreate returns the caller's application, creating the draft on
// first access so each user always has exactly one record.
func (s *ApplicantService) GetOrCreate(userID uint, email, fullName string) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByUserID(userID)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return applicant.Application{}, err
	}

	first, last := splitName(fullName)
	app = applicant.Application{
		UserID: userID,
		Status: applicant.StatusDraft,
		PersonalInfo: datatypes.NewJSONType(applicant.PersonalInfo{
			FirstName: first,
			LastName:  last,
			Email:     email,
		}),
	}
	if err := s.Repos.Application.Create(&app); err != nil {
		return applicant.Application{}, err
	}
	return app, nil
}

// SaveDraft applies a partial form update. Only sections present in the
// input are written, so a save cannot clobber sections it did not carry.
func (s *ApplicantService) SaveDraft(userID uint, input applicant.SaveApplicationInput) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByUserID(userID)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}
	if app.Status != applicant.StatusDraft {
		return applicant.Application{}, ErrNotDraft
	}

	fields := map[string]any{}
	if input.PersonalInfo != nil {
		fields["personal_info"] = datatypes.NewJSONType(*input.PersonalInfo)
	}
	if input.Essays != nil {
		fields["essays"] = datatypes.NewJSONType(*input.Essays)
	}
	if input.Misc != nil {
		fields["misc"] = datatypes.NewJSONType(*input.Misc)
	}
	if len(fields) > 0 {
		if err := s.Repos.Application.UpdateFields(app.ID, fields); err != nil {
			return applicant.Application{}, err
		}
	}
	return s.Repos.Application.GetByUserID(userID)
}

// Submit moves the caller's draft into review. The status change is the
// source of truth; the confirmation email is best-effort.
func (s *ApplicantService) Submit(ctx context.Context, userID uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByUserID(userID)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}

	if missing := missingRequiredFields(&app); len(missing) > 0 {
		return applicant.Application{}, fmt.Errorf("%w: %s", ErrMissingRequiredFields, strings.Join(missing, ", "))
	}

	next, err := applicant.Transition(app.Status, applicant.StatusUnderReview)
	if err != nil {
		return applicant.Application{}, err
	}

	now := time.Now()
	prev := app.Status
	if err := s.Repos.Application.UpdateFields(app.ID, map[string]any{
		"status":       next,
		"submitted_at": now,
	}); err != nil {
		return applicant.Application{}, err
	}
	app.Status = next
	app.SubmittedAt = &now

	if err := s.Notifier.SendSubmissionReceived(ctx, app.Email(), app.ApplicantName()); err != nil {
		log.Printf("Failed to send submission email for application %d: %v", app.ID, err)
	}

	s.Hub.Publish(events.StatusEvent{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		From:          prev,
		To:            next,
		At:            now,
	})

	return app, nil
}

// Enroll confirms participation after an accepted decision. Terminal.
func (s *ApplicantService) Enroll(userID uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByUserID(userID)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}

	next, err := applicant.Transition(app.Status, applicant.StatusEnrolled)
	if err != nil {
		return applicant.Application{}, ErrNotAccepted
	}

	prev := app.Status
	if err := s.Repos.Application.UpdateFields(app.ID, map[string]any{
		"status": next,
	}); err != nil {
		return applicant.Application{}, err
	}
	app.Status = next

	s.Hub.Publish(events.StatusEvent{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		From:          prev,
		To:            next,
		At:            time.Now(),
	})

	return app, nil
}

func missingRequiredFields(app *applicant.Application) []string {
	info := app.PersonalInfo.Data()
	essays := app.Essays.Data()
	misc := app.Misc.Data()

	var missing []string
	if info.FirstName == "" {
		missing = append(missing, "first name")
	}
	if info.LastName == "" {
		missing = append(missing, "last name")
	}
	if info.Email == "" {
		missing = append(missing, "email")
	}
	if info.University == "" {
		missing = append(missing, "university")
	}
	if info.YearOfStudy == "" {
		missing = append(missing, "year of study")
	}
	if essays.Motivation == "" {
		missing = append(missing, "motivation essay")
	}
	if !misc.AgreedToTerms {
		missing = append(missing, "terms agreement")
	}
	return missing
}

func splitName(fullName string) (string, string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	parts := strings.SplitN(fullName, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
