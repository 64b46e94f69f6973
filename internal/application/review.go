package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/internal/mailer"
	"github.com/jianshanacademy/camp-portal/internal/repository"
)

var (
	ErrNotUnderReview     = errors.New("internal decision can only be set while under review")
	ErrNoInternalDecision = errors.New("no internal decision marked to release")
	ErrAlreadyReleased    = errors.New("decision already released for this application")
	ErrInvalidDecision    = errors.New("invalid decision value")
)

// ReviewService covers the administrator workflow: decisions, notes,
// releases, and lifecycle overrides. Authorization is enforced at the
// route guard; this service assumes an admin caller.
type ReviewService struct {
	Repos    *repository.Repos
	Notifier mailer.Notifier
	Hub      *events.Hub
}

func NewReviewService(repos *repository.Repos, notifier mailer.Notifier, hub *events.Hub) *ReviewService {
	return &ReviewService{
		Repos:    repos,
		Notifier: notifier,
		Hub:      hub,
	}
}

func (s *ReviewService) ListApplications() ([]applicant.Application, error) {
	return s.Repos.Application.ListAll()
}

func (s *ReviewService) GetApplication(id uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}
	return app, nil
}

func (s *ReviewService) Stats() (applicant.StatsDTO, error) {
	return s.Repos.Application.CountByStatus()
}

// SetInternalDecision records the provisional verdict. Hard guard: the
// application must currently be under review.
func (s *ReviewService) SetInternalDecision(id uint, decision applicant.Decision) (applicant.Application, error) {
	if !decision.Valid() {
		return applicant.Application{}, ErrInvalidDecision
	}

	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}
	if app.Status != applicant.StatusUnderReview {
		return applicant.Application{}, ErrNotUnderReview
	}

	if err := s.Repos.Application.UpdateFields(app.ID, map[string]any{
		"internal_decision": decision,
	}); err != nil {
		return applicant.Application{}, err
	}
	app.InternalDecision = &decision
	return app, nil
}

func (s *ReviewService) ClearInternalDecision(id uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}
	if app.Status != applicant.StatusUnderReview {
		return applicant.Application{}, ErrNotUnderReview
	}

	if err := s.Repos.Application.UpdateFields(app.ID, map[string]any{
		"internal_decision": nil,
	}); err != nil {
		return applicant.Application{}, err
	}
	app.InternalDecision = nil
	return app, nil
}

// AddNote appends an administrator note. Notes are append-only.
func (s *ReviewService) AddNote(id uint, content, author string) (applicant.Note, error) {
	if _, err := s.Repos.Application.GetByID(id); err != nil {
		return applicant.Note{}, ErrApplicationNotFound
	}
	note := applicant.Note{
		Content: content,
		Author:  author,
		Date:    time.Now(),
	}
	if err := s.Repos.Application.AppendNote(id, note); err != nil {
		return applicant.Note{}, err
	}
	return note, nil
}

// Release copies the internal decision into the public status, stamps
// DecisionReleasedAt exactly once, and notifies the applicant. A record
// whose decision was already released is rejected, never re-notified.
func (s *ReviewService) Release(ctx context.Context, id uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}

	if app.Status.Decided() || app.Status == applicant.StatusEnrolled {
		return applicant.Application{}, ErrAlreadyReleased
	}
	if app.InternalDecision == nil {
		return applicant.Application{}, ErrNoInternalDecision
	}

	decision := *app.InternalDecision
	next, err := applicant.Transition(app.Status, decision.Status())
	if err != nil {
		return applicant.Application{}, err
	}

	now := time.Now()
	fields := map[string]any{
		"status": next,
	}
	if app.DecisionReleasedAt == nil {
		fields["decision_released_at"] = now
	}
	if err := s.Repos.Application.UpdateFields(app.ID, fields); err != nil {
		return applicant.Application{}, err
	}

	prev := app.Status
	app.Status = next
	if app.DecisionReleasedAt == nil {
		app.DecisionReleasedAt = &now
	}

	// Best effort: the committed transition is the source of truth.
	if err := s.Notifier.SendDecision(ctx, app.Email(), app.ApplicantName(), decision); err != nil {
		log.Printf("Failed to send decision email for application %d: %v", app.ID, err)
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

// BatchRelease processes each application independently. Failures are
// reported per item and never roll back releases that succeeded.
func (s *ReviewService) BatchRelease(ctx context.Context, ids []uint) []applicant.ReleaseResult {
	results := make([]applicant.ReleaseResult, 0, len(ids))
	for _, id := range ids {
		app, err := s.Release(ctx, id)
		result := applicant.ReleaseResult{ApplicationID: id, Err: err}
		if err == nil {
			result.Status = app.Status
		}
		results = append(results, result)
	}
	return results
}

// Progress advances a not-yet-reviewed application into review without
// requiring the applicant to submit.
func (s *ReviewService) Progress(id uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}

	next, err := applicant.Transition(app.Status, applicant.StatusUnderReview)
	if err != nil {
		return applicant.Application{}, err
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

// Reset rewinds any application to draft and clears the submission
// timestamp. Form content is kept.
func (s *ReviewService) Reset(id uint) (applicant.Application, error) {
	app, err := s.Repos.Application.GetByID(id)
	if err != nil {
		return applicant.Application{}, ErrApplicationNotFound
	}

	next, err := applicant.Transition(app.Status, applicant.StatusDraft)
	if err != nil {
		return applicant.Application{}, err
	}

	prev := app.Status
	if err := s.Repos.Application.UpdateFields(app.ID, map[string]any{
		"status":       next,
		"submitted_at": nil,
	}); err != nil {
		return applicant.Application{}, err
	}
	app.Status = next
	app.SubmittedAt = nil

	s.Hub.Publish(events.StatusEvent{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		From:          prev,
		To:            next,
		At:            time.Now(),
	})

	return app, nil
}

// Delete removes the record permanently. Irreversible.
func (s *ReviewService) Delete(id uint) error {
	if _, err := s.Repos.Application.GetByID(id); err != nil {
		return ErrApplicationNotFound
	}
	return s.Repos.Application.Delete(id)
}
