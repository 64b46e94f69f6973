package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/internal/repository"
	"github.com/jianshanacademy/camp-portal/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --------------------- Test doubles ---------------------

// recordingNotifier captures sent mail so tests can assert on side
// effects without a mail server.
type recordingNotifier struct {
	mu          sync.Mutex
	submissions []string
	decisions   []applicant.Decision
	failWith    error
}

func (n *recordingNotifier) SendSubmissionReceived(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.submissions = append(n.submissions, to)
	return nil
}

func (n *recordingNotifier) SendDecision(_ context.Context, _, _ string, decision applicant.Decision) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.decisions = append(n.decisions, decision)
	return nil
}

// --------------------- Setup ---------------------

func setupApplicantServiceMocks(t *testing.T) (*ApplicantService, *mock.MockApplicationRepo, *recordingNotifier) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockApp := mock.NewMockApplicationRepo(ctrl)
	repos := &repository.Repos{
		Application: mockApp,
	}
	notifier := &recordingNotifier{}
	svc := NewApplicantService(repos, notifier, events.NewHub())
	return svc, mockApp, notifier
}

func completeApplication(status applicant.Status) applicant.Application {
	return applicant.Application{
		ID:     1,
		UserID: 7,
		Status: status,
		PersonalInfo: datatypes.NewJSONType(applicant.PersonalInfo{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@cam.ac.uk",
			University:  "University of Cambridge",
			YearOfStudy: "Year 2 (Undergraduate)",
		}),
		Essays: datatypes.NewJSONType(applicant.Essays{
			Motivation: "I want to mentor students.",
		}),
		Misc: datatypes.NewJSONType(applicant.Misc{
			AgreedToTerms: true,
		}),
	}
}

// --------------------- GetOrCreate ---------------------

func TestGetOrCreate_ReturnsExisting(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)

	existing := completeApplication(applicant.StatusDraft)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(existing, nil)

	app, err := svc.GetOrCreate(7, "", "")
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, app.ID)
}

func TestGetOrCreate_CreatesDraftWithPrefill(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)

	mockApp.EXPECT().GetByUserID(uint(7)).Return(applicant.Application{}, gorm.ErrRecordNotFound)
	mockApp.EXPECT().Create(gomock.Any()).DoAndReturn(func(app *applicant.Application) error {
		assert.Equal(t, applicant.StatusDraft, app.Status)
		info := app.PersonalInfo.Data()
		assert.Equal(t, "Ada", info.FirstName)
		assert.Equal(t, "Lovelace", info.LastName)
		assert.Equal(t, "ada@cam.ac.uk", info.Email)
		return nil
	})

	app, err := svc.GetOrCreate(7, "ada@cam.ac.uk", "Ada Lovelace")
	assert.NoError(t, err)
	assert.Equal(t, applicant.StatusDraft, app.Status)
}

// --------------------- SaveDraft ---------------------

func TestSaveDraft_OnlyWhileDraft(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)

	submitted := completeApplication(applicant.StatusUnderReview)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(submitted, nil)

	_, err := svc.SaveDraft(7, applicant.SaveApplicationInput{})
	assert.ErrorIs(t, err, ErrNotDraft)
}

func TestSaveDraft_WritesOnlyPresentSections(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)

	draft := completeApplication(applicant.StatusDraft)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)
	mockApp.EXPECT().UpdateFields(uint(1), gomock.Any()).DoAndReturn(func(_ uint, fields map[string]any) error {
		assert.Contains(t, fields, "essays")
		assert.NotContains(t, fields, "personal_info")
		assert.NotContains(t, fields, "misc")
		return nil
	})
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)

	_, err := svc.SaveDraft(7, applicant.SaveApplicationInput{
		Essays: &applicant.Essays{Motivation: "updated"},
	})
	assert.NoError(t, err)
}

// --------------------- Submit ---------------------

func TestSubmit_MovesToUnderReviewAndNotifies(t *testing.T) {
	svc, mockApp, notifier := setupApplicantServiceMocks(t)

	draft := completeApplication(applicant.StatusDraft)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)
	mockApp.EXPECT().UpdateFields(uint(1), gomock.Any()).DoAndReturn(func(_ uint, fields map[string]any) error {
		assert.Equal(t, applicant.StatusUnderReview, fields["status"])
		assert.Contains(t, fields, "submitted_at")
		return nil
	})

	app, err := svc.Submit(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, applicant.StatusUnderReview, app.Status)
	assert.NotNil(t, app.SubmittedAt)
	assert.Equal(t, []string{"ada@cam.ac.uk"}, notifier.submissions)
}

func TestSubmit_MissingRequiredFields(t *testing.T) {
	svc, mockApp, notifier := setupApplicantServiceMocks(t)

	draft := completeApplication(applicant.StatusDraft)
	draft.Essays = datatypes.NewJSONType(applicant.Essays{})
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)

	_, err := svc.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
	assert.Contains(t, err.Error(), "motivation essay")
	assert.Empty(t, notifier.submissions)
}

func TestSubmit_RejectedWhenAlreadyUnderReview(t *testing.T) {
	svc, mockApp, notifier := setupApplicantServiceMocks(t)

	underReview := completeApplication(applicant.StatusUnderReview)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(underReview, nil)

	_, err := svc.Submit(context.Background(), 7)
	assert.ErrorIs(t, err, applicant.ErrInvalidTransition)
	assert.Empty(t, notifier.submissions)
}

func TestSubmit_MailFailureDoesNotAbort(t *testing.T) {
	svc, mockApp, notifier := setupApplicantServiceMocks(t)
	notifier.failWith = errors.New("smtp down")

	draft := completeApplication(applicant.StatusDraft)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)
	mockApp.EXPECT().UpdateFields(uint(1), gomock.Any()).Return(nil)

	app, err := svc.Submit(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, applicant.StatusUnderReview, app.Status)
}

func TestSubmit_PublishesStatusEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockApp := mock.NewMockApplicationRepo(ctrl)
	hub := events.NewHub()
	svc := NewApplicantService(&repository.Repos{Application: mockApp}, &recordingNotifier{}, hub)

	eventCh, cancel := hub.Subscribe()
	defer cancel()

	draft := completeApplication(applicant.StatusDraft)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(draft, nil)
	mockApp.EXPECT().UpdateFields(uint(1), gomock.Any()).Return(nil)

	_, err := svc.Submit(context.Background(), 7)
	assert.NoError(t, err)

	select {
	case ev := <-eventCh:
		assert.Equal(t, uint(1), ev.ApplicationID)
		assert.Equal(t, applicant.StatusDraft, ev.From)
		assert.Equal(t, applicant.StatusUnderReview, ev.To)
	case <-time.After(time.Second):
		t.Fatal("expected a status event")
	}
}

// --------------------- Enroll ---------------------

func TestEnroll_OnlyFromAccepted(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)

	accepted := completeApplication(applicant.StatusAccepted)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(accepted, nil)
	mockApp.EXPECT().UpdateFields(uint(1), gomock.Any()).DoAndReturn(func(_ uint, fields map[string]any) error {
		assert.Equal(t, applicant.StatusEnrolled, fields["status"])
		return nil
	})

	app, err := svc.Enroll(7)
	assert.NoError(t, err)
	assert.Equal(t, applicant.StatusEnrolled, app.Status)
}

func TestEnroll_RejectedFromOtherStates(t *testing.T) {
	for _, status := range []applicant.Status{
		applicant.StatusDraft, applicant.StatusUnderReview,
		applicant.StatusRejected, applicant.StatusWaitlisted, applicant.StatusEnrolled,
	} {
		svc, mockApp, _ := setupApplicantServiceMocks(t)
		mockApp.EXPECT().GetByUserID(uint(7)).Return(completeApplication(status), nil)

		_, err := svc.Enroll(7)
		assert.ErrorIs(t, err, ErrNotAccepted, "enroll from %s should fail", status)
	}
}

func TestEnroll_NotFound(t *testing.T) {
	svc, mockApp, _ := setupApplicantServiceMocks(t)
	mockApp.EXPECT().GetByUserID(uint(7)).Return(applicant.Application{}, gorm.ErrRecordNotFound)

	_, err := svc.Enroll(7)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
