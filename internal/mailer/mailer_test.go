package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSubmissionReceived(t *testing.T) {
	var got sendRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResendMailer(srv.URL, "test-key", "Portal <noreply@example.com>")
	err := m.SendSubmissionReceived(context.Background(), "ada@cam.ac.uk", "Ada Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Portal <noreply@example.com>", got.From)
	assert.Equal(t, []string{"ada@cam.ac.uk"}, got.To)
	assert.Equal(t, subjectSubmission, got.Subject)
	assert.Contains(t, got.HTML, "Dear Ada Lovelace")
	assert.Contains(t, got.HTML, "Application Received")
}

func TestSendDecision_CopyPerDecision(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResendMailer(srv.URL, "test-key", "Portal <noreply@example.com>")

	err := m.SendDecision(context.Background(), "ada@cam.ac.uk", "Ada", applicant.DecisionAccepted)
	require.NoError(t, err)
	assert.Equal(t, subjectDecision, got.Subject)
	assert.Contains(t, got.HTML, "Congratulations")

	err = m.SendDecision(context.Background(), "ada@cam.ac.uk", "Ada", applicant.DecisionWaitlisted)
	require.NoError(t, err)
	assert.Contains(t, got.HTML, "waitlist")
}

func TestSend_ErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewResendMailer(srv.URL, "bad-key", "Portal <noreply@example.com>")
	err := m.SendSubmissionReceived(context.Background(), "ada@cam.ac.uk", "Ada")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRenderDecision_Fallbacks(t *testing.T) {
	html, err := renderDecision("", applicant.Decision("unknown"))
	assert.NoError(t, err)
	assert.Contains(t, html, "Dear Applicant")
	assert.Contains(t, html, "unable to offer")
}
