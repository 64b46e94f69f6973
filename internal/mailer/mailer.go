package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
)

const (
	subjectSubmission = "Application Received – Cambridge Tutor Programme"
	subjectDecision   = "Application Update – Cambridge Tutor Programme"
)

// Notifier sends best-effort applicant notifications. Implementations
// must not be relied on for correctness of status transitions: a failed
// send never rolls back the transition that triggered it.
type Notifier interface {
	SendSubmissionReceived(ctx context.Context, to, name string) error
	SendDecision(ctx context.Context, to, name string, decision applicant.Decision) error
}

// ResendMailer delivers mail through the Resend HTTP API.
type ResendMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

func NewResendMailer(endpoint, apiKey, from string) *ResendMailer {
	return &ResendMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendSubmissionReceived(ctx context.Context, to, name string) error {
	html, err := renderSubmission(name)
	if err != nil {
		return err
	}
	return m.send(ctx, to, subjectSubmission, html)
}

func (m *ResendMailer) SendDecision(ctx context.Context, to, name string, decision applicant.Decision) error {
	html, err := renderDecision(name, decision)
	if err != nil {
		return err
	}
	return m.send(ctx, to, subjectDecision, html)
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mailer: unexpected status %d from %s", resp.StatusCode, m.endpoint)
	}
	return nil
}
