package offer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/jianshanacademy/camp-portal/internal/config"
	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
	"github.com/jianshanacademy/camp-portal/internal/storage"
)

var ErrNotAccepted = errors.New("offer letter is only available for accepted applications")

// Letter is the data rendered into the offer-letter template.
type Letter struct {
	Reference    string
	Name         string
	University   string
	Programme    string
	Organization string
	Date         string
	StartDates   string
}

// Service renders offer letters and stores them for download.
type Service struct {
	store storage.ObjectStore
}

func NewService(store storage.ObjectStore) *Service {
	return &Service{store: store}
}

// Generate renders the offer letter for an accepted (or enrolled)
// application, uploads it, and returns a short-lived download link.
func (s *Service) Generate(ctx context.Context, app *applicant.Application) (string, Letter, error) {
	if app.Status != applicant.StatusAccepted && app.Status != applicant.StatusEnrolled {
		return "", Letter{}, ErrNotAccepted
	}

	letter := Letter{
		Reference:    fmt.Sprintf("CAMP-%d-%s", app.UserID, uuid.New().String()[:8]),
		Name:         app.ApplicantName(),
		University:   app.PersonalInfo.Data().University,
		Programme:    config.Catalog.Name,
		Organization: config.Catalog.Organization,
		Date:         time.Now().Format("2 January 2006"),
		StartDates:   config.Catalog.Dates.ProgrammeDates,
	}

	html, err := Render(letter)
	if err != nil {
		return "", Letter{}, err
	}

	key := fmt.Sprintf("offers/%d/%s.html", app.UserID, letter.Reference)
	if err := s.store.Put(ctx, key, html, "text/html; charset=utf-8"); err != nil {
		return "", Letter{}, err
	}

	link, err := s.store.PresignedGet(ctx, key, 24*time.Hour)
	if err != nil {
		return "", Letter{}, err
	}
	return link, letter, nil
}

var letterTmpl = template.Must(template.New("offer").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Offer Letter</title></head>
<body style="font-family: Georgia, 'Times New Roman', serif; max-width: 720px; margin: 0 auto; padding: 48px 40px; color: #1a1a2e;">
  <div style="text-align: center; margin-bottom: 40px;">
    <h1 style="font-size: 26px; margin: 0;">{{.Programme}}</h1>
    <p style="color: #6b7280; font-size: 14px; margin: 4px 0 0;">{{.Organization}}</p>
  </div>
  <p style="text-align: right; color: #6b7280;">{{.Date}}<br>Ref: {{.Reference}}</p>
  <h2 style="font-size: 20px;">Offer of Tutor Position</h2>
  <p style="line-height: 1.7;">Dear <strong>{{.Name}}</strong>,</p>
  <p style="line-height: 1.7;">
    Following the review of your application, we are delighted to offer you a position as a
    tutor on the {{.Programme}}. Your application stood out among a highly competitive pool
    of candidates, and the selection committee was impressed by your academic record at
    {{.University}} and your commitment to mentoring.
  </p>
  <p style="line-height: 1.7;">
    The programme runs {{.StartDates}}. Details of onboarding and training will follow by
    email. Please confirm your participation through your portal account.
  </p>
  <p style="line-height: 1.7; margin-top: 40px;">Yours sincerely,<br><br>
  The Selection Committee<br>{{.Organization}}</p>
</body>
</html>`))

// Render produces the HTML document for a letter. Kept separate from
// Generate so it can be tested without an object store.
func Render(letter Letter) ([]byte, error) {
	var buf bytes.Buffer
	if err := letterTmpl.Execute(&buf, letter); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
