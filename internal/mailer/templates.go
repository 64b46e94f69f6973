package mailer

import (
	"bytes"
	"html/template"

	"github.com/jianshanacademy/camp-portal/internal/domain/applicant"
)

var submissionTmpl = template.Must(template.New("submission").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 40px 20px;">
  <div style="text-align: center; margin-bottom: 32px;">
    <h1 style="color: #1a1a2e; font-size: 24px; margin: 0;">Cambridge Tutor Programme</h1>
    <p style="color: #6b7280; font-size: 14px;">Jianshan Academy</p>
  </div>
  <div style="background: #f8fafc; border-radius: 12px; padding: 32px; margin-bottom: 24px;">
    <h2 style="color: #1a1a2e; font-size: 20px; margin-top: 0;">Application Received</h2>
    <p style="color: #374151; line-height: 1.6;">Dear {{.Name}},</p>
    <p style="color: #374151; line-height: 1.6;">
      Thank you for submitting your application to the Cambridge Academic Mentoring Programme.
      We have received your application and our team will review it shortly.
    </p>
    <p style="color: #374151; line-height: 1.6;">
      You can check the status of your application at any time by logging into your portal account.
    </p>
    <p style="color: #374151; line-height: 1.6;">We aim to respond within 15 working days.</p>
  </div>
  <div style="text-align: center; color: #9ca3af; font-size: 12px;">
    <p>Cambridge Tutor Programme | Jianshan Academy</p>
  </div>
</div>`))

var decisionTmpl = template.Must(template.New("decision").Parse(`
<div style="font-family: 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 40px 20px;">
  <div style="text-align: center; margin-bottom: 32px;">
    <h1 style="color: #1a1a2e; font-size: 24px; margin: 0;">Cambridge Tutor Programme</h1>
    <p style="color: #6b7280; font-size: 14px;">Jianshan Academy</p>
  </div>
  <div style="background: #f8fafc; border-radius: 12px; padding: 32px; margin-bottom: 24px;">
    <h2 style="color: #1a1a2e; font-size: 20px; margin-top: 0;">{{.Title}}</h2>
    <p style="color: #374151; line-height: 1.6;">Dear {{.Name}},</p>
    <p style="color: #374151; line-height: 1.6;">{{.Message}}</p>
  </div>
  <div style="text-align: center; color: #9ca3af; font-size: 12px;">
    <p>Cambridge Tutor Programme | Jianshan Academy</p>
  </div>
</div>`))

type decisionCopy struct {
	Title   string
	Message string
}

var decisionCopies = map[applicant.Decision]decisionCopy{
	applicant.DecisionAccepted: {
		Title:   "🎉 Congratulations!",
		Message: "We are delighted to inform you that your application has been accepted! Please log into your portal to view the details and confirm your participation.",
	},
	applicant.DecisionRejected: {
		Title:   "Application Update",
		Message: "After careful consideration, we regret to inform you that we are unable to offer you a position this time. We encourage you to apply again in the future.",
	},
	applicant.DecisionWaitlisted: {
		Title:   "Waitlisted",
		Message: "Your application has been placed on our waitlist. We will notify you if a position becomes available. Thank you for your patience.",
	},
}

func renderSubmission(name string) (string, error) {
	if name == "" {
		name = "Applicant"
	}
	var buf bytes.Buffer
	if err := submissionTmpl.Execute(&buf, struct{ Name string }{name}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderDecision(name string, decision applicant.Decision) (string, error) {
	if name == "" {
		name = "Applicant"
	}
	copy, ok := decisionCopies[decision]
	if !ok {
		copy = decisionCopies[applicant.DecisionRejected]
	}
	var buf bytes.Buffer
	err := decisionTmpl.Execute(&buf, struct {
		Name    string
		Title   string
		Message string
	}{name, copy.Title, copy.Message})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
