package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"public-vision-be/internal/config"
)

type Service interface {
	SendEscalationEmail(ctx context.Context, toEmail, name, complaintTitle string, complaintID string) error
	SendResolutionEmail(ctx context.Context, toEmail, name, complaintTitle string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var escalationTmpl = template.Must(template.New("escalation").Parse(`
<h2>Complaint Escalated</h2>
<p>Hi {{.Name}},</p>
<p>The complaint <strong>{{.Title}}</strong> (ref {{.Ref}}) passed its resolution
deadline and has been escalated. It now needs immediate attention.</p>
`))

var resolutionTmpl = template.Must(template.New("resolution").Parse(`
<h2>Complaint Resolved</h2>
<p>Hi {{.Name}},</p>
<p>Your complaint <strong>{{.Title}}</strong> has been marked as resolved.
Please rate the resolution in the app.</p>
`))

func (s *service) sendEmail(toEmail, subject string, tmpl *template.Template, data interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("PublicVision <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendEscalationEmail(ctx context.Context, toEmail, name, complaintTitle string, complaintID string) error {
	data := struct {
		Name  string
		Title string
		Ref   string
	}{
		Name:  name,
		Title: complaintTitle,
		Ref:   complaintID,
	}
	return s.sendEmail(toEmail, "Complaint escalated: "+complaintTitle, escalationTmpl, data)
}

func (s *service) SendResolutionEmail(ctx context.Context, toEmail, name, complaintTitle string) error {
	data := struct {
		Name  string
		Title string
	}{
		Name:  name,
		Title: complaintTitle,
	}
	return s.sendEmail(toEmail, "Complaint resolved: "+complaintTitle, resolutionTmpl, data)
}
