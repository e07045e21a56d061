package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type IMailService interface {
	// SendTrainingNotification tells a user their training job reached a
	// terminal state.
	SendTrainingNotification(ctx context.Context, to, username, subject, message string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// MailConfig holds mail provider + branding config.
type MailConfig struct {
	APIKey     string // Resend API key
	From       string // e.g. "Artify AI <onboarding@resend.dev>"
	AppName    string
	AppBaseURL string // e.g. "https://artify.example.com"
}

type resendMailService struct {
	cfg     MailConfig
	client  *resend.Client
	htmlTpl *template.Template
	textTpl *template.Template
	logger  *zap.Logger
}

func NewResendMailService(cfg MailConfig, logger *zap.Logger) (IMailService, error) {
	htmlTpl, err := template.New("mailHTML").Parse(baseHTMLTemplate)
	if err != nil {
		return nil, err
	}
	textTpl, err := template.New("mailText").Parse(plainTextTemplate)
	if err != nil {
		return nil, err
	}

	return &resendMailService{
		cfg:     cfg,
		client:  resend.NewClient(cfg.APIKey),
		htmlTpl: htmlTpl,
		textTpl: textTpl,
		logger:  logger,
	}, nil
}

func (s *resendMailService) SendTrainingNotification(ctx context.Context, to, username, subject, message string) error {
	intro := message
	if username != "" {
		intro = fmt.Sprintf("Hi %s, %s", username, message)
	}
	html, text, err := s.renderEmail(emailData{
		Title:   subject,
		Intro:   intro,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subject, html, text)
}

func (s *resendMailService) SendPasswordReset(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Reset your password"

	html, text, err := s.renderEmail(emailData{
		Title:     subject,
		Intro:     "We received a request to reset your password. Click the button below to continue. If you didn't request this, you can safely ignore this email.",
		ButtonURL: link,
		ButtonTxt: "Reset Password",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, to, subject, html, text)
}

func (s *resendMailService) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	})
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	s.logger.Debug("mail sent", zap.String("to", to), zap.String("id", sent.Id))
	return nil
}

type emailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

func (s *resendMailService) renderEmail(data emailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; color: #ffffff;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container { width: 100%; max-width: 600px; margin: 0 auto; background: #1e293b;
      border-radius: 16px; overflow: hidden; }
    .header { padding: 32px 32px 24px; border-bottom: 1px solid rgba(148, 163, 184, 0.1); }
    .brand { font-weight: 700; letter-spacing: 0.5px; font-size: 22px; color: #60a5fa;
      text-transform: uppercase; }
    .hero { padding: 40px 32px; }
    h1 { margin: 0 0 16px; font-size: 28px; font-weight: 700; color: #f1f5f9; line-height: 1.3; }
    p { margin: 0 0 20px; line-height: 1.7; color: #cbd5e1; font-size: 16px; }
    .btn { display: inline-block; padding: 16px 32px; background: #2563eb;
      color: #ffffff !important; text-decoration: none; border-radius: 12px; font-weight: 600; }
    .muted { color: #94a3b8; font-size: 13px; line-height: 1.6; margin: 0; }
    .footer { padding: 24px 32px; color: #64748b; font-size: 13px; text-align: center;
      border-top: 1px solid rgba(148, 163, 184, 0.1); }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header">
        <div class="brand">{{.AppName}}</div>
      </div>
      <div class="hero">
        <h1>{{.Title}}</h1>
        <p>{{.Intro}}</p>
        {{if .ButtonURL}}
          <div><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></div>
          <p class="muted">If the button doesn't work, copy and paste this link into your browser:<br>{{.ButtonURL}}</p>
        {{end}}
      </div>
      <div class="footer">
        &copy; {{.Year}} {{.AppName}}. All rights reserved.
      </div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Open this link:
{{.ButtonURL}}
{{end}}

- {{.AppName}} (c) {{.Year}}
`
