package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"path"
	"strings"
	texttemplate "text/template"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/models"

	"github.com/resend/resend-go/v2"
)

//go:embed emails/*.html emails/*.txt
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders emails/<name>.html and emails/<name>.txt. The HTML
// part is escaped; the text part is not.
func loadTemplate(templateName string, data interface{}) (html string, text string, err error) {
	htmlPath := path.Join("emails", templateName+".html")
	htmlTmpl, err := template.ParseFS(emailTemplates, htmlPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlPath, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlPath, err)
	}

	textPath := path.Join("emails", templateName+".txt")
	textTmpl, err := texttemplate.ParseFS(emailTemplates, textPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textPath, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textPath, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}
	if email.ReplyTo != "" {
		params.ReplyTo = email.ReplyTo
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	if email.ReplyTo != "" {
		log.Printf("Reply-To: %s", email.ReplyTo)
	}
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email on a goroutine so handlers don't block on
// the Resend API. onSent runs after a successful send and may be nil.
func SendEmailAsync(cfg *config.Config, email *Email, onSent func()) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
			return
		}
		if onSent != nil {
			onSent()
		}
	}(cfg, emailCopy)
}

// LeadEmailData contains data for the lead email templates
type LeadEmailData struct {
	Name         string
	Email        string
	ProjectType  string
	Budget       string
	Timeline     string
	Requirements string
	ReceivedAt   string
	AdminURL     string
}

func newLeadEmailData(lead *models.Lead, appURL string) LeadEmailData {
	received := lead.CreatedAt
	if received.IsZero() {
		received = time.Now()
	}
	return LeadEmailData{
		Name:         lead.Name,
		Email:        lead.Email,
		ProjectType:  lead.ProjectType,
		Budget:       lead.Budget,
		Timeline:     lead.Timeline,
		Requirements: lead.Requirements,
		ReceivedAt:   received.Format("02 Jan 2006 15:04 MST"),
		AdminURL:     strings.TrimSuffix(appURL, "/") + "/admin/leads",
	}
}

// BuildLeadNotificationEmail tells the team about a new lead. Replies go to
// the lead.
func BuildLeadNotificationEmail(notifyTo string, lead *models.Lead, appURL string) (*Email, error) {
	html, text, err := loadTemplate("lead_notification", newLeadEmailData(lead, appURL))
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       []string{notifyTo},
		ReplyTo:  lead.Email,
		Subject:  fmt.Sprintf("New %s enquiry from %s", lead.ProjectType, lead.Name),
		HTMLBody: html,
		TextBody: text,
	}, nil
}

// BuildLeadAcknowledgementEmail confirms receipt to the person who submitted
// the form
func BuildLeadAcknowledgementEmail(lead *models.Lead) (*Email, error) {
	html, text, err := loadTemplate("lead_acknowledgement", newLeadEmailData(lead, ""))
	if err != nil {
		return nil, err
	}
	return &Email{
		To:       []string{lead.Email},
		Subject:  "We received your project request",
		HTMLBody: html,
		TextBody: text,
	}, nil
}
