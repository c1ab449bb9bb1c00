package services

import (
	"testing"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLead() *models.Lead {
	return &models.Lead{
		ID:           "lead-1",
		CreatedAt:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Name:         "Asha <b>Rao</b>",
		Email:        "asha@example.com",
		ProjectType:  "AI/ML",
		Requirements: "Sentiment analysis & dashboard",
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Run("Renders both parts", func(t *testing.T) {
		html, text, err := loadTemplate("lead_acknowledgement", LeadEmailData{Name: "Asha", ProjectType: "AI/ML"})
		assert.NoError(t, err)
		assert.Contains(t, html, "Hi Asha")
		assert.Contains(t, text, "your AI/ML project")
	})

	t.Run("Template Not Found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", nil)
		assert.Error(t, err)
	})
}

func TestBuildLeadNotificationEmail(t *testing.T) {
	email, err := BuildLeadNotificationEmail("team@example.com", sampleLead(), "https://techforge.example/")
	require.NoError(t, err)

	assert.Equal(t, []string{"team@example.com"}, email.To)
	assert.Equal(t, "asha@example.com", email.ReplyTo)
	assert.Equal(t, "New AI/ML enquiry from Asha <b>Rao</b>", email.Subject)

	// HTML part escapes user text, the text part does not
	assert.Contains(t, email.HTMLBody, "Asha &lt;b&gt;Rao&lt;/b&gt;")
	assert.Contains(t, email.HTMLBody, "Sentiment analysis &amp; dashboard")
	assert.Contains(t, email.TextBody, "Sentiment analysis & dashboard")
	assert.Contains(t, email.TextBody, "Budget: Not specified")
	assert.Contains(t, email.TextBody, "https://techforge.example/admin/leads")
	assert.Contains(t, email.TextBody, "14 Mar 2026 10:30 UTC")
}

func TestBuildLeadAcknowledgementEmail(t *testing.T) {
	email, err := BuildLeadAcknowledgementEmail(sampleLead())
	require.NoError(t, err)
	assert.Equal(t, []string{"asha@example.com"}, email.To)
	assert.Empty(t, email.ReplyTo)
	assert.NotEmpty(t, email.HTMLBody)
	assert.NotEmpty(t, email.TextBody)
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: true,
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.NoError(t, err)
}

func TestSendEmailAsync_CallsOnSent(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}
	done := make(chan struct{})

	SendEmailAsync(cfg, &Email{To: []string{"test@example.com"}, TextBody: "Body"}, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onSent was not called")
	}
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "",
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "key",
	}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}
