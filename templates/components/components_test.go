package components

import (
	"strings"
	"testing"
	"time"

	"techforge_app_go/models"
	"techforge_app_go/services/flow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestPresetByName(t *testing.T) {
	assert.Equal(t, PresetFast, PresetByName("fast"))
	assert.Equal(t, PresetRelaxed, PresetByName(" Relaxed "))
	assert.Equal(t, PresetStandard, PresetByName("bouncy"))
	assert.Equal(t, PresetStandard, PresetByName(""))

	assert.Equal(t, "--anim-delay: 200ms;", PresetStandard.Delay(2))
	assert.Contains(t, PresetFast.CSSVariables(), "--anim-duration: 200ms;")
}

func TestLayout(t *testing.T) {
	html := render(t, Layout(PageConfig{
		Title:            "TechForge",
		Nonce:            "n0nce",
		CSRFToken:        "tok",
		CSSVersion:       "abc",
		HeaderOffset:     80,
		SettleDelay:      300 * time.Millisecond,
		TurnstileSiteKey: "site-key",
	}))

	assert.True(t, strings.HasPrefix(strings.ToLower(html), "<!doctype html>"))
	assert.Contains(t, html, "<title>TechForge</title>")
	assert.Contains(t, html, `nonce="n0nce"`)
	assert.Contains(t, html, "/static/css/site.css?v=abc")
	assert.Contains(t, html, "turnstile/v0/api.js")
	assert.Contains(t, html, `class="preset-standard"`)
	// JSON attributes are HTML-escaped
	assert.Contains(t, html, "&#34;headerOffset&#34;:80")
	assert.Contains(t, html, "&#34;settleDelay&#34;:300")
	assert.Contains(t, html, "&#34;X-CSRF-Token&#34;:&#34;tok&#34;")
}

func TestSectionsAreAddressable(t *testing.T) {
	html := render(t, g.Group([]g.Node{
		Hero(PresetStandard), About(PresetStandard), Projects(PresetStandard), Contact(ContactForm(ContactFormData{})),
	}))

	for _, anchor := range []string{"home", "about", "projects", "contact"} {
		assert.Contains(t, html, `id="`+anchor+`"`)
		assert.Contains(t, html, `data-section="`+anchor+`"`)
	}
	for _, c := range models.Categories() {
		assert.Contains(t, html, `hx-get="/projects/`+c.ID+`"`)
	}
	assert.Contains(t, html, `hx-sync="#projects:replace"`)
	assert.Contains(t, html, `id="project-modal"`)
}

func TestProjectModal(t *testing.T) {
	category, _ := models.GetCategory(models.CategoryAIML)

	t.Run("Listings", func(t *testing.T) {
		html := render(t, ProjectModal(ProjectModalData{
			Category: category,
			Listings: []models.ProjectListing{
				{ID: 1, Title: "Chatbot", Difficulty: models.DifficultyBeginner, Technologies: []string{"Python", "NLTK"}, Price: "₹1,500"},
				{ID: 2, Title: "Vision <Kit>", Difficulty: models.DifficultyExpert, Price: "₹2,500"},
			},
		}))
		assert.Contains(t, html, "AI/ML Projects")
		assert.Equal(t, 2, strings.Count(html, `class="listing-card"`))
		assert.Contains(t, html, `hx-get="/projects/close?listing=1"`)
		assert.Contains(t, html, "Vision &lt;Kit&gt;")
		assert.Contains(t, html, "₹1,500")
		assert.Contains(t, html, "Python")
	})

	t.Run("Empty", func(t *testing.T) {
		html := render(t, ProjectModal(ProjectModalData{Category: category}))
		assert.Contains(t, html, "No projects available")
		assert.NotContains(t, html, "listing-card")
	})

	t.Run("Failed", func(t *testing.T) {
		html := render(t, ProjectModal(ProjectModalData{Category: category, Failed: true}))
		assert.Contains(t, html, "couldn&#39;t load")
	})
}

func TestModalClosed(t *testing.T) {
	assert.Empty(t, render(t, ModalClosed("")))

	html := render(t, ModalClosed("Database"))
	assert.Contains(t, html, `hx-swap-oob="outerHTML"`)
	assert.Contains(t, html, `id="contact-projectType"`)
	assert.Contains(t, html, `<option value="Database" selected>Database</option>`)
}

func TestContactForm(t *testing.T) {
	t.Run("Keeps values and shows errors", func(t *testing.T) {
		html := render(t, ContactForm(ContactFormData{
			Values: flow.LeadForm{
				Name:         "Asha",
				Email:        "bad",
				ProjectType:  "AI/ML",
				Budget:       "₹2000+",
				Requirements: "A <b>chatbot</b>",
			},
			Errors:    map[string]string{"email": "Please enter a valid email address"},
			CSRFToken: "tok",
		}))

		assert.Contains(t, html, `value="Asha"`)
		assert.Contains(t, html, `<option value="₹2000+" selected>`)
		assert.Contains(t, html, "A &lt;b&gt;chatbot&lt;/b&gt;</textarea>")
		assert.Contains(t, html, "Please enter a valid email address")
		assert.Contains(t, html, `aria-invalid="true"`)
		assert.Contains(t, html, `name="_csrf" value="tok"`)
		assert.NotContains(t, html, "cf-turnstile")
	})

	t.Run("Required fields", func(t *testing.T) {
		html := render(t, ContactForm(ContactFormData{TurnstileSiteKey: "k"}))
		assert.Equal(t, len(flow.RequiredFields), strings.Count(html, " required"))
		assert.Contains(t, html, `data-sitekey="k"`)
	})

	t.Run("Submitted", func(t *testing.T) {
		html := render(t, ContactForm(ContactFormData{Submitted: true, Values: flow.LeadForm{Name: "Asha"}}))
		assert.Contains(t, html, "Thank You!")
		assert.NotContains(t, html, "Asha")
	})
}

func TestContactSuccess(t *testing.T) {
	html := render(t, ContactSuccess())
	assert.Contains(t, html, "Thank You!")
	assert.Contains(t, html, `hx-get="/partials/contact-form"`)
	assert.Contains(t, html, `id="contact-form-container"`)
}

func TestSiteFooter(t *testing.T) {
	html := render(t, SiteFooter(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Contains(t, html, "© 2026 TechForge")
	assert.Contains(t, html, ContactEmail)
}
