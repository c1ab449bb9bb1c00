package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"techforge_app_go/middleware"
	"techforge_app_go/models"
	"techforge_app_go/services"
	"techforge_app_go/services/analytics"
	"techforge_app_go/services/flow"
	"techforge_app_go/templates/components"
	"techforge_app_go/templates/pages"
	"techforge_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// TurnstileHeader carries the CAPTCHA token for JSON submissions
const TurnstileHeader = "CF-Turnstile-Response"

var requiredMessages = map[string]string{
	flow.FieldName:         "Name is required",
	flow.FieldEmail:        "Email is required",
	flow.FieldProjectType:  "Please select a project type",
	flow.FieldRequirements: "Please describe your requirements",
}

func contactFormData(c echo.Context, values flow.LeadForm, errs map[string]string, msg string) components.ContactFormData {
	cfg := getConfig(c)
	return components.ContactFormData{
		Values:           values,
		Errors:           errs,
		Message:          msg,
		CSRFToken:        middleware.GetCSRFToken(c),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}
}

// ContactFormPartialHandler renders an empty contact form
func ContactFormPartialHandler(c echo.Context) error {
	data := contactFormData(c, flow.LeadForm{}, nil, "")
	return render(c, http.StatusOK, partials.ContactForm(c.Request().Context(), data))
}

// rejectContact answers a refused submission in the caller's format. htmx
// gets the form back with 200 so the swap keeps the typed values.
func rejectContact(c echo.Context, status int, values flow.LeadForm, errs map[string]string, msg string) error {
	Analytics.Record(analytics.FormSubmission(flow.ContactFormName, false).WithClient(clientID(c)))

	switch {
	case isHTMX(c):
		return render(c, http.StatusOK, partials.ContactForm(c.Request().Context(), contactFormData(c, values, errs, msg)))
	case wantsJSON(c):
		body := map[string]interface{}{"success": false, "error": msg}
		if len(errs) > 0 {
			body["fields"] = errs
		}
		return c.JSON(status, body)
	default:
		cfg := getConfig(c)
		settings := siteSettings(cfg, middleware.GetCSRFToken(c))
		return render(c, status, pages.Landing(c.Request().Context(), settings, contactFormData(c, values, errs, msg)))
	}
}

func turnstileToken(c echo.Context) string {
	if token := c.Request().Header.Get(TurnstileHeader); token != "" {
		return token
	}
	if middleware.SkipJSONRequests(c) {
		return ""
	}
	return c.FormValue("cf-turnstile-response")
}

// SubmitContactHandler accepts a lead as JSON, an htmx form post or a plain
// form post
func SubmitContactHandler(c echo.Context) error {
	cfg := getConfig(c)
	ctx := c.Request().Context()

	var form flow.LeadForm
	if err := c.Bind(&form); err != nil {
		return rejectContact(c, http.StatusBadRequest, form, nil, "Invalid request")
	}

	if missing := form.MissingRequired(); len(missing) > 0 {
		errs := make(map[string]string, len(missing))
		for _, field := range missing {
			errs[field] = requiredMessages[field]
		}
		return rejectContact(c, http.StatusBadRequest, form, errs, "Please fill in all required fields")
	}

	// Validate Turnstile CAPTCHA (if configured)
	if cfg.TurnstileSecretKey != "" {
		token := turnstileToken(c)
		if token == "" {
			return rejectContact(c, http.StatusBadRequest, form, nil, "Please complete the CAPTCHA")
		}
		if err := services.VerifyTurnstileToken(ctx, token, cfg.TurnstileSecretKey, c.RealIP()); err != nil {
			c.Logger().Warnf("Turnstile verification failed: %v", err)
			return rejectContact(c, http.StatusBadRequest, form, nil, "CAPTCHA verification failed")
		}
	}

	source := models.LeadSourceWeb
	if middleware.SkipJSONRequests(c) {
		source = models.LeadSourceAPI
	}

	leads := leadService()
	lead, err := leads.Create(ctx, services.LeadInput{
		Name:         form.Name,
		Email:        form.Email,
		ProjectType:  form.ProjectType,
		Budget:       form.Budget,
		Timeline:     form.Timeline,
		Requirements: form.Requirements,
		Source:       source,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
	})
	if err != nil {
		var verr *services.LeadValidationError
		if errors.As(err, &verr) {
			return rejectContact(c, http.StatusBadRequest, form, verr.Fields, verr.First())
		}
		log.Printf("[LEAD] %v", err)
		return rejectContact(c, http.StatusInternalServerError, form, nil,
			"We couldn't send your inquiry right now. Please try again or email "+components.ContactEmail+".")
	}

	log.Printf("[LEAD] Received %s lead %s (%s)", lead.Source, lead.ID, strings.ToLower(lead.ProjectType))
	Analytics.Record(analytics.FormSubmission(flow.ContactFormName, true).WithClient(clientID(c)))
	services.NotifyLeadAsync(cfg, leads, lead)

	switch {
	case isHTMX(c):
		return render(c, http.StatusOK, partials.ContactSuccess(ctx))
	case wantsJSON(c):
		return c.JSON(http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      lead.ID,
		})
	default:
		return c.Redirect(http.StatusSeeOther, "/?submitted=1#contact")
	}
}
