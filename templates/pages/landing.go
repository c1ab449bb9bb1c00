package pages

import (
	"context"
	"time"

	"techforge_app_go/middleware"
	"techforge_app_go/templates/components"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Settings are the per-site values a page needs from configuration
type Settings struct {
	Title            string
	Description      string
	AnimationPreset  string
	HeaderOffset     int
	SettleDelay      time.Duration
	TurnstileSiteKey string
	CSRFToken        string
}

// pageConfig combines settings with the request-scoped nonce and the asset
// versions computed at startup
func pageConfig(ctx context.Context, s Settings) components.PageConfig {
	return components.PageConfig{
		Title:            s.Title,
		Description:      s.Description,
		Nonce:            middleware.GetNonce(ctx),
		CSRFToken:        s.CSRFToken,
		CSSVersion:       middleware.GetCSSVersion(ctx),
		JSVersion:        middleware.GetJSVersion(ctx),
		FaviconVersion:   middleware.GetFaviconVersion(ctx),
		Preset:           components.PresetByName(s.AnimationPreset),
		HeaderOffset:     s.HeaderOffset,
		SettleDelay:      s.SettleDelay,
		TurnstileSiteKey: s.TurnstileSiteKey,
	}
}

// Landing renders the single page site: hero, about, projects, contact and
// footer
func Landing(ctx context.Context, s Settings, form components.ContactFormData) templ.Component {
	cfg := pageConfig(ctx, s)
	form.CSRFToken = s.CSRFToken
	form.TurnstileSiteKey = s.TurnstileSiteKey

	return components.Templ(components.Layout(cfg,
		components.Navbar(cfg.HeaderOffset),
		Main(
			components.Hero(cfg.Preset),
			components.About(cfg.Preset),
			components.Projects(cfg.Preset),
			components.Contact(components.ContactForm(form)),
		),
		components.SiteFooter(time.Now()),
		g.El("noscript", P(Class("noscript"), g.Text("Project details open in a dialog that needs JavaScript. You can still send us an inquiry below."))),
	))
}
