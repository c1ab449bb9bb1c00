package components

import (
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

const turnstileSrc = "https://challenges.cloudflare.com/turnstile/v0/api.js"

// PageConfig carries everything the layout needs from the request
type PageConfig struct {
	Title       string
	Description string

	Nonce          string
	CSRFToken      string
	CSSVersion     string
	JSVersion      string
	FaviconVersion string

	Preset           AnimationPreset
	HeaderOffset     int
	SettleDelay      time.Duration
	TurnstileSiteKey string
}

// flowSettings is read by static/js/site.js from the body's data-flow attribute
type flowSettings struct {
	HeaderOffset int    `json:"headerOffset"`
	SettleDelay  int64  `json:"settleDelay"`
	Preset       string `json:"preset"`
	Stagger      int    `json:"stagger"`
}

func nonce(n string) g.Node {
	return g.If(n != "", g.Attr("nonce", n))
}

// Layout wraps body sections in the document shell
func Layout(cfg PageConfig, body ...g.Node) g.Node {
	if cfg.Preset.Name == "" {
		cfg.Preset = PresetStandard
	}
	settings := flowSettings{
		HeaderOffset: cfg.HeaderOffset,
		SettleDelay:  cfg.SettleDelay.Milliseconds(),
		Preset:       cfg.Preset.Name,
		Stagger:      cfg.Preset.Stagger,
	}

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(cfg.Title)),
				g.If(cfg.Description != "", Meta(Name("description"), Content(cfg.Description))),
				Link(Rel("icon"), Type("image/svg+xml"), Href("/static/images/favicon.svg?v="+cfg.FaviconVersion)),
				Link(Rel("stylesheet"), Href("/static/css/site.css?v="+cfg.CSSVersion)),
				Script(Src(htmxSrc), nonce(cfg.Nonce), Defer()),
				Script(Src("/static/js/site.js?v="+cfg.JSVersion), nonce(cfg.Nonce), Defer()),
				g.If(cfg.TurnstileSiteKey != "", Script(Src(turnstileSrc), nonce(cfg.Nonce), Async(), Defer())),
			),
			Body(
				Class("preset-"+cfg.Preset.Name),
				g.Attr("style", cfg.Preset.CSSVariables()),
				g.Attr("data-flow", JSON(settings)),
				hx("headers", JSON(map[string]string{"X-CSRF-Token": cfg.CSRFToken})),
				g.Group(body),
			),
		),
	)
}
