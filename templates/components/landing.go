package components

import (
	"strconv"
	"strings"
	"time"

	"techforge_app_go/models"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// section renders a page section addressable by id, class and data-section,
// the three lookups the client scroll helper tries in order
func section(anchor, class string, children ...g.Node) g.Node {
	return Section(
		ID(anchor),
		Class("section "+anchor+" "+class),
		Data("section", anchor),
		g.Group(children),
	)
}

// trackClick marks an element whose clicks are sent as button events
func trackClick(name, location string) g.Node {
	return g.Group([]g.Node{
		Data("track", "button"),
		Data("track-label", name+" - "+location),
	})
}

// reveal sets class plus a staggered entrance animation by sibling index
func reveal(p AnimationPreset, i int, class string) g.Node {
	return g.Group([]g.Node{
		Class(strings.TrimSpace(class + " reveal")),
		g.Attr("style", p.Delay(i)),
	})
}

// Navbar is the fixed header. Its height is the header offset the scroll
// helper subtracts.
func Navbar(headerOffset int) g.Node {
	return Header(
		Class("navbar"),
		g.Attr("style", "--header-height: "+strconv.Itoa(headerOffset)+"px;"),
		Div(
			Class("container navbar-inner"),
			A(Class("brand"), Href("#home"), Data("nav", "home"),
				Span(Class("brand-mark"), g.Text("</>")),
				Span(Class("brand-name"), g.Text(SiteName)),
			),
			Nav(
				Class("nav-links"),
				Aria("label", "Main"),
				g.Group(g.Map(NavItems, func(item string) g.Node {
					dest := strings.ToLower(item)
					return A(Href("#"+dest), Data("nav", dest), g.Text(item))
				})),
			),
		),
	)
}

// Hero is the opening section
func Hero(p AnimationPreset) g.Node {
	return section("home", "hero",
		Div(
			Class("container hero-inner"),
			Div(Class("hero-badge reveal"), g.Text("✨ Premium Student Projects")),
			H1(reveal(p, 1, "hero-title"),
				g.Text("Premium Student "),
				Span(Class("gradient-text"), g.Text("Projects")),
			),
			P(reveal(p, 2, "hero-lead"),
				g.Text("Get high-quality, production-ready projects for AI/ML, Web Development, Full-Stack, Mobile Apps, and more. "+
					"Perfect for students looking to excel in their coursework and build impressive portfolios."),
			),
			Div(reveal(p, 3, "hero-actions"),
				A(Class("btn btn-primary"), Href("#projects"), Data("scroll", "projects"), trackClick("Browse Projects", "Hero"),
					g.Text("Browse Projects →")),
				A(Class("btn btn-outline"), Href("#contact"), Data("scroll", "contact"), trackClick("Get Custom Project", "Hero"),
					g.Text("Get Custom Project")),
			),
			Ul(reveal(p, 4, "hero-stats"),
				g.Group(g.Map(HeroStats, func(s Stat) g.Node {
					return Li(Span(Class("stat-icon"), g.Text(s.Icon)), Span(g.Text(s.Value)))
				})),
			),
		),
	)
}

// About lists the value propositions
func About(p AnimationPreset) g.Node {
	cards := make([]g.Node, 0, len(Features))
	for i, f := range Features {
		cards = append(cards, Div(reveal(p, i, "feature-card"),
			Div(Class("feature-icon"), g.Text(f.Icon)),
			H3(g.Text(f.Title)),
			P(g.Text(f.Description)),
		))
	}

	return section("about", "",
		Div(
			Class("container"),
			Div(Class("section-heading reveal"),
				H2(g.Text("Why Choose "+SiteName+"?")),
				P(g.Text("We specialize in creating high-quality projects that help students excel in their academic journey")),
			),
			Div(Class("feature-grid"), g.Group(cards)),
			Div(Class("about-cta reveal"),
				H3(g.Text("Ready to Start Your Project?")),
				P(g.Text("Join thousands of students who have successfully completed their projects with us")),
				A(Class("btn btn-primary"), Href("#contact"), Data("scroll", "contact"), trackClick("Get Started Today", "About"),
					g.Text("Get Started Today")),
			),
		),
	)
}

// Projects renders the category grid and the empty modal container that
// category requests swap into. All modal requests share one hx-sync point so
// a newer request replaces any in-flight one.
func Projects(p AnimationPreset) g.Node {
	cards := make([]g.Node, 0)
	for i, c := range models.Categories() {
		cards = append(cards, Button(
			Type("button"),
			reveal(p, i, "category-card"),
			Data("category", c.ID),
			Data("category-title", c.Title),
			hx("get", "/projects/"+c.ID),
			hx("target", "#project-modal"),
			hx("swap", "innerHTML"),
			hx("sync", ModalSync),
			H3(g.Text(c.Title)),
			P(g.Text(c.Description)),
			Span(Class("category-count"), g.Text(c.DisplayCount)),
			Span(Class("category-cta"), g.Text("View Projects →")),
		))
	}

	return section("projects", "",
		Div(
			Class("container"),
			Div(Class("section-heading reveal"),
				H2(g.Text("Project Categories")),
				P(g.Text("Explore our extensive collection of projects across various technology domains")),
			),
			Div(Class("category-grid"), g.Group(cards)),
		),
		Div(ID(ModalID), Class("modal-root"), Aria("live", "polite")),
		g.El("template", ID("modal-loading"), ModalLoading(models.Category{})),
	)
}

// Contact renders the contact section around the lead form
func Contact(form g.Node) g.Node {
	return section("contact", "",
		Div(
			Class("container"),
			Div(Class("section-heading reveal"),
				H2(g.Text("Get Your Dream Project")),
				P(g.Text("Ready to get started? Fill out the form below and we'll get back to you with a custom quote")),
			),
			Div(Class("contact-grid"),
				form,
				Aside(Class("contact-info"),
					H3(g.Text("Get in Touch")),
					Dl(
						Dt(g.Text("Email")),
						Dd(A(Href("mailto:"+ContactEmail), g.Text(ContactEmail))),
						Dt(g.Text("Location")),
						Dd(g.Text(Location)),
					),
					H4(g.Text("Quick Response")),
					P(g.Text("We typically respond to all inquiries within 24 hours. For urgent projects, please mention it in your requirements.")),
				),
			),
		),
	)
}

// SiteFooter renders the site footer
func SiteFooter(now time.Time) g.Node {
	return Footer(
		Class("footer"),
		Div(
			Class("container footer-grid"),
			Div(Class("footer-brand"),
				Span(Class("brand-name"), g.Text(SiteName)),
				P(g.Text("Empowering students with premium projects across AI/ML, Web Development, Mobile Apps, and more. Your success is our mission.")),
			),
			g.Group(g.Map(FooterSections, func(s FooterSection) g.Node {
				return Div(Class("footer-links"),
					H4(g.Text(s.Title)),
					Ul(g.Group(g.Map(s.Links, func(l NavLink) g.Node {
						return Li(A(Href(l.Href), Data("nav", strings.TrimPrefix(l.Href, "#")), g.Text(l.Name)))
					}))),
				)
			})),
			Div(Class("footer-contact"),
				H4(g.Text("Contact Info")),
				P(A(Href("mailto:"+ContactEmail), g.Text(ContactEmail))),
				P(g.Text(Location)),
			),
		),
		P(Class("footer-copy"), g.Textf("© %d %s. All rights reserved. Crafted with ♥ for students.", now.Year(), SiteName)),
	)
}
