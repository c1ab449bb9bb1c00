package components

import (
	"strconv"

	"techforge_app_go/models"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	// ModalID is the container every modal response swaps into
	ModalID = "project-modal"
	// ModalSync makes a new modal request abort the one in flight
	ModalSync = "#projects:replace"
)

// ProjectModalData is the modal view of one category
type ProjectModalData struct {
	Category models.Category
	Listings []models.ProjectListing
	// Failed marks an empty list caused by a fetch error
	Failed bool
}

func modalRequest(path string) g.Node {
	return g.Group([]g.Node{
		hx("get", path),
		hx("target", "#"+ModalID),
		hx("swap", "innerHTML"),
		hx("sync", ModalSync),
	})
}

// ProjectModal renders the open modal for a category
func ProjectModal(d ProjectModalData) g.Node {
	var content g.Node
	switch {
	case d.Failed:
		content = P(Class("modal-empty"), g.Text("We couldn't load these projects right now. Please try again in a moment."))
	case len(d.Listings) == 0:
		content = P(Class("modal-empty"), g.Text("No projects available in this category yet. Contact us for a custom project."))
	default:
		content = Ul(Class("listing-grid"), g.Group(g.Map(d.Listings, ListingCard)))
	}

	return Div(
		Class("modal-backdrop"),
		Data("modal", "open"),
		Data("category", d.Category.ID),
		Div(
			Class("modal"),
			Role("dialog"),
			Aria("modal", "true"),
			Aria("labelledby", "project-modal-title"),
			Div(Class("modal-header"),
				H3(ID("project-modal-title"), g.Text(d.Category.Title)),
				Button(Type("button"), Class("modal-close"), Aria("label", "Close"), Data("modal-close", ""),
					modalRequest("/projects/close"),
					g.Text("×"),
				),
			),
			Div(Class("modal-body"), content),
		),
	)
}

// ListingCard renders one listing inside the modal
func ListingCard(l models.ProjectListing) g.Node {
	return Li(
		Class("listing-card"),
		Data("listing", strconv.Itoa(l.ID)),
		Div(Class("listing-head"),
			H4(g.Text(l.Title)),
			Span(Class("difficulty difficulty-"+l.Difficulty), g.Text(l.Difficulty)),
		),
		P(Class("listing-description"), g.Text(l.Description)),
		Ul(Class("tech-list"), g.Group(g.Map(l.Technologies, func(t string) g.Node {
			return Li(Class("tech-chip"), g.Text(t))
		}))),
		Div(Class("listing-foot"),
			Span(Class("price"), g.Text(l.Price)),
			Button(Type("button"), Class("btn btn-primary btn-small"),
				modalRequest("/projects/close?listing="+strconv.Itoa(l.ID)),
				g.Text("Get Project"),
			),
		),
	)
}

// ModalLoading is the loading state. The page ships it in a template
// element that the client copies into the modal when a category request
// starts.
func ModalLoading(c models.Category) g.Node {
	return Div(
		Class("modal-backdrop"),
		Data("modal", "loading"),
		Div(Class("modal"), Role("dialog"), Aria("modal", "true"), Aria("busy", "true"),
			Div(Class("modal-header"), H3(g.Text(c.Title))),
			Div(Class("modal-body"), P(Class("modal-loading"), g.Text("Loading projects…"))),
		),
	)
}

// ModalClosed is the response to a close request. When the close is a Get
// Project hand-off the contact project type is preselected out of band.
func ModalClosed(prefill string) g.Node {
	if prefill == "" {
		return g.Text("")
	}
	return ProjectTypeSelect(prefill, "", true)
}
