// Package partials renders the fragments htmx swaps into the landing page
package partials

import (
	"context"

	"techforge_app_go/models"
	"techforge_app_go/templates/components"

	"github.com/a-h/templ"
)

// ProjectModal renders the open catalog modal for a category
func ProjectModal(ctx context.Context, category models.Category, listings []models.ProjectListing, failed bool) templ.Component {
	return components.Templ(components.ProjectModal(components.ProjectModalData{
		Category: category,
		Listings: listings,
		Failed:   failed,
	}))
}

// ModalClosed empties the modal; prefill preselects the contact project type
func ModalClosed(ctx context.Context, prefill string) templ.Component {
	return components.Templ(components.ModalClosed(prefill))
}

// ContactForm renders the lead form with values and errors
func ContactForm(ctx context.Context, data components.ContactFormData) templ.Component {
	return components.Templ(components.ContactForm(data))
}

// ContactSuccess renders the thank-you state
func ContactSuccess(ctx context.Context) templ.Component {
	return components.Templ(components.ContactSuccess())
}
