package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one variant of Event
type Kind string

const (
	KindPageView           Kind = "page_view"
	KindButtonClick        Kind = "button_click"
	KindFormSubmission     Kind = "form_submission"
	KindProjectView        Kind = "project_view"
	KindContactInteraction Kind = "contact_interaction"
	KindNavigation         Kind = "navigation"
	KindScrollDepth        Kind = "scroll_depth"
	KindTimeOnPage         Kind = "time_on_page"
)

// Event categories as reported to the analytics backend
const (
	CategoryButton          = "button"
	CategoryForm            = "form"
	CategoryProjectCategory = "project_category"
	CategoryContactForm     = "contact_form"
	CategoryNavigation      = "navigation"
	CategoryEngagement      = "engagement"
	CategoryPage            = "page"
)

// Priority lets a saturated dispatcher shed the least useful events first
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLow
)

// Event is a closed set of engagement events. Build values with the
// constructors below; the zero Event is invalid.
type Event struct {
	Kind     Kind
	Action   string
	Category string
	Label    string
	Value    *int
	Priority Priority
	ClientID string
}

var ErrUnknownEvent = errors.New("unknown analytics event")

func intPtr(v int) *int { return &v }

// PageView records a page load
func PageView(path, title string) Event {
	label := path
	if title != "" {
		label = path + " | " + title
	}
	return Event{Kind: KindPageView, Action: "page_view", Category: CategoryPage, Label: label}
}

// ButtonClick records a call-to-action click at a page location
func ButtonClick(name, location string) Event {
	return Event{Kind: KindButtonClick, Action: "click", Category: CategoryButton, Label: name + " - " + location}
}

// FormSubmission records the outcome of a form submission (value 1 or 0)
func FormSubmission(form string, success bool) Event {
	v := 0
	if success {
		v = 1
	}
	return Event{Kind: KindFormSubmission, Action: "submit", Category: CategoryForm, Label: form, Value: intPtr(v)}
}

// ProjectView records a category being opened in the catalog
func ProjectView(categoryID string) Event {
	return Event{Kind: KindProjectView, Action: "view", Category: CategoryProjectCategory, Label: categoryID}
}

// ContactInteraction records a contact form interaction. Field updates are
// low priority.
func ContactInteraction(action, field string) Event {
	e := Event{Kind: KindContactInteraction, Action: action, Category: CategoryContactForm, Label: field}
	if action == "field_update" {
		e.Priority = PriorityLow
	}
	return e
}

// Navigation records a header or footer navigation click
func Navigation(destination string) Event {
	return Event{Kind: KindNavigation, Action: "click", Category: CategoryNavigation, Label: destination}
}

// ScrollDepth records a scroll milestone in percent
func ScrollDepth(percentage int) Event {
	return Event{
		Kind:     KindScrollDepth,
		Action:   "scroll",
		Category: CategoryEngagement,
		Label:    strconv.Itoa(percentage) + "%",
		Value:    intPtr(percentage),
		Priority: PriorityLow,
	}
}

// TimeOnPage records seconds spent on the page
func TimeOnPage(seconds int) Event {
	return Event{Kind: KindTimeOnPage, Action: "timing", Category: CategoryEngagement, Label: "time_on_page", Value: intPtr(seconds)}
}

// WithClient tags the event with an anonymous client id
func (e Event) WithClient(clientID string) Event {
	e.ClientID = clientID
	return e
}

// Valid reports whether the event was built by one of the constructors
func (e Event) Valid() bool {
	return e.Kind != "" && e.Action != "" && e.Category != ""
}

// Payload is the wire form of an event sent by browsers and terminal clients
type Payload struct {
	Action   string `json:"action" form:"action"`
	Category string `json:"category" form:"category"`
	Label    string `json:"label,omitempty" form:"label"`
	Value    *int   `json:"value,omitempty" form:"value"`
	ClientID string `json:"client_id,omitempty" form:"client_id"`
}

// ToPayload converts an event to its wire form
func (e Event) ToPayload() Payload {
	return Payload{Action: e.Action, Category: e.Category, Label: e.Label, Value: e.Value, ClientID: e.ClientID}
}

// ParseEvent rebuilds an Event from its wire form, rejecting any
// action/category pair no constructor produces.
func ParseEvent(p Payload) (Event, error) {
	action := strings.TrimSpace(p.Action)
	label := strings.TrimSpace(p.Label)

	var e Event
	switch p.Category {
	case CategoryButton:
		if action != "click" {
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
		e = Event{Kind: KindButtonClick, Action: action, Category: CategoryButton, Label: label}
	case CategoryForm:
		if action != "submit" || p.Value == nil {
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
		e = FormSubmission(label, *p.Value == 1)
	case CategoryProjectCategory:
		if action != "view" {
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
		e = ProjectView(label)
	case CategoryContactForm:
		if action == "" {
			return Event{}, fmt.Errorf("%w: empty contact form action", ErrUnknownEvent)
		}
		e = ContactInteraction(action, label)
	case CategoryNavigation:
		if action != "click" {
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
		e = Navigation(label)
	case CategoryEngagement:
		switch {
		case action == "scroll" && p.Value != nil:
			e = ScrollDepth(*p.Value)
		case action == "timing" && p.Value != nil:
			e = TimeOnPage(*p.Value)
		default:
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
	case CategoryPage:
		if action != "page_view" {
			return Event{}, fmt.Errorf("%w: %s/%s", ErrUnknownEvent, action, p.Category)
		}
		e = Event{Kind: KindPageView, Action: action, Category: CategoryPage, Label: label}
	default:
		return Event{}, fmt.Errorf("%w: category %q", ErrUnknownEvent, p.Category)
	}

	return e.WithClient(p.ClientID), nil
}
