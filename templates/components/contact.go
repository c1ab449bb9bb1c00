package components

import (
	"techforge_app_go/models"
	"techforge_app_go/services/flow"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ContactFormID is the container the form and its success state swap into
const ContactFormID = "contact-form-container"

// ContactFormData is the state the contact form renders
type ContactFormData struct {
	Values flow.LeadForm
	// Errors maps field names to messages
	Errors map[string]string
	// Message is shown above the form for errors not tied to a field
	Message          string
	CSRFToken        string
	TurnstileSiteKey string
	// Submitted renders the thank-you state instead of the form
	Submitted bool
}

func label(children ...g.Node) g.Node {
	return g.El("label", children...)
}

func fieldID(name string) string {
	return "contact-" + name
}

func fieldError(errs map[string]string, name string) g.Node {
	msg, ok := errs[name]
	if !ok {
		return nil
	}
	return P(Class("field-error"), ID(fieldID(name)+"-error"), g.Text(msg))
}

func invalid(errs map[string]string, name string) g.Node {
	if _, ok := errs[name]; !ok {
		return nil
	}
	return g.Group([]g.Node{
		Aria("invalid", "true"),
		Aria("describedby", fieldID(name)+"-error"),
	})
}

func options(placeholder string, values []string, selected string) g.Node {
	return g.Group([]g.Node{
		Option(Value(""), g.Text(placeholder)),
		g.Group(g.Map(values, func(v string) g.Node {
			return Option(Value(v), g.If(v == selected, Selected()), g.Text(v))
		})),
	})
}

// ProjectTypeSelect renders the project type field. With oob set it replaces
// the field already on the page, which is how the catalog hand-off
// preselects a type.
func ProjectTypeSelect(selected string, errMsg string, oob bool) g.Node {
	errs := map[string]string{}
	if errMsg != "" {
		errs[flow.FieldProjectType] = errMsg
	}
	return Select(
		ID(fieldID(flow.FieldProjectType)),
		Name(flow.FieldProjectType),
		Required(),
		Data("field", flow.FieldProjectType),
		invalid(errs, flow.FieldProjectType),
		g.If(oob, hx("swap-oob", "outerHTML")),
		options("Select project type", models.ProjectTypes, selected),
	)
}

// ContactForm renders the lead form. Required fields carry the required
// attribute; the server checks them again.
func ContactForm(d ContactFormData) g.Node {
	if d.Submitted {
		return ContactSuccess()
	}
	errs := d.Errors
	if errs == nil {
		errs = map[string]string{}
	}
	v := d.Values

	return Div(
		ID(ContactFormID),
		Class("contact-form-card"),
		g.El("form",
			ID("contact-form"),
			Action("/api/contact"),
			Method("post"),
			hx("post", "/api/contact"),
			hx("target", "#"+ContactFormID),
			hx("swap", "outerHTML"),
			hx("disabled-elt", "find button[type='submit']"),
			Data("form", flow.ContactFormName),
			Input(Type("hidden"), Name("_csrf"), Value(d.CSRFToken)),
			g.If(d.Message != "", Div(Class("alert alert-error"), Role("alert"), g.Text(d.Message))),
			Div(ID("contact-status"), Class("form-status"), Role("status"), Aria("live", "polite")),

			Div(Class("form-row"),
				Div(Class("form-field"),
					label(For(fieldID(flow.FieldName)), g.Text("Full Name *")),
					Input(ID(fieldID(flow.FieldName)), Type("text"), Name(flow.FieldName), Value(v.Name),
						Required(), g.Attr("autocomplete", "name"), Placeholder("Your full name"), Data("field", flow.FieldName),
						invalid(errs, flow.FieldName)),
					fieldError(errs, flow.FieldName),
				),
				Div(Class("form-field"),
					label(For(fieldID(flow.FieldEmail)), g.Text("Email Address *")),
					Input(ID(fieldID(flow.FieldEmail)), Type("email"), Name(flow.FieldEmail), Value(v.Email),
						Required(), g.Attr("autocomplete", "email"), Placeholder("your.email@example.com"), Data("field", flow.FieldEmail),
						invalid(errs, flow.FieldEmail)),
					fieldError(errs, flow.FieldEmail),
				),
			),

			Div(Class("form-row"),
				Div(Class("form-field"),
					label(For(fieldID(flow.FieldProjectType)), g.Text("Project Type *")),
					ProjectTypeSelect(v.ProjectType, errs[flow.FieldProjectType], false),
					fieldError(errs, flow.FieldProjectType),
				),
				Div(Class("form-field"),
					label(For(fieldID(flow.FieldBudget)), g.Text("Budget Range")),
					Select(ID(fieldID(flow.FieldBudget)), Name(flow.FieldBudget), Data("field", flow.FieldBudget),
						invalid(errs, flow.FieldBudget),
						options("Select budget", models.BudgetRanges, v.Budget)),
					fieldError(errs, flow.FieldBudget),
				),
				Div(Class("form-field"),
					label(For(fieldID(flow.FieldTimeline)), g.Text("Timeline")),
					Select(ID(fieldID(flow.FieldTimeline)), Name(flow.FieldTimeline), Data("field", flow.FieldTimeline),
						invalid(errs, flow.FieldTimeline),
						options("Select timeline", models.Timelines, v.Timeline)),
					fieldError(errs, flow.FieldTimeline),
				),
			),

			Div(Class("form-field"),
				label(For(fieldID(flow.FieldRequirements)), g.Text("Project Requirements *")),
				Textarea(ID(fieldID(flow.FieldRequirements)), Name(flow.FieldRequirements), Rows("5"), Required(),
					Placeholder("Describe your project requirements, features needed, technologies preferred, etc."),
					Data("field", flow.FieldRequirements),
					invalid(errs, flow.FieldRequirements),
					g.Text(v.Requirements)),
				fieldError(errs, flow.FieldRequirements),
			),

			g.If(d.TurnstileSiteKey != "", Div(Class("cf-turnstile"), Data("sitekey", d.TurnstileSiteKey))),

			Button(Type("submit"), Class("btn btn-primary btn-block"),
				Span(Class("label-idle"), g.Text("Send Inquiry")),
				Span(Class("label-busy"), g.Text("Sending…")),
			),
		),
	)
}

// ContactSuccess replaces the form after a lead is accepted
func ContactSuccess() g.Node {
	return Div(
		ID(ContactFormID),
		Class("contact-form-card contact-success"),
		Role("status"),
		Div(Class("success-icon"), g.Text("✓")),
		H3(g.Text("Thank You!")),
		P(g.Text("Your inquiry has been submitted successfully. We'll get back to you within 24 hours.")),
		Button(Type("button"), Class("btn btn-primary"),
			hx("get", "/partials/contact-form"),
			hx("target", "#"+ContactFormID),
			hx("swap", "outerHTML"),
			g.Text("Submit Another Inquiry"),
		),
	)
}
