package terminal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"techforge_app_go/models"
	"techforge_app_go/services/flow"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focus int

const (
	focusPage focus = iota
	focusModal
	focusForm
)

// refreshMsg tells the model a controller or the layout changed
type refreshMsg struct{}

// Options wires the model to the flow controllers
type Options struct {
	Catalog   *flow.Catalog
	Intake    *flow.Intake
	Navigator *flow.Navigator
	Layout    *Layout
	// Counts are the listed projects per category, when known
	Counts map[string]int64
}

// Model is the bubbletea model of the landing page
type Model struct {
	catalog *flow.Catalog
	intake  *flow.Intake
	nav     *flow.Navigator
	layout  *Layout
	counts  map[string]int64
	notify  chan struct{}

	catalogState flow.CatalogState
	intakeState  flow.IntakeState

	width, height int
	ready         bool
	focus         focus
	category      int
	listing       int
	field         int
	formErr       string

	inputs       map[string]*textinput.Model
	requirements textarea.Model
	viewport     viewport.Model
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
}

// New builds the model and subscribes it to the controllers. Controller
// notifications are coalesced into a single pending refresh.
func New(opts Options) Model {
	name := textinput.New()
	name.Placeholder = "Your full name"
	name.CharLimit = 120
	email := textinput.New()
	email.Placeholder = "your.email@example.com"
	email.CharLimit = 254

	req := textarea.New()
	req.Placeholder = "Describe your project requirements, features needed, technologies preferred, etc."
	req.ShowLineNumbers = false
	req.SetHeight(4)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		catalog:      opts.Catalog,
		intake:       opts.Intake,
		nav:          opts.Navigator,
		layout:       opts.Layout,
		counts:       opts.Counts,
		notify:       make(chan struct{}, 1),
		inputs:       map[string]*textinput.Model{flow.FieldName: &name, flow.FieldEmail: &email},
		requirements: req,
		spinner:      spin,
		help:         help.New(),
		keys:         defaultKeys(),
	}

	signal := m.signal
	m.catalog.Subscribe(func(flow.CatalogState) { signal() })
	m.intake.Subscribe(func(flow.IntakeState) { signal() })
	m.layout.OnScroll = func(int) { signal() }

	m.catalogState = m.catalog.Snapshot()
	m.intakeState = m.intake.Snapshot()
	return m
}

func (m Model) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m Model) waitForChange() tea.Msg {
	<-m.notify
	return refreshMsg{}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := msg.Height - 3
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = msg.Width, vpHeight
		}
		m.layout.SetViewport(vpHeight)
		for _, in := range m.inputs {
			in.Width = msg.Width - 12
		}
		m.requirements.SetWidth(msg.Width - 8)
		m.sync()
		return m, nil

	case refreshMsg:
		m.sync()
		return m, m.waitForChange

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.catalogState.IsLoading || m.intakeState.Status == flow.StatusSubmitting {
			m.sync()
		}
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (m.focus != focusForm || msg.String() == "ctrl+c") {
			return m, tea.Quit
		}
		switch m.focus {
		case focusModal:
			return m.updateModal(msg)
		case focusForm:
			return m.updateForm(msg)
		default:
			return m.updatePage(msg)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := models.Categories()
	switch {
	case key.Matches(msg, m.keys.Nav):
		idx := int(msg.String()[0] - '1')
		if _, err := m.nav.Navigate(navItem(idx)); err != nil {
			m.formErr = err.Error()
		}
	case key.Matches(msg, m.keys.PrevCat):
		m.category = (m.category + len(cats) - 1) % len(cats)
	case key.Matches(msg, m.keys.NextCat):
		m.category = (m.category + 1) % len(cats)
	case key.Matches(msg, m.keys.Open):
		if err := m.catalog.SelectCategory(cats[m.category].ID); err == nil {
			m.focus = focusModal
			m.listing = 0
		}
	case key.Matches(msg, m.keys.Form):
		m.focusForm(0)
		if _, err := m.nav.Navigate("Contact"); err != nil {
			m.formErr = err.Error()
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.layout.SetOffset(m.viewport.YOffset)
		return m, cmd
	}
	m.sync()
	return m, nil
}

func navItem(i int) string {
	items := []string{"Home", "About", "Projects", "Contact"}
	if i < 0 || i >= len(items) {
		return items[0]
	}
	return items[i]
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	listings := m.catalogState.Listings
	switch {
	case key.Matches(msg, m.keys.Close):
		m.catalog.CloseModal()
		m.focus = focusPage
	case key.Matches(msg, m.keys.Up):
		if m.listing > 0 {
			m.listing--
		}
	case key.Matches(msg, m.keys.Down):
		if m.listing < len(listings)-1 {
			m.listing++
		}
	case key.Matches(msg, m.keys.GetProject):
		if m.catalogState.IsLoading || m.listing >= len(listings) {
			break
		}
		m.catalog.GetProject(listings[m.listing])
		m.focusForm(0)
	}
	m.sync()
	return m, nil
}

func (m *Model) focusForm(field int) {
	m.focus = focusForm
	m.field = field
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for name, in := range m.inputs {
		if m.focus == focusForm && flow.FieldNames[m.field] == name {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	if m.focus == focusForm && flow.FieldNames[m.field] == flow.FieldRequirements {
		m.requirements.Focus()
	} else {
		m.requirements.Blur()
	}
}

func fieldOptions(field string) []string {
	switch field {
	case flow.FieldProjectType:
		return models.ProjectTypes
	case flow.FieldBudget:
		return models.BudgetRanges
	case flow.FieldTimeline:
		return models.Timelines
	}
	return nil
}

// cycle returns the option after (or before) current; "" precedes the first
func cycle(options []string, current string, step int) string {
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
		}
	}
	n := len(options) + 1
	next := ((idx+1+step)%n + n) % n
	if next == 0 {
		return ""
	}
	return options[next-1]
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := flow.FieldNames[m.field]

	if m.intakeState.Status == flow.StatusSubmitted {
		switch {
		case key.Matches(msg, m.keys.Another):
			m.intake.ResetAfterSuccess()
			m.focusForm(0)
		case key.Matches(msg, m.keys.Close):
			m.focus = focusPage
			m.applyFocus()
		}
		m.sync()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.focus = focusPage
		m.applyFocus()
	case key.Matches(msg, m.keys.Submit):
		m.formErr = ""
		err := m.intake.Submit()
		var missing *flow.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			m.formErr = "Please fill in: " + strings.Join(missing.Fields, ", ")
		case err != nil:
			m.formErr = err.Error()
		}
	case msg.String() == "tab" || (field != flow.FieldRequirements && key.Matches(msg, m.keys.NextField)):
		m.field = (m.field + 1) % len(flow.FieldNames)
		m.applyFocus()
	case msg.String() == "shift+tab" || (field != flow.FieldRequirements && key.Matches(msg, m.keys.PrevField)):
		m.field = (m.field + len(flow.FieldNames) - 1) % len(flow.FieldNames)
		m.applyFocus()
	case fieldOptions(field) != nil && (key.Matches(msg, m.keys.PrevOption) || key.Matches(msg, m.keys.NextOption)):
		step := 1
		if key.Matches(msg, m.keys.PrevOption) {
			step = -1
		}
		current, _ := m.intakeState.Fields.Get(field)
		m.updateField(field, cycle(fieldOptions(field), current, step))
	case field == flow.FieldRequirements:
		var cmd tea.Cmd
		m.requirements, cmd = m.requirements.Update(msg)
		m.updateField(field, m.requirements.Value())
		m.sync()
		return m, cmd
	default:
		if in, ok := m.inputs[field]; ok {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			m.updateField(field, in.Value())
			m.sync()
			return m, cmd
		}
	}
	m.sync()
	return m, nil
}

func (m *Model) updateField(field, value string) {
	if current, _ := m.intakeState.Fields.Get(field); current == value {
		return
	}
	if err := m.intake.UpdateField(field, value); err != nil {
		m.formErr = err.Error()
	}
}

// sync pulls controller state and re-renders the page content
func (m *Model) sync() {
	m.catalogState = m.catalog.Snapshot()
	m.intakeState = m.intake.Snapshot()

	if m.focus == focusModal && !m.catalogState.ModalOpen() {
		m.focus = focusPage
	}
	if m.listing >= len(m.catalogState.Listings) {
		m.listing = 0
	}

	// Values changed by the controller (reset, prefill) flow back to the inputs
	for name, in := range m.inputs {
		if v, _ := m.intakeState.Fields.Get(name); v != in.Value() {
			in.SetValue(v)
		}
	}
	if m.intakeState.Fields.Requirements != m.requirements.Value() {
		m.requirements.SetValue(m.intakeState.Fields.Requirements)
	}

	if !m.ready {
		return
	}
	sections := m.renderSections()
	layout := make([]Section, len(sections))
	bodies := make([]string, len(sections))
	for i, s := range sections {
		layout[i] = s.Section
		bodies[i] = s.body
	}
	m.layout.SetSections(layout)
	m.viewport.SetContent(strings.Join(bodies, "\n"))
	m.viewport.SetYOffset(m.layout.Offset())
}

func (m Model) renderSections() []renderedSection {
	width := m.width - 4
	return []renderedSection{
		renderHero(width),
		renderAbout(width),
		renderProjects(width, m.category, m.counts),
		m.renderContact(width),
		renderFooter(width, time.Now()),
	}
}

func (m Model) renderContact(width int) renderedSection {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Get Your Dream Project") + "\n")

	switch m.intakeState.Status {
	case flow.StatusSubmitted:
		b.WriteString(successStyle.Render("✓ Thank You!") + "\n")
		b.WriteString("Your inquiry has been submitted successfully. We'll get back to you within 24 hours.\n\n")
		b.WriteString(mutedStyle.Render("ctrl+n to submit another inquiry"))
		return newSection("contact", "", sectionStyle.Render(b.String()))
	}

	labels := map[string]string{
		flow.FieldName:         "Full Name *",
		flow.FieldEmail:        "Email Address *",
		flow.FieldProjectType:  "Project Type *",
		flow.FieldBudget:       "Budget Range",
		flow.FieldTimeline:     "Timeline",
		flow.FieldRequirements: "Project Requirements *",
	}
	for i, name := range flow.FieldNames {
		label := headingStyle.Render(labels[name])
		if m.focus == focusForm && i == m.field {
			label = selectedStyle.Render("› " + labels[name])
		}
		b.WriteString(label + "\n")

		switch {
		case name == flow.FieldRequirements:
			b.WriteString(m.requirements.View())
		case fieldOptions(name) != nil:
			v, _ := m.intakeState.Fields.Get(name)
			if v == "" {
				v = mutedStyle.Render("‹ select ›")
			} else {
				v = "‹ " + v + " ›"
			}
			b.WriteString(v)
		default:
			b.WriteString(m.inputs[name].View())
		}
		b.WriteString("\n\n")
	}

	switch {
	case m.intakeState.Status == flow.StatusSubmitting:
		b.WriteString(m.spinner.View() + " Sending…")
	case m.formErr != "":
		b.WriteString(errorStyle.Render(m.formErr))
	case m.intakeState.Status == flow.StatusFailed:
		b.WriteString(errorStyle.Render("Sorry, there was an error submitting your form. Please try again or contact us directly."))
	default:
		b.WriteString(mutedStyle.Render("ctrl+s to send"))
	}
	return newSection("contact", "", sectionStyle.Render(wrap(width, b.String())))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	header := renderNavbar(m.width)
	var body string
	if m.catalogState.ModalOpen() {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			renderModal(m.width, m.catalogState, m.listing, m.spinner.View()))
	} else {
		body = m.viewport.View()
	}

	return header + "\n" + body + "\n" + m.footerView()
}

func (m Model) footerView() string {
	var bindings []key.Binding
	switch m.focus {
	case focusModal:
		bindings = []key.Binding{m.keys.Up, m.keys.GetProject, m.keys.Close}
	case focusForm:
		bindings = []key.Binding{m.keys.NextField, m.keys.PrevOption, m.keys.Submit, m.keys.Close}
		if m.intakeState.Status == flow.StatusSubmitted {
			bindings = []key.Binding{m.keys.Another, m.keys.Close}
		}
	default:
		bindings = []key.Binding{m.keys.Nav, m.keys.PrevCat, m.keys.Open, m.keys.Form, m.keys.Quit}
	}
	section := m.layout.SectionAt(m.layout.Offset())
	return statusStyle.Render(fmt.Sprintf("[%s] ", section)) + m.help.ShortHelpView(bindings)
}
