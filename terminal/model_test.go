package terminal

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"
	"techforge_app_go/services/flow"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	model   Model
	catalog *flow.Catalog
	intake  *flow.Intake
	layout  *Layout
	events  *analytics.Memory

	mu        sync.Mutex
	submitted []flow.LeadForm
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	h := &harness{events: &analytics.Memory{}, layout: NewLayout(5)}

	fetcher := flow.ListingFetcherFunc(func(ctx context.Context, id string) (flow.ListingResult, error) {
		if id != models.CategoryAIML {
			return flow.ListingResult{Success: true}, nil
		}
		return flow.ListingResult{Success: true, Listings: []models.ProjectListing{
			{ID: 1, CategoryID: id, Title: "Face Recognition Attendance", Description: "OpenCV pipeline", Price: "₹1500", Difficulty: "Intermediate"},
			{ID: 2, CategoryID: id, Title: "Sentiment Analyzer", Description: "NLP classifier", Price: "₹1200", Difficulty: "Beginner"},
		}}, nil
	})
	submitter := flow.LeadSubmitterFunc(func(ctx context.Context, form flow.LeadForm) (flow.SubmitResult, error) {
		h.mu.Lock()
		h.submitted = append(h.submitted, form)
		h.mu.Unlock()
		return flow.SubmitResult{OK: true, ID: "lead-1"}, nil
	})

	nav := flow.NewNavigator(h.layout, h.events, 0, flow.WithNavigatorLogger(logger))
	h.intake = flow.NewIntake(flow.IntakeConfig{Submitter: submitter, Sink: h.events, Logger: logger})
	h.catalog = flow.NewCatalog(flow.CatalogConfig{
		Fetcher:   fetcher,
		Navigator: nav,
		Sink:      h.events,
		Logger:    logger,
		Handoff: func(_ models.ProjectListing, category models.Category) {
			h.intake.Prefill(category.ProjectType)
		},
	})
	t.Cleanup(func() {
		h.catalog.Close()
		h.intake.Close()
	})

	h.model = New(Options{Catalog: h.catalog, Intake: h.intake, Navigator: nav, Layout: h.layout})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 12})
	return h
}

func (h *harness) send(msg tea.Msg) {
	next, _ := h.model.Update(msg)
	h.model = next.(Model)
}

func (h *harness) key(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// settle waits for background work and applies the resulting refresh
func (h *harness) settle() {
	h.catalog.Wait()
	h.intake.Wait()
	h.send(refreshMsg{})
}

func TestModelRendersSections(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	assert.Contains(t, view, "TechForge")

	for _, id := range []string{"home", "about", "projects", "contact", "footer"} {
		_, ok := h.layout.ElementByID(id)
		assert.True(t, ok, id)
	}
	assert.Greater(t, h.layout.ScrollHeight(), h.layout.ViewportHeight())
}

func TestModelNavigation(t *testing.T) {
	h := newHarness(t)

	h.typeText("3")
	assert.Equal(t, "projects", h.layout.SectionAt(h.layout.Offset()))
	assert.Equal(t, h.layout.Offset(), h.model.viewport.YOffset)

	h.typeText("1")
	assert.Equal(t, 0, h.layout.Offset())

	events := h.events.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "projects", events[0].Label)
	assert.Equal(t, "home", events[1].Label)
}

func TestModelGetProjectHandsOffToForm(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyEnter)
	assert.Equal(t, focusModal, h.model.focus)
	h.settle()

	require.Len(t, h.model.catalogState.Listings, 2)
	assert.Contains(t, h.model.View(), "Face Recognition Attendance")

	h.key(tea.KeyDown)
	assert.Equal(t, 1, h.model.listing)

	h.key(tea.KeyEnter)
	h.settle()

	assert.Equal(t, focusForm, h.model.focus)
	assert.False(t, h.model.catalogState.ModalOpen())
	assert.Equal(t, "AI/ML", h.model.intakeState.Fields.ProjectType)
	assert.Equal(t, "contact", h.layout.SectionAt(h.layout.Offset()))
}

func TestModelEscClosesModal(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyRight)
	h.key(tea.KeyEnter)
	h.settle()
	assert.Equal(t, models.CategoryWebDevelopment, h.model.catalogState.SelectedCategory)
	assert.Contains(t, h.model.View(), "No projects available")

	h.key(tea.KeyEsc)
	assert.Equal(t, focusPage, h.model.focus)
	assert.False(t, h.model.catalogState.ModalOpen())
}

func TestModelFormSubmission(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyTab)
	require.Equal(t, focusForm, h.model.focus)

	h.typeText("Ana Gomez")
	assert.Equal(t, "Ana Gomez", h.intake.Snapshot().Fields.Name)

	t.Run("Missing fields block the submission", func(t *testing.T) {
		h.key(tea.KeyCtrlS)
		assert.Contains(t, h.model.formErr, "email")
		assert.Contains(t, h.model.formErr, "requirements")
		assert.Equal(t, flow.StatusIdle, h.intake.Snapshot().Status)
	})

	h.key(tea.KeyTab)
	h.typeText("ana@example.com")
	h.key(tea.KeyTab)
	h.key(tea.KeyRight)
	assert.Equal(t, models.ProjectTypes[0], h.intake.Snapshot().Fields.ProjectType)
	h.key(tea.KeyLeft)
	assert.Equal(t, "", h.intake.Snapshot().Fields.ProjectType)
	h.key(tea.KeyLeft)
	assert.Equal(t, models.ProjectTypes[len(models.ProjectTypes)-1], h.intake.Snapshot().Fields.ProjectType)

	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	h.typeText("Inventory tracker with barcode scanning")

	h.key(tea.KeyCtrlS)
	h.settle()

	require.Len(t, h.submitted, 1)
	assert.Equal(t, "ana@example.com", h.submitted[0].Email)
	assert.Equal(t, "Inventory tracker with barcode scanning", h.submitted[0].Requirements)
	assert.Equal(t, flow.StatusSubmitted, h.model.intakeState.Status)
	assert.Contains(t, h.model.renderContact(80).body, "Thank You")

	h.key(tea.KeyCtrlN)
	assert.Equal(t, flow.StatusIdle, h.intake.Snapshot().Status)
	assert.Equal(t, "", h.model.inputs[flow.FieldName].Value())
}

func TestCycleOptions(t *testing.T) {
	opts := []string{"a", "b"}
	assert.Equal(t, "a", cycle(opts, "", 1))
	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "", cycle(opts, "b", 1))
	assert.Equal(t, "b", cycle(opts, "", -1))
}
