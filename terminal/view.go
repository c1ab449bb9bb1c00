package terminal

import (
	"fmt"
	"strings"
	"time"

	"techforge_app_go/models"
	"techforge_app_go/services/flow"
	"techforge_app_go/templates/components"

	"github.com/charmbracelet/lipgloss"
)

// renderedSection pairs a section's text with its addressable identity
type renderedSection struct {
	Section
	body string
}

func newSection(id, class, body string) renderedSection {
	return renderedSection{
		Section: Section{ID: id, Class: class, Data: map[string]string{"section": id}, Lines: lipgloss.Height(body)},
		body:    body,
	}
}

func wrap(width int, s string) string {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func renderNavbar(width int) string {
	items := make([]string, 0, len(components.NavItems))
	for i, item := range components.NavItems {
		items = append(items, fmt.Sprintf("%d %s", i+1, item))
	}
	left := brandStyle.Render("</> " + components.SiteName)
	right := mutedStyle.Render(strings.Join(items, "   "))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderHero(width int) renderedSection {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("✨ Premium Student Projects") + "\n\n")
	b.WriteString(titleStyle.Render("Premium Student Projects") + "\n")
	b.WriteString(wrap(width, "Get high-quality, production-ready projects for AI/ML, Web Development, Full-Stack, Mobile Apps, and more. "+
		"Perfect for students looking to excel in their coursework and build impressive portfolios.") + "\n\n")
	stats := make([]string, 0, len(components.HeroStats))
	for _, s := range components.HeroStats {
		stats = append(stats, s.Icon+" "+s.Value)
	}
	b.WriteString(mutedStyle.Render(strings.Join(stats, "   ")))
	return newSection("home", "hero", sectionStyle.Render(b.String()))
}

func renderAbout(width int) renderedSection {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Why Choose "+components.SiteName+"?") + "\n")
	for _, f := range components.Features {
		b.WriteString(headingStyle.Render(f.Icon+" "+f.Title) + "\n")
		b.WriteString(wrap(width, mutedStyle.Render(f.Description)) + "\n\n")
	}
	b.WriteString("Ready to start your project? Press tab to open the contact form.")
	return newSection("about", "", sectionStyle.Render(b.String()))
}

func renderProjects(width int, highlighted int, counts map[string]int64) renderedSection {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Project Categories") + "\n")
	cardWidth := width - 4
	for i, c := range models.Categories() {
		style := cardStyle
		marker := "  "
		if i == highlighted {
			style = activeCardStyle
			marker = selectedStyle.Render("› ")
		}
		count := c.DisplayCount
		if n, ok := counts[c.ID]; ok {
			count = fmt.Sprintf("%s · %d listed", c.DisplayCount, n)
		}
		card := headingStyle.Render(c.Title) + "  " + priceStyle.Render(count) + "\n" + mutedStyle.Render(c.Description)
		b.WriteString(marker + style.Width(cardWidth).Render(card) + "\n")
	}
	b.WriteString(mutedStyle.Render("←/→ choose a category, enter to view its projects"))
	return newSection("projects", "", sectionStyle.Render(b.String()))
}

func renderFooter(width int, now time.Time) renderedSection {
	var b strings.Builder
	for _, s := range components.FooterSections {
		names := make([]string, 0, len(s.Links))
		for _, l := range s.Links {
			names = append(names, l.Name)
		}
		b.WriteString(headingStyle.Render(s.Title) + "  " + mutedStyle.Render(strings.Join(names, " · ")) + "\n")
	}
	b.WriteString(mutedStyle.Render(components.ContactEmail+" · "+components.Location) + "\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("© %d %s. All rights reserved.", now.Year(), components.SiteName)))
	return newSection("footer", "footer", sectionStyle.Render(wrap(width, b.String())))
}

// renderModal draws the open category modal
func renderModal(width int, state flow.CatalogState, selected int, spin string) string {
	category, _ := models.GetCategory(state.SelectedCategory)

	var b strings.Builder
	b.WriteString(titleStyle.Render(category.Title) + "\n")

	switch {
	case state.IsLoading:
		b.WriteString(spin + " Loading projects…")
	case state.IsEmpty() && state.Failed:
		b.WriteString(mutedStyle.Render("We couldn't load these projects right now. Please try again in a moment."))
	case state.IsEmpty():
		b.WriteString(mutedStyle.Render("No projects available in this category yet. Contact us for a custom project."))
	default:
		for i, l := range state.Listings {
			style := cardStyle
			if i == selected {
				style = activeCardStyle
			}
			card := headingStyle.Render(l.Title) + " " + difficultyBadge(l.Difficulty) + "\n" +
				wrap(width-12, mutedStyle.Render(l.Description)) + "\n" +
				mutedStyle.Render(strings.Join(l.Technologies, " · ")) + "\n" +
				priceStyle.Render(l.Price)
			b.WriteString(style.Width(width-10).Render(card) + "\n")
		}
		b.WriteString(mutedStyle.Render("↑/↓ select, enter to get this project"))
	}
	b.WriteString("\n\n" + mutedStyle.Render("esc to close"))
	return modalStyle.Width(width - 4).Render(b.String())
}
