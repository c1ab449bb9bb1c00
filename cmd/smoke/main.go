// Command smoke loads the running site in headless Chrome and checks the
// section navigation and the Get Project hand-off against the real page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"
	"techforge_app_go/services/flow"
	"techforge_app_go/services/headless"

	"github.com/chromedp/chromedp"
	"github.com/fatih/color"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "site to check")
	offset := flag.Float64("header-offset", 80, "header offset in pixels")
	category := flag.String("category", models.CategoryAIML, "category used for the hand-off check")
	flag.Parse()

	page, err := headless.Open(context.Background(), *baseURL, headless.Options{})
	if err != nil {
		log.Fatalf("[SMOKE] %v", err)
	}
	defer page.Close()

	nav := flow.NewNavigator(page, analytics.Logger{}, *offset)

	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			fmt.Fprintf(color.Output, "%s %s: %v\n", color.RedString("FAIL"), name, err)
			return
		}
		fmt.Fprintf(color.Output, "%s %s\n", color.GreenString("ok  "), name)
	}

	for _, item := range []string{"Home", "About", "Projects", "Contact"} {
		check("navigate "+item, navigate(page, nav, item))
	}
	check("get project hand-off", handoff(page, *category, *offset))

	if failed > 0 {
		os.Exit(1)
	}
}

func navigate(page *headless.Page, nav *flow.Navigator, item string) error {
	res, err := nav.Navigate(item)
	if err != nil {
		return err
	}
	if res.Outcome != flow.OutcomeResolved {
		return fmt.Errorf("section not found, fell back to %.0f", res.Top)
	}
	got := page.WaitScrollSettled(50*time.Millisecond, 40)
	return near(page, got, res.Top)
}

// handoff opens a category, presses Get Project on its first listing and
// expects the page to settle on the contact section with the project type
// preselected.
func handoff(page *headless.Page, categoryID string, offset float64) error {
	category, ok := models.GetCategory(categoryID)
	if !ok {
		return fmt.Errorf("unknown category %q", categoryID)
	}

	err := page.Run(
		chromedp.ScrollIntoView(`[data-category="`+categoryID+`"]`, chromedp.ByQuery),
		chromedp.Click(`button[data-category="`+categoryID+`"]`, chromedp.ByQuery),
		chromedp.WaitVisible(`.modal-backdrop[data-modal="open"]`, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("modal did not open: %w", err)
	}

	var listings int
	if err := page.Run(chromedp.Evaluate(`document.querySelectorAll(".listing-card").length`, &listings)); err != nil {
		return err
	}
	if listings == 0 {
		return fmt.Errorf("category %s has no listings to hand off", categoryID)
	}

	if err := page.Run(chromedp.Click(`.listing-card button`, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to press Get Project: %w", err)
	}
	got := page.WaitScrollSettled(100*time.Millisecond, 50)

	contact, ok := page.ElementByID(flow.ContactAnchor)
	if !ok {
		return fmt.Errorf("contact section missing")
	}
	if err := near(page, got, math.Max(contact.Top()-offset, 0)); err != nil {
		return err
	}

	var selected string
	if err := page.Run(chromedp.Value(`select[name="projectType"]`, &selected, chromedp.ByQuery)); err != nil {
		return err
	}
	if selected != category.ProjectType {
		return fmt.Errorf("project type is %q, want %q", selected, category.ProjectType)
	}
	return nil
}

func near(page *headless.Page, got, want float64) error {
	// The page cannot scroll past its bottom
	want = math.Min(want, math.Max(page.ScrollHeight()-page.ViewportHeight(), 0))
	if math.Abs(got-want) > 2 {
		return fmt.Errorf("scrolled to %.0f, want %.0f", got, want)
	}
	return nil
}
