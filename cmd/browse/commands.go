package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"
	"techforge_app_go/services/flow"
	"techforge_app_go/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "techforge",
		Short:        "Browse the TechForge project catalog from the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("base-url", "", "site to browse (default http://localhost:8080)")
	flags.Float64("header-offset", 0, "lines kept above a section when scrolling to it")
	flags.Duration("settle-delay", 0, "pause between closing the modal and scrolling to the form")
	flags.String("log-file", "", "file receiving the browser's log output")
	for _, name := range []string{"base-url", "header-offset", "settle-delay", "log-file"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	addUI(cmd)
	addCategories(cmd)
	addProjects(cmd)
	return cmd
}

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive landing page",
		Example: `
techforge ui --base-url https://techforge.example.com
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context())
		},
	}
	topLevel.AddCommand(cmd)
}

func runUI(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.LogFile, "browse")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.Default()

	api := flow.NewAPIClient(cfg.BaseURL, cfg.Timeout)
	sink := analytics.NewDispatcher(analytics.NewBeacon(cfg.BaseURL, cfg.ClientID), 256)
	defer func() {
		sink.Close()
		if n := sink.Dropped(); n > 0 {
			logger.Printf("[ANALYTICS] %d events dropped", n)
		}
	}()
	_ = sink.Init("")
	sink.Record(analytics.PageView("/", "TechForge - Premium Student Projects"))

	// Category counts are decoration; the page works without them
	counts := map[string]int64{}
	if summaries, err := api.FetchCategories(ctx); err != nil {
		logger.Printf("[CATALOG] category counts unavailable: %v", err)
	} else {
		for _, s := range summaries {
			counts[s.ID] = s.Available
		}
	}

	layout := terminal.NewLayout(20)
	nav := flow.NewNavigator(layout, sink, cfg.HeaderOffset, flow.WithNavigatorLogger(logger))
	intake := flow.NewIntake(flow.IntakeConfig{Submitter: api, Sink: sink, Logger: logger})
	defer intake.Close()
	catalog := flow.NewCatalog(flow.CatalogConfig{
		Fetcher:      api,
		Navigator:    nav,
		Sink:         sink,
		HeaderOffset: cfg.HeaderOffset,
		SettleDelay:  cfg.SettleDelay,
		Logger:       logger,
		Handoff: func(_ models.ProjectListing, category models.Category) {
			intake.Prefill(category.ProjectType)
		},
	})
	defer catalog.Close()

	model := terminal.New(terminal.Options{
		Catalog:   catalog,
		Intake:    intake,
		Navigator: nav,
		Layout:    layout,
		Counts:    counts,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func addCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "list the catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			summaries, err := flow.NewAPIClient(cfg.BaseURL, cfg.Timeout).FetchCategories(cmd.Context())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			faint := color.New(color.Faint)

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.Wrap = true
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Listed"), bold.Sprint("Description"))
			for _, s := range summaries {
				tbl.AddRow(s.ID, s.Title, fmt.Sprintf("%d (%s)", s.Available, s.DisplayCount), faint.Sprint(s.Description))
			}
			tbl.RightAlign(2)

			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addProjects(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "projects <category>",
		Short: "list the projects offered in a category",
		Example: `
techforge projects ai-ml
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: categoryIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsValidCategory(args[0]) {
				return fmt.Errorf("unknown category %q (one of %s)", args[0], strings.Join(categoryIDs(), ", "))
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := flow.NewAPIClient(cfg.BaseURL, cfg.Timeout).FetchListings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printListings(args[0], res.Listings)
		},
	}
	topLevel.AddCommand(cmd)
}

func printListings(categoryID string, listings []models.ProjectListing) error {
	category, _ := models.GetCategory(categoryID)
	title := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(color.Output, title.Sprint(category.Title))

	if len(listings) == 0 {
		_, _ = fmt.Fprintln(color.Output, color.New(color.Faint).Sprint("No projects available in this category yet."))
		return nil
	}

	price := color.New(color.FgMagenta, color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.Wrap = true
	for _, l := range listings {
		tbl.AddRow(l.Title, l.Difficulty, strings.Join(l.Technologies, ", "), price.Sprint(l.Price))
	}
	_, err := fmt.Fprintln(color.Output, tbl)
	return err
}

func categoryIDs() []string {
	cats := models.Categories()
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

func init() {
	// Colors follow the terminal unless explicitly disabled
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
