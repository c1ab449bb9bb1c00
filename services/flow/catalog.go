package flow

import (
	"context"
	"log"
	"sync"
	"time"

	"techforge_app_go/models"
	"techforge_app_go/services/analytics"
)

// ContactAnchor is the section the Get Project hand-off scrolls to
const ContactAnchor = "contact"

// CatalogState is a snapshot of the catalog modal
type CatalogState struct {
	// SelectedCategory is empty when the modal is closed
	SelectedCategory string
	Listings         []models.ProjectListing
	IsLoading        bool
	// Failed marks an empty result caused by a fetch error rather than an
	// empty category
	Failed bool
}

// ModalOpen reports whether a category is selected
func (s CatalogState) ModalOpen() bool {
	return s.SelectedCategory != ""
}

// IsEmpty reports whether the modal should show its empty-state message
func (s CatalogState) IsEmpty() bool {
	return s.ModalOpen() && !s.IsLoading && len(s.Listings) == 0
}

// HandoffFunc receives the listing picked with Get Project and its category
type HandoffFunc func(listing models.ProjectListing, category models.Category)

// CatalogConfig wires a Catalog to its collaborators
type CatalogConfig struct {
	Fetcher      ListingFetcher
	Navigator    *Navigator
	Sink         analytics.Sink
	HeaderOffset float64
	// SettleDelay lets the modal close transition finish before scrolling
	SettleDelay time.Duration
	Handoff     HandoffFunc
	Logger      *log.Logger
}

// Catalog owns the selected category and the listings shown for it
type Catalog struct {
	cfg CatalogConfig

	mu         sync.Mutex
	pubMu      sync.Mutex
	state      CatalogState
	generation uint64
	cancel     context.CancelFunc
	listeners  []func(CatalogState)

	base       context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
}

func NewCatalog(cfg CatalogConfig) *Catalog {
	if cfg.Sink == nil {
		cfg.Sink = analytics.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Catalog{cfg: cfg, base: base, baseCancel: cancel}
}

// Categories returns the categories the catalog offers
func (c *Catalog) Categories() []models.Category {
	return models.Categories()
}

// Snapshot returns a copy of the current state
func (c *Catalog) Snapshot() CatalogState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyState()
}

func (c *Catalog) copyState() CatalogState {
	s := c.state
	if s.Listings != nil {
		s.Listings = append([]models.ProjectListing(nil), s.Listings...)
	}
	return s
}

// Subscribe registers fn to receive every state change. Listeners run in
// order on the goroutine that changed the state and must not call back into
// the Catalog synchronously.
func (c *Catalog) Subscribe(fn func(CatalogState)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// publish must be called without c.mu held
func (c *Catalog) publish() {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	s := c.copyState()
	listeners := append([]func(CatalogState){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// SelectCategory opens the modal for categoryID and starts fetching its
// listings. Any earlier fetch becomes stale.
func (c *Catalog) SelectCategory(categoryID string) error {
	if !models.IsValidCategory(categoryID) {
		return ErrUnknownCategory
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.state = CatalogState{SelectedCategory: categoryID, IsLoading: true}
	c.wg.Add(1)
	c.mu.Unlock()

	c.cfg.Sink.Record(analytics.ProjectView(categoryID))
	c.publish()

	go c.fetch(ctx, gen, categoryID)
	return nil
}

func (c *Catalog) fetch(ctx context.Context, gen uint64, categoryID string) {
	defer c.wg.Done()

	res, err := c.cfg.Fetcher.FetchListings(ctx, categoryID)

	c.mu.Lock()
	if gen != c.generation || c.state.SelectedCategory != categoryID {
		c.mu.Unlock()
		c.cfg.Logger.Printf("[CATALOG] discarded stale listings for %s", categoryID)
		return
	}

	switch {
	case err != nil:
		c.cfg.Logger.Printf("[CATALOG] error fetching projects for %s: %v", categoryID, err)
		c.state.Listings = nil
		c.state.Failed = true
	case !res.Success:
		c.cfg.Logger.Printf("[CATALOG] listing fetch for %s reported failure", categoryID)
		c.state.Listings = nil
		c.state.Failed = true
	default:
		listings := make([]models.ProjectListing, len(res.Listings))
		for i, l := range res.Listings {
			// The API omits the category; listings carry it for the hand-off
			l.CategoryID = categoryID
			listings[i] = l
		}
		c.state.Listings = listings
	}
	c.state.IsLoading = false
	c.mu.Unlock()

	c.publish()
}

// CloseModal clears the selection. A fetch still in flight is cancelled and
// its result discarded.
func (c *Catalog) CloseModal() {
	c.mu.Lock()
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = CatalogState{}
	c.mu.Unlock()

	c.publish()
}

// GetProject closes the modal, records the click and, after the settle
// delay, scrolls to the contact section. The hand-off gets the listing's own
// category, or the open one when the listing does not name it.
func (c *Catalog) GetProject(listing models.ProjectListing) {
	category, ok := models.GetCategory(listing.CategoryID)
	if !ok {
		category, _ = models.GetCategory(c.Snapshot().SelectedCategory)
	}

	c.CloseModal()
	c.cfg.Sink.Record(analytics.ButtonClick("Get Project", "Projects Modal"))

	if c.cfg.Handoff != nil {
		c.cfg.Handoff(listing, category)
	}
	if c.cfg.Navigator == nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if c.cfg.SettleDelay > 0 {
			select {
			case <-time.After(c.cfg.SettleDelay):
			case <-c.base.Done():
				return
			}
		}
		if _, err := c.cfg.Navigator.ScrollToSection(ContactAnchor, c.cfg.HeaderOffset); err != nil {
			c.cfg.Logger.Printf("[CATALOG] %v", err)
		}
	}()
}

// Wait blocks until in-flight fetches and scheduled scrolls have finished
func (c *Catalog) Wait() {
	c.wg.Wait()
}

// Close cancels outstanding work
func (c *Catalog) Close() {
	c.baseCancel()
	c.wg.Wait()
}
