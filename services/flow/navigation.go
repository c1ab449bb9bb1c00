package flow

import (
	"fmt"
	"log"
	"math"
	"strings"

	"techforge_app_go/services/analytics"
)

// Element is a located page element. Top is measured from the top of the
// document, not the viewport.
type Element interface {
	Top() float64
}

// Document is the page the Navigator scrolls. Implementations exist for the
// terminal layout and for a headless browser.
type Document interface {
	ElementByID(id string) (Element, bool)
	ElementByClass(class string) (Element, bool)
	ElementByData(attr, value string) (Element, bool)
	ScrollHeight() float64
	ViewportHeight() float64
	ScrollTo(top float64, smooth bool) error
}

// Lookup resolves an anchor to an element using one strategy
type Lookup struct {
	Name string
	Find func(doc Document, anchor string) (Element, bool)
}

// DefaultLookups tries the id, then the class name, then data-section
var DefaultLookups = []Lookup{
	{Name: "id", Find: func(d Document, a string) (Element, bool) { return d.ElementByID(a) }},
	{Name: "class", Find: func(d Document, a string) (Element, bool) { return d.ElementByClass(a) }},
	{Name: "data-section", Find: func(d Document, a string) (Element, bool) { return d.ElementByData("section", a) }},
}

// Scroll outcomes
const (
	OutcomeResolved = "resolved"
	OutcomeFallback = "fallback"
)

// nearBottomFactor places the fallback target one and a half viewports above
// the end of the document, where the contact section sits above the footer.
const nearBottomFactor = 1.5

// ScrollResult describes how an anchor was resolved
type ScrollResult struct {
	Anchor   string
	Strategy string
	Outcome  string
	Top      float64
}

// Navigator translates section anchors into scroll positions
type Navigator struct {
	doc     Document
	lookups []Lookup
	sink    analytics.Sink
	offset  float64
	logger  *log.Logger
}

// NavigatorOption customizes a Navigator
type NavigatorOption func(*Navigator)

// WithLookups replaces the lookup chain
func WithLookups(lookups ...Lookup) NavigatorOption {
	return func(n *Navigator) { n.lookups = lookups }
}

// WithNavigatorLogger sets the logger
func WithNavigatorLogger(l *log.Logger) NavigatorOption {
	return func(n *Navigator) { n.logger = l }
}

// NewNavigator builds a Navigator over doc. headerOffset is used by Navigate;
// ScrollToSection takes its own.
func NewNavigator(doc Document, sink analytics.Sink, headerOffset float64, opts ...NavigatorOption) *Navigator {
	if sink == nil {
		sink = analytics.Nop{}
	}
	n := &Navigator{
		doc:     doc,
		lookups: DefaultLookups,
		sink:    sink,
		offset:  headerOffset,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// HeaderOffset returns the default offset used by Navigate
func (n *Navigator) HeaderOffset() float64 {
	return n.offset
}

// ScrollToSection scrolls so the anchored section sits just below a fixed
// header of headerOffset pixels. When no lookup finds the anchor it scrolls
// near the bottom of the page. The returned error only reports a failed
// scroll; a missing anchor is not an error.
func (n *Navigator) ScrollToSection(anchor string, headerOffset float64) (ScrollResult, error) {
	res := ScrollResult{Anchor: anchor, Outcome: OutcomeFallback, Strategy: "near-bottom"}

	found := false
	for _, l := range n.lookups {
		el, ok := l.Find(n.doc, anchor)
		if !ok || el == nil {
			continue
		}
		res.Strategy = l.Name
		res.Outcome = OutcomeResolved
		res.Top = math.Max(0, el.Top()-headerOffset)
		found = true
		break
	}

	if !found {
		res.Top = math.Max(0, n.doc.ScrollHeight()-nearBottomFactor*n.doc.ViewportHeight())
		n.logger.Printf("[NAV] section %q not found, scrolling near bottom (%.0f)", anchor, res.Top)
	}

	if err := n.doc.ScrollTo(res.Top, true); err != nil {
		return res, fmt.Errorf("failed to scroll to %q: %w", anchor, err)
	}
	return res, nil
}

// Navigate handles a menu click: it records the navigation and scrolls to
// the section named by the lower-cased item.
func (n *Navigator) Navigate(item string) (ScrollResult, error) {
	dest := strings.ToLower(strings.TrimSpace(item))
	n.sink.Record(analytics.Navigation(dest))
	return n.ScrollToSection(dest, n.offset)
}
