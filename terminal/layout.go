// Package terminal is the terminal presentation of the landing page. It
// renders the page as stacked sections, binds them to the flow controllers
// and lets the Navigator scroll them like the browser page.
package terminal

import (
	"sync"

	"techforge_app_go/services/flow"
)

// Section is one rendered block of the page, addressable the same three
// ways as its HTML counterpart
type Section struct {
	ID    string
	Class string
	// Data holds data-* attributes without the prefix
	Data  map[string]string
	Lines int
}

type lineElement struct {
	top float64
}

func (e lineElement) Top() float64 { return e.top }

// Layout implements flow.Document over rendered sections. Positions are in
// terminal lines.
type Layout struct {
	mu       sync.Mutex
	sections []Section
	viewport int
	offset   int

	// OnScroll is called after ScrollTo with the clamped offset
	OnScroll func(top int)
}

var _ flow.Document = (*Layout)(nil)

// NewLayout creates an empty layout with a viewport of height lines
func NewLayout(height int) *Layout {
	return &Layout{viewport: height}
}

// SetSections replaces the rendered sections, typically after a resize
func (l *Layout) SetSections(sections []Section) {
	l.mu.Lock()
	l.sections = append([]Section(nil), sections...)
	l.offset = l.clamp(l.offset)
	l.mu.Unlock()
}

// SetViewport sets the visible height in lines
func (l *Layout) SetViewport(height int) {
	l.mu.Lock()
	l.viewport = height
	l.offset = l.clamp(l.offset)
	l.mu.Unlock()
}

// Offset returns the first visible line
func (l *Layout) Offset() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// SetOffset records a scroll made by the user, without notifying OnScroll
func (l *Layout) SetOffset(top int) {
	l.mu.Lock()
	l.offset = l.clamp(top)
	l.mu.Unlock()
}

// SectionAt names the section containing line by its id, class or
// data-section attribute, in that order
func (l *Layout) SectionAt(line int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	top := 0
	for _, s := range l.sections {
		if line < top+s.Lines {
			return s.Name()
		}
		top += s.Lines
	}
	return ""
}

// Name is the first of ID, Class and the section data attribute that is set
func (s Section) Name() string {
	switch {
	case s.ID != "":
		return s.ID
	case s.Class != "":
		return s.Class
	default:
		return s.Data["section"]
	}
}

func (l *Layout) total() int {
	n := 0
	for _, s := range l.sections {
		n += s.Lines
	}
	return n
}

func (l *Layout) clamp(top int) int {
	max := l.total() - l.viewport
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	return top
}

func (l *Layout) find(match func(Section) bool) (flow.Element, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	top := 0
	for _, s := range l.sections {
		if match(s) {
			return lineElement{top: float64(top)}, true
		}
		top += s.Lines
	}
	return nil, false
}

func (l *Layout) ElementByID(id string) (flow.Element, bool) {
	return l.find(func(s Section) bool { return s.ID == id })
}

func (l *Layout) ElementByClass(class string) (flow.Element, bool) {
	return l.find(func(s Section) bool { return s.Class == class })
}

func (l *Layout) ElementByData(attr, value string) (flow.Element, bool) {
	return l.find(func(s Section) bool { return s.Data[attr] == value })
}

func (l *Layout) ScrollHeight() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.total())
}

func (l *Layout) ViewportHeight() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.viewport)
}

// ScrollTo moves the viewport. Terminals have no smooth scrolling.
func (l *Layout) ScrollTo(top float64, smooth bool) error {
	l.mu.Lock()
	l.offset = l.clamp(int(top))
	offset := l.offset
	onScroll := l.OnScroll
	l.mu.Unlock()

	if onScroll != nil {
		onScroll(offset)
	}
	return nil
}
