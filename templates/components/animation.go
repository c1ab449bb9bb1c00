package components

import (
	"fmt"
	"strings"
)

// AnimationPreset parameterizes every entrance and hover transition on the
// page. The stylesheet reads the values as CSS custom properties.
type AnimationPreset struct {
	Name     string
	Duration int // ms
	Stagger  int // ms between sibling items
	Distance int // px travelled on entrance
	Easing   string
}

// Animation presets
var (
	PresetFast     = AnimationPreset{Name: "fast", Duration: 200, Stagger: 50, Distance: 10, Easing: "ease-out"}
	PresetStandard = AnimationPreset{Name: "standard", Duration: 400, Stagger: 100, Distance: 20, Easing: "ease-out"}
	PresetRelaxed  = AnimationPreset{Name: "relaxed", Duration: 600, Stagger: 150, Distance: 30, Easing: "cubic-bezier(0.22, 1, 0.36, 1)"}
)

var presets = map[string]AnimationPreset{
	PresetFast.Name:     PresetFast,
	PresetStandard.Name: PresetStandard,
	PresetRelaxed.Name:  PresetRelaxed,
}

// PresetByName returns the named preset, or standard for unknown names
func PresetByName(name string) AnimationPreset {
	if p, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return PresetStandard
}

// CSSVariables renders the preset as an inline style value
func (p AnimationPreset) CSSVariables() string {
	return fmt.Sprintf("--anim-duration: %dms; --anim-stagger: %dms; --anim-distance: %dpx; --anim-easing: %s;",
		p.Duration, p.Stagger, p.Distance, p.Easing)
}

// Delay returns the entrance delay of the i-th item in a staggered group
func (p AnimationPreset) Delay(i int) string {
	return fmt.Sprintf("--anim-delay: %dms;", i*p.Stagger)
}
