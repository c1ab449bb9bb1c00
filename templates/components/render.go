package components

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Templ exposes a node tree as a templ.Component so handlers render every
// view the same way
func Templ(n g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return n.Render(w)
	})
}

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}

// hx builds an htmx attribute
func hx(name, value string) g.Node {
	return g.Attr("hx-"+name, value)
}
