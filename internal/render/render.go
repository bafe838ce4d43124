// Package render wraps the mustache engine used for template expansion.
// Sections ({{#KEY}}...{{/KEY}}) act as boolean gates against the settings
// context; plain tags ({{KEY}}) substitute resolved values. Keys absent
// from the context render empty, which is what makes the layer filter's
// render-then-read-back trick work for nested conditions.
package render

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// Render expands a mustache template against a context. The context is the
// nested form produced by settings.Context.Nest, so dot-path keys resolve
// naturally ({{PROJECT.NAME}}).
func Render(template string, context any) (string, error) {
	out, err := mustache.Render(template, context)
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}
