// internal/app/features/blessedmind/views/views.go
package blessedmind

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "blessedmind",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
