// internal/app/features/finance/views/views.go
package finance

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "finance",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
