// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/genet-ke/genethub/internal/app/system/auth"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/domain/models"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	// User context (from the session middleware)
	User          *models.User
	Authenticated bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot toasts queued by the previous request
	Flashes []flash.Message

	Year int
}

// IsAdmin reports whether the signed-in user has the admin role.
func (vm BaseVM) IsAdmin() bool {
	return vm.User != nil && vm.User.IsAdmin()
}

// NewBaseVM creates a populated BaseVM for a page. Handlers that show
// toasts set Flashes afterward from the flash store.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.User = u
		vm.Authenticated = true
	}
	return vm
}
