// Package account covers the signed-in settings page (profile + password
// change) and the public password-reset flow (forgot + emailed-link
// confirm).
package account

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	sessionstore "github.com/genet-ke/genethub/internal/app/store/session"
	"github.com/genet-ke/genethub/internal/app/system/auth"
	"github.com/genet-ke/genethub/internal/app/system/flash"
	"github.com/genet-ke/genethub/internal/app/system/gateway"
	"github.com/genet-ke/genethub/internal/app/system/inputval"
	"github.com/genet-ke/genethub/internal/app/system/normalize"
	"github.com/genet-ke/genethub/internal/app/system/viewdata"
)

type Handler struct {
	Sessions *sessionstore.Store
	Flash    *flash.Store
	Log      *zap.Logger
}

func NewHandler(sessions *sessionstore.Store, fl *flash.Store, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Flash: fl, Log: logger}
}

type profileForm struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	County      string
	Error       string
}

type settingsData struct {
	viewdata.BaseVM
	Profile       profileForm
	PasswordError string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /settings                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	form := profileForm{}
	if u, ok := auth.CurrentUser(r); ok {
		form = profileForm{
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			County:      u.County,
		}
	}
	h.renderSettings(w, r, form, "")
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, form profileForm, passwordErr string) {
	data := settingsData{
		BaseVM:        viewdata.NewBaseVM(r, "Account settings", "/dashboard"),
		Profile:       form,
		PasswordError: passwordErr,
	}
	data.Flashes = h.Flash.Pop(w, r)

	templates.Render(w, r, "account_settings", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /settings/profile                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProfilePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	input := sessionstore.ProfileUpdate{
		FirstName:   normalize.Name(r.FormValue("first_name")),
		LastName:    normalize.Name(r.FormValue("last_name")),
		Email:       normalize.Email(r.FormValue("email")),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		County:      strings.TrimSpace(r.FormValue("county")),
	}
	form := profileForm{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		County:      input.County,
	}

	if input.FirstName == "" || input.LastName == "" || !inputval.IsValidEmail(input.Email) {
		form.Error = "First name, last name and a valid email are required."
		h.renderSettings(w, r, form, "")
		return
	}

	if err := h.Sessions.UpdateProfile(r.Context(), input); err != nil {
		form.Error = gateway.Message(err, "Failed to update profile")
		h.renderSettings(w, r, form, "")
		return
	}

	h.Flash.Success(w, r, "Profile updated.")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /settings/password                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePasswordPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if current == "" {
		h.renderSettings(w, r, h.currentProfileForm(r), "Please enter your current password.")
		return
	}
	if err := inputval.NewPassword(next, confirm); err != nil {
		h.renderSettings(w, r, h.currentProfileForm(r), err.Error())
		return
	}

	if err := h.Sessions.ChangePassword(r.Context(), current, next); err != nil {
		h.Log.Info("password change failed", zap.Error(err))
		h.renderSettings(w, r, h.currentProfileForm(r), gateway.Message(err, "Failed to change password"))
		return
	}

	h.Flash.Success(w, r, "Password changed.")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) currentProfileForm(r *http.Request) profileForm {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return profileForm{}
	}
	return profileForm{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		County:      u.County,
	}
}

type forgotData struct {
	viewdata.BaseVM
	Error string
	Email string
	Sent  bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /forgot-password + POST /forgot-password                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForgotPassword(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "account_forgot_password", forgotData{
		BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
	})
}

func (h *Handler) HandleForgotPasswordPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	if !inputval.IsValidEmail(email) {
		templates.Render(w, r, "account_forgot_password", forgotData{
			BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
			Error:  "Please enter a valid email address.",
			Email:  email,
		})
		return
	}

	if err := h.Sessions.RequestPasswordReset(r.Context(), email); err != nil {
		templates.Render(w, r, "account_forgot_password", forgotData{
			BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
			Error:  gateway.Message(err, "Failed to send reset email"),
			Email:  email,
		})
		return
	}

	templates.Render(w, r, "account_forgot_password", forgotData{
		BaseVM: viewdata.NewBaseVM(r, "Forgot password", "/login"),
		Email:  email,
		Sent:   true,
	})
}

type resetData struct {
	viewdata.BaseVM
	Error       string
	UID         string
	Token       string
	InvalidLink bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /reset-password/{uid}/{token} + POST /reset-password                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeResetPassword(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	token := chi.URLParam(r, "token")

	templates.Render(w, r, "account_reset_password", resetData{
		BaseVM:      viewdata.NewBaseVM(r, "Reset password", "/login"),
		UID:         uid,
		Token:       token,
		InvalidLink: uid == "" || token == "",
	})
}

func (h *Handler) HandleResetPasswordPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	uid := strings.TrimSpace(r.FormValue("uid"))
	token := strings.TrimSpace(r.FormValue("token"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if uid == "" || token == "" {
		h.renderReset(w, r, resetData{InvalidLink: true})
		return
	}
	if err := inputval.NewPassword(password, confirm); err != nil {
		h.renderReset(w, r, resetData{UID: uid, Token: token, Error: err.Error()})
		return
	}

	if err := h.Sessions.ConfirmPasswordReset(r.Context(), uid, token, password); err != nil {
		if gateway.KindOf(err) == gateway.KindValidation {
			h.renderReset(w, r, resetData{InvalidLink: true})
			return
		}
		h.renderReset(w, r, resetData{UID: uid, Token: token,
			Error: gateway.Message(err, "Failed to reset password")})
		return
	}

	h.Flash.Success(w, r, "Password reset. Sign in with your new password.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderReset(w http.ResponseWriter, r *http.Request, data resetData) {
	data.BaseVM = viewdata.NewBaseVM(r, "Reset password", "/login")
	templates.Render(w, r, "account_reset_password", data)
}
