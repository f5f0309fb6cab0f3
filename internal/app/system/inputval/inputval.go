// Package inputval holds the pre-submission validation gates. They are a
// fast-fail UX courtesy applied by the view layer before dispatching to a
// store; the server remains the authority and the stores do not re-validate.
package inputval

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/genet-ke/genethub/internal/domain/models"
	"github.com/shopspring/decimal"
)

const (
	// MaxProposalFileSize is the proposal upload ceiling.
	MaxProposalFileSize = 10 << 20 // 10MB

	// MinIdeaDescription and MinProposalDescription are the minimum
	// description lengths enforced before submission.
	MinIdeaDescription     = 50
	MinProposalDescription = 20

	// MaxIdeaTitle bounds the idea title length.
	MaxIdeaTitle = 100

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

var (
	ErrAmountNotPositive  = errors.New("amount must be greater than 0")
	ErrMonthRequired      = errors.New("please select a month")
	ErrReferenceRequired  = errors.New("transaction reference is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = fmt.Errorf("title must be at most %d characters", MaxIdeaTitle)
	ErrCategoryUnknown    = errors.New("please select a valid category")
	ErrNotPDF             = errors.New("please upload a PDF file")
	ErrFileTooLarge       = errors.New("file size must be less than 10MB")
	ErrJoinFieldsRequired = errors.New("first name, last name, email, county, profession and motivation are required")
	ErrEmailInvalid       = errors.New("please enter a valid email address")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// IsValidEmail applies a light shape check: one @ with non-empty local and
// domain parts and no spaces. The server does the authoritative validation.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if strings.ContainsAny(s, " \t") || strings.Count(s, "@") != 1 {
		return false
	}
	return true
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TopUp gates a top-up submission: positive amount, a month, and a
// non-empty transaction reference.
func TopUp(amount decimal.Decimal, month, transactionID string) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if strings.TrimSpace(month) == "" {
		return ErrMonthRequired
	}
	if strings.TrimSpace(transactionID) == "" {
		return ErrReferenceRequired
	}
	return nil
}

// Idea gates an idea submission.
func Idea(title, category, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxIdeaTitle {
		return ErrTitleTooLong
	}
	if !models.ValidIdeaCategory(category) {
		return ErrCategoryUnknown
	}
	if len(strings.TrimSpace(description)) < MinIdeaDescription {
		return fmt.Errorf("description must be at least %d characters", MinIdeaDescription)
	}
	return nil
}

// ProposalFile gates the uploaded document: a single PDF of at most 10MB.
// contentType may be empty when the transport did not supply one; the
// extension check still applies.
func ProposalFile(filename string, size int64, contentType string) error {
	if size > MaxProposalFileSize {
		return ErrFileTooLarge
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return ErrNotPDF
	}
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil || mt != "application/pdf" {
			return ErrNotPDF
		}
	}
	return nil
}

// ProposalDescription gates the proposal's description length.
func ProposalDescription(description string) error {
	if len(strings.TrimSpace(description)) < MinProposalDescription {
		return fmt.Errorf("description must be at least %d characters", MinProposalDescription)
	}
	return nil
}

// NewPassword gates a new password and its confirmation.
func NewPassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// JoinApplication gates the join form's required fields.
func JoinApplication(app models.JoinApplication) error {
	if app.FirstName == "" || app.LastName == "" || app.Email == "" ||
		app.County == "" || app.Profession == "" || app.Motivation == "" {
		return ErrJoinFieldsRequired
	}
	if !IsValidEmail(app.Email) {
		return ErrEmailInvalid
	}
	if app.PortfolioURL != "" && !IsValidHTTPURL(app.PortfolioURL) {
		return errors.New("portfolio link must be a valid http(s) URL")
	}
	return nil
}
