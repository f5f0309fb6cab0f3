package models

import "github.com/shopspring/decimal"

// TopUpStatus is the server's status taxonomy for MMF contributions.
// The stored value is always the server's original token; tokens outside
// the known set are preserved verbatim and match no label or style mapping.
type TopUpStatus string

const (
	TopUpPending TopUpStatus = "Pending"
	TopUpSuccess TopUpStatus = "Success"
	TopUpFailed  TopUpStatus = "Failed"
)

// Known reports whether the status is part of the closed taxonomy.
func (s TopUpStatus) Known() bool {
	switch s {
	case TopUpPending, TopUpSuccess, TopUpFailed:
		return true
	}
	return false
}

// Label returns the user-facing relabeling of the status. The mapping is
// display-only; unknown tokens come back verbatim.
func (s TopUpStatus) Label() string {
	switch s {
	case TopUpPending:
		return "Pending"
	case TopUpSuccess:
		return "Approved"
	case TopUpFailed:
		return "Rejected"
	}
	return string(s)
}

// TopUp is a single contribution record toward the Money Market Fund.
// Client-created top-ups are provisional until the server echoes them back;
// no optimistic status is assumed.
type TopUp struct {
	ID            int64           `json:"id"`
	Member        int64           `json:"member"`
	MemberName    string          `json:"member_name"`
	Amount        decimal.Decimal `json:"amount"`
	Month         string          `json:"month"`
	Status        TopUpStatus     `json:"status"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

// TopUpInput is the payload for creating a top-up.
type TopUpInput struct {
	Amount        decimal.Decimal `json:"amount"`
	Month         string          `json:"month"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes,omitempty"`
}

// MonthTotal is one entry of the summary's per-month breakdown.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// FinanceSummary is the server-computed MMF aggregate. It is an independent
// read; the client never derives it from the top-up list, so the two may
// transiently disagree after a fresh create.
type FinanceSummary struct {
	TotalSavings            decimal.Decimal `json:"total_savings"`
	MonthlyContributions    decimal.Decimal `json:"monthly_contributions"`
	TotalMembersContributed int             `json:"total_members_contributed"`
	PendingApprovals        int             `json:"pending_approvals"`
	MonthlyBreakdown        []MonthTotal    `json:"monthly_breakdown,omitempty"`
}
