package models

// IdeaStatus is the review pipeline status for Blessed Mind submissions.
type IdeaStatus string

const (
	IdeaSubmitted IdeaStatus = "submitted"
	IdeaReviewing IdeaStatus = "reviewing"
	IdeaApproved  IdeaStatus = "approved"
	IdeaRejected  IdeaStatus = "rejected"
)

// Known reports whether the status is part of the closed taxonomy.
func (s IdeaStatus) Known() bool {
	switch s {
	case IdeaSubmitted, IdeaReviewing, IdeaApproved, IdeaRejected:
		return true
	}
	return false
}

// IdeaCategories is the fixed category list for idea submissions.
var IdeaCategories = []string{
	"Technology",
	"Agriculture",
	"Education",
	"Healthcare",
	"Finance",
	"Entertainment",
	"Real Estate",
	"E-commerce",
	"Social Impact",
	"Environment",
	"Other",
}

// ValidIdeaCategory reports whether cat is one of IdeaCategories.
func ValidIdeaCategory(cat string) bool {
	for _, c := range IdeaCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Idea is a submitted concept in the Blessed Mind pipeline.
type Idea struct {
	ID          int64      `json:"id"`
	Member      int64      `json:"member"`
	MemberName  string     `json:"member_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      IdeaStatus `json:"status"`
	CreatedAt   string     `json:"created_at,omitempty"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
}

// IdeaInput is the payload for creating an idea.
type IdeaInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Proposal is a document-backed elaboration of one Idea.
type Proposal struct {
	ID          int64      `json:"id"`
	Idea        int64      `json:"idea"`
	IdeaTitle   string     `json:"idea_title"`
	Member      int64      `json:"member"`
	MemberName  string     `json:"member_name"`
	FileURL     string     `json:"file_url"`
	Description string     `json:"description"`
	Status      IdeaStatus `json:"status"`
	SubmittedAt string     `json:"submitted_at,omitempty"`
}
