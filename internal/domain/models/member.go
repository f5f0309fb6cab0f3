package models

import (
	"encoding/json"
	"strings"
)

// SkillList decodes the skills payload, which the API serves either as a
// JSON array of tags or as a single comma-delimited string. Decoding keeps
// the raw segments; trimming and empty-segment removal happen in the member
// store so both fetch paths share one normalization.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err == nil {
		*s = tags
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = nil
		return nil
	}
	*s = strings.Split(raw, ",")
	return nil
}

// Member is a User plus membership attributes.
type Member struct {
	ID           int64     `json:"id"`
	User         User      `json:"user"`
	Skills       SkillList `json:"skills"`
	Profession   string    `json:"profession"`
	County       string    `json:"county"`
	Bio          string    `json:"bio,omitempty"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	GitHubURL    string    `json:"github_url,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	JoinedDate   string    `json:"joined_date,omitempty"`
	CreatedAt    string    `json:"created_at,omitempty"`
}

// JoinApplication is the join-form submission forwarded to the API.
// Field names follow the API's camelCase join contract.
type JoinApplication struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	County       string `json:"county"`
	Profession   string `json:"profession"`
	Skills       string `json:"skills,omitempty"`
	Motivation   string `json:"motivation"`
	PortfolioURL string `json:"portfolioUrl,omitempty"`
}
