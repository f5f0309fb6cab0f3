package models

// AnnouncementPriority drives visual emphasis only.
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityHigh   AnnouncementPriority = "high"
)

// Known reports whether the priority is part of the closed taxonomy.
// Unknown values are preserved verbatim but match no badge style.
func (p AnnouncementPriority) Known() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Announcement is an organization-wide notice.
type Announcement struct {
	ID        int64                `json:"id"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	Author    string               `json:"author"`
	Priority  AnnouncementPriority `json:"priority"`
	CreatedAt string               `json:"created_at,omitempty"`
	UpdatedAt string               `json:"updated_at,omitempty"`
}

// Event is an organization event.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"event_date"`
	Time        string `json:"event_time,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ContactMessage is the public contact/enquiry submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}
