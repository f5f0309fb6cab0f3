package models

// User represents an identity record owned by the remote GENET API.
// The client never assigns identity; it holds a read-mostly mirror of
// whatever the server returns.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"` // admin | member | guest
	ProfilePicture string `json:"profile_picture,omitempty"`
	County         string `json:"county,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	DateJoined     string `json:"date_joined,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == "admin" }
