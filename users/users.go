package users

import "time"

// RoleType represents a user's role as reported by the marketplace API.
type RoleType string

const (
	RoleUser  RoleType = "USER"  // Regular buyer/seller account
	RoleAdmin RoleType = "ADMIN" // Administrator, required for the admin console
)

// User is the authenticated principal cached client-side after login.
// It mirrors the user payload of the login and profile endpoints; the
// credential store persists it verbatim and the session controller
// holds an in-memory copy for rendering.
type User struct {
	ID              int64     `json:"id,omitempty"`          // Unique identifier for the user
	Username        string    `json:"username,omitempty"`    // Unique username
	Email           string    `json:"email,omitempty"`       // User's email address
	FirstName       string    `json:"firstName,omitempty"`   // First name of the user
	LastName        string    `json:"lastName,omitempty"`    // Last name of the user
	DisplayName     string    `json:"displayName,omitempty"` // Optional custom display name
	FullName        string    `json:"fullName,omitempty"`    // Server-composed full name
	Role            RoleType  `json:"role,omitempty"`        // USER or ADMIN
	ApartmentNumber string    `json:"apartmentNumber,omitempty"`
	BuildingName    string    `json:"buildingName,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	EmailVerified   bool      `json:"emailVerified,omitempty"` // Has the user verified their email
	PhoneVerified   bool      `json:"phoneVerified,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// IsAdmin returns true if the user may enter the admin console
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Display returns the name to show in a header or avatar, preferring
// the custom display name over the first name.
func (u *User) Display() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return "User"
}
