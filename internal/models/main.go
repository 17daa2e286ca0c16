// Package models defines the core data structures shared between the
// intake client and the complaint service.
package models

import "time"

// Role identifies what kind of user is currently signed in.
type Role string

const (
	// RoleGuest is the default role of a process with no persisted session.
	RoleGuest Role = "guest"
	// RoleFrontOffice is an office worker who reviews and edits complaints.
	RoleFrontOffice Role = "front-office"
	// RoleBackOffice is a back-office worker; intake only.
	RoleBackOffice Role = "back-office"
	// RoleAdmin is an administrator.
	RoleAdmin Role = "admin"
)

// ParseRole maps a persisted role string back to a Role.
// Unknown values fall back to RoleGuest so a corrupted session can never
// grant an elevated role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleFrontOffice, RoleBackOffice, RoleAdmin:
		return Role(s)
	default:
		return RoleGuest
	}
}

// Session holds the identity established by a successful sign-in.
type Session struct {
	// Role is the confirmed role of the identity.
	Role Role
	// OfficeID is the office the identity belongs to.
	OfficeID string
	// IdentityID is the backend's identifier for the signed-in user.
	IdentityID string
}

// Category enumerates what a complaint is about.
type Category string

const (
	CategoryWater     Category = "water"
	CategoryLight     Category = "light"
	CategoryRoad      Category = "road"
	CategoryPollution Category = "pollution"
	CategorySecurity  Category = "security"
)

// Categories lists every valid complaint category, in display order.
var Categories = []Category{
	CategoryWater, CategoryLight, CategoryRoad, CategoryPollution, CategorySecurity,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Status enumerates the workflow state of a complaint. The values are the
// wire values used by the backend.
type Status string

const (
	// StatusPending means the complaint has not been picked up yet.
	StatusPending Status = "pending"
	// StatusInProcess means work is in progress.
	StatusInProcess Status = "inprocess"
	// StatusComplete means the work is done.
	StatusComplete Status = "complete"
	// StatusIncomplete means work was attempted but not finished.
	StatusIncomplete Status = "incomplete"
)

// ValidStatus reports whether s is one of the known workflow states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProcess, StatusComplete, StatusIncomplete:
		return true
	}
	return false
}

// DisplayName returns the human-readable name of a status.
func (s Status) DisplayName() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProcess:
		return "Work in Progress"
	case StatusComplete:
		return "Work Complete"
	case StatusIncomplete:
		return "Work Incomplete"
	}
	return string(s)
}

// Geolocation is an optional coordinate pair attached to a draft.
type Geolocation struct {
	Latitude  float64
	Longitude float64
}

// ComplaintDraft is the transient form state held by the intake screen.
// It is reset to the zero value after a successful submission.
type ComplaintDraft struct {
	// ReporterName is the citizen filing the complaint.
	ReporterName string
	// ContactNumber is the citizen's phone number.
	ContactNumber string
	// Area is the address or locality the complaint refers to.
	Area string
	// Category is what the complaint is about.
	Category Category
	// Description is the free-text problem description.
	Description string
	// IncidentDate is when the problem occurred; only the calendar date
	// is sent to the backend.
	IncidentDate time.Time
	// ImagePath is an optional path to a photo to attach.
	ImagePath string
	// Location is an optional device geolocation.
	Location *Geolocation
}

// OfficeUser is a backend login account for office staff.
type OfficeUser struct {
	// Username is the login name.
	Username string
	// PasswordDigest is the hex SHA-256 digest of the password.
	PasswordDigest string
	// AdminID is the identity id handed to the client on sign-in.
	AdminID string
	// Office is the office the account belongs to: front, back or admin.
	Office string
}

// Complaint is the server-side record. The client treats every field
// except Status and AdminNote as read-only.
type Complaint struct {
	ID            string `json:"c_id"`
	ReporterName  string `json:"c_name"`
	ContactNumber string `json:"c_contactno"`
	Area          string `json:"c_area"`
	Category      string `json:"complaint_for"`
	Description   string `json:"complaint"`
	// AdminNote is the office worker's note, carried in c_description.
	AdminNote string `json:"c_description"`
	// IncidentDate is the calendar date of the incident, YYYY-MM-DD.
	IncidentDate string `json:"c_time"`
	ImageURI     string `json:"c_image"`
	Status       Status `json:"c_status"`
}
