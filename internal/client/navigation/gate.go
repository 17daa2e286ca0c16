// Package navigation decides which destinations (screens) the active role
// may reach. The policy is a static table keyed by role; reachability is a
// pure function of the role and nothing else.
package navigation

import "github.com/sdeshpande/CivicDesk/internal/models"

// Destination identifies a screen in the client.
type Destination string

const (
	// DestComplaintForm is the public intake form.
	DestComplaintForm Destination = "ComplaintForm"
	// DestLogin is the sign-in screen.
	DestLogin Destination = "Login"
	// DestComplaintList is the office worker's review list.
	DestComplaintList Destination = "ComplaintList"
	// DestEditComplaint is the per-complaint edit screen.
	DestEditComplaint Destination = "EditComplaint"
	// DestResolvedComplaints is the archive of completed complaints.
	DestResolvedComplaints Destination = "ResolvedComplaints"
)

// destinations is the role policy table. Every role can reach the intake
// form and the login screen; review screens are limited to front-office
// and admin.
var destinations = map[models.Role][]Destination{
	models.RoleGuest: {DestComplaintForm, DestLogin},
	models.RoleFrontOffice: {
		DestComplaintForm, DestLogin,
		DestComplaintList, DestEditComplaint, DestResolvedComplaints,
	},
	models.RoleBackOffice: {DestComplaintForm, DestLogin},
	models.RoleAdmin: {
		DestComplaintForm, DestLogin,
		DestComplaintList, DestEditComplaint,
	},
}

// Reachable returns the set of destinations the given role may navigate
// to. Unknown roles get the guest set.
func Reachable(role models.Role) map[Destination]bool {
	row, ok := destinations[role]
	if !ok {
		row = destinations[models.RoleGuest]
	}
	set := make(map[Destination]bool, len(row))
	for _, d := range row {
		set[d] = true
	}
	return set
}

// CanReach reports whether role may navigate to dest.
func CanReach(role models.Role, dest Destination) bool {
	return Reachable(role)[dest]
}

// Landing returns the destination a freshly signed-in role should land
// on: front-office goes straight to the review list, everyone else to the
// intake form.
func Landing(role models.Role) Destination {
	if role == models.RoleFrontOffice {
		return DestComplaintList
	}
	return DestComplaintForm
}
