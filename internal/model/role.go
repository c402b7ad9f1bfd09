package model

// Role identifies the consumer category a derived task list belongs to.
// Each role sees an independent task list.
type Role string

const (
	RoleOrganizer    Role = "organizer"
	RoleAdmin        Role = "admin"
	RoleVolunteer    Role = "volunteer"
	RoleTeamDirector Role = "team_director"
)

// Roles lists every valid role in a stable order.
var Roles = []Role{RoleOrganizer, RoleAdmin, RoleVolunteer, RoleTeamDirector}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrganizer, RoleAdmin, RoleVolunteer, RoleTeamDirector:
		return true
	}
	return false
}
