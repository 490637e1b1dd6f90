package auth

// Role identifies the kind of caller behind a validated token
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSchool   Role = "school"
	RoleTeacher  Role = "teacher"
	RoleSupplier Role = "supplier"
)

// RoleDescriptions provides display text for each role
var RoleDescriptions = map[Role]string{
	RoleAdmin:    "Platform administrator",
	RoleSchool:   "School posting jobs",
	RoleTeacher:  "Teacher browsing and applying",
	RoleSupplier: "Educational supplier",
}

// CanManageJobs reports whether the role may create or edit job postings
func (r Role) CanManageJobs() bool {
	return r == RoleAdmin || r == RoleSchool || r == RoleSupplier
}

// IsAdmin reports whether the role has administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
