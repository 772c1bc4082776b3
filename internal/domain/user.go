package domain

// Account roles. Students register themselves; admin accounts are seeded
// out of band.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)
