package models

import "gorm.io/datatypes"

// Role names recognised across the platform.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// Role maps a role name to its permission set.
type Role struct {
	Name        string         `gorm:"primaryKey;size:32" json:"name"`
	Permissions datatypes.JSON `json:"permissions"`
}

// IsStaff reports whether the role grants tutor-level access.
func IsStaff(role string) bool {
	return role == RoleTutor || role == RoleAdmin
}
