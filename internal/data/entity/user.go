package entity

import "strings"

type RoleName string

const (
	RoleCustomer RoleName = "Customer"
	RoleStaff    RoleName = "Staff"
	RoleManager  RoleName = "Manager"
)

// AllRoles is the registration whitelist.
var AllRoles = []RoleName{RoleCustomer, RoleStaff, RoleManager}

// ParseRoleName matches s case-insensitively against the whitelist and
// returns the canonical name.
func ParseRoleName(s string) (RoleName, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

type User struct {
	Base
	FullName string `gorm:"size:150"`
	Username string `gorm:"size:100;not null;uniqueIndex"`
	Email    string `gorm:"size:255;not null;uniqueIndex"`
	Password string `gorm:"size:255;not null"`
	Phone    string `gorm:"size:20"`
	Address  string `gorm:"size:255"`
	// Status is true for active accounts and false for banned ones.
	Status bool `gorm:"not null"`
}

type Role struct {
	BaseSimple
	RoleName string `gorm:"size:50;not null;uniqueIndex"`
}

// UserRole links a user to a role. It only navigates towards Role; the
// reverse direction is resolved by querying on UserID.
type UserRole struct {
	UserID int   `gorm:"primaryKey"`
	RoleID int   `gorm:"primaryKey;index"`
	Role   *Role `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
