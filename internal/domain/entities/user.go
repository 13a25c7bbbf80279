package entities

import (
	"strings"
	"time"
)

// Role is the authorization role of a user
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleUser         Role = "USER"
	RoleReceptionist Role = "RECEPTIONIST"
)

// Admin-count bounds enforced on registration, role change and deletion.
const (
	MinAdmins = 1
	MaxAdmins = 2
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleUser, RoleReceptionist}

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return r, false
}

// User represents a hotel guest or staff account
type User struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Bookings []*Booking `json:"bookings,omitempty" db:"-"`
}

// IsAdmin reports whether the user holds the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DefaultRole is the role given to a registrant who did not ask for one:
// the first two accounts become administrators.
func DefaultRole(existingUsers int64) Role {
	if existingUsers < MaxAdmins {
		return RoleAdmin
	}
	return RoleUser
}

// AdminCountAfter returns how many admins would exist if target took newRole.
// The target is counted once whether or not it is already an admin.
func AdminCountAfter(currentAdmins int64, target *User, newRole Role) int64 {
	count := currentAdmins
	if target.IsAdmin() {
		count--
	}
	if newRole == RoleAdmin {
		count++
	}
	return count
}

// RoleStats holds the number of users per role
type RoleStats struct {
	Admin        int64 `json:"ADMIN"`
	User         int64 `json:"USER"`
	Receptionist int64 `json:"RECEPTIONIST"`
	Total        int64 `json:"total"`
}
