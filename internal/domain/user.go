package domain

// Role is a user's granted role.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Preference is one stored user setting.
type Preference struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is the authenticated account.
type User struct {
	ID             int64        `json:"id"`
	Email          string       `json:"email"`
	FirstLoginDate int64        `json:"firstLoginDate,omitempty"`
	LastLoginDate  int64        `json:"lastLoginDate,omitempty"`
	Roles          []Role       `json:"roles"`
	Preferences    []Preference `json:"preferences"`
}

// RoleAdmin is the administrator role name.
const RoleAdmin = "ADMIN"

// IsAdmin reports whether the user holds RoleAdmin.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r.Name == RoleAdmin {
			return true
		}
	}
	return false
}

// Preference returns the named preference or def when unset.
func (u User) Preference(name, def string) string {
	for _, p := range u.Preferences {
		if p.Name == name {
			return p.Value
		}
	}
	return def
}
