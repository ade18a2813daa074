package domain

import "encoding/json"

// Role is the access level of a WorkSync account.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// UserProfile is the identity snapshot returned by the backend for the
// signed-in account. Consumers treat it as read-only; profile edits require a
// refetch or a new login.
type UserProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Position     string `json:"position,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// IsAdmin reports whether the profile carries the Admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UnmarshalJSON accepts both the document-store "_id" and plain "id" keys.
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = UserProfile(raw.plain)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	return nil
}

// Clone returns a copy that callers may keep without sharing state.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
