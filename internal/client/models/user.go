// Package models defines the client-side shapes of everything exchanged
// with the SOSENS backend. Field names follow the backend's JSON; the
// client package reshapes loosely-typed payloads into these types.
package models

// Role is the account kind assigned by the backend.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

// ContactChannel is how a user prefers to be notified.
type ContactChannel string

const (
	ContactSMS   ContactChannel = "sms"
	ContactEmail ContactChannel = "email"
)

// UserProfile is the identity and preference snapshot cached with the
// session. Timestamps are kept exactly as the backend sends them.
type UserProfile struct {
	ID                   int64          `json:"id"`
	FullName             string         `json:"full_name"`
	Email                string         `json:"email,omitempty"`
	PhoneNumber          string         `json:"phone_number,omitempty"`
	Role                 Role           `json:"role"`
	District             string         `json:"district,omitempty"`
	Sector               string         `json:"sector,omitempty"`
	Village              string         `json:"village,omitempty"`
	FarmSize             *float64       `json:"farm_size,omitempty"`
	PreferredContact     ContactChannel `json:"preferred_contact"`
	ReceiveNotifications bool           `json:"receive_notifications"`
	IsActive             bool           `json:"is_active"`
	CreatedAt            string         `json:"created_at"`
	LastLogin            string         `json:"last_login,omitempty"`
}

// IsAdmin reports whether u is an administrator. Nil-safe.
func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsFarmer reports whether u is a farmer. Nil-safe.
func (u *UserProfile) IsFarmer() bool {
	return u != nil && u.Role == RoleFarmer
}

// Contact returns the phone number, falling back to the email address.
func (u *UserProfile) Contact() string {
	if u == nil {
		return ""
	}
	if u.PhoneNumber != "" {
		return u.PhoneNumber
	}
	return u.Email
}
