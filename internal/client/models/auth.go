package models

// RegisterRequest is the body of auth/register.
type RegisterRequest struct {
	FullName             string         `json:"full_name" validate:"required"`
	Email                string         `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber          string         `json:"phone_number,omitempty" validate:"required_without=Email"`
	Password             string         `json:"password" validate:"required,min=6"`
	Role                 Role           `json:"role" validate:"oneof=farmer admin"`
	District             string         `json:"district,omitempty" validate:"required"`
	Sector               string         `json:"sector,omitempty"`
	Village              string         `json:"village,omitempty"`
	FarmSize             *float64       `json:"farm_size,omitempty" validate:"omitempty,gt=0"`
	PreferredContact     ContactChannel `json:"preferred_contact" validate:"oneof=sms email"`
	ReceiveNotifications *bool          `json:"receive_notifications,omitempty"`
}

// AuthResult is returned by both auth/register and auth/login.
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}

// ForgotPasswordResult is returned by auth/forgot-password. DebugToken is
// only populated by backends running in development mode.
type ForgotPasswordResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DebugToken string `json:"debug_token,omitempty"`
}

// ResetPasswordRequest is the body of auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// PreferencesUpdate is the body of PUT preferences; nil fields are left
// untouched by the backend.
type PreferencesUpdate struct {
	ReceiveNotifications *bool           `json:"receive_notifications,omitempty"`
	PreferredContact     *ContactChannel `json:"preferred_contact,omitempty" validate:"omitempty,oneof=sms email"`
	FarmSize             *float64        `json:"farm_size,omitempty" validate:"omitempty,gt=0"`
	District             *string         `json:"district,omitempty"`
	Sector               *string         `json:"sector,omitempty"`
	Village              *string         `json:"village,omitempty"`
}

// PreferencesResult carries the full updated profile.
type PreferencesResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}

// Health is the body of GET health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
