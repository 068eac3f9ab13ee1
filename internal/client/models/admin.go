package models

// AnalyticsSummary holds platform-wide counters. The notification counters
// are optional in the backend response and stay nil when absent.
type AnalyticsSummary struct {
	TotalUsers           int
	Farmers              int
	TotalReadings        int
	TotalRecommendations int
	TotalNotifications   *int
	SentNotifications    *int
}

type CropCount struct {
	Crop  string `json:"crop"`
	Count int    `json:"count"`
}

type DistrictCount struct {
	District string `json:"district"`
	Count    int    `json:"count"`
}

// Analytics is the reshaped result of GET admin/analytics.
type Analytics struct {
	Success    bool
	Summary    AnalyticsSummary
	TopCrops   []CropCount
	ByDistrict []DistrictCount
}

// UserFilter selects a page of admin/users. Empty Role/District are not sent.
type UserFilter struct {
	Skip     int
	Limit    int
	Role     Role
	District string
}

// UserList is the reshaped result of GET admin/users.
type UserList struct {
	Success bool
	Users   []UserProfile
	Total   int
}

// BroadcastRequest is the body of POST admin/broadcast.
type BroadcastRequest struct {
	Message  string `json:"message" validate:"required"`
	District string `json:"district,omitempty"`
}

// BulkPredictionRequest is the body of POST admin/send-predictions.
type BulkPredictionRequest struct {
	Crop     string `json:"crop" validate:"required"`
	District string `json:"district,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ActionResult is the common reply of admin notification actions.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}

// NotificationLog is one delivery attempt recorded by the backend.
type NotificationLog struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"notification_type"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// NotificationLogList is the reshaped result of GET admin/notification-logs.
type NotificationLogList struct {
	Success bool
	Total   int
	Logs    []NotificationLog
}

// AdminDashboard bundles analytics with the first page of users.
type AdminDashboard struct {
	Analytics Analytics
	Users     UserList
}
