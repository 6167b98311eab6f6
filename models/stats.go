package models

// Stats represents the dashboard adherence summary for one user
type Stats struct {
	Streak         int     `json:"streak"`
	Compliance     float64 `json:"compliance"`
	WeeklyCount    int64   `json:"weeklyCount"`
	TodayCompleted int64   `json:"todayCompleted"`
	TodayTotal     int64   `json:"todayTotal"`
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// MessageResponse returns a simple message response struct
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}
