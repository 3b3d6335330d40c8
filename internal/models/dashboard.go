package models

// DashboardSummary — агрегаты для главного экрана консоли.
type DashboardSummary struct {
	PendingEvents     int64      `json:"pendingEvents"`
	ActiveEvents      int64      `json:"activeEvents"`
	TotalParticipants int64      `json:"totalParticipants"`
	NewParticipants   int64      `json:"newParticipants"`
	CreditsSpent      int64      `json:"creditsSpent"`
	ReportedPosts     int64      `json:"reportedPosts"`
	Daily             []DayPoint `json:"daily,omitempty"`
}

// DayPoint — точка графика активности.
type DayPoint struct {
	Date         string `json:"date"`
	Signups      int64  `json:"signups"`
	Events       int64  `json:"events"`
	CreditsSpent int64  `json:"creditsSpent"`
}
