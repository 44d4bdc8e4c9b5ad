package dto

import "time"

type AdminStats struct {
	TotalWorkers      int64 `json:"totalWorkers"`
	CleaningsToday    int64 `json:"cleaningsToday"`
	WeeklySubmissions int64 `json:"weeklySubmissions"`
	PendingIssues     int64 `json:"pendingIssues"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type NamedValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type DayCount struct {
	Day   string `json:"_id"`
	Count int64  `json:"count"`
}

type AdminCharts struct {
	WorkerPerformance []NamedCount `json:"workerPerformance"`
	TaskDistribution  []NamedValue `json:"taskDistribution"`
	WeeklyTrend       []DayCount   `json:"weeklyTrend"`
}

type AdminDashboard struct {
	HostelName   string         `json:"hostelName"`
	Stats        AdminStats     `json:"stats"`
	Charts       AdminCharts    `json:"charts"`
	RecentIssues []IssueSummary `json:"recentIssues"`
}

type StudentStats struct {
	LastCleaningDate *time.Time `json:"lastCleaningDate"`
	MonthCount       int64      `json:"monthCount"`
	OpenIssues       int64      `json:"openIssues"`
}

type StudentDashboard struct {
	RoomNo         string                `json:"room_no"`
	HostelName     string                `json:"hostelName"`
	Stats          StudentStats          `json:"stats"`
	RecentActivity []CleaningLogResponse `json:"recentActivity"`
}
