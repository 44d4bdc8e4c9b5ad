package services

import (
	"context"
	"sort"
	"time"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const (
	topWorkersLimit     = 5
	recentIssuesLimit   = 5
	recentActivityLimit = 3
	trendWindow         = 7 * 24 * time.Hour
)

type DashboardService struct {
	db  *gorm.DB
	now Clock
}

func NewDashboardService(db *gorm.DB, now Clock) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{db: db, now: now}
}

// AdminDashboard aggregates the admin's hostel. Every count and chart is read
// through the same tenant scope.
func (s *DashboardService) AdminDashboard(ctx context.Context, caller CallerContext) (*dto.AdminDashboard, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	tenant := repository.ForHostel(s.db, caller.HostelName)
	now := s.now()
	today := startOfDay(now)
	lastWeek := now.Add(-trendWindow)

	out := &dto.AdminDashboard{HostelName: caller.HostelName}
	var err error

	if out.Stats.TotalWorkers, err = tenant.Workers().Count(ctx); err != nil {
		return nil, utils.NewInternalError("failed to count workers", err)
	}
	if out.Stats.CleaningsToday, err = tenant.Logs().Count(ctx, repository.LogFilter{From: today}); err != nil {
		return nil, utils.NewInternalError("failed to count today's logs", err)
	}
	if out.Stats.WeeklySubmissions, err = tenant.Logs().Count(ctx, repository.LogFilter{From: lastWeek}); err != nil {
		return nil, utils.NewInternalError("failed to count weekly logs", err)
	}
	if out.Stats.PendingIssues, err = tenant.Issues().Count(ctx, repository.IssueFilter{Statuses: models.PendingIssueStatuses}); err != nil {
		return nil, utils.NewInternalError("failed to count issues", err)
	}

	top, err := tenant.Logs().TopWorkers(ctx, topWorkersLimit)
	if err != nil {
		return nil, utils.NewInternalError("failed to rank workers", err)
	}
	out.Charts.WorkerPerformance = make([]dto.NamedCount, 0, len(top))
	for _, t := range top {
		out.Charts.WorkerPerformance = append(out.Charts.WorkerPerformance, dto.NamedCount{Name: t.Name, Count: t.LogCount})
	}

	labels, err := tenant.Logs().TaskLabels(ctx)
	if err != nil {
		return nil, utils.NewInternalError("failed to load task labels", err)
	}
	out.Charts.TaskDistribution = taskDistribution(labels)

	days, err := tenant.Logs().DailyCounts(ctx, lastWeek)
	if err != nil {
		return nil, utils.NewInternalError("failed to load weekly trend", err)
	}
	out.Charts.WeeklyTrend = make([]dto.DayCount, 0, len(days))
	for _, d := range days {
		out.Charts.WeeklyTrend = append(out.Charts.WeeklyTrend, dto.DayCount{Day: d.Day, Count: d.LogCount})
	}

	issues, err := tenant.Issues().List(ctx, repository.IssueFilter{
		Statuses: models.PendingIssueStatuses,
		Limit:    recentIssuesLimit,
	})
	if err != nil {
		return nil, utils.NewInternalError("failed to load recent issues", err)
	}
	out.RecentIssues = make([]dto.IssueSummary, 0, len(issues))
	for _, i := range issues {
		out.RecentIssues = append(out.RecentIssues, dto.IssueSummary{
			ID:          i.ID,
			RoomNo:      i.RoomNo,
			IssueType:   i.IssueType,
			Description: i.Description,
			Status:      i.Status,
			CreatedAt:   i.CreatedAt,
		})
	}

	return out, nil
}

// taskDistribution counts each label across all logs, largest first.
func taskDistribution(sets [][]string) []dto.NamedValue {
	counts := make(map[string]int64)
	for _, set := range sets {
		for _, label := range set {
			counts[label]++
		}
	}
	out := make([]dto.NamedValue, 0, len(counts))
	for name, value := range counts {
		out = append(out, dto.NamedValue{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// StudentDashboard summarizes the caller's own room.
func (s *DashboardService) StudentDashboard(ctx context.Context, caller CallerContext) (*dto.StudentDashboard, error) {
	if err := caller.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	tenant := repository.ForHostel(s.db, caller.HostelName)
	room := caller.RoomNo

	out := &dto.StudentDashboard{RoomNo: room, HostelName: caller.HostelName}

	recent, err := tenant.Logs().List(ctx, repository.LogFilter{RoomNo: room, Limit: recentActivityLimit})
	if err != nil {
		return nil, utils.NewInternalError("failed to load recent activity", err)
	}
	if len(recent) > 0 {
		last := recent[0].CreatedAt
		out.Stats.LastCleaningDate = &last
	}
	out.RecentActivity = dto.NewCleaningLogList(recent)

	if out.Stats.MonthCount, err = tenant.Logs().Count(ctx, repository.LogFilter{RoomNo: room, From: startOfMonth(s.now())}); err != nil {
		return nil, utils.NewInternalError("failed to count monthly logs", err)
	}
	if out.Stats.OpenIssues, err = tenant.Issues().Count(ctx, repository.IssueFilter{RoomNo: room, Statuses: models.PendingIssueStatuses}); err != nil {
		return nil, utils.NewInternalError("failed to count issues", err)
	}

	return out, nil
}
