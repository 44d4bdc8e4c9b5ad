package services

import (
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/utils"
)

// CallerContext is the identity resolved from the access token. It is built
// once at the HTTP boundary and passed by value into every service call; the
// hostel it carries is the only tenant a service will touch.
type CallerContext struct {
	ID         uint
	Role       string
	HostelName string
	RoomNo     string
}

func NewCallerContext(u *models.User) CallerContext {
	return CallerContext{
		ID:         u.ID,
		Role:       u.Role,
		HostelName: u.HostelName,
		RoomNo:     u.RoomNumber(),
	}
}

// Require fails with Unauthenticated for an empty caller and Forbidden when
// the caller holds none of roles.
func (c CallerContext) Require(roles ...string) error {
	if c.ID == 0 || c.HostelName == "" {
		return utils.NewUnauthenticatedError("Unauthorized request")
	}
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return utils.NewForbiddenError("You do not have permission to perform this action")
}

// Clock returns the current time. Services take one so day boundaries are
// testable.
type Clock func() time.Time

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
