package services

import (
	"testing"
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestCallerContext_Require(t *testing.T) {
	admin := CallerContext{ID: 1, Role: models.RoleAdmin, HostelName: "Vindya"}
	assert.NoError(t, admin.Require(models.RoleAdmin))
	assert.NoError(t, admin.Require(models.RoleStudent, models.RoleAdmin))
	assert.Equal(t, utils.KindForbidden, utils.KindOf(admin.Require(models.RoleStudent)))
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(CallerContext{Role: models.RoleAdmin}.Require(models.RoleAdmin)))
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2024, 2, 29, 17, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local), startOfDay(ts))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond), endOfDay(ts))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), startOfMonth(ts))
}
