package models

import (
	"time"

	"github.com/hostelcare/hostel-backend/utils"
)

// Hostels is the tenant roster. Every record belongs to exactly one of them.
var Hostels = []string{
	"Nrupatunga Boys hostel",
	"Sahyadri",
	"Vindya",
	"Saraswati",
	"Shalmala",
	"Shatavari",
	"Shambavi",
	"Need to know",
}

// IsValidHostel reports whether name is on the roster. Matching is exact.
func IsValidHostel(name string) bool {
	for _, h := range Hostels {
		if h == name {
			return true
		}
	}
	return false
}

func validateHostel(name string) error {
	if !IsValidHostel(name) {
		return utils.NewValidationError("hostelName must be one of the registered hostels")
	}
	return nil
}

// DayKey is the local calendar day of t, used for per-day uniqueness.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
