package services

import (
	"time"

	"github.com/terraincognita07/kcal/internal/models"
)

// ApplyRollover resets the running track when now falls on a later calendar
// day than the user's current date. It reports whether the record changed.
// A current date in the future is left alone so it never moves backwards.
func ApplyRollover(user *models.User, now time.Time, location *time.Location) bool {
	if user == nil {
		return false
	}

	storedDay := DateAtLocation(user.CurrentDate, location)
	today := DateAtLocation(now, location)
	if !today.After(storedDay) {
		return false
	}

	user.Track = models.EmptyTrack()
	user.CurrentDate = now
	return true
}
