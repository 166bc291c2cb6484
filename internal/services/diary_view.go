package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/kcal/internal/models"
)

const (
	CalorieMessageRemainingKey = "diary.calories_remaining"
	CalorieMessageOverKey      = "diary.calories_over"
)

type DiaryView struct {
	User       models.User
	Today      time.Time
	Target     int
	Totals     models.Macros
	Entries    []models.FoodEntry
	Remaining  int
	Over       int
	IsOver     bool
	MessageKey string
	Message    string
}

// ComposeDiary builds the diary payload for the user's running track against
// the target for now's weekday.
func ComposeDiary(user models.User, now time.Time, location *time.Location) DiaryView {
	target := user.TargetFor(WeekdayAt(now, location))
	totals := user.Track.Totals

	view := DiaryView{
		User:    user,
		Today:   DateAtLocation(now, location),
		Target:  target,
		Totals:  totals,
		Entries: user.Track.Entries,
	}
	if view.Entries == nil {
		view.Entries = []models.FoodEntry{}
	}

	if totals.Calories > target {
		view.IsOver = true
		view.Over = totals.Calories - target
		view.MessageKey = CalorieMessageOverKey
	} else {
		view.Remaining = target - totals.Calories
		view.MessageKey = CalorieMessageRemainingKey
	}
	view.Message = CalorieMessage(target, totals.Calories)
	return view
}

func CalorieMessage(target int, calories int) string {
	if calories > target {
		return fmt.Sprintf("%d kcal over target today", calories-target)
	}
	return fmt.Sprintf("%d kcal remaining today", target-calories)
}
