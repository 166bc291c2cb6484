package models

import "time"

const (
	DaysPerWeek           = 7
	DefaultCalorieTarget  = 2500
	MaxDailyCalorieTarget = 20000
)

var WeekdayKeys = [DaysPerWeek]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type Target struct {
	Day      string `json:"day" bson:"day"`
	Calories int    `json:"calories" bson:"calories"`
}

type Macros struct {
	Calories int `json:"calories" bson:"calories"`
	Protein  int `json:"protein" bson:"protein"`
	Carbs    int `json:"carbs" bson:"carbs"`
	Fat      int `json:"fat" bson:"fat"`
	Fiber    int `json:"fiber" bson:"fiber"`
}

func (macros Macros) Add(other Macros) Macros {
	return Macros{
		Calories: macros.Calories + other.Calories,
		Protein:  macros.Protein + other.Protein,
		Carbs:    macros.Carbs + other.Carbs,
		Fat:      macros.Fat + other.Fat,
		Fiber:    macros.Fiber + other.Fiber,
	}
}

type FoodEntry struct {
	Name     string    `json:"name" bson:"name"`
	Calories int       `json:"calories" bson:"calories"`
	LoggedAt time.Time `json:"logged_at" bson:"loggedAt"`
}

// Track holds the running totals for the current day followed by the food
// entries logged since the last rollover.
type Track struct {
	Totals  Macros      `json:"totals" bson:"totals"`
	Entries []FoodEntry `json:"entries" bson:"entries"`
}

func EmptyTrack() Track {
	return Track{Totals: Macros{}, Entries: []FoodEntry{}}
}

type User struct {
	ID          string              `gorm:"primaryKey" json:"id"`
	FullName    string              `gorm:"not null;default:''" json:"full_name"`
	ExternalID  string              `gorm:"uniqueIndex;not null" json:"external_id"`
	CurrentDate time.Time           `gorm:"column:tracking_date;not null" json:"current_date"`
	Targets     [DaysPerWeek]Target `gorm:"serializer:json;not null" json:"targets"`
	Track       Track               `gorm:"serializer:json;not null" json:"track"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func DefaultTargets(calories int) [DaysPerWeek]Target {
	var targets [DaysPerWeek]Target
	for index, day := range WeekdayKeys {
		targets[index] = Target{Day: day, Calories: calories}
	}
	return targets
}

func (user *User) TargetFor(weekday time.Weekday) int {
	index := int(weekday)
	if index < 0 || index >= DaysPerWeek {
		return 0
	}
	return user.Targets[index].Calories
}
