package services

import "time"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func WeekdayAt(value time.Time, location *time.Location) time.Weekday {
	return DateAtLocation(value, location).Weekday()
}
