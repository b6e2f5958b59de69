package domain

import "time"

// HasReachedAge reports whether someone born on birthDate has completed the
// given number of years at the reference time. Calendar arithmetic (AddDate)
// handles birthday boundaries, so the exact birthday counts as reached.
//
// Example:
//
//	birthDate := time.Date(1980, 1, 15, 0, 0, 0, 0, time.UTC)
//	at := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) // 45th birthday
//	HasReachedAge(birthDate, at, 45) // returns true
func HasReachedAge(birthDate, at time.Time, years int) bool {
	reachedAt := birthDate.UTC().AddDate(years, 0, 0)
	return !at.UTC().Before(reachedAt)
}

// AgeAt returns the number of completed years at the reference time.
func AgeAt(birthDate, at time.Time) int {
	b, a := birthDate.UTC(), at.UTC()
	age := a.Year() - b.Year()
	if a.Before(b.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
