package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// parseLineDate разбирает дату строки и проверяет, что она не в прошлом
func parseLineDate(raw string, now time.Time) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	if isDateInPast(date, now) {
		return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, raw)
	}
	return date, nil
}

// isDateInPast сравнивает только календарные даты
func isDateInPast(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}
