package domain

import (
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// ActiveReservationStatuses are the statuses that block a car's calendar.
var ActiveReservationStatuses = []ReservationStatus{ReservationStatusPending, ReservationStatusConfirmed}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return st, nil
	}
	return "", Validation("Invalid reservation status: %s", s)
}

// IsActive reports whether the status counts toward availability and conflicts.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// Reservation dates are calendar days stored as UTC midnight.
type Reservation struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	CarID      int64             `json:"car_id"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	TotalPrice float64           `json:"total_price"`
	Status     ReservationStatus `json:"status"`
	Notes      string            `json:"notes"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Overlaps applies the inclusive range rule: aStart <= bEnd AND aEnd >= bStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts whole calendar days from start to end. It works on Unix
// seconds because a time.Duration saturates after about 292 years.
func DaysBetween(start, end time.Time) int64 {
	return (DateOnly(end).Unix() - DateOnly(start).Unix()) / secondsPerDay
}

// ReservationPrice is dailyPrice times the number of days, requiring end after start.
func ReservationPrice(dailyPrice float64, start, end time.Time) (float64, error) {
	days := DaysBetween(start, end)
	if days <= 0 {
		return 0, Validation("End date must be after start date")
	}
	return dailyPrice * float64(days), nil
}
