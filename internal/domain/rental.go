package domain

import (
	"strings"
	"time"
)

type RentalStatus string

const (
	RentalStatusPickedUp RentalStatus = "PICKED_UP"
	RentalStatusReturned RentalStatus = "RETURNED"
	RentalStatusOverdue  RentalStatus = "OVERDUE"
)

func ParseRentalStatus(s string) (RentalStatus, error) {
	switch st := RentalStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case RentalStatusPickedUp, RentalStatusReturned, RentalStatusOverdue:
		return st, nil
	}
	return "", Validation("Invalid rental status: %s", s)
}

// ReturnHour is the time of day a rental is due back on the reservation end date.
const ReturnHour = 12

type Rental struct {
	ID                int64        `json:"id"`
	ReservationID     int64        `json:"reservation_id"`
	PickupDate        time.Time    `json:"pickup_date"`
	ReturnDate        time.Time    `json:"return_date"`
	ActualReturnDate  *time.Time   `json:"actual_return_date,omitempty"`
	InitialMileage    int          `json:"initial_mileage"`
	FinalMileage      *int         `json:"final_mileage,omitempty"`
	AdditionalCharges float64      `json:"additional_charges"`
	Status            RentalStatus `json:"status"`
	Notes             string       `json:"notes"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// DueDate returns the return deadline for a reservation ending on endDate.
func DueDate(endDate time.Time) time.Time {
	y, m, d := endDate.Date()
	return time.Date(y, m, d, ReturnHour, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether the rental is still out past its return date.
func (r *Rental) IsOverdue(now time.Time) bool {
	return r.Status == RentalStatusPickedUp && r.ReturnDate.Before(now)
}
