package domain

import (
	"strings"
	"time"
)

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "AVAILABLE"
	CarStatusRented      CarStatus = "RENTED"
	CarStatusMaintenance CarStatus = "MAINTENANCE"
	CarStatusUnavailable CarStatus = "UNAVAILABLE"
)

// ParseCarStatus converts s (any case) to a CarStatus.
func ParseCarStatus(s string) (CarStatus, error) {
	switch st := CarStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case CarStatusAvailable, CarStatusRented, CarStatusMaintenance, CarStatusUnavailable:
		return st, nil
	}
	return "", Validation("Invalid car status: %s", s)
}

type Car struct {
	ID               int64     `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	Year             int       `json:"year"`
	Plate            string    `json:"plate"`
	Description      string    `json:"description"`
	DailyPrice       float64   `json:"daily_price"`
	Status           CarStatus `json:"status"`
	ImageURL         string    `json:"image_url"`
	FuelType         string    `json:"fuel_type"`
	TransmissionType string    `json:"transmission_type"`
	SeatCount        int       `json:"seat_count"`
	CategoryID       int64     `json:"category_id"`
	CategoryName     string    `json:"category_name,omitempty"` // Populated on reads
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
