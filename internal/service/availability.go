package service

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

type availabilityChecker struct {
	cars         repository.CarRepository
	reservations repository.ReservationRepository
}

func NewAvailabilityChecker(cars repository.CarRepository, reservations repository.ReservationRepository) AvailabilityChecker {
	return &availabilityChecker{cars: cars, reservations: reservations}
}

func (a *availabilityChecker) FindAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	logger.EnterMethod("availabilityChecker.FindAvailable", "start", start, "end", end)

	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		err := domain.Validation("End date must not be before start date")
		logger.ExitMethodWithError("availabilityChecker.FindAvailable", err)
		return nil, err
	}

	cars, err := a.cars.ListAvailableBetween(ctx, start, end)
	if err != nil {
		logger.ExitMethodWithError("availabilityChecker.FindAvailable", err)
		return nil, err
	}

	logger.ExitMethod("availabilityChecker.FindAvailable", "count", len(cars))
	return cars, nil
}

func (a *availabilityChecker) HasConflict(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	return hasConflict(ctx, a.reservations, carID, start, end)
}

// hasConflict is shared with the reservation flow so the check can run on a
// transaction-bound repository.
func hasConflict(ctx context.Context, reservations repository.ReservationRepository, carID int64, start, end time.Time) (bool, error) {
	active, err := reservations.ListActiveByCar(ctx, carID)
	if err != nil {
		return false, err
	}
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	for _, r := range active {
		if domain.Overlaps(domain.DateOnly(r.StartDate), domain.DateOnly(r.EndDate), start, end) {
			logger.Debug("Reservation conflict", "car_id", carID, "reservation_id", r.ID)
			return true, nil
		}
	}
	return false, nil
}
