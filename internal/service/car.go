package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

type carService struct {
	cars         repository.CarRepository
	categories   repository.CategoryRepository
	availability AvailabilityChecker
}

func NewCarService(cars repository.CarRepository, categories repository.CategoryRepository, availability AvailabilityChecker) CarService {
	return &carService{cars: cars, categories: categories, availability: availability}
}

func (s *carService) Create(ctx context.Context, in CarInput) (*domain.Car, error) {
	logger.EnterMethod("carService.Create", "plate", in.Plate)

	car := &domain.Car{Status: domain.CarStatusAvailable}
	if err := s.apply(ctx, car, in, false); err != nil {
		logger.ExitMethodWithError("carService.Create", err)
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, car.Plate, 0); err != nil {
		logger.ExitMethodWithError("carService.Create", err)
		return nil, err
	}
	if err := s.cars.Create(ctx, car); err != nil {
		logger.ExitMethodWithError("carService.Create", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Car created", "car_id", car.ID, "plate", car.Plate)
	logger.ExitMethod("carService.Create", "car_id", car.ID)
	return car, nil
}

func (s *carService) Get(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Car not found with id: %d", id)
	}
	return car, nil
}

func (s *carService) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	car, err := s.cars.GetByPlate(ctx, plate)
	if err != nil {
		return nil, notFoundOr(err, "Car not found with plate: %s", plate)
	}
	return car, nil
}

func (s *carService) List(ctx context.Context) ([]domain.Car, error) {
	return s.cars.List(ctx)
}

func (s *carService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Car, error) {
	return s.cars.ListByCategory(ctx, categoryID)
}

func (s *carService) ListByStatus(ctx context.Context, status string) ([]domain.Car, error) {
	st, err := domain.ParseCarStatus(status)
	if err != nil {
		return nil, err
	}
	return s.cars.ListByStatus(ctx, st)
}

func (s *carService) Available(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	return s.availability.FindAvailable(ctx, start, end)
}

func (s *carService) Update(ctx context.Context, id int64, in CarInput) (*domain.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPlate := car.Plate
	if err := s.apply(ctx, car, in, true); err != nil {
		return nil, err
	}
	if !strings.EqualFold(car.Plate, oldPlate) {
		if err := s.ensurePlateFree(ctx, car.Plate, id); err != nil {
			return nil, err
		}
	}

	if err := s.cars.Update(ctx, car); err != nil {
		return nil, notFoundOr(err, "Car not found with id: %d", id)
	}
	logger.InfoContext(ctx, "Car updated", "car_id", car.ID)
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Car not found with id: %d", id)
	}
	logger.InfoContext(ctx, "Car deleted", "car_id", id)
	return nil
}

// apply copies in onto car after validating price, category and, on update, status.
func (s *carService) apply(ctx context.Context, car *domain.Car, in CarInput, update bool) error {
	if in.DailyPrice <= 0 {
		return domain.Validation("Daily price must be positive")
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return notFoundOr(err, "Category not found with id: %d", in.CategoryID)
	}

	if update && in.Status != "" {
		st, err := domain.ParseCarStatus(in.Status)
		if err != nil {
			return err
		}
		// RENTED is owned by the rental lifecycle in both directions.
		if st != car.Status {
			switch {
			case st == domain.CarStatusRented:
				return domain.InvalidState("Car status RENTED is set by rentals")
			case car.Status == domain.CarStatusRented:
				return domain.InvalidState("Car is currently rented")
			}
		}
		car.Status = st
	}

	car.Brand = in.Brand
	car.Model = in.Model
	car.Year = in.Year
	car.Plate = strings.TrimSpace(in.Plate)
	car.Description = in.Description
	car.DailyPrice = in.DailyPrice
	car.ImageURL = in.ImageURL
	car.FuelType = in.FuelType
	car.TransmissionType = in.TransmissionType
	car.SeatCount = in.SeatCount
	car.CategoryID = category.ID
	car.CategoryName = category.Name
	return nil
}

func (s *carService) ensurePlateFree(ctx context.Context, plate string, selfID int64) error {
	existing, err := s.cars.GetByPlate(ctx, plate)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return domain.Conflict("Car already exists with plate: %s", plate)
	}
	return nil
}
