package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

type rentalService struct {
	repos repository.Repositories
	tx    repository.TxRunner
	now   func() time.Time
}

func NewRentalService(repos repository.Repositories, tx repository.TxRunner) RentalService {
	return &rentalService{repos: repos, tx: tx, now: time.Now}
}

func (s *rentalService) Create(ctx context.Context, in CreateRentalInput) (*domain.RentalDetails, error) {
	logger.EnterMethod("rentalService.Create", "reservation_id", in.ReservationID)

	var created *domain.Rental
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		res, err := repos.Reservations.GetByID(ctx, in.ReservationID)
		if err != nil {
			return notFoundOr(err, "Reservation not found with id: %d", in.ReservationID)
		}
		if res.Status != domain.ReservationStatusConfirmed {
			return domain.InvalidState("Reservation must be confirmed before creating rental")
		}

		if _, err := repos.Rentals.GetByReservationID(ctx, res.ID); err == nil {
			return domain.Conflict("Rental already exists for this reservation")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if err := repos.Cars.UpdateStatus(ctx, res.CarID, domain.CarStatusRented); err != nil {
			return notFoundOr(err, "Car not found with id: %d", res.CarID)
		}

		pickup := s.now().UTC()
		if in.PickupDate != nil {
			pickup = in.PickupDate.UTC()
		}
		rt := &domain.Rental{
			ReservationID:  res.ID,
			PickupDate:     pickup,
			ReturnDate:     domain.DueDate(res.EndDate),
			InitialMileage: in.InitialMileage,
			Status:         domain.RentalStatusPickedUp,
			Notes:          in.Notes,
		}
		if err := repos.Rentals.Create(ctx, rt); err != nil {
			return err
		}
		created = rt
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.Create", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Rental created", "rental_id", created.ID, "reservation_id", created.ReservationID)
	logger.ExitMethod("rentalService.Create", "rental_id", created.ID)
	return newDetailResolver(s.repos).rentalDetails(ctx, created)
}

func (s *rentalService) ReturnCar(ctx context.Context, id int64, in ReturnCarInput) (*domain.RentalDetails, error) {
	logger.EnterMethod("rentalService.ReturnCar", "rental_id", id)

	var returned *domain.Rental
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		rt, err := repos.Rentals.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Rental not found with id: %d", id)
		}
		if rt.Status == domain.RentalStatusReturned {
			return domain.InvalidState("Car has already been returned")
		}

		res, err := repos.Reservations.GetByID(ctx, rt.ReservationID)
		if err != nil {
			return notFoundOr(err, "Reservation not found with id: %d", rt.ReservationID)
		}

		now := s.now().UTC()
		mileage := in.FinalMileage
		rt.ActualReturnDate = &now
		rt.FinalMileage = &mileage
		rt.AdditionalCharges = 0
		if in.AdditionalCharges != nil {
			rt.AdditionalCharges = *in.AdditionalCharges
		}
		rt.Status = domain.RentalStatusReturned
		if err := repos.Rentals.Update(ctx, rt); err != nil {
			return err
		}

		if err := repos.Cars.UpdateStatus(ctx, res.CarID, domain.CarStatusAvailable); err != nil {
			return notFoundOr(err, "Car not found with id: %d", res.CarID)
		}
		if err := repos.Reservations.UpdateStatus(ctx, res.ID, domain.ReservationStatusCompleted); err != nil {
			return err
		}
		returned = rt
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnCar", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Car returned", "rental_id", returned.ID, "additional_charges", returned.AdditionalCharges)
	logger.ExitMethod("rentalService.ReturnCar", "rental_id", returned.ID)
	return newDetailResolver(s.repos).rentalDetails(ctx, returned)
}

func (s *rentalService) Get(ctx context.Context, id int64) (*domain.RentalDetails, error) {
	rt, err := s.repos.Rentals.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Rental not found with id: %d", id)
	}
	return newDetailResolver(s.repos).rentalDetails(ctx, rt)
}

func (s *rentalService) GetByReservation(ctx context.Context, reservationID int64) (*domain.RentalDetails, error) {
	rt, err := s.repos.Rentals.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, notFoundOr(err, "Rental not found for reservation id: %d", reservationID)
	}
	return newDetailResolver(s.repos).rentalDetails(ctx, rt)
}

func (s *rentalService) List(ctx context.Context) ([]domain.RentalDetails, error) {
	list, err := s.repos.Rentals.List(ctx)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).rentalList(ctx, list)
}

func (s *rentalService) ListByUser(ctx context.Context, userID int64) ([]domain.RentalDetails, error) {
	list, err := s.repos.Rentals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).rentalList(ctx, list)
}

func (s *rentalService) ListByStatus(ctx context.Context, status string) ([]domain.RentalDetails, error) {
	st, err := domain.ParseRentalStatus(status)
	if err != nil {
		return nil, err
	}
	list, err := s.repos.Rentals.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).rentalList(ctx, list)
}

// ListOverdue reports picked-up rentals past their return date. The stored
// status is left untouched.
func (s *rentalService) ListOverdue(ctx context.Context) ([]domain.RentalDetails, error) {
	list, err := s.repos.Rentals.ListOverdue(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).rentalList(ctx, list)
}

func (s *rentalService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Rentals.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Rental not found with id: %d", id)
	}
	logger.InfoContext(ctx, "Rental deleted", "rental_id", id)
	return nil
}
