package service

import (
	"context"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

type reservationService struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

func NewReservationService(repos repository.Repositories, tx repository.TxRunner) ReservationService {
	return &reservationService{repos: repos, tx: tx}
}

func (s *reservationService) Create(ctx context.Context, caller domain.Caller, in CreateReservationInput) (*domain.ReservationDetails, error) {
	logger.EnterMethod("reservationService.Create", "caller_id", caller.UserID, "car_id", in.CarID)

	userID := caller.UserID
	if in.UserID != nil && caller.IsAdmin() {
		userID = *in.UserID
	}

	start, end := domain.DateOnly(in.StartDate), domain.DateOnly(in.EndDate)
	if domain.DaysBetween(start, end) <= 0 {
		err := domain.Validation("End date must be after start date")
		logger.ExitMethodWithError("reservationService.Create", err)
		return nil, err
	}

	var created *domain.Reservation
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, userID); err != nil {
			return notFoundOr(err, "User not found with id: %d", userID)
		}

		// The row lock serializes bookings of the same car until commit.
		car, err := repos.Cars.GetByIDForUpdate(ctx, in.CarID)
		if err != nil {
			return notFoundOr(err, "Car not found with id: %d", in.CarID)
		}
		if car.Status != domain.CarStatusAvailable {
			return domain.InvalidState("Car is not available")
		}

		conflict, err := hasConflict(ctx, repos.Reservations, car.ID, start, end)
		if err != nil {
			return err
		}
		if conflict {
			return domain.Conflict("Car is already reserved for the selected dates")
		}

		price, err := domain.ReservationPrice(car.DailyPrice, start, end)
		if err != nil {
			return err
		}

		res := &domain.Reservation{
			UserID:     userID,
			CarID:      car.ID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: price,
			Status:     domain.ReservationStatusPending,
			Notes:      in.Notes,
		}
		if err := repos.Reservations.Create(ctx, res); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("reservationService.Create", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Reservation created", "reservation_id", created.ID, "car_id", created.CarID, "user_id", created.UserID, "total_price", created.TotalPrice)
	logger.ExitMethod("reservationService.Create", "reservation_id", created.ID)
	return newDetailResolver(s.repos).reservationDetails(ctx, created)
}

func (s *reservationService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.ReservationDetails, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(res.UserID) {
		return nil, domain.Authorization("You can only view your own reservations")
	}
	return newDetailResolver(s.repos).reservationDetails(ctx, res)
}

func (s *reservationService) List(ctx context.Context) ([]domain.ReservationDetails, error) {
	list, err := s.repos.Reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).reservationList(ctx, list)
}

func (s *reservationService) ListByUser(ctx context.Context, userID int64) ([]domain.ReservationDetails, error) {
	list, err := s.repos.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).reservationList(ctx, list)
}

func (s *reservationService) ListMine(ctx context.Context, caller domain.Caller) ([]domain.ReservationDetails, error) {
	return s.ListByUser(ctx, caller.UserID)
}

func (s *reservationService) ListByCar(ctx context.Context, carID int64) ([]domain.ReservationDetails, error) {
	list, err := s.repos.Reservations.ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).reservationList(ctx, list)
}

func (s *reservationService) ListByStatus(ctx context.Context, status string) ([]domain.ReservationDetails, error) {
	st, err := domain.ParseReservationStatus(status)
	if err != nil {
		return nil, err
	}
	list, err := s.repos.Reservations.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return newDetailResolver(s.repos).reservationList(ctx, list)
}

// Confirm only moves the reservation to CONFIRMED. The car stays AVAILABLE until pickup.
func (s *reservationService) Confirm(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	return s.setStatus(ctx, id, domain.ReservationStatusConfirmed)
}

func (s *reservationService) Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.ReservationDetails, error) {
	var cancelled *domain.Reservation
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		res, err := repos.Reservations.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "Reservation not found with id: %d", id)
		}
		if !caller.CanAccess(res.UserID) {
			return domain.Authorization("You can only cancel your own reservations")
		}
		// TODO: reject cancelling COMPLETED or CANCELLED reservations once product confirms the rule.
		if err := repos.Reservations.UpdateStatus(ctx, id, domain.ReservationStatusCancelled); err != nil {
			return notFoundOr(err, "Reservation not found with id: %d", id)
		}
		res.Status = domain.ReservationStatusCancelled
		cancelled = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Reservation status changed", "reservation_id", id, "status", domain.ReservationStatusCancelled)
	return newDetailResolver(s.repos).reservationDetails(ctx, cancelled)
}

func (s *reservationService) Delete(ctx context.Context, id int64) error {
	if err := s.repos.Reservations.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Reservation not found with id: %d", id)
	}
	logger.InfoContext(ctx, "Reservation deleted", "reservation_id", id)
	return nil
}

func (s *reservationService) setStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.ReservationDetails, error) {
	if err := s.repos.Reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFoundOr(err, "Reservation not found with id: %d", id)
	}
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Reservation status changed", "reservation_id", id, "status", status)
	return newDetailResolver(s.repos).reservationDetails(ctx, res)
}

func (s *reservationService) load(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.repos.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Reservation not found with id: %d", id)
	}
	return res, nil
}
