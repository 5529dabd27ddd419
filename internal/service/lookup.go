package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

// notFoundOr turns a missing row into a NotFound error and passes anything else through.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(format, args...)
	}
	return err
}

// detailResolver fills in the display fields of reservations and rentals.
// Lookups are memoized for the lifetime of one resolver, which lives for one call.
type detailResolver struct {
	repos        repository.Repositories
	users        map[int64]*domain.User
	cars         map[int64]*domain.Car
	reservations map[int64]*domain.Reservation
}

func newDetailResolver(repos repository.Repositories) *detailResolver {
	return &detailResolver{
		repos:        repos,
		users:        make(map[int64]*domain.User),
		cars:         make(map[int64]*domain.Car),
		reservations: make(map[int64]*domain.Reservation),
	}
}

// user returns nil without error when the row is gone.
func (r *detailResolver) user(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	u, err := r.repos.Users.GetByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	r.users[id] = u
	return u, nil
}

func (r *detailResolver) car(ctx context.Context, id int64) (*domain.Car, error) {
	if c, ok := r.cars[id]; ok {
		return c, nil
	}
	c, err := r.repos.Cars.GetByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	r.cars[id] = c
	return c, nil
}

func (r *detailResolver) reservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	if res, ok := r.reservations[id]; ok {
		return res, nil
	}
	res, err := r.repos.Reservations.GetByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	r.reservations[id] = res
	return res, nil
}

func (r *detailResolver) reservationDetails(ctx context.Context, res *domain.Reservation) (*domain.ReservationDetails, error) {
	d := &domain.ReservationDetails{Reservation: *res}

	u, err := r.user(ctx, res.UserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		d.UserName = u.Name
		d.UserEmail = u.Email
	}

	c, err := r.car(ctx, res.CarID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		d.CarBrand = c.Brand
		d.CarModel = c.Model
		d.CarPlate = c.Plate
	}
	return d, nil
}

func (r *detailResolver) reservationList(ctx context.Context, list []domain.Reservation) ([]domain.ReservationDetails, error) {
	out := make([]domain.ReservationDetails, 0, len(list))
	for i := range list {
		d, err := r.reservationDetails(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *detailResolver) rentalDetails(ctx context.Context, rt *domain.Rental) (*domain.RentalDetails, error) {
	d := &domain.RentalDetails{Rental: *rt}

	res, err := r.reservation(ctx, rt.ReservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return d, nil
	}
	d.UserID = res.UserID
	d.CarID = res.CarID
	d.ReservationTotal = res.TotalPrice

	u, err := r.user(ctx, res.UserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		d.UserName = u.Name
	}

	c, err := r.car(ctx, res.CarID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		d.CarBrand = c.Brand
		d.CarModel = c.Model
		d.CarPlate = c.Plate
	}
	return d, nil
}

func (r *detailResolver) rentalList(ctx context.Context, list []domain.Rental) ([]domain.RentalDetails, error) {
	out := make([]domain.RentalDetails, 0, len(list))
	for i := range list {
		d, err := r.rentalDetails(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
