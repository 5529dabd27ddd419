package service_test

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

// memStore is a map-backed store for lifecycle tests. RunInTx snapshots the
// maps and restores them when the callback fails.
type memStore struct {
	nextID       int64
	users        map[int64]domain.User
	categories   map[int64]domain.Category
	cars         map[int64]domain.Car
	reservations map[int64]domain.Reservation
	rentals      map[int64]domain.Rental
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[int64]domain.User{},
		categories:   map[int64]domain.Category{},
		cars:         map[int64]domain.Car{},
		reservations: map[int64]domain.Reservation{},
		rentals:      map[int64]domain.Rental{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:        memUsers{s},
		Categories:   memCategories{s},
		Cars:         memCars{s},
		Reservations: memReservations{s},
		Rentals:      memRentals{s},
	}
}

func (s *memStore) RunInTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	cars := cloneMap(s.cars)
	reservations := cloneMap(s.reservations)
	rentals := cloneMap(s.rentals)
	if err := fn(s.Repositories()); err != nil {
		s.cars, s.reservations, s.rentals = cars, reservations, rentals
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[V any](m map[int64]V, keep func(V) bool) []V {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := []V{}
	for _, k := range keys {
		if keep == nil || keep(m[k]) {
			out = append(out, m[k])
		}
	}
	return out
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, u *domain.User) error {
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memUsers) List(ctx context.Context) ([]domain.User, error) {
	return sortedValues(r.s.users, nil), nil
}

func (r memUsers) Update(ctx context.Context, u *domain.User) error {
	if _, ok := r.s.users[u.ID]; !ok {
		return sql.ErrNoRows
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.users, id)
	return nil
}

type memCategories struct{ s *memStore }

func (r memCategories) Create(ctx context.Context, c *domain.Category) error {
	c.ID = r.s.id()
	r.s.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r memCategories) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range r.s.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memCategories) List(ctx context.Context) ([]domain.Category, error) {
	return sortedValues(r.s.categories, nil), nil
}

func (r memCategories) Update(ctx context.Context, c *domain.Category) error {
	r.s.categories[c.ID] = *c
	return nil
}

func (r memCategories) Delete(ctx context.Context, id int64) error {
	delete(r.s.categories, id)
	return nil
}

type memCars struct{ s *memStore }

func (r memCars) Create(ctx context.Context, c *domain.Car) error {
	c.ID = r.s.id()
	r.s.cars[c.ID] = *c
	return nil
}

func (r memCars) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	c, ok := r.s.cars[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r memCars) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	return r.GetByID(ctx, id)
}

func (r memCars) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	for _, c := range r.s.cars {
		if c.Plate == plate {
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memCars) List(ctx context.Context) ([]domain.Car, error) {
	return sortedValues(r.s.cars, nil), nil
}

func (r memCars) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Car, error) {
	return sortedValues(r.s.cars, func(c domain.Car) bool { return c.CategoryID == categoryID }), nil
}

func (r memCars) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	return sortedValues(r.s.cars, func(c domain.Car) bool { return c.Status == status }), nil
}

func (r memCars) ListAvailableBetween(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	return sortedValues(r.s.cars, func(c domain.Car) bool {
		if c.Status != domain.CarStatusAvailable {
			return false
		}
		for _, res := range r.s.reservations {
			if res.CarID == c.ID && res.Status.IsActive() && domain.Overlaps(res.StartDate, res.EndDate, start, end) {
				return false
			}
		}
		return true
	}), nil
}

func (r memCars) Update(ctx context.Context, c *domain.Car) error {
	r.s.cars[c.ID] = *c
	return nil
}

func (r memCars) UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error {
	c, ok := r.s.cars[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Status = status
	r.s.cars[id] = c
	return nil
}

func (r memCars) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.cars[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.cars, id)
	return nil
}

type memReservations struct{ s *memStore }

func (r memReservations) Create(ctx context.Context, res *domain.Reservation) error {
	res.ID = r.s.id()
	r.s.reservations[res.ID] = *res
	return nil
}

func (r memReservations) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &res, nil
}

func (r memReservations) List(ctx context.Context) ([]domain.Reservation, error) {
	return sortedValues(r.s.reservations, nil), nil
}

func (r memReservations) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return sortedValues(r.s.reservations, func(res domain.Reservation) bool { return res.UserID == userID }), nil
}

func (r memReservations) ListByCar(ctx context.Context, carID int64) ([]domain.Reservation, error) {
	return sortedValues(r.s.reservations, func(res domain.Reservation) bool { return res.CarID == carID }), nil
}

func (r memReservations) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return sortedValues(r.s.reservations, func(res domain.Reservation) bool { return res.Status == status }), nil
}

func (r memReservations) ListActiveByCar(ctx context.Context, carID int64) ([]domain.Reservation, error) {
	return sortedValues(r.s.reservations, func(res domain.Reservation) bool {
		return res.CarID == carID && res.Status.IsActive()
	}), nil
}

func (r memReservations) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := r.s.reservations[id]
	if !ok {
		return sql.ErrNoRows
	}
	res.Status = status
	r.s.reservations[id] = res
	return nil
}

func (r memReservations) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.reservations[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.reservations, id)
	return nil
}

type memRentals struct{ s *memStore }

func (r memRentals) Create(ctx context.Context, rt *domain.Rental) error {
	rt.ID = r.s.id()
	r.s.rentals[rt.ID] = *rt
	return nil
}

func (r memRentals) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt, ok := r.s.rentals[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rt, nil
}

func (r memRentals) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Rental, error) {
	for _, rt := range r.s.rentals {
		if rt.ReservationID == reservationID {
			return &rt, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memRentals) List(ctx context.Context) ([]domain.Rental, error) {
	return sortedValues(r.s.rentals, nil), nil
}

func (r memRentals) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	return sortedValues(r.s.rentals, func(rt domain.Rental) bool {
		return r.s.reservations[rt.ReservationID].UserID == userID
	}), nil
}

func (r memRentals) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return sortedValues(r.s.rentals, func(rt domain.Rental) bool { return rt.Status == status }), nil
}

func (r memRentals) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	return sortedValues(r.s.rentals, func(rt domain.Rental) bool { return rt.IsOverdue(now) }), nil
}

func (r memRentals) Update(ctx context.Context, rt *domain.Rental) error {
	if _, ok := r.s.rentals[rt.ID]; !ok {
		return sql.ErrNoRows
	}
	r.s.rentals[rt.ID] = *rt
	return nil
}

func (r memRentals) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.rentals[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.s.rentals, id)
	return nil
}
