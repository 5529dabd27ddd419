package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type lifecycleFixture struct {
	store        *memStore
	reservations service.ReservationService
	rentals      service.RentalService
	availability service.AvailabilityChecker
	user         domain.Caller
	admin        domain.Caller
	carID        int64
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	repos := store.Repositories()

	user := &domain.User{Name: "Ayse Yilmaz", Email: "ayse@example.com", Role: domain.RoleUser}
	require.NoError(t, repos.Users.Create(ctx, user))
	admin := &domain.User{Name: "System Admin", Email: "admin@carrental.com", Role: domain.RoleAdmin}
	require.NoError(t, repos.Users.Create(ctx, admin))

	cat := &domain.Category{Name: "Sedan"}
	require.NoError(t, repos.Categories.Create(ctx, cat))
	car := &domain.Car{Brand: "Toyota", Model: "Corolla", Year: 2022, Plate: "34ABC123", DailyPrice: 100, Status: domain.CarStatusAvailable, CategoryID: cat.ID}
	require.NoError(t, repos.Cars.Create(ctx, car))

	return &lifecycleFixture{
		store:        store,
		reservations: service.NewReservationService(repos, store),
		rentals:      service.NewRentalService(repos, store),
		availability: service.NewAvailabilityChecker(repos.Cars, repos.Reservations),
		user:         domain.Caller{UserID: user.ID, Email: user.Email, Role: user.Role},
		admin:        domain.Caller{UserID: admin.ID, Email: admin.Email, Role: admin.Role},
		carID:        car.ID,
	}
}

func (f *lifecycleFixture) reserve(t *testing.T, start, end string) (*domain.ReservationDetails, error) {
	t.Helper()
	return f.reservations.Create(context.Background(), f.user, service.CreateReservationInput{
		CarID:     f.carID,
		StartDate: date(start),
		EndDate:   date(end),
	})
}

func TestLifecycle_ReserveConfirmRentReturn(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.TotalPrice)
	assert.Equal(t, domain.ReservationStatusPending, res.Status)
	assert.Equal(t, "Ayse Yilmaz", res.UserName)
	assert.Equal(t, "34ABC123", res.CarPlate)

	confirmed, err := f.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusConfirmed, confirmed.Status)
	assert.Equal(t, domain.CarStatusAvailable, f.store.cars[f.carID].Status)

	rental, err := f.rentals.Create(ctx, service.CreateRentalInput{ReservationID: res.ID, InitialMileage: 12000})
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusPickedUp, rental.Status)
	assert.Equal(t, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), rental.ReturnDate)
	assert.Equal(t, domain.CarStatusRented, f.store.cars[f.carID].Status)
	assert.Equal(t, f.user.UserID, rental.UserID)

	charges := 35.5
	returned, err := f.rentals.ReturnCar(ctx, rental.ID, service.ReturnCarInput{FinalMileage: 12450, AdditionalCharges: &charges})
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusReturned, returned.Status)
	require.NotNil(t, returned.ActualReturnDate)
	require.NotNil(t, returned.FinalMileage)
	assert.Equal(t, 12450, *returned.FinalMileage)
	assert.Equal(t, 235.5, returned.TotalPrice())
	assert.Equal(t, domain.CarStatusAvailable, f.store.cars[f.carID].Status)
	assert.Equal(t, domain.ReservationStatusCompleted, f.store.reservations[res.ID].Status)

	_, err = f.rentals.ReturnCar(ctx, rental.ID, service.ReturnCarInput{FinalMileage: 12500})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrInvalidState))
	assert.Contains(t, err.Error(), "already been returned")
}

func TestLifecycle_OverlappingReservationConflicts(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-01-01", "2024-01-03")
	require.NoError(t, err)

	_, err = f.reserve(t, "2024-01-02", "2024-01-04")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrConflict))

	_, err = f.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)
	_, err = f.reserve(t, "2024-01-03", "2024-01-05")
	assert.True(t, domain.IsKind(err, domain.ErrConflict), "shared end day still overlaps")

	_, err = f.reserve(t, "2024-01-04", "2024-01-06")
	assert.NoError(t, err)

	conflict, err := f.availability.HasConflict(ctx, f.carID, date("2024-01-02"), date("2024-01-02"))
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestLifecycle_CancelledReservationFreesCalendar(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-02-10", "2024-02-12")
	require.NoError(t, err)

	cancelled, err := f.reservations.Cancel(ctx, f.user, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)

	cars, err := f.availability.FindAvailable(ctx, date("2024-02-11"), date("2024-02-11"))
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, f.carID, cars[0].ID)

	_, err = f.reserve(t, "2024-02-10", "2024-02-12")
	assert.NoError(t, err)
}

func TestLifecycle_RentalRequiresConfirmedReservation(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-03-01", "2024-03-04")
	require.NoError(t, err)

	_, err = f.rentals.Create(ctx, service.CreateRentalInput{ReservationID: res.ID})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrInvalidState))
	assert.Equal(t, domain.CarStatusAvailable, f.store.cars[f.carID].Status)
	assert.Empty(t, f.store.rentals)

	_, err = f.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)
	_, err = f.rentals.Create(ctx, service.CreateRentalInput{ReservationID: res.ID})
	require.NoError(t, err)

	_, err = f.rentals.Create(ctx, service.CreateRentalInput{ReservationID: res.ID})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ErrConflict))
}

func TestLifecycle_RejectsInvalidRangesAndUnavailableCars(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	_, err := f.reserve(t, "2024-01-03", "2024-01-03")
	assert.True(t, domain.IsKind(err, domain.ErrValidation))

	_, err = f.reserve(t, "2024-01-05", "2024-01-03")
	assert.True(t, domain.IsKind(err, domain.ErrValidation))

	car := f.store.cars[f.carID]
	car.Status = domain.CarStatusMaintenance
	f.store.cars[f.carID] = car

	_, err = f.reserve(t, "2024-01-01", "2024-01-02")
	assert.True(t, domain.IsKind(err, domain.ErrInvalidState))

	_, err = f.reservations.Create(ctx, f.user, service.CreateReservationInput{CarID: 999, StartDate: date("2024-01-01"), EndDate: date("2024-01-02")})
	assert.True(t, domain.IsKind(err, domain.ErrNotFound))
}

func TestLifecycle_ReservationAccess(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-04-01", "2024-04-02")
	require.NoError(t, err)

	stranger := domain.Caller{UserID: 4242, Role: domain.RoleUser}
	_, err = f.reservations.Get(ctx, stranger, res.ID)
	assert.True(t, domain.IsKind(err, domain.ErrAuthorization))
	_, err = f.reservations.Cancel(ctx, stranger, res.ID)
	assert.True(t, domain.IsKind(err, domain.ErrAuthorization))

	got, err := f.reservations.Get(ctx, f.admin, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	mine, err := f.reservations.ListMine(ctx, f.user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	onBehalf := f.user.UserID
	booked, err := f.reservations.Create(ctx, f.admin, service.CreateReservationInput{
		UserID: &onBehalf, CarID: f.carID, StartDate: date("2024-05-01"), EndDate: date("2024-05-03"),
	})
	require.NoError(t, err)
	assert.Equal(t, f.user.UserID, booked.UserID)

	_, err = f.reservations.ListByStatus(ctx, "bogus")
	assert.True(t, domain.IsKind(err, domain.ErrValidation))
}

func TestLifecycle_OverdueIsReportedNotPersisted(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()

	res, err := f.reserve(t, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	_, err = f.reservations.Confirm(ctx, res.ID)
	require.NoError(t, err)
	rental, err := f.rentals.Create(ctx, service.CreateRentalInput{ReservationID: res.ID})
	require.NoError(t, err)

	overdue, err := f.rentals.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, rental.ID, overdue[0].ID)
	assert.Equal(t, domain.RentalStatusPickedUp, f.store.rentals[rental.ID].Status)
}
