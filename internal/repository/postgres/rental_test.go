package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalRowColumns = []string{"id", "reservation_id", "pickup_date", "return_date", "actual_return_date", "initial_mileage",
	"final_mileage", "additional_charges", "status", "notes", "created_at", "updated_at"}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	pickup := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rt := &domain.Rental{ReservationID: 11, PickupDate: pickup, ReturnDate: due, InitialMileage: 1200, Status: domain.RentalStatusPickedUp}
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(int64(11), pickup, due, 1200, 0.0, domain.RentalStatusPickedUp, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

		require.NoError(t, repo.Create(ctx, rt))
		assert.Equal(t, int64(4), rt.ID)
	})

	t.Run("Second rental for reservation", func(t *testing.T) {
		rt := &domain.Rental{ReservationID: 11, PickupDate: pickup, ReturnDate: due, Status: domain.RentalStatusPickedUp}
		mock.ExpectQuery("INSERT INTO rentals").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, rt)
		assert.True(t, domain.IsKind(err, domain.ErrConflict))
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	now := time.Now()

	t.Run("Returned rental has nullable fields", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow(4, 11, now, now, now, 1200, 1500, 50.0, "RETURNED", "scratch on door", now, now)
		mock.ExpectQuery("SELECT (.+) FROM rentals rt WHERE rt.id = \\$1").
			WithArgs(int64(4)).
			WillReturnRows(rows)

		rt, err := repo.GetByID(context.Background(), 4)
		require.NoError(t, err)
		require.NotNil(t, rt.FinalMileage)
		assert.Equal(t, 1500, *rt.FinalMileage)
		assert.NotNil(t, rt.ActualReturnDate)
	})

	t.Run("Active rental", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow(5, 12, now, now, nil, 800, nil, 0.0, "PICKED_UP", "", now, now)
		mock.ExpectQuery("SELECT (.+) FROM rentals rt WHERE rt.id = \\$1").
			WithArgs(int64(5)).
			WillReturnRows(rows)

		rt, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Nil(t, rt.FinalMileage)
		assert.Nil(t, rt.ActualReturnDate)
	})
}

func TestRentalRepository_ListOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	now := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(rentalRowColumns).
		AddRow(5, 12, due.AddDate(0, 0, -2), due, nil, 800, nil, 0.0, "PICKED_UP", "", due, due)
	mock.ExpectQuery("WHERE rt.status = 'PICKED_UP' AND rt.return_date < \\$1").
		WithArgs(now).
		WillReturnRows(rows)

	list, err := repo.ListOverdue(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsOverdue(now))
}

func TestRentalRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)

	mock.ExpectQuery("FROM rentals rt JOIN reservations r ON r.id = rt.reservation_id WHERE r.user_id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(rentalRowColumns))

	list, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, list)
}
