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

var reservationRowColumns = []string{"id", "user_id", "car_id", "start_date", "end_date", "total_price", "status", "notes", "created_at", "updated_at"}

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		res := &domain.Reservation{UserID: 2, CarID: 5, StartDate: start, EndDate: end, TotalPrice: 200, Status: domain.ReservationStatusPending}
		mock.ExpectQuery("INSERT INTO reservations").
			WithArgs(res.UserID, res.CarID, start, end, 200.0, domain.ReservationStatusPending, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		require.NoError(t, repo.Create(ctx, res))
		assert.Equal(t, int64(11), res.ID)
	})

	t.Run("Exclusion constraint maps to conflict", func(t *testing.T) {
		res := &domain.Reservation{UserID: 2, CarID: 5, StartDate: start, EndDate: end, TotalPrice: 200, Status: domain.ReservationStatusPending}
		mock.ExpectQuery("INSERT INTO reservations").WillReturnError(&pq.Error{Code: "23P01"})

		err := repo.Create(ctx, res)
		assert.True(t, domain.IsKind(err, domain.ErrConflict))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_ListActiveByCar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(reservationRowColumns).
		AddRow(1, 2, 5, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 200.0, "PENDING", "", now, now)

	mock.ExpectQuery("FROM reservations WHERE car_id = \\$1 AND status = ANY\\(\\$2\\)").
		WithArgs(int64(5), sqlmock.AnyArg()).
		WillReturnRows(rows)

	list, err := repo.ListActiveByCar(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ReservationStatusPending, list[0].Status)
	assert.Equal(t, 200.0, list[0].TotalPrice)
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReservationRepository(db)

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(domain.ReservationStatusConfirmed, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 1, domain.ReservationStatusConfirmed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
