package postgres

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"

	"github.com/lib/pq"
)

const reservationColumns = `id, user_id, car_id, start_date, end_date, total_price, status, COALESCE(notes, ''), created_at, updated_at`

type reservationRepository struct {
	db repository.DBTX
}

func NewReservationRepository(db repository.DBTX) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func scanReservation(rs rowScanner) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := rs.Scan(&res.ID, &res.UserID, &res.CarID, &res.StartDate, &res.EndDate, &res.TotalPrice, &res.Status, &res.Notes, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) list(ctx context.Context, where string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+reservationColumns+` FROM reservations`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	logger.EnterMethod("reservationRepository.Create", "carID", res.CarID, "userID", res.UserID)

	query := `INSERT INTO reservations (user_id, car_id, start_date, end_date, total_price, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, res.UserID, res.CarID, res.StartDate, res.EndDate, res.TotalPrice, res.Status, res.Notes, now, now).Scan(&res.ID)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.Create", err, "carID", res.CarID)
		if isExclusionViolation(err) {
			return domain.Conflict("Car is already reserved for the selected dates")
		}
		return err
	}
	res.CreatedAt = now
	res.UpdatedAt = now

	logger.ExitMethod("reservationRepository.Create", "reservationID", res.ID)
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.list(ctx, "")
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return r.list(ctx, ` WHERE user_id = $1`, userID)
}

func (r *reservationRepository) ListByCar(ctx context.Context, carID int64) ([]domain.Reservation, error) {
	return r.list(ctx, ` WHERE car_id = $1`, carID)
}

func (r *reservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return r.list(ctx, ` WHERE status = $1`, status)
}

func (r *reservationRepository) ListActiveByCar(ctx context.Context, carID int64) ([]domain.Reservation, error) {
	active := make([]string, len(domain.ActiveReservationStatuses))
	for i, st := range domain.ActiveReservationStatuses {
		active[i] = string(st)
	}
	return r.list(ctx, ` WHERE car_id = $1 AND status = ANY($2)`, carID, pq.Array(active))
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	logger.DatabaseCall("update_reservation_status", "UPDATE reservations SET status", "reservationID", id, "status", status)
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now().UTC(), id)
	if err != nil {
		logger.DatabaseResult("update_reservation_status", 0, err)
		if isExclusionViolation(err) {
			return domain.Conflict("Car is already reserved for the selected dates")
		}
		return err
	}
	if err := expectRow(res); err != nil {
		return err
	}
	logger.DatabaseResult("update_reservation_status", 1, nil)
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("Reservation %d is still referenced by a rental", id)
		}
		return err
	}
	return expectRow(res)
}
