package postgres

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

const rentalColumns = `rt.id, rt.reservation_id, rt.pickup_date, rt.return_date, rt.actual_return_date, COALESCE(rt.initial_mileage, 0),
                       rt.final_mileage, rt.additional_charges, rt.status, COALESCE(rt.notes, ''), rt.created_at, rt.updated_at`

type rentalRepository struct {
	db repository.DBTX
}

func NewRentalRepository(db repository.DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(rs rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := rs.Scan(&rt.ID, &rt.ReservationID, &rt.PickupDate, &rt.ReturnDate, &rt.ActualReturnDate, &rt.InitialMileage,
		&rt.FinalMileage, &rt.AdditionalCharges, &rt.Status, &rt.Notes, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) list(ctx context.Context, join, where string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+rentalColumns+` FROM rentals rt`+join+where+` ORDER BY rt.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "reservationID", rt.ReservationID)

	query := `INSERT INTO rentals (reservation_id, pickup_date, return_date, initial_mileage, additional_charges, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, rt.ReservationID, rt.PickupDate, rt.ReturnDate, rt.InitialMileage, rt.AdditionalCharges, rt.Status, rt.Notes, now, now).Scan(&rt.ID)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.Create", err, "reservationID", rt.ReservationID)
		if isUniqueViolation(err) {
			return domain.Conflict("Rental already exists for this reservation")
		}
		return err
	}
	rt.CreatedAt = now
	rt.UpdatedAt = now

	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	return scanRental(r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals rt WHERE rt.id = $1`, id))
}

func (r *rentalRepository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Rental, error) {
	return scanRental(r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals rt WHERE rt.reservation_id = $1`, reservationID))
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	return r.list(ctx, "", "")
}

func (r *rentalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error) {
	return r.list(ctx, ` JOIN reservations r ON r.id = rt.reservation_id`, ` WHERE r.user_id = $1`, userID)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return r.list(ctx, "", ` WHERE rt.status = $1`, status)
}

// ListOverdue returns rentals still PICKED_UP whose return date is before now.
func (r *rentalRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	return r.list(ctx, "", ` WHERE rt.status = 'PICKED_UP' AND rt.return_date < $1`, now)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET actual_return_date=$1, final_mileage=$2, additional_charges=$3, status=$4, notes=$5, updated_at=$6 WHERE id=$7`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, rt.ActualReturnDate, rt.FinalMileage, rt.AdditionalCharges, rt.Status, rt.Notes, now, rt.ID)
	if err != nil {
		return err
	}
	rt.UpdatedAt = now
	return expectRow(res)
}

func (r *rentalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}
