package postgres

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

const (
	carColumns = `c.id, c.brand, c.model, c.year, c.plate, COALESCE(c.description, ''), c.daily_price, c.status,
	              COALESCE(c.image_url, ''), COALESCE(c.fuel_type, ''), COALESCE(c.transmission_type, ''), COALESCE(c.seat_count, 0),
	              c.category_id, COALESCE(cat.name, ''), c.created_at, c.updated_at`
	carFrom = ` FROM cars c LEFT JOIN categories cat ON cat.id = c.category_id`
)

type carRepository struct {
	db repository.DBTX
}

func NewCarRepository(db repository.DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

func scanCar(rs rowScanner) (*domain.Car, error) {
	c := &domain.Car{}
	err := rs.Scan(&c.ID, &c.Brand, &c.Model, &c.Year, &c.Plate, &c.Description, &c.DailyPrice, &c.Status,
		&c.ImageURL, &c.FuelType, &c.TransmissionType, &c.SeatCount,
		&c.CategoryID, &c.CategoryName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) list(ctx context.Context, where string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+carColumns+carFrom+where+` ORDER BY c.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (brand, model, year, plate, description, daily_price, status, image_url, fuel_type, transmission_type, seat_count, category_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, c.Brand, c.Model, c.Year, c.Plate, c.Description, c.DailyPrice, c.Status,
		c.ImageURL, c.FuelType, c.TransmissionType, c.SeatCount, c.CategoryID, now, now).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Car already exists with plate: %s", c.Plate)
		}
		return err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	return scanCar(r.db.QueryRowContext(ctx, `SELECT `+carColumns+carFrom+` WHERE c.id = $1`, id))
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error) {
	query := `SELECT ` + carColumns + carFrom + ` WHERE c.id = $1 FOR UPDATE OF c`
	logger.DatabaseCall("lock_car", query, "carID", id)
	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	logger.DatabaseResult("lock_car", 1, err, "carID", id)
	return car, err
}

func (r *carRepository) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	return scanCar(r.db.QueryRowContext(ctx, `SELECT `+carColumns+carFrom+` WHERE UPPER(c.plate) = UPPER($1)`, plate))
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	return r.list(ctx, "")
}

func (r *carRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Car, error) {
	return r.list(ctx, ` WHERE c.category_id = $1`, categoryID)
}

func (r *carRepository) ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	return r.list(ctx, ` WHERE c.status = $1`, status)
}

// ListAvailableBetween returns AVAILABLE cars with no active reservation overlapping [start, end].
func (r *carRepository) ListAvailableBetween(ctx context.Context, start, end time.Time) ([]domain.Car, error) {
	where := ` WHERE c.status = 'AVAILABLE'
	  AND c.id NOT IN (
	      SELECT r.car_id FROM reservations r
	      WHERE r.status IN ('PENDING', 'CONFIRMED')
	        AND r.start_date <= $2
	        AND r.end_date >= $1)`
	return r.list(ctx, where, start, end)
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, year=$3, plate=$4, description=$5, daily_price=$6, status=$7,
	          image_url=$8, fuel_type=$9, transmission_type=$10, seat_count=$11, category_id=$12, updated_at=$13 WHERE id=$14`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, c.Brand, c.Model, c.Year, c.Plate, c.Description, c.DailyPrice, c.Status,
		c.ImageURL, c.FuelType, c.TransmissionType, c.SeatCount, c.CategoryID, now, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Car already exists with plate: %s", c.Plate)
		}
		return err
	}
	c.UpdatedAt = now
	return expectRow(res)
}

func (r *carRepository) UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *carRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("Car %d is still referenced by reservations", id)
		}
		return err
	}
	return expectRow(res)
}
