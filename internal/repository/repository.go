package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	// GetByIDForUpdate locks the car row until the enclosing transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Car, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Car, error)
	ListByStatus(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	ListAvailableBetween(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error
	Delete(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.Reservation, error)
	ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	// ListActiveByCar returns the car's PENDING and CONFIRMED reservations.
	ListActiveByCar(ctx context.Context, carID int64) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int64) error
}

// Repositories groups the per-entity repositories bound to one connection or transaction.
type Repositories struct {
	Users        UserRepository
	Categories   CategoryRepository
	Cars         CarRepository
	Reservations ReservationRepository
	Rentals      RentalRepository
}

// TxRunner runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repos Repositories) error) error
}
