package service

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
)

// AvailabilityChecker answers which cars are free over a date range.
type AvailabilityChecker interface {
	FindAvailable(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	HasConflict(ctx context.Context, carID int64, start, end time.Time) (bool, error)
}

type CategoryService interface {
	Create(ctx context.Context, name, description string) (*domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id int64, name, description string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CarService interface {
	Create(ctx context.Context, in CarInput) (*domain.Car, error)
	Get(ctx context.Context, id int64) (*domain.Car, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Car, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Car, error)
	Available(ctx context.Context, start, end time.Time) ([]domain.Car, error)
	Update(ctx context.Context, id int64, in CarInput) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

type ReservationService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateReservationInput) (*domain.ReservationDetails, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.ReservationDetails, error)
	List(ctx context.Context) ([]domain.ReservationDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ReservationDetails, error)
	ListMine(ctx context.Context, caller domain.Caller) ([]domain.ReservationDetails, error)
	ListByCar(ctx context.Context, carID int64) ([]domain.ReservationDetails, error)
	ListByStatus(ctx context.Context, status string) ([]domain.ReservationDetails, error)
	Confirm(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	Cancel(ctx context.Context, caller domain.Caller, id int64) (*domain.ReservationDetails, error)
	Delete(ctx context.Context, id int64) error
}

type RentalService interface {
	Create(ctx context.Context, in CreateRentalInput) (*domain.RentalDetails, error)
	Get(ctx context.Context, id int64) (*domain.RentalDetails, error)
	GetByReservation(ctx context.Context, reservationID int64) (*domain.RentalDetails, error)
	List(ctx context.Context) ([]domain.RentalDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.RentalDetails, error)
	ListByStatus(ctx context.Context, status string) ([]domain.RentalDetails, error)
	ListOverdue(ctx context.Context) ([]domain.RentalDetails, error)
	ReturnCar(ctx context.Context, id int64, in ReturnCarInput) (*domain.RentalDetails, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	RegisterAdmin(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.Caller, in UserUpdate) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	EnsureAdmin(ctx context.Context, seed AdminSeed) (*domain.User, error)
}

// CurrencyConverter never fails; lookups that cannot reach the rate API fall back.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) ConversionResult
	Rate(ctx context.Context, from, to string) float64
	Rates(ctx context.Context, base string) RatesResult
}

// VehicleLookup never fails; unreachable lookups return defaults.
type VehicleLookup interface {
	Metadata(ctx context.Context, vehicleMake, model string, year int) VehicleMetadata
	Makes(ctx context.Context) []string
	Models(ctx context.Context, vehicleMake string) []string
}

type CarInput struct {
	Brand            string
	Model            string
	Year             int
	Plate            string
	Description      string
	DailyPrice       float64
	Status           string // ignored on create
	ImageURL         string
	FuelType         string
	TransmissionType string
	SeatCount        int
	CategoryID       int64
}

type CreateReservationInput struct {
	UserID    *int64 // admins may book on behalf of another user
	CarID     int64
	StartDate time.Time
	EndDate   time.Time
	Notes     string
}

type CreateRentalInput struct {
	ReservationID  int64
	PickupDate     *time.Time
	InitialMileage int
	Notes          string
}

type ReturnCarInput struct {
	FinalMileage      int
	AdditionalCharges *float64
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	Address       string
	DriverLicense string
}

type AuthResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *domain.User
}

// UserUpdate holds optional profile changes. Nil fields are left as they are.
type UserUpdate struct {
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	DriverLicense *string
	Password      *string
	Role          *string
}

type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Address  string
}
