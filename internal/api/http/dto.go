package http

import (
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/service"
)

// Requests

type RegisterRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Address       string `json:"address"`
	DriverLicense string `json:"driverLicense"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CarRequest struct {
	Brand            string  `json:"brand" validate:"required"`
	Model            string  `json:"model" validate:"required"`
	Year             int     `json:"year" validate:"required,gte=1900,lte=2100"`
	Plate            string  `json:"plate" validate:"required,max=20"`
	Description      string  `json:"description"`
	DailyPrice       float64 `json:"dailyPrice" validate:"required,gt=0"`
	Status           string  `json:"status"`
	ImageURL         string  `json:"imageUrl"`
	FuelType         string  `json:"fuelType"`
	TransmissionType string  `json:"transmissionType"`
	SeatCount        int     `json:"seatCount" validate:"gte=0"`
	CategoryID       int64   `json:"categoryId" validate:"required,gt=0"`
}

type ReservationRequest struct {
	UserID    *int64 `json:"userId" validate:"omitempty,gt=0"`
	CarID     int64  `json:"carId" validate:"required,gt=0"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes" validate:"max=1000"`
}

type RentalRequest struct {
	ReservationID  int64  `json:"reservationId" validate:"required,gt=0"`
	PickupDate     string `json:"pickupDate"`
	InitialMileage int    `json:"initialMileage" validate:"gte=0"`
	Notes          string `json:"notes" validate:"max=1000"`
}

type ReturnRequest struct {
	FinalMileage      int      `json:"finalMileage" validate:"gte=0"`
	AdditionalCharges *float64 `json:"additionalCharges" validate:"omitempty,gte=0"`
}

type UserUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=100"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address"`
	DriverLicense *string `json:"driverLicense"`
	Password      *string `json:"password" validate:"omitempty,min=6"`
	Role          *string `json:"role"`
}

func (r CarRequest) toInput() service.CarInput {
	return service.CarInput{
		Brand:            r.Brand,
		Model:            r.Model,
		Year:             r.Year,
		Plate:            r.Plate,
		Description:      r.Description,
		DailyPrice:       r.DailyPrice,
		Status:           r.Status,
		ImageURL:         r.ImageURL,
		FuelType:         r.FuelType,
		TransmissionType: r.TransmissionType,
		SeatCount:        r.SeatCount,
		CategoryID:       r.CategoryID,
	}
}

func (r RegisterRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		Name:          r.Name,
		Email:         r.Email,
		Password:      r.Password,
		Phone:         r.Phone,
		Address:       r.Address,
		DriverLicense: r.DriverLicense,
	}
}

func (r UserUpdateRequest) toInput() service.UserUpdate {
	return service.UserUpdate{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		DriverLicense: r.DriverLicense,
		Password:      r.Password,
		Role:          r.Role,
	}
}

// Responses

type UserResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	DriverLicense string    `json:"driverLicense"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	Type      string       `json:"type"`
	ExpiresIn int64        `json:"expiresIn"` // seconds
	User      UserResponse `json:"user"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CarResponse struct {
	ID               int64     `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	Year             int       `json:"year"`
	Plate            string    `json:"plate"`
	Description      string    `json:"description"`
	DailyPrice       float64   `json:"dailyPrice"`
	Status           string    `json:"status"`
	ImageURL         string    `json:"imageUrl"`
	FuelType         string    `json:"fuelType"`
	TransmissionType string    `json:"transmissionType"`
	SeatCount        int       `json:"seatCount"`
	CategoryID       int64     `json:"categoryId"`
	CategoryName     string    `json:"categoryName"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ReservationResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	UserName   string    `json:"userName"`
	UserEmail  string    `json:"userEmail"`
	CarID      int64     `json:"carId"`
	CarBrand   string    `json:"carBrand"`
	CarModel   string    `json:"carModel"`
	CarPlate   string    `json:"carPlate"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RentalResponse struct {
	ID                int64      `json:"id"`
	ReservationID     int64      `json:"reservationId"`
	UserID            int64      `json:"userId"`
	UserName          string     `json:"userName"`
	CarID             int64      `json:"carId"`
	CarBrand          string     `json:"carBrand"`
	CarModel          string     `json:"carModel"`
	CarPlate          string     `json:"carPlate"`
	PickupDate        time.Time  `json:"pickupDate"`
	ReturnDate        time.Time  `json:"returnDate"`
	ActualReturnDate  *time.Time `json:"actualReturnDate"`
	InitialMileage    int        `json:"initialMileage"`
	FinalMileage      *int       `json:"finalMileage"`
	AdditionalCharges float64    `json:"additionalCharges"`
	TotalPrice        float64    `json:"totalPrice"`
	Status            string     `json:"status"`
	Overdue           bool       `json:"overdue"`
	Notes             string     `json:"notes"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Address:       u.Address,
		DriverLicense: u.DriverLicense,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     res.Token,
		Type:      "Bearer",
		ExpiresIn: int64(res.ExpiresIn / time.Second),
		User:      toUserResponse(res.User),
	}
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryResponses(list []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, toCategoryResponse(&list[i]))
	}
	return out
}

func toCarResponse(c *domain.Car) CarResponse {
	return CarResponse{
		ID:               c.ID,
		Brand:            c.Brand,
		Model:            c.Model,
		Year:             c.Year,
		Plate:            c.Plate,
		Description:      c.Description,
		DailyPrice:       c.DailyPrice,
		Status:           string(c.Status),
		ImageURL:         c.ImageURL,
		FuelType:         c.FuelType,
		TransmissionType: c.TransmissionType,
		SeatCount:        c.SeatCount,
		CategoryID:       c.CategoryID,
		CategoryName:     c.CategoryName,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toCarResponses(list []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(list))
	for i := range list {
		out = append(out, toCarResponse(&list[i]))
	}
	return out
}

func toReservationResponse(d *domain.ReservationDetails) ReservationResponse {
	return ReservationResponse{
		ID:         d.ID,
		UserID:     d.UserID,
		UserName:   d.UserName,
		UserEmail:  d.UserEmail,
		CarID:      d.CarID,
		CarBrand:   d.CarBrand,
		CarModel:   d.CarModel,
		CarPlate:   d.CarPlate,
		StartDate:  d.StartDate.Format(dateLayout),
		EndDate:    d.EndDate.Format(dateLayout),
		TotalPrice: d.TotalPrice,
		Status:     string(d.Status),
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
	}
}

func toReservationResponses(list []domain.ReservationDetails) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, toReservationResponse(&list[i]))
	}
	return out
}

func toRentalResponse(d *domain.RentalDetails, now time.Time) RentalResponse {
	return RentalResponse{
		ID:                d.ID,
		ReservationID:     d.ReservationID,
		UserID:            d.UserID,
		UserName:          d.UserName,
		CarID:             d.CarID,
		CarBrand:          d.CarBrand,
		CarModel:          d.CarModel,
		CarPlate:          d.CarPlate,
		PickupDate:        d.PickupDate,
		ReturnDate:        d.ReturnDate,
		ActualReturnDate:  d.ActualReturnDate,
		InitialMileage:    d.InitialMileage,
		FinalMileage:      d.FinalMileage,
		AdditionalCharges: d.AdditionalCharges,
		TotalPrice:        d.TotalPrice(),
		Status:            string(d.Status),
		Overdue:           d.IsOverdue(now),
		Notes:             d.Notes,
	}
}

func toRentalResponses(list []domain.RentalDetails, now time.Time) []RentalResponse {
	out := make([]RentalResponse, 0, len(list))
	for i := range list {
		out = append(out, toRentalResponse(&list[i], now))
	}
	return out
}
