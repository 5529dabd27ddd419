package domain

// ReservationDetails is a reservation with the user and car fields shown to clients.
type ReservationDetails struct {
	Reservation
	UserName  string
	UserEmail string
	CarBrand  string
	CarModel  string
	CarPlate  string
}

// RentalDetails is a rental with its reservation's user, car and price.
type RentalDetails struct {
	Rental
	UserID           int64
	UserName         string
	CarID            int64
	CarBrand         string
	CarModel         string
	CarPlate         string
	ReservationTotal float64
}

// TotalPrice is the reservation price plus any charges added on return.
func (d *RentalDetails) TotalPrice() float64 {
	return d.ReservationTotal + d.AdditionalCharges
}
