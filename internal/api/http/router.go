package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kevserarslan/car-rental-management/internal/config"
	"github.com/kevserarslan/car-rental-management/internal/domain"
)

// Handlers groups every REST handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Cars         *CarHandler
	Categories   *CategoryHandler
	Reservations *ReservationHandler
	Rentals      *RentalHandler
	Users        *UserHandler
	Currency     *CurrencyHandler
	Vehicles     *VehicleHandler
	Health       *HealthHandler
}

// NewRouter builds the full handler chain: request id, panic recovery, access
// log and CORS wrap the mux; metrics and auth run per matched route.
func NewRouter(h Handlers, auth *AuthMiddleware, corsCfg config.CORSConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(Metrics, auth.Handler)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	a.HandleFunc("/register-admin", h.Auth.RegisterAdmin).Methods(http.MethodPost)
	a.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	a.HandleFunc("/check", h.Auth.Check).Methods(http.MethodGet)
	a.HandleFunc("/check-admin", h.Auth.CheckAdmin).Methods(http.MethodGet)

	c := r.PathPrefix("/cars").Subrouter()
	c.HandleFunc("", h.Cars.List).Methods(http.MethodGet)
	c.HandleFunc("", h.Cars.Create).Methods(http.MethodPost)
	c.HandleFunc("/available", h.Cars.Available).Methods(http.MethodGet)
	c.HandleFunc("/plate/{plate}", h.Cars.GetByPlate).Methods(http.MethodGet)
	c.HandleFunc("/category/{categoryId:[0-9]+}", h.Cars.ListByCategory).Methods(http.MethodGet)
	c.HandleFunc("/status/{status}", h.Cars.ListByStatus).Methods(http.MethodGet)
	c.HandleFunc("/{id:[0-9]+}", h.Cars.Get).Methods(http.MethodGet)
	c.HandleFunc("/{id:[0-9]+}", h.Cars.Update).Methods(http.MethodPut)
	c.HandleFunc("/{id:[0-9]+}", h.Cars.Delete).Methods(http.MethodDelete)

	cat := r.PathPrefix("/categories").Subrouter()
	cat.HandleFunc("", h.Categories.List).Methods(http.MethodGet)
	cat.HandleFunc("", h.Categories.Create).Methods(http.MethodPost)
	cat.HandleFunc("/name/{name}", h.Categories.GetByName).Methods(http.MethodGet)
	cat.HandleFunc("/{id:[0-9]+}", h.Categories.Get).Methods(http.MethodGet)
	cat.HandleFunc("/{id:[0-9]+}", h.Categories.Update).Methods(http.MethodPut)
	cat.HandleFunc("/{id:[0-9]+}", h.Categories.Delete).Methods(http.MethodDelete)

	res := r.PathPrefix("/reservations").Subrouter()
	res.HandleFunc("", h.Reservations.List).Methods(http.MethodGet)
	res.HandleFunc("", h.Reservations.Create).Methods(http.MethodPost)
	res.HandleFunc("/my", h.Reservations.ListMine).Methods(http.MethodGet)
	res.HandleFunc("/user/{userId:[0-9]+}", h.Reservations.ListByUser).Methods(http.MethodGet)
	res.HandleFunc("/car/{carId:[0-9]+}", h.Reservations.ListByCar).Methods(http.MethodGet)
	res.HandleFunc("/status/{status}", h.Reservations.ListByStatus).Methods(http.MethodGet)
	res.HandleFunc("/{id:[0-9]+}", h.Reservations.Get).Methods(http.MethodGet)
	res.HandleFunc("/{id:[0-9]+}/confirm", h.Reservations.Confirm).Methods(http.MethodPut)
	res.HandleFunc("/{id:[0-9]+}/cancel", h.Reservations.Cancel).Methods(http.MethodPut)
	res.HandleFunc("/{id:[0-9]+}", h.Reservations.Delete).Methods(http.MethodDelete)

	ren := r.PathPrefix("/rentals").Subrouter()
	ren.HandleFunc("", h.Rentals.List).Methods(http.MethodGet)
	ren.HandleFunc("", h.Rentals.Create).Methods(http.MethodPost)
	ren.HandleFunc("/overdue", h.Rentals.ListOverdue).Methods(http.MethodGet)
	ren.HandleFunc("/reservation/{reservationId:[0-9]+}", h.Rentals.GetByReservation).Methods(http.MethodGet)
	ren.HandleFunc("/user/{userId:[0-9]+}", h.Rentals.ListByUser).Methods(http.MethodGet)
	ren.HandleFunc("/status/{status}", h.Rentals.ListByStatus).Methods(http.MethodGet)
	ren.HandleFunc("/{id:[0-9]+}", h.Rentals.Get).Methods(http.MethodGet)
	ren.HandleFunc("/{id:[0-9]+}/return", h.Rentals.Return).Methods(http.MethodPut)
	ren.HandleFunc("/{id:[0-9]+}", h.Rentals.Delete).Methods(http.MethodDelete)

	u := r.PathPrefix("/users").Subrouter()
	u.HandleFunc("", h.Users.List).Methods(http.MethodGet)
	u.HandleFunc("/me", h.Users.Me).Methods(http.MethodGet)
	u.HandleFunc("/me", h.Users.UpdateMe).Methods(http.MethodPut)
	u.HandleFunc("/email/{email}", h.Users.GetByEmail).Methods(http.MethodGet)
	u.HandleFunc("/{id:[0-9]+}", h.Users.Get).Methods(http.MethodGet)
	u.HandleFunc("/{id:[0-9]+}", h.Users.Update).Methods(http.MethodPut)
	u.HandleFunc("/{id:[0-9]+}", h.Users.Delete).Methods(http.MethodDelete)

	cur := r.PathPrefix("/currency").Subrouter()
	cur.HandleFunc("/convert", h.Currency.Convert).Methods(http.MethodGet)
	cur.HandleFunc("/rates", h.Currency.Rates).Methods(http.MethodGet)
	cur.HandleFunc("/rate", h.Currency.Rate).Methods(http.MethodGet)

	v := r.PathPrefix("/vehicles").Subrouter()
	v.HandleFunc("/metadata", h.Vehicles.Metadata).Methods(http.MethodGet)
	v.HandleFunc("/makes", h.Vehicles.Makes).Methods(http.MethodGet)
	v.HandleFunc("/models/{make}", h.Vehicles.Models).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, domain.ErrNotFound, "Resource not found")
	})

	var handler http.Handler = r
	handler = CORS(corsCfg)(handler)
	handler = Logger(handler)
	handler = Recovery(handler)
	handler = RequestID(handler)
	return handler
}
