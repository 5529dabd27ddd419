package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
	now     func() time.Time
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals, now: time.Now}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RentalRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	in := service.CreateRentalInput{
		ReservationID:  req.ReservationID,
		InitialMileage: req.InitialMileage,
		Notes:          req.Notes,
	}
	if p := strings.TrimSpace(req.PickupDate); p != "" {
		pickup, err := parseTimestamp("pickupDate", p)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		in.PickupDate = &pickup
	}

	rental, err := h.rentals.Create(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "Rental created successfully", toRentalResponse(rental, h.now()))
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rental retrieved successfully", toRentalResponse(rental, h.now()))
}

func (h *RentalHandler) GetByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationId")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	rental, err := h.rentals.GetByReservation(r.Context(), reservationID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rental retrieved successfully", toRentalResponse(rental, h.now()))
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rentals retrieved successfully", toRentalResponses(list, h.now()))
}

func (h *RentalHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	list, err := h.rentals.ListByUser(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rentals retrieved successfully", toRentalResponses(list, h.now()))
}

func (h *RentalHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.ListByStatus(r.Context(), pathVar(r, "status"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rentals retrieved successfully", toRentalResponses(list, h.now()))
}

func (h *RentalHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	list, err := h.rentals.ListOverdue(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Overdue rentals retrieved successfully", toRentalResponses(list, h.now()))
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var req ReturnRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	rental, err := h.rentals.ReturnCar(r.Context(), id, service.ReturnCarInput{
		FinalMileage:      req.FinalMileage,
		AdditionalCharges: req.AdditionalCharges,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Car returned successfully", toRentalResponse(rental, h.now()))
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.rentals.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Rental deleted successfully", nil)
}
