package http

import (
	"net/http"

	"github.com/kevserarslan/car-rental-management/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req ReservationRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	res, err := h.reservations.Create(r.Context(), caller, service.CreateReservationInput{
		UserID:    req.UserID,
		CarID:     req.CarID,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	})
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "Reservation created successfully", toReservationResponse(res))
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.reservations.Get(r.Context(), caller, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservation retrieved successfully", toReservationResponse(res))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reservations.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservations retrieved successfully", toReservationResponses(list))
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	list, err := h.reservations.ListMine(r.Context(), caller)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservations retrieved successfully", toReservationResponses(list))
}

func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	list, err := h.reservations.ListByUser(r.Context(), userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservations retrieved successfully", toReservationResponses(list))
}

func (h *ReservationHandler) ListByCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r, "carId")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	list, err := h.reservations.ListByCar(r.Context(), carID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservations retrieved successfully", toReservationResponses(list))
}

func (h *ReservationHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.reservations.ListByStatus(r.Context(), pathVar(r, "status"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservations retrieved successfully", toReservationResponses(list))
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.reservations.Confirm(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservation confirmed successfully", toReservationResponse(res))
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	res, err := h.reservations.Cancel(r.Context(), caller, id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservation cancelled successfully", toReservationResponse(res))
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.reservations.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Reservation deleted successfully", nil)
}
