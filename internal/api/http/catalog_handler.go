package http

import (
	"net/http"

	"github.com/kevserarslan/car-rental-management/internal/service"
)

type CarHandler struct {
	cars service.CarService
}

func NewCarHandler(cars service.CarService) *CarHandler {
	return &CarHandler{cars: cars}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CarRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	car, err := h.cars.Create(r.Context(), req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "Car created successfully", toCarResponse(car))
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	car, err := h.cars.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Car retrieved successfully", toCarResponse(car))
}

func (h *CarHandler) GetByPlate(w http.ResponseWriter, r *http.Request) {
	car, err := h.cars.GetByPlate(r.Context(), pathVar(r, "plate"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Car retrieved successfully", toCarResponse(car))
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Cars retrieved successfully", toCarResponses(cars))
}

func (h *CarHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	cars, err := h.cars.ListByCategory(r.Context(), categoryID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Cars retrieved successfully", toCarResponses(cars))
}

func (h *CarHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.ListByStatus(r.Context(), pathVar(r, "status"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Cars retrieved successfully", toCarResponses(cars))
}

// Available lists the cars free for the whole of [startDate, endDate].
func (h *CarHandler) Available(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := parseDate("startDate", q.Get("startDate"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	end, err := parseDate("endDate", q.Get("endDate"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	cars, err := h.cars.Available(r.Context(), start, end)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Available cars retrieved successfully", toCarResponses(cars))
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var req CarRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	car, err := h.cars.Update(r.Context(), id, req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Car updated successfully", toCarResponse(car))
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.cars.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Car deleted successfully", nil)
}

type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	c, err := h.categories.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Created(w, "Category created successfully", toCategoryResponse(c))
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	c, err := h.categories.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Category retrieved successfully", toCategoryResponse(c))
}

func (h *CategoryHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.GetByName(r.Context(), pathVar(r, "name"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Category retrieved successfully", toCategoryResponse(c))
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.categories.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Categories retrieved successfully", toCategoryResponses(list))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var req CategoryRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	c, err := h.categories.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Category updated successfully", toCategoryResponse(c))
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Category deleted successfully", nil)
}
