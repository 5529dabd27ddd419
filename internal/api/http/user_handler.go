package http

import (
	"net/http"

	"github.com/kevserarslan/car-rental-management/internal/service"
)

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	u, err := h.users.Get(r.Context(), caller.UserID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Profile retrieved successfully", toUserResponse(u))
}

// UpdateMe edits the caller's own profile. Role and email are not editable here.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req UserUpdateRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	u, err := h.users.UpdateProfile(r.Context(), caller, req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Profile updated successfully", toUserResponse(u))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "User retrieved successfully", toUserResponse(u))
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByEmail(r.Context(), pathVar(r, "email"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "User retrieved successfully", toUserResponse(u))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "Users retrieved successfully", toUserResponses(users))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var req UserUpdateRequest
	if err := ReadAndValidate(w, r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	u, err := h.users.Update(r.Context(), id, req.toInput())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "User updated successfully", toUserResponse(u))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	Success(w, "User deleted successfully", nil)
}
