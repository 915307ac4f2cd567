package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finbook/finbook/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid        string `json:"uid,omitempty"`
	Username   string `json:"username"`
	Occupation string `json:"occupation,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// CreateUser registers a new user and returns it with a generated uid.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	if dto.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Username is required"})
		return
	}
	if dto.Email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Email is required"})
		return
	}

	created, err := h.userService.CreateUser(r.Context(), User{
		Username:   dto.Username,
		Occupation: dto.Occupation,
		Mobile:     dto.Mobile,
		Email:      dto.Email,
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Username or email already exists"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CurrentUser returns the user resolved from the X-User-Id header.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No user identity provided"})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteCurrentUser removes the current user and all owned records.
func (h *Handler) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteCurrentUser(r.Context()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No user identity provided"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Uid:        u.Uid,
		Username:   u.Username,
		Occupation: u.Occupation,
		Mobile:     u.Mobile,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}
