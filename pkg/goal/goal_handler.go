package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	Id            int               `json:"id"`
	Name          string            `json:"name"`
	TargetAmount  float64           `json:"target_amount"`
	TargetMonths  int               `json:"target_months"`
	CommittedDate string            `json:"committed_date,omitempty"`
	Contributions []ContributionDTO `json:"contributions,omitempty"`
}

type ContributionDTO struct {
	MonthIndex        int     `json:"month_index"`
	Contributed       bool    `json:"contributed"`
	ContributedAmount float64 `json:"contributed_amount"`
	RecordedAt        string  `json:"recorded_at,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create registers a saving goal together with one pending contribution slot
// per month.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating saving goal")

	var dto struct {
		Name   string `json:"name"`
		Amount any    `json:"amount"`
		Months any    `json:"months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	amount, err := rest.ParseAmount(dto.Amount)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid amount", Details: err.Error()})
		return
	}
	months, err := rest.ParseInt(dto.Months)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid months", Details: err.Error()})
		return
	}

	created, err := h.service.Create(r.Context(), SavingGoal{
		Name:         dto.Name,
		TargetAmount: amount,
		TargetMonths: months,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Goal GoalDTO `json:"goal"`
	}{goalToDTO(created)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// List returns the owner's goals, each with its ordered contribution slots.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	goals, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, goalToDTO(g))
	}
	response := struct {
		Goals []GoalDTO `json:"goals"`
	}{dtos}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Contribute records one month's contribution on an owned goal.
func (h *Handler) Contribute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	goalId, err := strconv.Atoi(mux.Vars(r)["goalId"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid goal id"})
		return
	}
	var dto struct {
		MonthIndex any `json:"month_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}
	monthIndex, err := rest.ParseInt(dto.MonthIndex)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid month index", Details: err.Error()})
		return
	}

	amount, err := h.service.Contribute(r.Context(), goalId, monthIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := struct {
		ContributedAmount float64 `json:"contributed_amount"`
	}{amount}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidMonth):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid month"})
	case errors.Is(err, ErrInvalidMonths):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid months"})
	case errors.Is(err, ErrGoalNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Saving goal not found"})
	case errors.Is(err, ErrNotOwner):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Saving goal belongs to another user"})
	case errors.Is(err, user.ErrUserNotFound):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No user identity provided"})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func goalToDTO(g SavingGoal) GoalDTO {
	contributions := make([]ContributionDTO, 0, len(g.Contributions))
	for _, c := range g.Contributions {
		dto := ContributionDTO{
			MonthIndex:        c.MonthIndex,
			Contributed:       c.Contributed,
			ContributedAmount: c.ContributedAmount,
		}
		if c.RecordedAt != nil {
			dto.RecordedAt = c.RecordedAt.Format(time.RFC3339)
		}
		contributions = append(contributions, dto)
	}
	return GoalDTO{
		Id:            g.Id,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		TargetMonths:  g.TargetMonths,
		CommittedDate: g.CommittedAt.Format(time.RFC3339),
		Contributions: contributions,
	}
}
