package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id          int     `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
}

type TotalsDTO struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetBalance   float64 `json:"net_balance"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create records a transaction and returns it together with refreshed
// lifetime totals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Recording transaction")

	var dto struct {
		Type        string `json:"type"`
		Amount      any    `json:"amount"`
		Description string `json:"description"`
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

	created, totals, err := h.service.Create(r.Context(), Transaction{
		Kind:        Kind(dto.Type),
		Amount:      amount,
		Description: dto.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Transaction TransactionDTO `json:"transaction"`
		Totals      TotalsDTO      `json:"totals"`
	}{transactionToDTO(created), totalsToDTO(totals)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// List returns one page of the owner's history, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page := 1
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid page number", Details: err.Error()})
			return
		}
		page = parsed
	}

	result, err := h.service.List(r.Context(), page)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]TransactionDTO, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, transactionToDTO(t))
	}
	response := struct {
		Items      []TransactionDTO `json:"items"`
		Page       int              `json:"page"`
		TotalPages int              `json:"total_pages"`
		Total      int              `json:"total"`
	}{items, result.Page, result.TotalPages, result.Total}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ChartData returns the 30-day trend series.
func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	chart, err := h.service.Trend(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := struct {
		Labels     []string  `json:"labels"`
		Expense    []float64 `json:"expense"`
		NetBalance []float64 `json:"net_balance"`
	}{chart.Labels, chart.Expense, chart.NetBalance}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Summary returns the owner's lifetime totals.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	totals, err := h.service.Totals(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(totalsToDTO(totals)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidKind):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid type", Details: err.Error()})
	case errors.Is(err, user.ErrUserNotFound):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No user identity provided"})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func transactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		Id:          t.Id,
		Type:        string(t.Kind),
		Amount:      t.Amount,
		Description: t.Description,
		Timestamp:   t.CreatedAt.Format(time.RFC3339),
	}
}

func totalsToDTO(t Totals) TotalsDTO {
	return TotalsDTO{TotalIncome: t.TotalIncome, TotalExpense: t.TotalExpense, NetBalance: t.NetBalance}
}
