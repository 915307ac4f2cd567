package bill

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

type BillDTO struct {
	Id       int     `json:"id"`
	BillType string  `json:"bill_type"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Period   string  `json:"time_period"`
	Priority int     `json:"priority"`
	IsPaid   bool    `json:"is_paid"`
	NextDue  string  `json:"next_due,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create registers a recurring bill. An unparseable date is replaced with
// today instead of rejecting the request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating bill")

	var dto struct {
		BillType string `json:"bill_type"`
		Amount   any    `json:"amount"`
		Date     string `json:"date"`
		Period   string `json:"time_period"`
		Priority any    `json:"priority"`
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
	priority := PriorityMedium
	if dto.Priority != nil {
		priority, err = rest.ParseInt(dto.Priority)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid priority", Details: err.Error()})
			return
		}
	}

	anchorDate, err := time.ParseInLocation("2006-01-02", dto.Date, time.UTC)
	if err != nil {
		log.Debugf("unparseable bill date %q, falling back to today", dto.Date)
		anchorDate = time.Time{}
	}

	created, err := h.service.Create(r.Context(), Bill{
		BillType:   dto.BillType,
		Amount:     amount,
		AnchorDate: anchorDate,
		Period:     Period(dto.Period),
		Priority:   priority,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	response := struct {
		Bill BillDTO `json:"bill"`
	}{billToDTO(created)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// List returns every bill with its derived next due date, and the upcoming
// subset used for reminders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	all, upcoming, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := struct {
		All      []BillDTO `json:"all"`
		Upcoming []BillDTO `json:"upcoming"`
	}{toDTOs(all), toDTOs(upcoming)}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// MarkPaid sets the terminal paid flag on an owned bill.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	billId, err := billIdFrom(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid bill id"})
		return
	}
	if err := h.service.MarkPaid(r.Context(), billId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an owned bill.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	billId, err := billIdFrom(r)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid bill id"})
		return
	}
	if err := h.service.Delete(r.Context(), billId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func billIdFrom(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["billId"])
}

func writeServiceError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, ErrBillNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Bill not found"})
	case errors.Is(err, ErrNotOwner):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Bill belongs to another user"})
	case errors.Is(err, user.ErrUserNotFound):
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No user identity provided"})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTOs(bills []WithNextDue) []BillDTO {
	dtos := make([]BillDTO, 0, len(bills))
	for _, b := range bills {
		dto := billToDTO(b.Bill)
		dto.NextDue = b.NextDue.Format("2006-01-02")
		dtos = append(dtos, dto)
	}
	return dtos
}

func billToDTO(b Bill) BillDTO {
	return BillDTO{
		Id:       b.Id,
		BillType: b.BillType,
		Amount:   b.Amount,
		Date:     b.AnchorDate.Format("2006-01-02"),
		Period:   string(b.Period),
		Priority: b.Priority,
		IsPaid:   b.IsPaid,
	}
}
