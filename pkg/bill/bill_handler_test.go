package bill

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBillHandler(today time.Time) (*Handler, *StubBillRepo) {
	repo := NewStubBillRepo()
	service := NewBillService(repo, &utils.MockClock{FixedNow: today})
	return NewHandler(service), repo
}

func billRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(user.WithUser(r.Context(), user.User{Id: 1}))
}

func TestBillHandler_Create(t *testing.T) {
	today := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("should create a bill from a valid payload", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": 950.5, "date": "2024-04-01", "time_period": "monthly", "priority": 1}`

		w := httptest.NewRecorder()
		handler.Create(w, billRequest(http.MethodPost, "/api/bill", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var response struct {
			Bill BillDTO `json:"bill"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "rent", response.Bill.BillType)
		assert.Equal(t, 950.5, response.Bill.Amount)
		assert.Equal(t, "2024-04-01", response.Bill.Date)
		assert.Equal(t, PriorityHigh, response.Bill.Priority)
	})

	t.Run("should accept a numeric string amount", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": "950.5", "date": "2024-04-01"}`

		w := httptest.NewRecorder()
		handler.Create(w, billRequest(http.MethodPost, "/api/bill", body))

		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("should fall back to today for an unparseable date", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": 950, "date": "not-a-date"}`

		w := httptest.NewRecorder()
		handler.Create(w, billRequest(http.MethodPost, "/api/bill", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var response struct {
			Bill BillDTO `json:"bill"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "2024-03-05", response.Bill.Date)
	})

	t.Run("should reject a non-numeric amount", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": "abc", "date": "2024-04-01"}`

		w := httptest.NewRecorder()
		handler.Create(w, billRequest(http.MethodPost, "/api/bill", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a non-numeric priority", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": 950, "priority": "urgent"}`

		w := httptest.NewRecorder()
		handler.Create(w, billRequest(http.MethodPost, "/api/bill", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should refuse a request without user identity", func(t *testing.T) {
		handler, _ := setupBillHandler(today)
		body := `{"bill_type": "rent", "amount": 950}`

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/bill", strings.NewReader(body)))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestBillHandler_List(t *testing.T) {
	today := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	handler, repo := setupBillHandler(today)
	_, _ = repo.Store(context.Background(), 1, Bill{
		BillType:   "rent",
		Amount:     950,
		AnchorDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Period:     PeriodMonthly,
		Priority:   PriorityHigh,
	})

	w := httptest.NewRecorder()
	handler.List(w, billRequest(http.MethodGet, "/api/bills", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		All      []BillDTO `json:"all"`
		Upcoming []BillDTO `json:"upcoming"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.All, 1)
	assert.Equal(t, "2024-03-08", response.All[0].NextDue)
	assert.Len(t, response.Upcoming, 1)
}

func TestBillHandler_MarkPaid(t *testing.T) {
	today := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("should return 204 for an owned bill", func(t *testing.T) {
		handler, repo := setupBillHandler(today)
		stored, _ := repo.Store(context.Background(), 1, Bill{BillType: "rent", AnchorDate: today, Period: PeriodMonthly})

		w := httptest.NewRecorder()
		r := billRequest(http.MethodPost, "/api/bill/1/paid", "")
		handler.MarkPaid(w, mux.SetURLVars(r, map[string]string{"billId": "1"}))

		assert.Equal(t, http.StatusNoContent, w.Code)
		b, _, _ := repo.Get(context.Background(), stored.Id)
		assert.True(t, b.IsPaid)
	})

	t.Run("should return 404 for an unknown bill", func(t *testing.T) {
		handler, _ := setupBillHandler(today)

		w := httptest.NewRecorder()
		r := billRequest(http.MethodPost, "/api/bill/42/paid", "")
		handler.MarkPaid(w, mux.SetURLVars(r, map[string]string{"billId": "42"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 403 for another user's bill", func(t *testing.T) {
		handler, repo := setupBillHandler(today)
		_, _ = repo.Store(context.Background(), 2, Bill{BillType: "rent", AnchorDate: today, Period: PeriodMonthly})

		w := httptest.NewRecorder()
		r := billRequest(http.MethodPost, "/api/bill/1/paid", "")
		handler.MarkPaid(w, mux.SetURLVars(r, map[string]string{"billId": "1"}))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestBillHandler_Delete(t *testing.T) {
	today := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("should return 204 and remove the bill", func(t *testing.T) {
		handler, repo := setupBillHandler(today)
		stored, _ := repo.Store(context.Background(), 1, Bill{BillType: "rent", AnchorDate: today, Period: PeriodMonthly})

		w := httptest.NewRecorder()
		r := billRequest(http.MethodDelete, "/api/bill/1", "")
		handler.Delete(w, mux.SetURLVars(r, map[string]string{"billId": "1"}))

		assert.Equal(t, http.StatusNoContent, w.Code)
		_, _, err := repo.Get(context.Background(), stored.Id)
		assert.ErrorIs(t, err, ErrBillNotFound)
	})

	t.Run("should return 400 for a malformed id", func(t *testing.T) {
		handler, _ := setupBillHandler(today)

		w := httptest.NewRecorder()
		r := billRequest(http.MethodDelete, "/api/bill/abc", "")
		handler.Delete(w, mux.SetURLVars(r, map[string]string{"billId": "abc"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
