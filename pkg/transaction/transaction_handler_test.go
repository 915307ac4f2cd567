package transaction

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTransactionHandler(now time.Time) (*Handler, *StubTransactionRepo) {
	repo := NewStubTransactionRepo()
	service := NewTransactionService(repo, &utils.MockClock{FixedNow: now})
	return NewHandler(service), repo
}

func transactionRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(user.WithUser(r.Context(), user.User{Id: 1}))
}

func TestTransactionHandler_Create(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	t.Run("should record a transaction and return totals", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)
		body := `{"type": "income", "amount": 1200.5, "description": "salary"}`

		w := httptest.NewRecorder()
		handler.Create(w, transactionRequest(http.MethodPost, "/api/transaction", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var response struct {
			Transaction TransactionDTO `json:"transaction"`
			Totals      TotalsDTO      `json:"totals"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "income", response.Transaction.Type)
		assert.Equal(t, 1200.5, response.Transaction.Amount)
		assert.Equal(t, 1200.5, response.Totals.TotalIncome)
		assert.Equal(t, 1200.5, response.Totals.NetBalance)
	})

	t.Run("should accept a numeric string amount", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)
		body := `{"type": "expense", "amount": "12.5", "description": "lunch"}`

		w := httptest.NewRecorder()
		handler.Create(w, transactionRequest(http.MethodPost, "/api/transaction", body))

		require.Equal(t, http.StatusCreated, w.Code)
		var response struct {
			Totals TotalsDTO `json:"totals"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 12.5, response.Totals.TotalExpense)
	})

	t.Run("should reject a non-numeric amount", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)
		body := `{"type": "income", "amount": "abc"}`

		w := httptest.NewRecorder()
		handler.Create(w, transactionRequest(http.MethodPost, "/api/transaction", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject an unknown type", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)
		body := `{"type": "transfer", "amount": 100}`

		w := httptest.NewRecorder()
		handler.Create(w, transactionRequest(http.MethodPost, "/api/transaction", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should refuse a request without user identity", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)
		body := `{"type": "income", "amount": 100}`

		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader(body)))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTransactionHandler_List(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	t.Run("should return the requested page", func(t *testing.T) {
		handler, repo := setupTransactionHandler(now)
		_, _ = repo.Store(context.Background(), 1, Transaction{Kind: KindIncome, Amount: 10, CreatedAt: now})

		w := httptest.NewRecorder()
		handler.List(w, transactionRequest(http.MethodGet, "/api/transactions?page=1", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Items      []TransactionDTO `json:"items"`
			Page       int              `json:"page"`
			TotalPages int              `json:"total_pages"`
			Total      int              `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Items, 1)
		assert.Equal(t, 1, response.Page)
		assert.Equal(t, 1, response.TotalPages)
	})

	t.Run("should reject a non-numeric page", func(t *testing.T) {
		handler, _ := setupTransactionHandler(now)

		w := httptest.NewRecorder()
		handler.List(w, transactionRequest(http.MethodGet, "/api/transactions?page=two", ""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionHandler_Summary(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	handler, _ := setupTransactionHandler(now)

	w := httptest.NewRecorder()
	handler.Summary(w, transactionRequest(http.MethodGet, "/api/summary", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var totals TotalsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, TotalsDTO{}, totals)
}

func TestTransactionHandler_ChartData(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	handler, repo := setupTransactionHandler(now)
	_, _ = repo.Store(context.Background(), 1, Transaction{Kind: KindExpense, Amount: 30, CreatedAt: now})

	w := httptest.NewRecorder()
	handler.ChartData(w, transactionRequest(http.MethodGet, "/api/chart-data", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Labels     []string  `json:"labels"`
		Expense    []float64 `json:"expense"`
		NetBalance []float64 `json:"net_balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Labels, 30)
	assert.Equal(t, "2024-03-05", response.Labels[29])
	assert.Equal(t, 30.0, response.Expense[29])
	assert.Equal(t, -30.0, response.NetBalance[29])
}
