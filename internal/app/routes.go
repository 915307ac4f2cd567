package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Transactions & aggregates
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/chart-data", deps.TransactionHandler.ChartData).Methods("GET")
	r.HandleFunc("/api/summary", deps.TransactionHandler.Summary).Methods("GET")

	// Bills
	r.HandleFunc("/api/bill", deps.BillHandler.Create).Methods("POST")
	r.HandleFunc("/api/bills", deps.BillHandler.List).Methods("GET")
	r.HandleFunc("/api/bill/{billId}/paid", deps.BillHandler.MarkPaid).Methods("POST")
	r.HandleFunc("/api/bill/{billId}", deps.BillHandler.Delete).Methods("DELETE")

	// Saving goals
	r.HandleFunc("/api/goal", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goals", deps.GoalHandler.List).Methods("GET")
	r.HandleFunc("/api/goal/{goalId}/contribute", deps.GoalHandler.Contribute).Methods("POST")

	// Learning content
	r.HandleFunc("/api/learning", deps.LearningHandler.List).Methods("GET")
	r.HandleFunc("/api/learning", deps.LearningHandler.Publish).Methods("POST")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.DeleteCurrentUser).Methods("DELETE")
}
