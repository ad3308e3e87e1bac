package entities

import "time"

// MonthlyRevenue is one bucket of the trailing 12-month revenue series,
// keyed by quote completion date.
type MonthlyRevenue struct {
	Month   string  `json:"month"` // "2024-01"
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// FinancialReport aggregates quotes and installments over a period.
//
// Revenue and profit consider only CONCLUIDO quotes; PaymentsByMethod only
// PAGO installments. An empty period yields the zero value, never an error.
type FinancialReport struct {
	TotalRevenue     float64                   `json:"total_revenue"`
	TotalProfit      float64                   `json:"total_profit"`
	TotalPending     float64                   `json:"total_pending"`
	TotalOverdue     float64                   `json:"total_overdue"`
	CompletedJobs    int                       `json:"completed_jobs"`
	JobsInProgress   int                       `json:"jobs_in_progress"`
	PaymentsByMethod map[PaymentMethod]float64 `json:"payments_by_method"`
	RevenueByMonth   []MonthlyRevenue          `json:"revenue_by_month"`
}

// ReportFilter narrows the aggregation window. Nil bounds mean unbounded;
// empty ClientID means all clients.
type ReportFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
}
