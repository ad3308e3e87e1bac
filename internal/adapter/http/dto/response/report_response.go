package response

import "pintura_xpto/internal/domain/entities"

type MonthlyRevenueResponse struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type FinancialReportResponse struct {
	TotalRevenue     float64                  `json:"total_revenue"`
	TotalProfit      float64                  `json:"total_profit"`
	TotalPending     float64                  `json:"total_pending"`
	TotalOverdue     float64                  `json:"total_overdue"`
	CompletedJobs    int                      `json:"completed_jobs"`
	JobsInProgress   int                      `json:"jobs_in_progress"`
	PaymentsByMethod map[string]float64       `json:"payments_by_method"`
	RevenueByMonth   []MonthlyRevenueResponse `json:"revenue_by_month"`
}

func FromFinancialReport(r entities.FinancialReport) FinancialReportResponse {
	res := FinancialReportResponse{
		TotalRevenue:     r.TotalRevenue,
		TotalProfit:      r.TotalProfit,
		TotalPending:     r.TotalPending,
		TotalOverdue:     r.TotalOverdue,
		CompletedJobs:    r.CompletedJobs,
		JobsInProgress:   r.JobsInProgress,
		PaymentsByMethod: make(map[string]float64, len(r.PaymentsByMethod)),
		RevenueByMonth:   make([]MonthlyRevenueResponse, 0, len(r.RevenueByMonth)),
	}
	for method, amount := range r.PaymentsByMethod {
		res.PaymentsByMethod[string(method)] = amount
	}
	for _, m := range r.RevenueByMonth {
		res.RevenueByMonth = append(res.RevenueByMonth, MonthlyRevenueResponse{
			Month:   m.Month,
			Revenue: m.Revenue,
			Profit:  m.Profit,
		})
	}
	return res
}
