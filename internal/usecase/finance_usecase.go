package usecase

import (
	"context"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase/interfaces"
)

// IFinanceUseCase folds quotes and installments into the financial report.

type IFinanceUseCase interface {
	Report(ctx context.Context, filter entities.ReportFilter) (entities.FinancialReport, error)
}

type FinanceUseCase struct {
	quotes   interfaces.IQuoteRepository
	payments interfaces.IPaymentRepository

	now func() time.Time
}

var _ IFinanceUseCase = (*FinanceUseCase)(nil)

func NewFinanceUseCase(quotes interfaces.IQuoteRepository, payments interfaces.IPaymentRepository) *FinanceUseCase {
	return &FinanceUseCase{quotes: quotes, payments: payments, now: func() time.Time { return time.Now().UTC() }}
}

// Report aggregates the matching quotes and their installments.
//
// Revenue and profit come from CONCLUIDO quotes only; pending/overdue totals
// and the by-method map come from installment statuses. An empty result set
// yields all-zero metrics. The overdue sweep runs first so installment
// statuses are current.
func (u *FinanceUseCase) Report(ctx context.Context, filter entities.ReportFilter) (entities.FinancialReport, error) {
	now := u.now()

	if _, err := u.payments.MarkOverdue(ctx, now); err != nil {
		return entities.FinancialReport{}, err
	}

	quotes, err := u.quotes.List(ctx, filter)
	if err != nil {
		return entities.FinancialReport{}, err
	}

	report := entities.FinancialReport{
		PaymentsByMethod: make(map[entities.PaymentMethod]float64),
	}

	var payments []entities.Payment
	for _, q := range quotes {
		switch {
		case q.IsCompleted():
			report.CompletedJobs++
			report.TotalRevenue += q.TotalValue
			report.TotalProfit += q.TotalValue - q.MaterialsCost
		case q.InProgress():
			report.JobsInProgress++
		}

		rows, err := u.payments.ListByQuoteID(ctx, q.ID)
		if err != nil {
			return entities.FinancialReport{}, err
		}
		payments = append(payments, rows...)
	}

	for _, p := range payments {
		switch p.Status {
		case entities.PaymentStatusPendente:
			report.TotalPending += p.Amount
		case entities.PaymentStatusAtrasado:
			report.TotalOverdue += p.Amount
		case entities.PaymentStatusPago:
			report.PaymentsByMethod[p.Method] += p.Amount
		}
	}

	report.RevenueByMonth = monthlySeries(quotes, now)
	return report, nil
}

// monthlySeries buckets completed quotes into the trailing 12 months by
// completion date, oldest bucket first.
func monthlySeries(quotes []entities.Quote, now time.Time) []entities.MonthlyRevenue {
	series := make([]entities.MonthlyRevenue, 0, 12)
	// Step from the first of the month. Stepping from day 29-31 would
	// normalize into the wrong month (Mar 31 minus one month is Mar 2).
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 11; i >= 0; i-- {
		month := first.AddDate(0, -i, 0).Format("2006-01")

		bucket := entities.MonthlyRevenue{Month: month}
		for _, q := range quotes {
			if !q.IsCompleted() || q.CompletedAt == nil {
				continue
			}
			if q.CompletedAt.Format("2006-01") != month {
				continue
			}
			bucket.Revenue += q.TotalValue
			bucket.Profit += q.TotalValue - q.MaterialsCost
		}
		series = append(series, bucket)
	}
	return series
}
