package request

import (
	"strings"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
)

// PaymentCreateRequest creates one installment record explicitly.
type PaymentCreateRequest struct {
	QuoteID           string  `json:"quote_id" binding:"required"`
	Amount            float64 `json:"amount" binding:"required"`
	Method            string  `json:"method" binding:"required"`
	DueDate           string  `json:"due_date"`
	InstallmentNumber int     `json:"installment_number"`
	InstallmentTotal  int     `json:"installment_total"`
	Notes             string  `json:"notes"`
}

func (r PaymentCreateRequest) ToCommand() (usecase.CreatePaymentCommand, error) {
	dueDate, err := parseDate(r.DueDate)
	if err != nil {
		return usecase.CreatePaymentCommand{}, err
	}
	cmd := usecase.CreatePaymentCommand{
		QuoteID:           r.QuoteID,
		Amount:            r.Amount,
		Method:            entities.PaymentMethod(strings.TrimSpace(r.Method)),
		InstallmentNumber: r.InstallmentNumber,
		InstallmentTotal:  r.InstallmentTotal,
		Notes:             r.Notes,
	}
	if dueDate != nil {
		cmd.DueDate = *dueDate
	}
	return cmd, nil
}

// PaymentUpsertRequest edits the quote's most recent installment in place
// (creating one when the quote has none). Used by the financial screen.
type PaymentUpsertRequest struct {
	Amount            float64 `json:"amount" binding:"required"`
	Method            string  `json:"method" binding:"required"`
	Status            string  `json:"status"`
	DueDate           string  `json:"due_date"`
	PaidAt            string  `json:"paid_at"`
	InstallmentNumber int     `json:"installment_number"`
	InstallmentTotal  int     `json:"installment_total"`
	Notes             string  `json:"notes"`
}

func (r PaymentUpsertRequest) ToCommand(quoteID string) (usecase.UpsertPaymentCommand, error) {
	dueDate, err := parseDate(r.DueDate)
	if err != nil {
		return usecase.UpsertPaymentCommand{}, err
	}
	var paidAt *time.Time
	if paidAt, err = parseDate(r.PaidAt); err != nil {
		return usecase.UpsertPaymentCommand{}, err
	}
	return usecase.UpsertPaymentCommand{
		QuoteID:           quoteID,
		Amount:            r.Amount,
		Method:            entities.PaymentMethod(strings.TrimSpace(r.Method)),
		Status:            entities.PaymentStatus(strings.TrimSpace(r.Status)),
		DueDate:           dueDate,
		PaidAt:            paidAt,
		InstallmentNumber: r.InstallmentNumber,
		InstallmentTotal:  r.InstallmentTotal,
		Notes:             r.Notes,
	}, nil
}
