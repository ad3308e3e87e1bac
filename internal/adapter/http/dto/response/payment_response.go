package response

import (
	"encoding/json"
	"time"

	"pintura_xpto/internal/domain/entities"
)

type PaymentResponse struct {
	ID      string  `json:"id"`
	QuoteID string  `json:"quote_id"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Status  string  `json:"status"`

	DueDate time.Time  `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`

	InstallmentNumber int    `json:"installment_number"`
	InstallmentTotal  int    `json:"installment_total"`
	Notes             string `json:"notes,omitempty"`

	ProviderPayload json.RawMessage `json:"provider_payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		QuoteID:           p.QuoteID,
		Amount:            p.Amount,
		Method:            string(p.Method),
		Status:            string(p.Status),
		DueDate:           p.DueDate,
		PaidAt:            p.PaidAt,
		InstallmentNumber: p.InstallmentNumber,
		InstallmentTotal:  p.InstallmentTotal,
		Notes:             p.Notes,
		ProviderPayload:   p.ProviderPayloadRaw,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
