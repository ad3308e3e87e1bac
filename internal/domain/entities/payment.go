package entities

import (
	"encoding/json"
	"time"
)

// PaymentMethod is how an installment is (or will be) paid.

type PaymentMethod string

const (
	PaymentMethodPix           PaymentMethod = "PIX"
	PaymentMethodCartaoDebito  PaymentMethod = "CARTAO_DEBITO"
	PaymentMethodCartaoCredito PaymentMethod = "CARTAO_CREDITO"
	PaymentMethodDinheiro      PaymentMethod = "DINHEIRO"
	PaymentMethodTransferencia PaymentMethod = "TRANSFERENCIA"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCartaoDebito, PaymentMethodCartaoCredito,
		PaymentMethodDinheiro, PaymentMethodTransferencia:
		return true
	}
	return false
}

// PaymentStatus tracks an installment. PENDENTE installments past their due
// date are reclassified to ATRASADO by the on-demand overdue sweep.

type PaymentStatus string

const (
	PaymentStatusPendente  PaymentStatus = "PENDENTE"
	PaymentStatusPago      PaymentStatus = "PAGO"
	PaymentStatusAtrasado  PaymentStatus = "ATRASADO"
	PaymentStatusCancelado PaymentStatus = "CANCELADO"
)

// Payment is one installment of a quote's total.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//
// Mercado Pago payload:
//   - ProviderPayloadRaw keeps the provider response (JSON) when the
//     installment was collected through the gateway, for traceability/audit.
type Payment struct {
	ID      string        `json:"id"`
	QuoteID string        `json:"quote_id"`
	Amount  float64       `json:"amount"`
	Method  PaymentMethod `json:"method"`
	Status  PaymentStatus `json:"status"`

	DueDate time.Time  `json:"due_date"`
	PaidAt  *time.Time `json:"paid_at,omitempty"`

	InstallmentNumber int    `json:"installment_number"`
	InstallmentTotal  int    `json:"installment_total"`
	Notes             string `json:"notes,omitempty"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overdue reports whether the installment should be reclassified as ATRASADO
// at the given reference time.
func (p Payment) Overdue(now time.Time) bool {
	return p.Status == PaymentStatusPendente && p.DueDate.Before(now)
}
