package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentQuote  = errors.New("invalid quote id for payment")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrQuoteNotApproved     = errors.New("quote not approved")
	ErrInvalidGatewayData   = errors.New("invalid payment gateway payload")
)

// CreatePaymentCommand creates one installment record explicitly.
type CreatePaymentCommand struct {
	QuoteID           string
	Amount            float64
	Method            entities.PaymentMethod
	DueDate           time.Time
	InstallmentNumber int
	InstallmentTotal  int
	Notes             string
}

// UpsertPaymentCommand edits the quote's most recent installment in place,
// creating one when the quote has none. Nil date pointers leave the stored
// value (or default it on create).
type UpsertPaymentCommand struct {
	QuoteID           string
	Amount            float64
	Method            entities.PaymentMethod
	Status            entities.PaymentStatus
	DueDate           *time.Time
	PaidAt            *time.Time
	InstallmentNumber int
	InstallmentTotal  int
	Notes             string
}

// IPaymentUseCase exposes installment operations.
//
// Listing operations run the overdue sweep first: any PENDENTE installment
// whose due date has passed becomes ATRASADO before rows are returned.

type IPaymentUseCase interface {
	Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error)
	UpsertLatest(ctx context.Context, cmd UpsertPaymentCommand) (entities.Payment, error)
	MarkAsPaid(ctx context.Context, id string) (entities.Payment, error)
	CollectViaGateway(ctx context.Context, id string, payload json.RawMessage) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	quotes  interfaces.IQuoteRepository
	gateway interfaces.IPaymentGateway

	now func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, quotes interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, quotes: quotes, gateway: gateway, now: func() time.Time { return time.Now().UTC() }}
}

func (u *PaymentUseCase) Create(ctx context.Context, cmd CreatePaymentCommand) (entities.Payment, error) {
	quoteID := strings.TrimSpace(cmd.QuoteID)
	if quoteID == "" {
		return entities.Payment{}, ErrInvalidPaymentQuote
	}
	if cmd.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if !entities.ValidPaymentMethod(cmd.Method) {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}

	q, err := u.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}

	number, total := cmd.InstallmentNumber, cmd.InstallmentTotal
	if number < 1 {
		number = 1
	}
	if total < 1 {
		total = 1
	}
	dueDate := cmd.DueDate
	if dueDate.IsZero() {
		dueDate = u.now()
	}

	now := u.now()
	return u.repo.Create(ctx, entities.Payment{
		ID:                uuid.NewString(),
		QuoteID:           quoteID,
		Amount:            cmd.Amount,
		Method:            cmd.Method,
		Status:            entities.PaymentStatusPendente,
		DueDate:           dueDate,
		InstallmentNumber: number,
		InstallmentTotal:  total,
		Notes:             strings.TrimSpace(cmd.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// UpsertLatest keeps the legacy financial-screen behavior: the quote's most
// recent installment is edited in place, or created when absent. Installments
// generated on approval keep their own records and are unaffected unless they
// are the latest one.
func (u *PaymentUseCase) UpsertLatest(ctx context.Context, cmd UpsertPaymentCommand) (entities.Payment, error) {
	quoteID := strings.TrimSpace(cmd.QuoteID)
	if quoteID == "" {
		return entities.Payment{}, ErrInvalidPaymentQuote
	}
	if cmd.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if !entities.ValidPaymentMethod(cmd.Method) {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}

	status := cmd.Status
	if status == "" {
		status = entities.PaymentStatusPendente
	}
	number, total := cmd.InstallmentNumber, cmd.InstallmentTotal
	if number < 1 {
		number = 1
	}
	if total < 1 {
		total = 1
	}

	existing, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return entities.Payment{}, err
	}

	now := u.now()
	if len(existing) == 0 {
		dueDate := now
		if cmd.DueDate != nil {
			dueDate = *cmd.DueDate
		}
		return u.repo.Create(ctx, entities.Payment{
			ID:                uuid.NewString(),
			QuoteID:           quoteID,
			Amount:            cmd.Amount,
			Method:            cmd.Method,
			Status:            status,
			DueDate:           dueDate,
			PaidAt:            cmd.PaidAt,
			InstallmentNumber: number,
			InstallmentTotal:  total,
			Notes:             strings.TrimSpace(cmd.Notes),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	latest := existing[0]
	for _, p := range existing[1:] {
		if p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}

	latest.Amount = cmd.Amount
	latest.Method = cmd.Method
	latest.Status = status
	latest.InstallmentNumber = number
	latest.InstallmentTotal = total
	latest.Notes = strings.TrimSpace(cmd.Notes)
	if cmd.DueDate != nil {
		latest.DueDate = *cmd.DueDate
	}
	if cmd.PaidAt != nil {
		latest.PaidAt = cmd.PaidAt
	}
	latest.UpdatedAt = now

	return u.repo.Update(ctx, latest)
}

func (u *PaymentUseCase) MarkAsPaid(ctx context.Context, id string) (entities.Payment, error) {
	p, err := u.getByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}

	now := u.now()
	p.Status = entities.PaymentStatusPago
	p.PaidAt = &now
	p.UpdatedAt = now

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}
	slog.Info("payment marked as paid", "payment_id", p.ID, "quote_id", p.QuoteID, "amount", p.Amount)
	return updated, nil
}

// CollectViaGateway submits the installment charge to the configured payment
// provider and, on success, stores the provider payload and marks the
// installment as paid. The charged amount is always the installment amount.
func (u *PaymentUseCase) CollectViaGateway(ctx context.Context, id string, payload json.RawMessage) (entities.Payment, error) {
	if u.gateway == nil {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	p, err := u.getByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}

	q, err := u.quotes.GetByID(ctx, p.QuoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}
	if !q.InProgress() && !q.IsCompleted() {
		return entities.Payment{}, ErrQuoteNotApproved
	}

	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if !json.Valid(payload) {
		return entities.Payment{}, ErrInvalidGatewayData
	}

	// The source of truth for the amount is the stored installment.
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil {
		return entities.Payment{}, ErrInvalidGatewayData
	}
	reqMap["transaction_amount"] = p.Amount
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = p.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Installment %d/%d of quote %s", p.InstallmentNumber, p.InstallmentTotal, p.QuoteID)
	}
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		slog.Error("payment gateway failed", "payment_id", p.ID, "err", err)
		return entities.Payment{}, err
	}
	slog.Info("payment collected via gateway", "payment_id", p.ID,
		"provider_payment_id", providerPaymentID, "provider_status", providerStatus)

	now := u.now()
	p.Status = entities.PaymentStatusPago
	p.PaidAt = &now
	p.ProviderPayloadRaw = providerResp
	p.UpdatedAt = now

	return u.repo.Update(ctx, p)
}

func (u *PaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidPaymentQuote
	}
	if err := u.sweepOverdue(ctx); err != nil {
		return nil, err
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

func (u *PaymentUseCase) ListByMonth(ctx context.Context, year int, month time.Month) ([]entities.Payment, error) {
	if err := u.sweepOverdue(ctx); err != nil {
		return nil, err
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return u.repo.ListByDueDateRange(ctx, from, to)
}

func (u *PaymentUseCase) sweepOverdue(ctx context.Context) error {
	n, err := u.repo.MarkOverdue(ctx, u.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("overdue sweep reclassified installments", "count", n)
	}
	return nil
}

func (u *PaymentUseCase) getByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}
