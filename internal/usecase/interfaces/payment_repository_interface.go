package interfaces

import (
	"context"
	"time"

	"pintura_xpto/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment installments.
//
// MarkOverdue is the batch reclassification behind the on-demand overdue sweep:
// every PENDENTE installment with a due date before the cutoff becomes ATRASADO.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
	ListByDueDateRange(ctx context.Context, from, to time.Time) ([]entities.Payment, error)
	Update(ctx context.Context, p entities.Payment) (entities.Payment, error)
	MarkOverdue(ctx context.Context, before time.Time) (int, error)
	DeleteByQuoteID(ctx context.Context, quoteID string) error
}
