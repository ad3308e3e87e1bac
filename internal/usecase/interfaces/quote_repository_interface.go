package interfaces

import (
	"context"
	"time"

	"pintura_xpto/internal/domain/entities"
)

// QuoteDetailsUpdate carries the editable quote fields. Nil pointers leave the
// stored value untouched.
type QuoteDetailsUpdate struct {
	SiteAddress *string
	SiteDetails *string
	Notes       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// QuoteStatusUpdate moves a quote to a new lifecycle status. StartDate and
// CompletedAt are stamped only when non-nil.
type QuoteStatusUpdate struct {
	Status      entities.QuoteStatus
	StartDate   *time.Time
	CompletedAt *time.Time
}

// QuoteTotalsUpdate rewrites the computed money fields after a material change.
type QuoteTotalsUpdate struct {
	MaterialsValue float64
	MaterialsCost  float64
	TotalValue     float64
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Conventions (per the rest of the persistence layer):
//   - reads return the zero value when the id does not exist
//   - updates return the zero value when the conditional check fails
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter entities.ReportFilter) ([]entities.Quote, error)
	UpdateDetails(ctx context.Context, id string, upd QuoteDetailsUpdate) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, upd QuoteStatusUpdate) (entities.Quote, error)
	AppendMaterial(ctx context.Context, id string, m entities.Material, totals QuoteTotalsUpdate) (entities.Quote, error)
	Delete(ctx context.Context, id string) error
}
