package interfaces

import (
	"context"

	"pintura_xpto/internal/domain/entities"
)

// IQuoteDocumentRenderer produces the downloadable quote document (PDF).
//
// It renders exactly the computed fields carried by the quote (materials
// value, labor value, profit, total) and must never recompute them.
type IQuoteDocumentRenderer interface {
	Render(ctx context.Context, q entities.Quote, c entities.Client) ([]byte, error)
}
