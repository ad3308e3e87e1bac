package interfaces

import (
	"context"

	"pintura_xpto/internal/domain/entities"
)

// ClientUpdate carries the editable client fields. Nil pointers leave the
// stored value untouched.
type ClientUpdate struct {
	Name         *string
	Phone        *string
	Email        *string
	Address      *string
	Neighborhood *string
}

// IClientRepository abstracts DynamoDB persistence for Client.
//
// FindByPhone backs the find-or-create rule on quote submission and returns
// the zero value when no client matches.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	FindByPhone(ctx context.Context, phone string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
	Update(ctx context.Context, id string, upd ClientUpdate) (entities.Client, error)
	Delete(ctx context.Context, id string) error
}
