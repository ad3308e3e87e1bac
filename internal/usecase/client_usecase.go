package usecase

import (
	"context"
	"errors"
	"strings"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase/interfaces"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrInvalidClientID = errors.New("invalid client id")
)

// ClientWithQuotes pairs a client with every quote it owns, for the client
// listing screen.
type ClientWithQuotes struct {
	Client entities.Client
	Quotes []entities.Quote
}

// UpdateClientCommand carries the editable client fields. Nil means "leave
// unchanged".
type UpdateClientCommand struct {
	Name         *string
	Phone        *string
	Email        *string
	Address      *string
	Neighborhood *string
}

// IClientUseCase exposes client listing and maintenance operations.

type IClientUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Client, error)
	ListWithQuotes(ctx context.Context) ([]ClientWithQuotes, error)
	Update(ctx context.Context, id string, cmd UpdateClientCommand) (entities.Client, error)
	Delete(ctx context.Context, id string) error
}

type ClientUseCase struct {
	clients interfaces.IClientRepository
	quotes  interfaces.IQuoteRepository
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(clients interfaces.IClientRepository, quotes interfaces.IQuoteRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients, quotes: quotes}
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}

	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) ListWithQuotes(ctx context.Context) ([]ClientWithQuotes, error) {
	clients, err := u.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ClientWithQuotes, 0, len(clients))
	for _, c := range clients {
		quotes, err := u.quotes.List(ctx, entities.ReportFilter{ClientID: c.ID})
		if err != nil {
			return nil, err
		}
		out = append(out, ClientWithQuotes{Client: c, Quotes: quotes})
	}
	return out, nil
}

func (u *ClientUseCase) Update(ctx context.Context, id string, cmd UpdateClientCommand) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}

	updated, err := u.clients.Update(ctx, id, interfaces.ClientUpdate{
		Name:         cmd.Name,
		Phone:        cmd.Phone,
		Email:        cmd.Email,
		Address:      cmd.Address,
		Neighborhood: cmd.Neighborhood,
	})
	if err != nil {
		return entities.Client{}, err
	}
	if updated.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return updated, nil
}

func (u *ClientUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidClientID
	}

	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.ID == "" {
		return ErrClientNotFound
	}
	return u.clients.Delete(ctx, id)
}
