package response

import (
	"time"

	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
)

type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Type         string    `json:"type"`
	CPF          string    `json:"cpf,omitempty"`
	CNPJ         string    `json:"cnpj,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address"`
	Number       string    `json:"number"`
	Complement   string    `json:"complement,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	CEP          string    `json:"cep"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ClientWithQuotesResponse struct {
	ClientResponse
	Quotes []QuoteResponse `json:"quotes"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Type:         string(c.Type),
		CPF:          c.CPF,
		CNPJ:         c.CNPJ,
		Email:        c.Email,
		Address:      c.Address,
		Number:       c.Number,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		CEP:          c.CEP,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromClientsWithQuotes(rows []usecase.ClientWithQuotes) []ClientWithQuotesResponse {
	out := make([]ClientWithQuotesResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ClientWithQuotesResponse{
			ClientResponse: FromClient(row.Client),
			Quotes:         FromQuotes(row.Quotes),
		})
	}
	return out
}
