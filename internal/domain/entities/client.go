package entities

import "time"

// ClientType distinguishes individual (CPF) from company (CNPJ) clients.

type ClientType string

const (
	ClientTypeFisica   ClientType = "fisica"
	ClientTypeJuridica ClientType = "juridica"
)

// Client is a customer of the painting company.
//
// Matching rule: clients are looked up by Phone when a quote is submitted and
// created on first use. Exactly one of CPF/CNPJ is populated, depending on Type.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (phone-index): phone
type Client struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Type         ClientType `json:"type"`
	CPF          string     `json:"cpf,omitempty"`
	CNPJ         string     `json:"cnpj,omitempty"`
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"address"`
	Number       string     `json:"number"`
	Complement   string     `json:"complement,omitempty"`
	Neighborhood string     `json:"neighborhood,omitempty"`
	CEP          string     `json:"cep"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
