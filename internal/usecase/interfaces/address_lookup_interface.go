package interfaces

import "context"

// Address is the result of a postal-code (CEP) lookup, used to pre-fill the
// client form of a new quote.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// IAddressLookup abstracts the external postal-code service (e.g. ViaCEP).
// A CEP with no match returns the zero value without an error.
type IAddressLookup interface {
	Lookup(ctx context.Context, cep string) (Address, error)
}
