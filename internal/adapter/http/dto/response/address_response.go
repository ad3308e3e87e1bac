package response

import "pintura_xpto/internal/usecase/interfaces"

type AddressResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func FromAddress(a interfaces.Address) AddressResponse {
	return AddressResponse{
		CEP:          a.CEP,
		Street:       a.Street,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}
