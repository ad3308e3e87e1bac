package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pintura_xpto/internal/usecase/interfaces"
)

const defaultBaseURL = "https://viacep.com.br"

// ViaCEPClient resolves Brazilian postal codes through the public ViaCEP API.
//
// ViaCEP signals an unknown CEP with HTTP 200 and {"erro": true}, which maps
// to the zero Address per the lookup contract.

type ViaCEPClient struct {
	baseURL string
	httpc   *http.Client
}

var _ interfaces.IAddressLookup = (*ViaCEPClient)(nil)

func NewViaCEPClient() *ViaCEPClient {
	return &ViaCEPClient{
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewViaCEPClientWithBaseURL exists for tests against a local server.
func NewViaCEPClientWithBaseURL(baseURL string) *ViaCEPClient {
	c := NewViaCEPClient()
	c.baseURL = baseURL
	return c
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (interfaces.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return interfaces.Address{}, err
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return interfaces.Address{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return interfaces.Address{}, fmt.Errorf("viacep returned status %d", res.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return interfaces.Address{}, err
	}
	if body.Erro {
		return interfaces.Address{}, nil
	}

	return interfaces.Address{
		CEP:          body.CEP,
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
