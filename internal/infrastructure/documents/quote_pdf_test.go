package documents

import (
	"bytes"
	"context"
	"testing"
	"time"

	"pintura_xpto/internal/domain/entities"
)

func TestQuotePDFRenderer_Render(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	quote := entities.Quote{
		ID:             "7f9c24e5-1d35-4b6d-9c1a-000000000001",
		ClientID:       "7f9c24e5-1d35-4b6d-9c1a-000000000002",
		SiteAddress:    "Rua das Flores, 100 - São Paulo",
		ServiceType:    "pintura interna",
		Specifications: "Duas demãos de tinta acrílica",
		Area:           120,
		DurationDays:   10,
		PricingMode:    entities.PricingModeMetro,
		PrimaryName:    "José",
		PrimaryDailyRate: 250,
		PrimaryDays:      10,
		Helpers: []entities.Helper{
			{Name: "Carlos", DailyRate: 150, Days: 8},
		},
		Materials: []entities.Material{
			{ID: "m1", Name: "Tinta acrílica", Brand: "Suvinil", Quantity: 4, Unit: "lata", UnitPrice: 350, LineTotal: 1400},
			{ID: "m2", Name: "Lixa", Quantity: 20, UnitPrice: 2.5, LineTotal: 50},
		},
		MaterialsValue: 1450,
		MaterialsCost:  1015,
		LaborValue:     3700,
		ProfitMargin:   515,
		TotalValue:     5665,
		Status:         entities.QuoteStatusPendente,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	client := entities.Client{
		ID:           quote.ClientID,
		Name:         "Maria Silva",
		Phone:        "11999990000",
		Type:         entities.ClientTypeFisica,
		CPF:          "123.456.789-00",
		Email:        "maria@example.com",
		Address:      "Av. Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		CEP:          "01310-100",
	}

	doc, err := NewQuotePDFRenderer().Render(context.Background(), quote, client)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("Render() returned empty document")
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("Render() did not produce a PDF, got prefix %q", doc[:4])
	}
}

func TestQuotePDFRenderer_Render_MinimalQuote(t *testing.T) {
	quote := entities.Quote{
		ID:          "q-minimal",
		SiteAddress: "Rua A, 1",
		PricingMode: entities.PricingModeEmpreita,
		FixedPrice:  2000,
		LaborValue:  2000,
		TotalValue:  2000,
		Status:      entities.QuoteStatusPendente,
		CreatedAt:   time.Now(),
	}
	client := entities.Client{Name: "Cliente Teste", Phone: "11988887777", Type: entities.ClientTypeFisica}

	doc, err := NewQuotePDFRenderer().Render(context.Background(), quote, client)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("Render() returned empty document")
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{2.5, "R$ 2,50"},
		{1400, "R$ 1.400,00"},
		{1234567.89, "R$ 1.234.567,89"},
		{-50, "R$ -50,00"},
	}
	for _, tc := range cases {
		if got := formatBRL(tc.in); got != tc.want {
			t.Errorf("formatBRL(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
