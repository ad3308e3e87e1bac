package request

import (
	"errors"
	"testing"
	"time"

	"pintura_xpto/internal/domain/entities"
)

func TestQuoteCreateRequest_ToCommand(t *testing.T) {
	r := QuoteCreateRequest{
		Client: ClientRequest{
			Name:  "Maria",
			Phone: "11999998888",
			Type:  "juridica",
			CNPJ:  "12345678000199",
		},
		SiteAddress: "Rua das Flores, 10",
		PricingMode: "metro",
		PrimaryName: "Carlos",
		Helpers: []HelperRequest{
			{Name: "Pedro", DailyRate: 100, Days: 3},
		},
		Materials: []MaterialRequest{
			{Name: "Tinta", Brand: "Suvinil", Quantity: 2, Unit: "lata", UnitPrice: 50},
		},
		ProfitMargin: 80,
		StartDate:    "2024-03-01",
	}

	cmd, err := r.ToCommand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Client.Type != entities.ClientTypeJuridica || cmd.Client.CNPJ != "12345678000199" {
		t.Fatalf("unexpected client block: %+v", cmd.Client)
	}
	if cmd.PricingMode != entities.PricingModeMetro {
		t.Fatalf("unexpected pricing mode: %s", cmd.PricingMode)
	}
	if len(cmd.Helpers) != 1 || cmd.Helpers[0].DailyRate != 100 {
		t.Fatalf("unexpected helpers: %+v", cmd.Helpers)
	}
	if len(cmd.Materials) != 1 || cmd.Materials[0].UnitPrice != 50 {
		t.Fatalf("unexpected materials: %+v", cmd.Materials)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if cmd.StartDate == nil || !cmd.StartDate.Equal(want) {
		t.Fatalf("unexpected start date: %v", cmd.StartDate)
	}
}

func TestQuoteCreateRequest_ToCommand_DefaultsClientType(t *testing.T) {
	r := QuoteCreateRequest{
		Client:      ClientRequest{Name: "Maria", Phone: "11999998888"},
		SiteAddress: "Rua A",
		PricingMode: "empreita",
	}
	cmd, err := r.ToCommand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Client.Type != entities.ClientTypeFisica {
		t.Fatalf("expected default fisica, got %s", cmd.Client.Type)
	}
}

func TestQuoteCreateRequest_ToCommand_InvalidDate(t *testing.T) {
	r := QuoteCreateRequest{
		Client:      ClientRequest{Name: "Maria", Phone: "11999998888"},
		SiteAddress: "Rua A",
		PricingMode: "metro",
		StartDate:   "01/03/2024",
	}
	if _, err := r.ToCommand(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestQuoteApproveRequest_ToCommand(t *testing.T) {
	t.Run("empty body means no schedule", func(t *testing.T) {
		cmd, err := QuoteApproveRequest{}.ToCommand()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd != nil {
			t.Fatalf("expected nil schedule, got %+v", cmd)
		}
	})

	t.Run("full schedule", func(t *testing.T) {
		cmd, err := QuoteApproveRequest{Method: "PIX", FirstDueDate: "2024-01-10", Installments: 3}.ToCommand()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd == nil || cmd.Method != entities.PaymentMethodPix || cmd.Installments != 3 {
			t.Fatalf("unexpected schedule: %+v", cmd)
		}
		if cmd.FirstDueDate != time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) {
			t.Fatalf("unexpected first due date: %v", cmd.FirstDueDate)
		}
	})

	t.Run("rfc3339 date accepted", func(t *testing.T) {
		cmd, err := QuoteApproveRequest{Method: "PIX", FirstDueDate: "2024-01-10T12:00:00Z", Installments: 1}.ToCommand()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.FirstDueDate.Hour() != 12 {
			t.Fatalf("unexpected first due date: %v", cmd.FirstDueDate)
		}
	})
}
