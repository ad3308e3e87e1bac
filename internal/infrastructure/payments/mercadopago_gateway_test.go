package payments

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "1")

	g, err := NewMercadoPagoGateway("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := json.RawMessage(`{"transaction_amount": 500, "payment_method_id": "pix"}`)
	id, status, resp, err := g.CreatePayment(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a provider payment id")
	}
	if status != "approved" {
		t.Fatalf("expected status approved, got %q", status)
	}

	var body map[string]any
	if err := json.Unmarshal(resp, &body); err != nil {
		t.Fatalf("provider response is not valid json: %v", err)
	}
	if body["status_detail"] != "accredited" {
		t.Fatalf("unexpected status_detail: %v", body["status_detail"])
	}
	if body["transaction_amount"] != float64(500) {
		t.Fatalf("request payload not echoed back: %v", body["transaction_amount"])
	}
}

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	if _, err := NewMercadoPagoGateway(""); err != ErrMissingMercadoPagoAccessToken {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}
