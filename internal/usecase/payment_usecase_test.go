package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pintura_xpto/internal/domain/entities"
	mock_interfaces "pintura_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_Create(t *testing.T) {
	t.Run("invalid quote id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), CreatePaymentCommand{QuoteID: "  ", Amount: 10, Method: entities.PaymentMethodPix})
		if !errors.Is(err, ErrInvalidPaymentQuote) {
			t.Fatalf("expected ErrInvalidPaymentQuote, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), CreatePaymentCommand{QuoteID: "q-1", Amount: 0, Method: entities.PaymentMethodPix})
		if !errors.Is(err, ErrInvalidPaymentAmount) {
			t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
		}
	})

	t.Run("invalid method", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), CreatePaymentCommand{QuoteID: "q-1", Amount: 10, Method: "CHEQUE"})
		if !errors.Is(err, ErrInvalidPaymentMethod) {
			t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
		}
	})

	t.Run("unknown quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewPaymentUseCase(nil, quotes, nil)
		quotes.EXPECT().GetByID(gomock.Any(), "q-404").Return(entities.Quote{}, nil)

		_, err := uc.Create(context.Background(), CreatePaymentCommand{QuoteID: "q-404", Amount: 10, Method: entities.PaymentMethodPix})
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("defaults installment numbering", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, quotes, nil)

		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.InstallmentNumber != 1 || p.InstallmentTotal != 1 {
					t.Fatalf("expected 1/1 numbering, got %d/%d", p.InstallmentNumber, p.InstallmentTotal)
				}
				if p.Status != entities.PaymentStatusPendente {
					t.Fatalf("expected PENDENTE, got %s", p.Status)
				}
				return p, nil
			},
		)

		if _, err := uc.Create(context.Background(), CreatePaymentCommand{QuoteID: "q-1", Amount: 10, Method: entities.PaymentMethodPix}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_UpsertLatest(t *testing.T) {
	t.Run("creates when the quote has no installment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return(nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID == "" || p.Amount != 200 || p.Method != entities.PaymentMethodDinheiro {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			},
		)

		_, err := uc.UpsertLatest(context.Background(), UpsertPaymentCommand{
			QuoteID: "q-1",
			Amount:  200,
			Method:  entities.PaymentMethodDinheiro,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("edits the most recent installment in place", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		older := entities.Payment{ID: "pay-1", QuoteID: "q-1", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		newer := entities.Payment{ID: "pay-2", QuoteID: "q-1", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), DueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
		repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.Payment{older, newer}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.ID != "pay-2" {
					t.Fatalf("expected latest installment pay-2, got %s", p.ID)
				}
				if p.Amount != 300 || p.Status != entities.PaymentStatusPago {
					t.Fatalf("unexpected update: %+v", p)
				}
				if !p.DueDate.Equal(newer.DueDate) {
					t.Fatalf("nil due date must keep the stored one, got %s", p.DueDate)
				}
				return p, nil
			},
		)

		_, err := uc.UpsertLatest(context.Background(), UpsertPaymentCommand{
			QuoteID: "q-1",
			Amount:  300,
			Method:  entities.PaymentMethodPix,
			Status:  entities.PaymentStatusPago,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil paid date keeps the stored one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		paidAt := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		existing := entities.Payment{
			ID: "pay-1", QuoteID: "q-1",
			Status: entities.PaymentStatusPago, PaidAt: &paidAt,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.Payment{existing}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.PaidAt == nil || !p.PaidAt.Equal(paidAt) {
					t.Fatalf("nil paid date must keep the stored one, got %v", p.PaidAt)
				}
				return p, nil
			},
		)

		_, err := uc.UpsertLatest(context.Background(), UpsertPaymentCommand{
			QuoteID: "q-1",
			Amount:  150,
			Method:  entities.PaymentMethodPix,
			Status:  entities.PaymentStatusPago,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_MarkAsPaid(t *testing.T) {
	t.Run("unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), "pay-404").Return(entities.Payment{}, nil)

		_, err := uc.MarkAsPaid(context.Background(), "pay-404")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("stamps paid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPendente}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Status != entities.PaymentStatusPago || p.PaidAt == nil {
					t.Fatalf("expected PAGO with paid date, got %+v", p)
				}
				return p, nil
			},
		)

		if _, err := uc.MarkAsPaid(context.Background(), "pay-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_OverdueSweep(t *testing.T) {
	t.Run("list by quote sweeps first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		uc.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }

		gomock.InOrder(
			repo.EXPECT().MarkOverdue(gomock.Any(), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Return(1, nil),
			repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.Payment{
				{ID: "pay-1", Status: entities.PaymentStatusAtrasado},
			}, nil),
		)

		rows, err := uc.ListByQuoteID(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].Status != entities.PaymentStatusAtrasado {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("list by month bounds the due-date range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		repo.EXPECT().MarkOverdue(gomock.Any(), gomock.Any()).Return(0, nil)
		repo.EXPECT().ListByDueDateRange(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, from, to time.Time) ([]entities.Payment, error) {
				if from.Year() != 2024 || from.Month() != time.February || from.Day() != 1 {
					t.Fatalf("unexpected from: %s", from)
				}
				if to.Month() != time.February || to.Day() != 29 {
					t.Fatalf("unexpected to: %s", to)
				}
				return nil, nil
			},
		)

		if _, err := uc.ListByMonth(context.Background(), 2024, time.February); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_CollectViaGateway(t *testing.T) {
	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.CollectViaGateway(context.Background(), "pay-1", json.RawMessage(`{}`))
		if err == nil || err.Error() != "payment gateway not configured" {
			t.Fatalf("expected gateway not configured error, got %v", err)
		}
	})

	t.Run("quote must be approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, quotes, gateway)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", QuoteID: "q-1"}, nil)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPendente}, nil)

		_, err := uc.CollectViaGateway(context.Background(), "pay-1", json.RawMessage(`{}`))
		if !errors.Is(err, ErrQuoteNotApproved) {
			t.Fatalf("expected ErrQuoteNotApproved, got %v", err)
		}
	})

	t.Run("collects, stores provider payload and marks paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, quotes, gateway)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", QuoteID: "q-1", Amount: 150, InstallmentNumber: 1, InstallmentTotal: 3}, nil)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAprovado}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil {
					t.Fatalf("payload must be json: %v", err)
				}
				if m["transaction_amount"] != 150.0 {
					t.Fatalf("amount must come from the installment, got %v", m["transaction_amount"])
				}
				if m["external_reference"] != "pay-1" {
					t.Fatalf("expected external_reference pay-1, got %v", m["external_reference"])
				}
				return "mp-1", "approved", json.RawMessage(`{"id":"mp-1","status":"approved"}`), nil
			},
		)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Payment{})).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.Status != entities.PaymentStatusPago || p.PaidAt == nil || len(p.ProviderPayloadRaw) == 0 {
					t.Fatalf("unexpected update: %+v", p)
				}
				return p, nil
			},
		)

		if _, err := uc.CollectViaGateway(context.Background(), "pay-1", json.RawMessage(`{"payment_method_id":"pix"}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(repo, quotes, gateway)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", QuoteID: "q-1", Amount: 150}, nil)
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusConcluido}, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("provider down"))

		_, err := uc.CollectViaGateway(context.Background(), "pay-1", json.RawMessage(`{}`))
		if err == nil || err.Error() != "provider down" {
			t.Fatalf("expected provider error, got %v", err)
		}
	})
}
