package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pintura_xpto/internal/adapter/http/handlers/mocks"
	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments", h.CreatePayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments", h.CreatePayment)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, cmd usecase.CreatePaymentCommand) (entities.Payment, error) {
				if cmd.QuoteID != "q-1" || cmd.Amount != 150 || cmd.Method != entities.PaymentMethodPix {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Payment{ID: "pay-1", QuoteID: "q-1", Amount: 150, Status: entities.PaymentStatusPendente}, nil
			})

		body := `{"quote_id":"q-1","amount":150,"method":"PIX","due_date":"2024-01-10"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resBody map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resBody)
		if resBody["id"] != "pay-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments", h.CreatePayment)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Payment{}, usecase.ErrQuoteNotFound)

		body := `{"quote_id":"q-404","amount":150,"method":"PIX"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_UpsertPaymentByQuoteID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)

	r := gin.New()
	r.PUT("/v1/quotes/:id/payment", h.UpsertPaymentByQuoteID)

	uc.EXPECT().UpsertLatest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, cmd usecase.UpsertPaymentCommand) (entities.Payment, error) {
			if cmd.QuoteID != "q-1" || cmd.Status != entities.PaymentStatusPago {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return entities.Payment{ID: "pay-1", QuoteID: "q-1", Status: entities.PaymentStatusPago}, nil
		})

	body := `{"amount":450,"method":"DINHEIRO","status":"PAGO"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/quotes/q-1/payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPaymentHandler_ListPaymentsByMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("explicit year and month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments", h.ListPaymentsByMonth)

		uc.EXPECT().ListByMonth(gomock.Any(), 2024, time.February).Return([]entities.Payment{{ID: "pay-1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments?year=2024&month=2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments", h.ListPaymentsByMonth)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments?year=2024&month=13", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_MarkPaymentAsPaid(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	h := NewPaymentHandler(uc)

	r := gin.New()
	r.PATCH("/v1/payments/:id/pay", h.MarkPaymentAsPaid)

	uc.EXPECT().MarkAsPaid(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPago}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/v1/payments/pay-1/pay", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPaymentHandler_CollectPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forwards raw payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:id/collect", h.CollectPayment)

		uc.EXPECT().CollectViaGateway(gomock.Any(), "pay-1", gomock.Any()).DoAndReturn(
			func(_ interface{}, _ string, payload json.RawMessage) (entities.Payment, error) {
				var m map[string]any
				if err := json.Unmarshal(payload, &m); err != nil || m["payment_method_id"] != "pix" {
					t.Fatalf("unexpected payload: %s", payload)
				}
				return entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPago}, nil
			})

		body := `{"payment_method_id":"pix"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/collect", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("not approved conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:id/collect", h.CollectPayment)

		uc.EXPECT().CollectViaGateway(gomock.Any(), "pay-1", gomock.Any()).Return(entities.Payment{}, usecase.ErrQuoteNotApproved)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/collect", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestMapPaymentError(t *testing.T) {
	if got := mapPaymentError(usecase.ErrInvalidPaymentAmount); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapPaymentError(usecase.ErrPaymentNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapPaymentError(usecase.ErrQuoteNotApproved); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapPaymentError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
