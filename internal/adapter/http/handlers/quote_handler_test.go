package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pintura_xpto/internal/adapter/http/handlers/mocks"
	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_CreateQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		body := `{"client":{"name":"Maria","phone":"11999998888"},"site_address":"Rua A","pricing_mode":"metro","start_date":"10/01/2024"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation error mapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(entities.Quote{}, usecase.ErrInvalidPricingMode)

		body := `{"client":{"name":"Maria","phone":"11999998888"},"site_address":"Rua A","pricing_mode":"hora"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body))
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
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes", h.CreateQuote)

		uc.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, cmd usecase.CreateQuoteCommand) (entities.Quote, error) {
				if cmd.Client.Phone != "11999998888" || cmd.PricingMode != entities.PricingModeMetro {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return entities.Quote{ID: "q-1", Status: entities.QuoteStatusPendente, TotalValue: 450}, nil
			})

		body := `{"client":{"name":"Maria","phone":"11999998888"},"site_address":"Rua A","pricing_mode":"metro",` +
			`"materials":[{"name":"Tinta","quantity":2,"unit_price":50}],"profit_margin":50}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resBody map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resBody)
		if resBody["id"] != "q-1" || resBody["total_value"] != 450.0 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_Lifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve with schedule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/approve", h.ApproveQuote)

		uc.EXPECT().Approve(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ interface{}, _ string, schedule *usecase.PaymentScheduleCommand) (entities.Quote, error) {
				if schedule == nil || schedule.Installments != 3 || schedule.Method != entities.PaymentMethodPix {
					t.Fatalf("unexpected schedule: %+v", schedule)
				}
				return entities.Quote{ID: "q-1", Status: entities.QuoteStatusAprovado}, nil
			})

		body := `{"method":"PIX","first_due_date":"2024-01-10","installments":3}`
		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/approve", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("approve without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/approve", h.ApproveQuote)

		uc.EXPECT().Approve(gomock.Any(), "q-1", nil).Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAprovado}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("complete on completed quote conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/complete", h.CompleteQuote)

		uc.EXPECT().Complete(gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrQuoteCompleted)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/complete", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("reject invalid transition conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotes/:id/reject", h.RejectQuote)

		uc.EXPECT().Reject(gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-1/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:id", h.GetQuote)

		uc.EXPECT().GetByID(gomock.Any(), "q-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("delete success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.DELETE("/v1/quotes/:id", h.DeleteQuote)

		uc.EXPECT().Delete(gomock.Any(), "q-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_AddMaterial(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/materials", h.AddMaterial)

		uc.EXPECT().AddMaterial(gomock.Any(), "q-1", usecase.MaterialCommand{Name: "Rolo", Quantity: 4, UnitPrice: 20}).
			Return(entities.Quote{ID: "q-1", MaterialsValue: 180, TotalValue: 530}, nil)

		body := `{"name":"Rolo","quantity":4,"unit_price":20}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/materials", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("completed quote conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.POST("/v1/quotes/:id/materials", h.AddMaterial)

		uc.EXPECT().AddMaterial(gomock.Any(), "q-1", gomock.Any()).Return(entities.Quote{}, usecase.ErrQuoteCompleted)

		body := `{"name":"Rolo","quantity":4,"unit_price":20}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/q-1/materials", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestMapQuoteError(t *testing.T) {
	if got := mapQuoteError(usecase.ErrInvalidQuoteID); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapQuoteError(usecase.ErrQuoteNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapQuoteError(usecase.ErrQuoteCompleted); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(usecase.ErrInvalidTransition); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapQuoteError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
