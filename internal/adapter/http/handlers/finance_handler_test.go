package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pintura_xpto/internal/adapter/http/handlers/mocks"
	"pintura_xpto/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestFinanceHandler_FinancialReport(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid start date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFinanceUseCase(ctrl)
		h := NewFinanceHandler(uc)

		r := gin.New()
		r.GET("/v1/reports/financial", h.FinancialReport)

		req := httptest.NewRequest(http.MethodGet, "/v1/reports/financial?start_date=01-2024", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("passes filter through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFinanceUseCase(ctrl)
		h := NewFinanceHandler(uc)

		r := gin.New()
		r.GET("/v1/reports/financial", h.FinancialReport)

		uc.EXPECT().Report(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, filter entities.ReportFilter) (entities.FinancialReport, error) {
				if filter.ClientID != "c-1" {
					t.Fatalf("unexpected client filter: %+v", filter)
				}
				if filter.From == nil || !filter.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected from: %v", filter.From)
				}
				if filter.To == nil || filter.To.Day() != 31 {
					t.Fatalf("unexpected to: %v", filter.To)
				}
				return entities.FinancialReport{
					TotalRevenue: 1000,
					PaymentsByMethod: map[entities.PaymentMethod]float64{
						entities.PaymentMethodPix: 600,
					},
				}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/v1/reports/financial?start_date=2024-01-01&end_date=2024-01-31&client_id=c-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["total_revenue"] != 1000.0 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("empty result is all zeros", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFinanceUseCase(ctrl)
		h := NewFinanceHandler(uc)

		r := gin.New()
		r.GET("/v1/reports/financial", h.FinancialReport)

		uc.EXPECT().Report(gomock.Any(), gomock.Any()).Return(entities.FinancialReport{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/reports/financial", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["total_revenue"] != 0.0 || body["total_overdue"] != 0.0 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}
