package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pintura_xpto/internal/adapter/http/handlers/mocks"
	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
	mock_interfaces "pintura_xpto/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestDocumentHandler_QuoteDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		clients := mocks.NewMockIClientUseCase(ctrl)
		renderer := mock_interfaces.NewMockIQuoteDocumentRenderer(ctrl)
		h := NewDocumentHandler(quotes, clients, renderer)

		r := gin.New()
		r.GET("/v1/quotes/:id/document", h.QuoteDocument)

		quotes.EXPECT().GetByID(gomock.Any(), "q-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-404/document", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		clients := mocks.NewMockIClientUseCase(ctrl)
		renderer := mock_interfaces.NewMockIQuoteDocumentRenderer(ctrl)
		h := NewDocumentHandler(quotes, clients, renderer)

		r := gin.New()
		r.GET("/v1/quotes/:id/document", h.QuoteDocument)

		quote := entities.Quote{ID: "q-1", ClientID: "c-1", TotalValue: 450}
		client := entities.Client{ID: "c-1", Name: "Maria"}
		quotes.EXPECT().GetByID(gomock.Any(), "q-1").Return(quote, nil)
		clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(client, nil)
		renderer.EXPECT().Render(gomock.Any(), quote, client).Return([]byte("%PDF-1.7"), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1/document", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("expected pdf content type, got %s", ct)
		}
		if w.Body.Len() == 0 {
			t.Fatalf("expected non-empty body")
		}
	})
}
