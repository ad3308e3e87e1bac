package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pintura_xpto/internal/usecase/interfaces"
	mock_interfaces "pintura_xpto/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAddressHandler_LookupCEP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid cep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		lookup := mock_interfaces.NewMockIAddressLookup(ctrl)
		h := NewAddressHandler(lookup)

		r := gin.New()
		r.GET("/v1/address/:cep", h.LookupCEP)

		req := httptest.NewRequest(http.MethodGet, "/v1/address/123", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		lookup := mock_interfaces.NewMockIAddressLookup(ctrl)
		h := NewAddressHandler(lookup)

		r := gin.New()
		r.GET("/v1/address/:cep", h.LookupCEP)

		lookup.EXPECT().Lookup(gomock.Any(), "99999999").Return(interfaces.Address{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/address/99999999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success strips dash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		lookup := mock_interfaces.NewMockIAddressLookup(ctrl)
		h := NewAddressHandler(lookup)

		r := gin.New()
		r.GET("/v1/address/:cep", h.LookupCEP)

		lookup.EXPECT().Lookup(gomock.Any(), "01310100").Return(interfaces.Address{
			CEP:          "01310-100",
			Street:       "Avenida Paulista",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/address/01310-100", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["city"] != "São Paulo" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}
