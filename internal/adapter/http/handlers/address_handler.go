package handlers

import (
	"net/http"
	"strings"

	response "pintura_xpto/internal/adapter/http/dto/response"
	"pintura_xpto/internal/usecase/interfaces"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// AddressHandler resolves postal codes through the configured lookup service.

type AddressHandler struct {
	lookup interfaces.IAddressLookup
}

func NewAddressHandler(lookup interfaces.IAddressLookup) *AddressHandler {
	return &AddressHandler{lookup: lookup}
}

// LookupCEP resolves a Brazilian postal code to an address.
func (h *AddressHandler) LookupCEP(c *gin.Context) {
	cep := strings.TrimSpace(c.Param("cep"))
	cep = strings.ReplaceAll(cep, "-", "")
	if len(cep) != 8 {
		appErr := pkg.NewDomainErrorSimple("INVALID_CEP", "CEP must have 8 digits", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	addr, err := h.lookup.Lookup(c.Request.Context(), cep)
	if err != nil {
		appErr := pkg.NewDomainError("ADDRESS_LOOKUP_FAILED", "Failed to look up address", err, http.StatusBadGateway)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if addr.CEP == "" {
		appErr := pkg.NewDomainErrorSimple("CEP_NOT_FOUND", "CEP not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromAddress(addr))
}
