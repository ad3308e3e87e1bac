package handlers

import (
	"net/http"

	"pintura_xpto/internal/usecase"
	"pintura_xpto/internal/usecase/interfaces"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// DocumentHandler renders the customer-facing quote PDF.

type DocumentHandler struct {
	quotes   usecase.IQuoteUseCase
	clients  usecase.IClientUseCase
	renderer interfaces.IQuoteDocumentRenderer
}

func NewDocumentHandler(quotes usecase.IQuoteUseCase, clients usecase.IClientUseCase, renderer interfaces.IQuoteDocumentRenderer) *DocumentHandler {
	return &DocumentHandler{quotes: quotes, clients: clients, renderer: renderer}
}

// QuoteDocument streams the quote PDF built from the stored quote values.
func (h *DocumentHandler) QuoteDocument(c *gin.Context) {
	quote, err := h.quotes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), quote.ClientID)
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	doc, err := h.renderer.Render(c.Request.Context(), quote, client)
	if err != nil {
		appErr := pkg.NewDomainError("DOCUMENT_RENDER_FAILED", "Failed to render quote document", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orcamento-`+quote.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
