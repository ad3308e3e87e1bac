package handlers

import (
	"context"
	"errors"
	"net/http"

	request "pintura_xpto/internal/adapter/http/dto/request"
	response "pintura_xpto/internal/adapter/http/dto/response"
	"pintura_xpto/internal/domain/entities"
	"pintura_xpto/internal/usecase"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quotes and their lifecycle.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote submits a new quote. The embedded client block is matched by
// phone and created on first use.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.QuoteCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.QuoteUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Update(c.Request.Context(), c.Param("id"), cmd)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ApproveQuote moves a quote to APROVADO. The optional body carries the
// installment schedule materialized on approval.
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	var payload request.QuoteApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
			return
		}
	}

	schedule, err := payload.ToCommand()
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), schedule)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	h.patchStatus(c, h.usecase.Reject)
}

func (h *QuoteHandler) BeginPreparation(c *gin.Context) {
	h.patchStatus(c, h.usecase.BeginPreparation)
}

func (h *QuoteHandler) CompleteQuote(c *gin.Context) {
	h.patchStatus(c, h.usecase.Complete)
}

func (h *QuoteHandler) patchStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Quote, error),
) {
	quote, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// AddMaterial appends one material line and recomputes the quote totals.
func (h *QuoteHandler) AddMaterial(c *gin.Context) {
	var payload request.MaterialRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.AddMaterial(c.Request.Context(), c.Param("id"), payload.ToCommand())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID),
		errors.Is(err, usecase.ErrMissingClientName),
		errors.Is(err, usecase.ErrMissingClientPhone),
		errors.Is(err, usecase.ErrInvalidClientType),
		errors.Is(err, usecase.ErrInvalidClientDocument),
		errors.Is(err, usecase.ErrMissingSiteAddress),
		errors.Is(err, usecase.ErrInvalidPricingMode),
		errors.Is(err, usecase.ErrInvalidFixedPrice),
		errors.Is(err, usecase.ErrMissingMaterialName),
		errors.Is(err, usecase.ErrInvalidMaterialQuantity),
		errors.Is(err, usecase.ErrInvalidMaterialPrice),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidInstallmentCount),
		errors.Is(err, usecase.ErrInvalidFirstDueDate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteCompleted):
		return pkg.NewDomainErrorSimple("QUOTE_COMPLETED", "Cannot modify a completed job", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Invalid status transition", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
