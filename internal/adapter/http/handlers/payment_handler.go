package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	request "pintura_xpto/internal/adapter/http/dto/request"
	response "pintura_xpto/internal/adapter/http/dto/response"
	"pintura_xpto/internal/usecase"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler handles HTTP requests for payment installments.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.PaymentCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand()
	if err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.Create(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// UpsertPaymentByQuoteID edits the quote's most recent installment in place,
// creating one when the quote has none.
func (h *PaymentHandler) UpsertPaymentByQuoteID(c *gin.Context) {
	var payload request.PaymentUpsertRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	cmd, err := payload.ToCommand(c.Param("id"))
	if err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.UpsertLatest(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// ListPaymentsByQuoteID returns the quote's installments after the overdue
// sweep has run.
func (h *PaymentHandler) ListPaymentsByQuoteID(c *gin.Context) {
	payments, err := h.usecase.ListByQuoteID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// ListPaymentsByMonth returns the installments due in ?year=&month=; both
// default to the current month.
func (h *PaymentHandler) ListPaymentsByMonth(c *gin.Context) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if v := strings.TrimSpace(c.Query("year")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
			return
		}
		year = n
	}
	if v := strings.TrimSpace(c.Query("month")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
			return
		}
		month = time.Month(n)
	}

	payments, err := h.usecase.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func (h *PaymentHandler) MarkPaymentAsPaid(c *gin.Context) {
	payment, err := h.usecase.MarkAsPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// CollectPayment charges the installment through the payment provider. The
// raw body is forwarded as the provider payload; an empty body is allowed.
func (h *PaymentHandler) CollectPayment(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.CollectViaGateway(c.Request.Context(), c.Param("id"), json.RawMessage(raw))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentQuote),
		errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentMethod),
		errors.Is(err, usecase.ErrInvalidGatewayData):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotApproved):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_APPROVED", "Quote not approved", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
