package handlers

import (
	"errors"
	"net/http"

	request "pintura_xpto/internal/adapter/http/dto/request"
	response "pintura_xpto/internal/adapter/http/dto/response"
	"pintura_xpto/internal/usecase"
	"pintura_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidClientPayload = pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)

// ClientHandler handles HTTP requests for clients.

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// ListClients returns every client with its quotes attached.
func (h *ClientHandler) ListClients(c *gin.Context) {
	rows, err := h.usecase.ListWithQuotes(c.Request.Context())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClientsWithQuotes(rows))
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var payload request.ClientUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClientPayload.HTTPStatus, errInvalidClientPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToCommand())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
