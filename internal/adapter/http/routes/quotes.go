package routes

import (
	"pintura_xpto/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathPayments = "/payments"
	PathClients  = "/clients"
	PathReports  = "/reports"
	PathAddress  = "/address"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, paymentHandler *handlers.PaymentHandler, documentHandler *handlers.DocumentHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)

		quotes.PATCH("/:id/approve", quoteHandler.ApproveQuote)
		quotes.PATCH("/:id/reject", quoteHandler.RejectQuote)
		quotes.PATCH("/:id/prepare", quoteHandler.BeginPreparation)
		quotes.PATCH("/:id/complete", quoteHandler.CompleteQuote)

		quotes.POST("/:id/materials", quoteHandler.AddMaterial)

		quotes.GET("/:id/payments", paymentHandler.ListPaymentsByQuoteID)
		quotes.PUT("/:id/payment", paymentHandler.UpsertPaymentByQuoteID)

		quotes.GET("/:id/document", documentHandler.QuoteDocument)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.ListPaymentsByMonth)
		payments.PATCH("/:id/pay", paymentHandler.MarkPaymentAsPaid)
		payments.POST("/:id/collect", paymentHandler.CollectPayment)
	}
}

func addClientRoutes(rg *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clients := rg.Group(PathClients)
	{
		clients.GET("", clientHandler.ListClients)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}
}

func addReportRoutes(rg *gin.RouterGroup, financeHandler *handlers.FinanceHandler) {
	reports := rg.Group(PathReports)
	{
		reports.GET("/financial", financeHandler.FinancialReport)
	}
}

func addAddressRoutes(rg *gin.RouterGroup, addressHandler *handlers.AddressHandler) {
	address := rg.Group(PathAddress)
	{
		address.GET("/:cep", addressHandler.LookupCEP)
	}
}
