package routes

import (
	"log/slog"
	"os"
	"strconv"

	_ "pintura_xpto/docs" // generated swagger docs
	"pintura_xpto/internal/adapter/http/handlers"
	"pintura_xpto/internal/adapter/persistence/repository"
	"pintura_xpto/internal/infrastructure/address"
	"pintura_xpto/internal/infrastructure/database"
	"pintura_xpto/internal/infrastructure/documents"
	"pintura_xpto/internal/infrastructure/payments"
	"pintura_xpto/internal/usecase"
	"pintura_xpto/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		slog.Error("failed to start the application", "err", err)
		os.Exit(1)
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	clientRepo := repository.NewClientDynamoRepository(ddb)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		slog.Warn("mercado pago gateway not configured", "err", err)
	} else {
		paymentGateway = mpGateway
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, clientRepo, paymentRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, quoteRepo, paymentGateway)
	clientUseCase := usecase.NewClientUseCase(clientRepo, quoteRepo)
	financeUseCase := usecase.NewFinanceUseCase(quoteRepo, paymentRepo)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)
	financeHandler := handlers.NewFinanceHandler(financeUseCase)
	documentHandler := handlers.NewDocumentHandler(quoteUseCase, clientUseCase, documents.NewQuotePDFRenderer())
	addressHandler := handlers.NewAddressHandler(address.NewViaCEPClient())

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler, paymentHandler, documentHandler)
	addPaymentRoutes(v1, paymentHandler)
	addClientRoutes(v1, clientHandler)
	addReportRoutes(v1, financeHandler)
	addAddressRoutes(v1, addressHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("recovered from panic", "recovered", recovered)
		c.AbortWithStatus(500)
	}))
}
