package main

import (
	_ "pintura_xpto/docs"
	"pintura_xpto/internal/adapter/http/routes"
	"pintura_xpto/pkg/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Pintura XPTO API
// @version         1.0
// @description     Painting quote service (orçamentos, payments and financial reports) backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	logging.Setup()
	routes.Run()
}
