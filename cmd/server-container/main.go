package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app"
	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
)

var ginLambda *ginadapter.GinLambda

// init runs once per Lambda container (cold start)
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := app.MustOpenDB(cfg)
	store := app.NewPostgresStore(db)

	app.InitStripe(cfg)

	generator, err := app.NewOpenAIGenerator(cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to init generator: %v", err)
	}

	server := app.NewServer(cfg, store, store, generator)
	router, err := server.Routes()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}

	ginLambda = ginadapter.New(router)
}

// Handler is the Lambda entrypoint for API Gateway REST/HTTP API (proxy integration)
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
