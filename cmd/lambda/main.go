package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/Salsabil-210/comhabits/internal/config"
	"github.com/Salsabil-210/comhabits/internal/container"
	"github.com/Salsabil-210/comhabits/internal/router"
)

// Reminders run from a separate scheduled trigger in this deployment,
// so no cron is started here.
func main() {
	app, err := container.Bootstrap(context.Background(), "")
	if err != nil {
		config.Log.WithError(err).Fatal("Failed to start")
	}

	adapter := httpadapter.NewV2(router.New(app.Router()))
	lambda.Start(adapter.ProxyWithContext)
}
