// Package main implements the showtimes search Lambda function.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/chronoworld/showtimes/internal/app"
	"github.com/chronoworld/showtimes/internal/config"
	"github.com/chronoworld/showtimes/internal/log"
)

func main() {
	cfg, err := config.Load(os.Getenv("SHOWTIMES_CONFIG"))
	if err != nil {
		log.Fatal("failed to load configuration: " + err.Error())
	}
	log.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	// Built once per cold start and reused by every invocation.
	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to initialize: " + err.Error())
	}

	lambda.Start(a.Handler().Handle)
}
