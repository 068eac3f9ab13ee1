package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sosens/sosens/internal/buildinfo"
	"github.com/sosens/sosens/internal/client/cli"
	"github.com/sosens/sosens/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
