package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/entrycounter/internal/server"
	"github.com/dmitrijs2005/entrycounter/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := server.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
