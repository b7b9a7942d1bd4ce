package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/cocreate/internal/client/cli"
	"github.com/dmitrijs2005/cocreate/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	os.Exit(app.Execute(ctx, os.Args[1:]))

}
