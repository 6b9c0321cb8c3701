package main

import (
	"context"
	"log"
	"os"

	"github.com/akarpov/blogbox/internal/buildinfo"
	"github.com/akarpov/blogbox/internal/client/cli"
	"github.com/akarpov/blogbox/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
