package main

import (
	"log"
	"os"

	bpcli "github.com/go-barry/boilerplate/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "boilerplate",
		Usage: "Placeholder entry point until the real framework is integrated",
		Commands: []*clilib.Command{
			bpcli.InitCommand,
			bpcli.DevCommand,
			bpcli.ProdCommand,
			bpcli.CheckCommand,
			bpcli.InfoCommand,
			bpcli.ExportCommand,
			bpcli.CleanCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
