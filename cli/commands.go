package cli

import (
	"github.com/go-barry/boilerplate"
	"github.com/go-barry/boilerplate/core"

	"github.com/urfave/cli/v2"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the config file",
		Value:   core.DefaultConfigFile,
	}
}

func portFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "port to listen on (default: port from config, 8080)",
	}
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start in dev mode (debug logs, optional live reload)",
	Flags: []cli.Flag{
		portFlag(),
		configFlag(),
		&cli.BoolFlag{
			Name:  "live-reload",
			Usage: "reload the browser when the config file changes",
		},
	},
	Action: func(c *cli.Context) error {
		cfg := boilerplate.RuntimeConfig{
			Env:        "dev",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
			LiveReload: c.Bool("live-reload"),
		}
		return boilerplate.Start(cfg)
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start in production mode",
	Flags: []cli.Flag{
		portFlag(),
		configFlag(),
	},
	Action: func(c *cli.Context) error {
		cfg := boilerplate.RuntimeConfig{
			Env:        "prod",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
		}
		return boilerplate.Start(cfg)
	},
}
