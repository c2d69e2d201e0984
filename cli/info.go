package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-barry/boilerplate/core"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the effective configuration and export status",
	Flags: []cli.Flag{
		configFlag(),
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the configuration as JSON",
		},
	},
	Action: func(c *cli.Context) error {
		config, err := core.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}

		if c.Bool("json") {
			out, err := json.MarshalIndent(config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println("🌐 Port:", config.Port)
		fmt.Println("📁 Output Directory:", config.OutputDir)
		fmt.Println("🔁 Live Reload Enabled:", config.LiveReload)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println()

		exported := "no"
		if _, err := os.Stat(filepath.Join(config.OutputDir, "index.html")); err == nil {
			exported = "yes"
		}
		fmt.Println("💾 Exported Page:", exported)
		fmt.Println()

		out, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}
