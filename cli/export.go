package cli

import (
	"fmt"

	"github.com/go-barry/boilerplate/core"
	"github.com/urfave/cli/v2"
)

var ExportCommand = &cli.Command{
	Name:  "export",
	Usage: "Render the placeholder page into the output directory for static hosting",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := core.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}

		body, err := core.RenderPage(config.Page, core.RenderOptions{})
		if err != nil {
			return fmt.Errorf("failed to render page: %w", err)
		}

		path, err := core.ExportPage(c.Context, config, body)
		if err != nil {
			return fmt.Errorf("failed to export page: %w", err)
		}

		fmt.Println("📦 Exported:", path)
		fmt.Println("✅ Done.")
		return nil
	},
}
