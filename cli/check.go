package cli

import (
	"fmt"
	"strings"

	"github.com/go-barry/boilerplate/core"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate the config and the rendered placeholder page",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		path := c.String("config")

		config, err := core.LoadConfig(path)
		if err != nil {
			fmt.Printf("❌ %s → %v\n", path, err)
			return cli.Exit("config failed to load", 1)
		}
		fmt.Printf("✅ %s\n", path)

		body, err := core.RenderPage(config.Page, core.RenderOptions{})
		if err != nil {
			fmt.Printf("❌ page → %v\n", err)
			return cli.Exit("page failed to render", 1)
		}

		summary, err := core.InspectPage(body)
		if err != nil {
			fmt.Printf("❌ page → %v\n", err)
			return cli.Exit("page failed to parse", 1)
		}

		docsTitle := strings.TrimSpace(config.Page.DocsTitle)
		if docsTitle == "" {
			docsTitle = strings.TrimSpace(config.Page.Framework) + " Documentation"
		}

		checks := []struct {
			name, got, want string
		}{
			{"heading", summary.Heading, strings.TrimSpace(config.Page.Heading)},
			{"command", summary.Command, strings.TrimSpace(config.Page.Command)},
			{"docs link", summary.DocsURL, strings.TrimSpace(config.Page.DocsURL)},
			{"docs title", summary.DocsTitle, docsTitle},
		}

		var failed bool
		for _, check := range checks {
			if check.got != check.want {
				failed = true
				fmt.Printf("❌ %s → got %q, want %q\n", check.name, check.got, check.want)
				continue
			}
			fmt.Printf("✅ %s: %s\n", check.name, check.got)
		}

		if failed {
			return cli.Exit("placeholder page failed validation", 1)
		}

		fmt.Println("✅ Placeholder page validated successfully.")
		return nil
	},
}
