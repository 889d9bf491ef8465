package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/data-respons-solutions/nvram/internal/cli/output"
	"github.com/data-respons-solutions/nvram/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			switch stateFrom(c).output {
			case output.FormatJSON:
				return output.EncodeJSON(c.App.Writer, info)
			case output.FormatYAML:
				return output.EncodeYAML(c.App.Writer, info)
			default:
				_, err := fmt.Fprintln(c.App.Writer, info.String())
				return err
			}
		},
	}
}

// ConfigCommand prints the effective configuration after file, environment
// and flag layering.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as YAML",
		Action: func(c *cli.Context) error {
			return output.EncodeYAML(c.App.Writer, stateFrom(c).cfg)
		},
	}
}
