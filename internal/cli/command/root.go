package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/data-respons-solutions/nvram/internal/cli/config"
	"github.com/data-respons-solutions/nvram/internal/cli/output"
	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/infra/buildinfo"
	"github.com/data-respons-solutions/nvram/internal/telemetry/logger"
	"github.com/data-respons-solutions/nvram/internal/telemetry/metric"
)

const stateKey = "state"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "nvram",
		Usage:   "read and write persistent key/value settings",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ListCommand(),
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			WatchCommand(),
			VersionCommand(),
			ConfigCommand(),
		},
		Before: before,
		After:  after,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{config.EnvConfigFile},
		},
		&cli.StringFlag{
			Name:    "interface",
			Aliases: []string{"i"},
			Usage:   "storage interface: file, mtd, efi, badger",
		},
		&cli.BoolFlag{
			Name:  "sys",
			Usage: "operate on the system section instead of the user section",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, table, json, yaml",
			Value:   string(output.FormatText),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  "metrics-textfile",
			Usage: "write metrics in node_exporter textfile format to `FILE`",
		},
	}
}

// state is resolved once per invocation by before.
type state struct {
	cfg     *config.Config
	role    domain.Role
	output  output.Format
	logger  *slog.Logger
	metrics *metric.Registry
}

func before(c *cli.Context) error {
	overrides := map[string]any{
		"interface":        c.String("interface"),
		"metrics.textfile": c.String("metrics-textfile"),
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}

	role := domain.RoleUser
	if c.Bool("sys") {
		role = domain.RoleSystem
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[stateKey] = &state{
		cfg:     cfg,
		role:    role,
		output:  format,
		logger:  log.With("role", role.String()),
		metrics: metric.NewRegistry(),
	}
	return nil
}

func after(c *cli.Context) error {
	st, ok := c.App.Metadata[stateKey].(*state)
	if !ok {
		return nil
	}
	if err := st.metrics.WriteTextfile(st.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func stateFrom(c *cli.Context) *state {
	st, _ := c.App.Metadata[stateKey].(*state)
	return st
}

func (st *state) formatter() output.Formatter {
	return output.NewFormatter(st.output)
}

func usageError(c *cli.Context, format string, args ...any) error {
	return fmt.Errorf("%s: %s (usage: %s %s)", c.Command.Name, fmt.Sprintf(format, args...),
		c.Command.Name, strings.TrimSpace(c.Command.ArgsUsage))
}
