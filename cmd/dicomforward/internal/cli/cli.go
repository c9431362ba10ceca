// Package cli wires cmd/dicomforward's Kong command tree together,
// following cmd/radx/internal/cli's shape: build info, leveled
// charmbracelet/log setup, then dispatch to the selected subcommand.
package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/go-radx/dicomforward/cmd/dicomforward/internal/build"
	"github.com/go-radx/dicomforward/cmd/dicomforward/internal/commands"
)

const (
	appName        = "dicomforward"
	appDescription = "DICOM store-and-forward engine"
)

// CLI represents the root command structure.
type CLI struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Logging verbosity"`
	JSON     bool   `name:"json" help:"Emit logs as JSON instead of the pretty formatter"`

	Forward commands.ForwardCmd `cmd:"" name:"forward" help:"Forward landed DICOM instances to configured destinations"`
}

// Run executes the dicomforward CLI with the provided build info.
func Run(version, commit, date string) error {
	build.SetBuildInfo(version, commit, date)

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version, "commit": commit, "date": date},
	)

	logger := setupLogger(cli)
	logger.Debug("dicomforward starting", "version", version, "commit", commit, "build_date", date)

	if err := ctx.Run(logger); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

func setupLogger(cli *CLI) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	switch cli.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	if cli.JSON {
		logger.SetFormatter(log.JSONFormatter)
	}

	log.SetDefault(logger)
	return logger
}

// ParseArgs is a convenience function for testing: parses args and returns
// the CLI struct and Kong context without running a subcommand.
func ParseArgs(args []string, version, commit, date string) (*CLI, *kong.Context, error) {
	build.SetBuildInfo(version, commit, date)

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.Vars{"version": version, "commit": commit, "date": date},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build kong parser: %w", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, fmt.Errorf("parse args: %w", err)
	}
	return cli, ctx, nil
}
