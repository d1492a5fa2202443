// Command voicefx applies voice effects to recordings.
//
// Usage:
//
//	voicefx list
//	voicefx render [flags] <input.wav>
//	voicefx graph [flags]
//	voicefx preview [flags] <input.wav>
//
// Examples:
//
//	voicefx render --effect radio --intensity 80 take.wav
//	voicefx graph --effect phaser
//	voicefx preview --effect echo take.wav
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/internal/cli"
)

var version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string           `help:"Log level (trace, debug, info, warn, error)." default:"info" env:"VOICEFX_LOG_LEVEL" placeholder:"level"`
	LogFormat string           `help:"Log format." enum:"text,json" default:"text" env:"VOICEFX_LOG_FORMAT"`
	Config    kong.ConfigFlag  `short:"c" help:"JSON configuration file." placeholder:"path"`
	Version   kong.VersionFlag `short:"v" help:"Show version information."`

	log *logrus.Logger
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	List    ListCmd    `cmd:"" help:"List the available effects."`
	Render  RenderCmd  `cmd:"" help:"Apply an effect to a WAV recording."`
	Graph   GraphCmd   `cmd:"" help:"Print the processing graph of an effect as JSON."`
	Preview PreviewCmd `cmd:"" help:"Monitor a recording live through an effect."`
}

func main() {
	var c CLI
	ctx := kong.Parse(&c,
		kong.Name("voicefx"),
		kong.Description("Voice effects engine"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/voicefx.json", ".voicefx.json"),
		kong.Vars{"version": version},
		kong.Help(cli.StyledHelpPrinter("Voice effects engine")),
	)

	logger, err := newLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
	c.log = logger

	if err := ctx.Run(&c.Globals); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newLogger(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
