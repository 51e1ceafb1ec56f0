// Package app provides CLI functionality for the admission form.
package app

import (
	"context"
	"fmt"
	"github.com/lefinal/admission/controller"
	"github.com/lefinal/admission/defaults"
	"github.com/lefinal/admission/input"
	"github.com/lefinal/admission/logging"
	"github.com/lefinal/admission/report"
	"github.com/lefinal/meh"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"io"
	"os"
	"runtime/debug"
	"time"
)

// OutputFormat is the format in which accepted submissions are reported.
type OutputFormat string

const (
	// OutputFormatText renders the summary template.
	OutputFormatText OutputFormat = "text"
	// OutputFormatYAML writes a YAML document per submission.
	OutputFormatYAML OutputFormat = "yaml"
)

// Config holds the settings that apply to all commands.
type Config struct {
	Verbose             bool
	Output              OutputFormat
	SummaryTemplateFile string
}

// Options for RunCLI.
type Options struct {
	// Logger is used instead of creating one from flags if set.
	Logger *zap.Logger
	// Input is used for interactive requests. Defaults to input.Stdin.
	Input input.Input
	// Out receives the form, reports and command output. Defaults to
	// os.Stdout.
	Out io.Writer
}

type commandOptions struct {
	Logger *zap.Logger
	Input  input.Input
	Out    io.Writer
	Config Config
}

type buildSettings struct {
	revision string
	time     time.Time
}

func parseBuildSettings() buildSettings {
	settings := buildSettings{}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			settings.revision = setting.Value
		case "vcs.time":
			settings.time, _ = time.Parse(time.RFC3339, setting.Value)
		}
	}
	return settings
}

// RunCLI runs the app as CLI with the given arguments, including the program
// name.
func RunCLI(ctx context.Context, options Options, args []string) error {
	buildSettings := parseBuildSettings()

	var config Config
	var output string
	commandOpts := commandOptions{
		Logger: zap.NewNop(),
		Input:  options.Input,
		Out:    options.Out,
	}
	if commandOpts.Input == nil {
		commandOpts.Input = &input.Stdin{}
	}
	if commandOpts.Out == nil {
		commandOpts.Out = os.Stdout
	}

	cliApp := &cli.App{
		Name:      "admission",
		Usage:     "Higher secondary admission registration form",
		Version:   "", // Don't set due to -v flag.
		Writer:    commandOpts.Out,
		ErrWriter: os.Stderr,
		ExtraInfo: func() map[string]string {
			return map[string]string{
				"version":      buildSettings.revision,
				"version from": buildSettings.time.Format(time.DateTime),
			}
		},
		Compiled: buildSettings.time,

		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Enables debug log output.",
				EnvVars:     []string{"ADMISSION_VERBOSE"},
				Destination: &config.Verbose,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "`FORMAT` for reporting accepted submissions. Valid values are 'text' and 'yaml'.",
				Value:       string(OutputFormatText),
				EnvVars:     []string{"ADMISSION_OUTPUT"},
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "summary-template",
				Usage:       "Go template `FILE` for the text summary of accepted submissions.",
				EnvVars:     []string{"ADMISSION_SUMMARY_TEMPLATE"},
				Destination: &config.SummaryTemplateFile,
			},
		},

		Commands: []*cli.Command{
			{
				Name:    "fill",
				Aliases: []string{"f"},
				Usage:   "Fills in the form interactively.",
				Action: func(c *cli.Context) error {
					return meh.NilOrWrap(commandFill(c.Context, commandOpts), "command fill", nil)
				},
			},
			{
				Name:      "check",
				Aliases:   []string{"c"},
				Usage:     "Submits the form with values from a YAML or JSON file.",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					filename, err := requireFilename(c)
					if err != nil {
						return meh.Wrap(err, "require filename", nil)
					}
					return meh.NilOrWrap(commandCheck(c.Context, commandOpts, filename), "command check", nil)
				},
			},
			{
				Name:      "replay",
				Aliases:   []string{"r"},
				Usage:     "Replays an event script from a YAML or JSON file.",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					filename, err := requireFilename(c)
					if err != nil {
						return meh.Wrap(err, "require filename", nil)
					}
					return meh.NilOrWrap(commandReplay(c.Context, commandOpts, filename), "command replay", nil)
				},
			},
			{
				Name:  "version",
				Usage: "Prints the current version.",
				Action: func(c *cli.Context) error {
					_, _ = fmt.Fprintln(c.App.Writer, buildSettings.revision)
					return nil
				},
			},
		},

		Before: func(c *cli.Context) error {
			// Set up logging.
			if options.Logger != nil {
				commandOpts.Logger = options.Logger
			} else {
				logLevel := zap.InfoLevel
				if config.Verbose {
					logLevel = zap.DebugLevel
				}
				logger, err := logging.NewLogger(logLevel)
				if err != nil {
					return meh.Wrap(err, "new logger", meh.Details{"log_level": logLevel})
				}
				logging.SetLogger(logger)
				commandOpts.Logger = logger
				logger.Debug("applied log level", zap.String("log_level", logLevel.String()))
			}
			// Check output format.
			config.Output = OutputFormat(output)
			switch config.Output {
			case OutputFormatText, OutputFormatYAML:
			default:
				return meh.NewBadInputErr(fmt.Sprintf("unsupported output format: %s", output), nil)
			}
			commandOpts.Config = config
			return nil
		},

		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return meh.NewBadInputErr(fmt.Sprintf("unsupported command: %s", c.Args().First()), nil)
			}
			// No command provided. Fill in the form as default.
			return meh.NilOrWrap(commandFill(c.Context, commandOpts), "command fill", nil)
		},
		Suggest: true,
	}

	start := time.Now()
	defer func() {
		commandOpts.Logger.Debug("shutdown", zap.Duration("total_command_execution_time", time.Since(start)))
	}()

	return cliApp.RunContext(ctx, args)
}

func requireFilename(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", meh.NewBadInputErr(fmt.Sprintf("expected exactly one file argument but got %d", c.NArg()), nil)
	}
	return c.Args().First(), nil
}

// newReporter creates the reporter for accepted submissions based on the
// configured output format.
func newReporter(options commandOptions) (controller.Reporter, error) {
	reporters := report.Multi{}
	switch options.Config.Output {
	case OutputFormatYAML:
		reporters = append(reporters, report.YAML{W: options.Out})
	default:
		summaryTemplate := defaults.SummaryTemplate
		if options.Config.SummaryTemplateFile != "" {
			raw, err := os.ReadFile(options.Config.SummaryTemplateFile)
			if err != nil {
				return nil, meh.NewBadInputErrFromErr(err, "read summary template",
					meh.Details{"filename": options.Config.SummaryTemplateFile})
			}
			summaryTemplate = string(raw)
		}
		summary, err := report.NewSummary(options.Out, summaryTemplate)
		if err != nil {
			return nil, meh.Wrap(err, "new summary reporter", meh.Details{"filename": options.Config.SummaryTemplateFile})
		}
		reporters = append(reporters, summary)
	}
	if options.Config.Verbose {
		reporters = append(reporters, report.Log{Logger: options.Logger.Named("report")})
	}
	return reporters, nil
}

func newController(options commandOptions) (*controller.Controller, error) {
	reporter, err := newReporter(options)
	if err != nil {
		return nil, meh.Wrap(err, "new reporter", nil)
	}
	return controller.New(options.Logger.Named("controller"), reporter), nil
}
