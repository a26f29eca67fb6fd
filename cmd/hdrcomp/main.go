// Package main is the entry point for the hdrcomp CLI application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NikitaCOEUR/hdrcomp/internal/auth"
	hdrcli "github.com/NikitaCOEUR/hdrcomp/internal/cli"
	"github.com/NikitaCOEUR/hdrcomp/internal/trace"
	"github.com/NikitaCOEUR/hdrcomp/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	authPath, err := auth.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stopTrace := trace.Init()
	err = newApp(authPath).Run(context.Background(), os.Args)
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// firstArg returns the first positional argument, or ""
func firstArg(cmd *cli.Command) string {
	if cmd.Args().Len() > 0 {
		return cmd.Args().Get(0)
	}
	return ""
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory of the file being edited (defaults to the current directory)",
	}
}

func platformFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "platform",
		Usage:   "Override the configured platform (auto, linux, darwin, windows, freebsd, unix)",
		Sources: cli.EnvVars("HDRCOMP_PLATFORM"),
	}
}

func candidateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "display",
			Usage:    "Candidate display text, e.g. '<sys/types.h'",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "source-dir",
			Usage:    "Search directory the candidate was found in",
			Required: true,
		},
	}
}

//nolint:gocyclo // Command table is long but flat
func newApp(authPath string) *cli.Command {
	return &cli.Command{
		Name:                  "hdrcomp",
		Usage:                 "Completion of #include and #import header paths",
		Version:               version.String(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("HDRCOMP_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "auth-path",
				Value:   authPath,
				Usage:   "File storing authorized directories",
				Sources: cli.EnvVars("HDRCOMP_AUTH_PATH"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print header candidates for the include directive on a line",
				ArgsUsage: "[line]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "Source line being edited (or pass it as argument)",
					},
					&cli.IntFlag{
						Name:  "column",
						Value: -1,
						Usage: "Cursor column in bytes (negative for end of line)",
					},
					&cli.StringFlag{
						Name:    "mode",
						Value:   "c++",
						Usage:   "Editing mode: c, c++, objc, objc++ or cuda",
						Sources: cli.EnvVars("HDRCOMP_MODE"),
					},
					platformFlag(),
					dirFlag(),
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					line := cmd.String("line")
					if line == "" {
						line = firstArg(cmd)
					}
					return hdrcli.Complete(hdrcli.CompleteParams{
						AuthPath: cmd.String("auth-path"),
						LogLevel: cmd.String("log-level"),
						Dir:      cmd.String("dir"),
						Line:     line,
						Column:   cmd.Int("column"),
						Mode:     cmd.String("mode"),
						Platform: cmd.String("platform"),
					})
				},
			},
			{
				Name:      "parse",
				Usage:     "Show how the include directive on a line is understood",
				ArgsUsage: "[line]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "Source line being edited (or pass it as argument)",
					},
					&cli.IntFlag{
						Name:  "column",
						Value: -1,
						Usage: "Cursor column in bytes (negative for end of line)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					line := cmd.String("line")
					if line == "" {
						line = firstArg(cmd)
					}
					return hdrcli.Parse(hdrcli.ParseParams{
						Line:   line,
						Column: cmd.Int("column"),
					})
				},
			},
			{
				Name:  "location",
				Usage: "Print the file a candidate refers to",
				Flags: candidateFlags(),
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Location(hdrcli.LocationParams{
						Display:   cmd.String("display"),
						SourceDir: cmd.String("source-dir"),
					})
				},
			},
			{
				Name:  "post",
				Usage: "Print the action to take after inserting a candidate",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "after",
						Usage: "Text following the cursor after insertion",
					},
				}, candidateFlags()...),
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Post(hdrcli.PostParams{
						Display:   cmd.String("display"),
						SourceDir: cmd.String("source-dir"),
						After:     cmd.String("after"),
					})
				},
			},
			{
				Name:  "paths",
				Usage: "Print the search directories in search order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Value: hdrcli.PathsAll,
						Usage: "Which paths to print: user, system or all",
					},
					&cli.BoolFlag{
						Name:  "defaults",
						Usage: "Print the built-in system paths of the platform",
					},
					platformFlag(),
					dirFlag(),
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Paths(hdrcli.PathsParams{
						AuthPath: cmd.String("auth-path"),
						LogLevel: cmd.String("log-level"),
						Dir:      cmd.String("dir"),
						Kind:     cmd.String("kind"),
						Platform: cmd.String("platform"),
						Defaults: cmd.Bool("defaults"),
					})
				},
			},
			{
				Name:      "status",
				Usage:     "Show the configuration and search paths for a directory",
				ArgsUsage: "[dir]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Status(hdrcli.StatusParams{
						AuthPath: cmd.String("auth-path"),
						LogLevel: cmd.String("log-level"),
						Dir:      firstArg(cmd),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in current folder or global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Create global config file instead of local",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Init(cmd.Bool("global"))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate an hdrcomp configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Validate(firstArg(cmd))
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for hdrcomp configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" {
						outputPath = firstArg(cmd)
					}
					return hdrcli.Schema(outputPath)
				},
			},
			{
				Name:      "allow",
				Usage:     "Authorize a directory and approve the shell paths of its config",
				ArgsUsage: "[dir]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Allow(hdrcli.AllowParams{
						AuthPath:    cmd.String("auth-path"),
						PathToAllow: firstArg(cmd),
						LogLevel:    cmd.String("log-level"),
					})
				},
			},
			{
				Name:      "revoke",
				Usage:     "Revoke authorization for a directory",
				ArgsUsage: "[dir]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.Revoke(hdrcli.RevokeParams{
						AuthPath:     cmd.String("auth-path"),
						PathToRevoke: firstArg(cmd),
					})
				},
			},
			{
				Name:  "list",
				Usage: "List all authorized directories",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return hdrcli.List(cmd.String("auth-path"))
				},
			},
		},
	}
}
