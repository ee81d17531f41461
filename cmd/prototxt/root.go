package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-prototxt"
	"github.com/KimNorgaard/go-prototxt/internal/config"
	"github.com/KimNorgaard/go-prototxt/internal/logging"
	"github.com/KimNorgaard/go-prototxt/internal/sample"
)

// app is the state shared by all commands of one invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	stdin  io.Reader

	configPath string
	demo       bool
	colorMode  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "prototxt",
		Short: "Format, check and inspect pipeline configuration files",
		Long: `prototxt works with protobuf-text-like configuration files: nested
messages, repeated fields and # comments. Without a file argument input
is read from stdin; --demo uses a built-in pipeline configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.FileName, "Configuration file")
	flags.BoolVar(&a.demo, "demo", false, "Use the built-in demo configuration as input")
	flags.StringVar(&a.colorMode, "color", "", "Colorize output: auto, always or never")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newFmtCmd(a),
		newCheckCmd(a),
		newGraphCmd(a),
		newComponentCmd(a),
		newComponentsCmd(a),
		newExportCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.colorMode != "" {
		cfg.Color = a.colorMode
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.stdin = cmd.InOrStdin()
	a.logger = logging.NewWriter(cmd.ErrOrStderr(), level)

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		f, ok := cmd.OutOrStdout().(*os.File)
		color.NoColor = !ok || !isatty.IsTerminal(f.Fd())
	}
	a.logger.Debug("configuration loaded", "path", a.configPath, "indent", cfg.Indent, "escapes", cfg.Escapes)
	return nil
}

// options returns the library options from the configuration.
func (a *app) options(extra ...prototxt.Option) ([]prototxt.Option, error) {
	opts, err := a.cfg.Options(a.logger)
	if err != nil {
		return nil, err
	}
	return append(opts, extra...), nil
}

// read returns the input named by args: the demo configuration, stdin for
// no argument or "-", a file otherwise.
func (a *app) read(args []string) (string, []byte, error) {
	if a.demo {
		return "demo", sample.Pipeline, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, err
	}
	return args[0], data, nil
}

// parse reads and parses the input named by args.
func (a *app) parse(args []string) (string, *prototxt.Document, error) {
	name, data, err := a.read(args)
	if err != nil {
		return "", nil, err
	}
	opts, err := a.options()
	if err != nil {
		return "", nil, err
	}
	doc, err := prototxt.Parse(data, opts...)
	if err != nil {
		return name, nil, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Debug("parsed", "input", name, "fields", doc.Len())
	return name, doc, nil
}
