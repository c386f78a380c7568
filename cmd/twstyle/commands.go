package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"twstyle/config"
	"twstyle/state"
	"twstyle/table"
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:         "resolve",
			Usage:        "Resolves utility classes and prints resulting style (JSON)",
			OnUsageError: passUsageError,
			Action:       resolveClasses,
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "window `WIDTH` in pixels, required for breakpoint prefixed classes"},
			},
			ArgsUsage: "CLASSES...",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
CLASSES:
    utility class names, either as separate arguments or as a single quoted
    string: "bg-red-500 md:text-lg tracking-wide"
`,
		},
		{
			Name:         "color",
			Usage:        "Resolves color specification and prints resulting color",
			OnUsageError: passUsageError,
			Action:       resolveColor,
			ArgsUsage:    "SPEC...",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
SPEC:
    color name with optional modifiers, each term is treated as background
    class: "red-500", "black opacity-50"
`,
		},
		{
			Name:         "compile",
			Usage:        "Converts stylesheet or table into lookup table (JSON)",
			OnUsageError: passUsageError,
			Action:       compileTable,
			ArgsUsage:    "SOURCE [DESTINATION]",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
SOURCE:
    utility stylesheet (.css) or lookup table (.json, .yaml, .yml), rem
    lengths are converted using styles.root_font_size

DESTINATION:
    file to write lookup table to, if absent - STDOUT
`,
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			OnUsageError: passUsageError,
			Action:       dumpConfiguration,
			ArgsUsage:    "[DESTINATION]",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file to write configuration to, if absent - STDOUT

Actual configuration is the embedded defaults with configuration file values
applied on top, breakpoints included.
`,
		},
	}
}

// argsText joins arguments so classes may be given one per argument or
// quoted together.
func argsText(cmd *cli.Command) string {
	return strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
}

func resolveClasses(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	classes := argsText(cmd)
	if len(classes) == 0 {
		return errors.New("no classes to resolve")
	}

	styles, err := env.PrepareStyles()
	if err != nil {
		return err
	}

	var width []int
	if w := cmd.Int("width"); w > 0 {
		width = append(width, w)
	}
	s, err := styles.Resolve(classes, width...)
	if err != nil {
		return fmt.Errorf("unable to resolve '%s': %w", classes, err)
	}
	return table.WriteStyle(os.Stdout, s)
}

func resolveColor(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	spec := argsText(cmd)
	if len(spec) == 0 {
		return errors.New("no color specification")
	}

	styles, err := env.PrepareStyles()
	if err != nil {
		return err
	}

	color, ok := styles.Color(spec)
	if !ok {
		return fmt.Errorf("unable to resolve color '%s'", spec)
	}
	_, err = fmt.Fprintln(os.Stdout, color)
	return err
}

// destination opens output file, standard output when name is empty.
// Closing standard output is a no-op.
func destination(name string) (io.WriteCloser, string, error) {
	if len(name) == 0 {
		return nopCloser{os.Stdout}, "STDOUT", nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, name, fmt.Errorf("unable to create destination file '%s': %w", name, err)
	}
	return f, name, nil
}

// writeAndClose closes out after write, close failure is not lost even when
// write succeeded.
func writeAndClose(out io.WriteCloser, write func(io.Writer) error) (err error) {
	defer multierr.AppendInvoke(&err, multierr.Close(out))
	return write(out)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// extraArgs warns about arguments past the expected count.
func extraArgs(log *zap.Logger, cmd *cli.Command, expected int) {
	if cmd.Args().Len() > expected {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[expected:]))
	}
}

func compileTable(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no source to compile")
	}
	extraArgs(env.Log, cmd, 2)

	src := cmd.Args().Get(0)
	t, err := table.LoadFile(src, env.Log, env.Cfg.Styles.RootFontSize)
	if err != nil {
		return err
	}

	out, name, err := destination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	env.Log.Debug("Writing lookup table", zap.String("source", src), zap.Int("classes", len(t)), zap.String("file", name))
	return writeAndClose(out, func(w io.Writer) error {
		return table.Write(w, t)
	})
}

func dumpConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	extraArgs(env.Log, cmd, 1)

	var (
		data []byte
		err  error
	)
	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	out, name, err := destination(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	env.Log.Debug("Writing configuration", zap.Bool("default", cmd.Bool("default")), zap.String("file", name))
	return writeAndClose(out, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("unable to write configuration: %w", err)
		}
		return nil
	})
}
