package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/tartampluch/go-date/internal/config"
	"github.com/tartampluch/go-date/internal/date"
	"github.com/tartampluch/go-date/internal/locale"
	"github.com/tartampluch/go-date/internal/stamp"
)

// Globals are the flags shared by every command.
type Globals struct {
	Debug   bool             `help:"${desc_debug}"`
	Lang    string           `help:"${desc_lang}" default:"${default_lang}" enum:"${langs}"`
	Freeze  string           `help:"${desc_freeze}" placeholder:"MODIFIER"`
	Version kong.VersionFlag `help:"${desc_version}"`
}

// CLI is the command line grammar.
type CLI struct {
	Globals

	Now   NowCmd   `cmd:"" help:"${cmd_now}"`
	At    AtCmd    `cmd:"" help:"${cmd_at}"`
	Parse ParseCmd `cmd:"" help:"${cmd_parse}"`
	Stamp StampCmd `cmd:"" help:"${cmd_stamp}"`
}

// runContext carries the dependencies bound to every command's Run method.
type runContext struct {
	out   io.Writer
	clock *date.Stack
}

type NowCmd struct {
	Format string `short:"f" help:"${desc_format}"`
}

func (c *NowCmd) Run(rc *runContext) error {
	printInstant(rc.out, rc.clock.Now(), c.Format)
	return nil
}

type AtCmd struct {
	Modifier string `arg:"" help:"${desc_modifier}"`
	Format   string `short:"f" help:"${desc_format}"`
}

func (c *AtCmd) Run(rc *runContext) error {
	t, err := rc.clock.At(c.Modifier)
	if err != nil {
		return err
	}
	printInstant(rc.out, t, c.Format)
	return nil
}

type ParseCmd struct {
	Input  string `arg:"" optional:"" help:"${desc_input}"`
	Format string `short:"f" default:"${default_pattern}" help:"${desc_format}"`
}

func (c *ParseCmd) Run(rc *runContext) error {
	p := date.Parser{Clock: rc.clock}
	t, err := p.Optional(c.Input, c.Format)
	if err != nil {
		return err
	}
	printInstant(rc.out, t, "")
	return nil
}

type StampCmd struct {
	VCard bool   `name:"vcard" help:"${desc_vcard}"`
	Name  string `short:"n" help:"${desc_name}"`
}

func (c *StampCmd) Run(rc *runContext) error {
	if c.VCard {
		return stamp.EncodeCard(rc.out, stamp.Card(rc.clock, c.Name))
	}
	return stamp.EncodeCalendar(rc.out, stamp.Calendar(rc.clock, c.Name))
}

// main is the application entry point.
// os.Exit() does not run defers, so runMain returns the exit code first.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain parses args, runs the selected command and maps the outcome to an
// exit code.
func runMain(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(config.AppName),
		kong.Description(config.AppDescription),
		kong.Writers(stdout, stderr),
		kong.Vars{
			"version":         strings.TrimSpace(fmt.Sprintf(config.MsgVersionOutput, config.AppName, config.Version, config.Commit, config.Date)),
			"desc_version":    config.FlagDescVersion,
			"desc_debug":      config.FlagDescDebug,
			"desc_lang":       config.FlagDescLang,
			"desc_freeze":     config.FlagDescFreeze,
			"desc_format":     config.FlagDescFormat,
			"desc_modifier":   config.FlagDescModifier,
			"desc_input":      config.FlagDescInput,
			"desc_vcard":      config.FlagDescVCard,
			"desc_name":       config.FlagDescName,
			"cmd_now":         config.CmdDescNow,
			"cmd_at":          config.CmdDescAt,
			"cmd_parse":       config.CmdDescParse,
			"cmd_stamp":       config.CmdDescStamp,
			"default_lang":    config.DefaultLanguage,
			"default_pattern": config.DefaultPattern,
			"langs":           strings.Join(config.SupportedLanguages, ","),
		},
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return config.ExitCodeError
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return config.ExitCodeError
	}

	setupLogging(stderr, cli.Debug)
	logStartupInfo()

	tr := locale.New(cli.Lang)
	if err := run(kctx, &cli.Globals, stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyCommand, kctx.Command(),
			config.LogKeyError, err,
		)
		fmt.Fprintln(stderr, tr.Error(err))
		return config.ExitCodeError
	}

	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run applies the --freeze override around the selected command.
func run(kctx *kong.Context, g *Globals, stdout io.Writer) error {
	clock := date.Default()

	if g.Freeze != "" {
		instant, err := date.Modify(time.Now(), g.Freeze)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrFreezeModifier, err)
		}
		clock.Freeze(instant)
		defer func() {
			if _, err := clock.Unfreeze(); err != nil {
				slog.Error(config.ErrUnfreeze,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			}
		}()
	}

	return kctx.Run(&runContext{out: stdout, clock: clock})
}

func printInstant(w io.Writer, t time.Time, pattern string) {
	if pattern == "" {
		fmt.Fprintln(w, t.Format(time.RFC3339Nano))
		return
	}
	fmt.Fprintln(w, date.Format(t, pattern))
}

// logStartupInfo logs build details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(w io.Writer, debugMode bool) {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}
