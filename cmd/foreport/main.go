// Command foreport merges Cypress/Mocha JSON reports into summaries, an HTML
// page and a Markdown bug report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/dkoosis/foreport/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	app := newApp(fs, stdout, stderr)
	err := app.RunContext(ctx, append([]string{"foreport"}, args...))
	if err == nil {
		return 0
	}

	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		if msg := exit.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exit.ExitCode()
	}
	// Anything urfave returns without an exit code is a usage error.
	fmt.Fprintf(stderr, "foreport: %v\n", err)
	return 2
}

func newApp(fs afero.Fs, stdout, stderr io.Writer) *cli.App {
	a := &action{fs: fs, stdout: stdout, stderr: stderr}
	return &cli.App{
		Name:    "foreport",
		Usage:   "Aggregate Mocha/Cypress JSON reports and synthesize bug reports",
		Version: version.Version,
		Description: `foreport reads every *.json report in the reports directory and writes
merged results, summaries and a bug report to the output directory.

Examples:
  foreport combine
  foreport bugs -r cypress/reports -o bug-reports
  foreport html --title "Sprint 5"`,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		ExitErrHandler:  func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				return cli.Exit(fmt.Sprintf("foreport: unknown command %q", c.Args().First()), 2)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			{
				Name:   "combine",
				Usage:  "Merge all reports and write every output",
				Flags:  commandFlags(),
				Action: a.combine,
			},
			{
				Name:   "generate",
				Usage:  "Write JSON, text and CSV summaries",
				Flags:  commandFlags(),
				Action: a.generate,
			},
			{
				Name:    "bugs",
				Aliases: []string{"extract"},
				Usage:   "Write the Markdown bug report and the failure dump",
				Flags:   commandFlags(),
				Action:  a.bugs,
			},
			{
				Name:   "html",
				Usage:  "Write the static HTML page",
				Flags:  commandFlags(),
				Action: a.html,
			},
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(*cli.Context) error {
					fmt.Fprintln(stdout, version.String())
					return nil
				},
			},
		},
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
