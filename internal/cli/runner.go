package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/worktravel/internal/model"
	"github.com/idilsaglam/worktravel/internal/todos"
	"github.com/idilsaglam/worktravel/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done
}

// App wires the subcommands to a hydrated store.
type App struct {
	Todos  *todos.Store
	Modes  *todos.ModeStore
	Logger *log.Logger

	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Interactive starts the full-screen list for `ui`.
	Interactive func(ctx context.Context) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (a *App) Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp(a.Stdout)
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(a.Stdout)
		return 0
	case "ls":
		return a.doList(rest, opt)
	case "add":
		return a.doAdd(ctx, rest)
	case "done":
		return a.withIndex(ctx, "done", rest, 1, a.doToggle)
	case "edit":
		return a.withIndex(ctx, "edit", rest, 2, a.doEdit)
	case "rm":
		return a.doRemove(ctx, rest)
	case "mode":
		return a.doMode(ctx, rest)
	case "ui":
		if a.Interactive == nil {
			a.fail("ui: not available")
			return 1
		}
		if err := a.Interactive(ctx); err != nil {
			a.fail("ui: " + err.Error())
			return 1
		}
		return 0
	}

	a.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(a.Stderr)
	PrintHelp(a.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `worktravel - a Work/Travel to-do list

Usage:
  worktravel [flags] <subcommand> [args]

Subcommands:
  add [-work|-travel] <text...>   Add an item to the active (or given) mode
  ls [-all]                       List items of the active mode
  done <index>                    Toggle done for item at 1-based index
  edit <index> <text...>          Replace the text of an item
  rm [-y] <index>                 Remove an item after confirmation
  mode [work|travel]              Show or switch the active mode
  ui                              Interactive list

Flags:
  -config, -backend, -data-dir, -id-scheme, -log-level, -log-format, -theme, -group

Indexes refer to the list shown by `+"`worktravel ls`"+` for the active mode.
Text is limited to %d characters.

Examples:
  worktravel add "Buy milk"
  worktravel add -travel Flight
  worktravel mode travel
  worktravel done 1
  worktravel rm 2
`, model.MaxTextLen)
}

// -------------- subcommand impls ----------------

func (a *App) doList(args []string, opt Options) int {
	fs := a.flagSet("ls")
	all := fs.Bool("all", false, "show both modes")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	mode := a.Modes.Mode()
	records := a.Todos.Records()
	d, p := todos.Counts(records, mode)
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.Tabs([]string{model.Work.String(), model.Travel.String()}, int(mode)),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), d+p,
	)

	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	visible := todos.Visible(records, mode)
	if opt.Group {
		lines = append(lines, groupLines(visible)...)
	} else {
		lines = append(lines, flatLines(visible, true)...)
	}
	if *all {
		other := mode.Other()
		lines = append(lines, "", ui.C(t.Title, other.String()))
		lines = append(lines, flatLines(todos.Visible(records, other), false)...)
	}
	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `worktravel add \"Buy milk\"`"))
	ui.Panel(a.Stdout, lines)
	return 0
}

func (a *App) doAdd(ctx context.Context, args []string) int {
	fs := a.flagSet("add")
	work := fs.Bool("work", false, "add to Work")
	travel := fs.Bool("travel", false, "add to Travel")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *work && *travel {
		a.fail("add: -work and -travel are exclusive")
		return 2
	}
	if fs.NArg() == 0 {
		a.fail("usage: worktravel add [-work|-travel] <text...>")
		return 2
	}
	text, ok := a.checkText("add", strings.Join(fs.Args(), " "))
	if !ok {
		return 2
	}

	category := a.Modes.Mode()
	switch {
	case *work:
		category = model.Work
	case *travel:
		category = model.Travel
	}
	r, err := a.Todos.Add(ctx, text, category)
	if errors.Is(err, todos.ErrEmptyText) {
		a.fail("add: empty text")
		return 2
	}
	if err != nil {
		a.fail("save: " + err.Error())
		return 1
	}
	a.Logger.Debug("added", "id", r.ID, "category", r.Category)
	ui.OK(a.Stdout, "added to "+category.String())
	return 0
}

func (a *App) doToggle(ctx context.Context, r model.Record, _ []string) int {
	if _, err := a.Todos.ToggleComplete(ctx, r.ID); err != nil {
		a.fail("save: " + err.Error())
		return 1
	}
	ui.OK(a.Stdout, "toggled")
	return 0
}

func (a *App) doEdit(ctx context.Context, r model.Record, rest []string) int {
	text, ok := a.checkText("edit", strings.Join(rest, " "))
	if !ok {
		return 2
	}
	if _, err := a.Todos.UpdateText(ctx, r.ID, text); err != nil {
		a.fail("save: " + err.Error())
		return 1
	}
	ui.OK(a.Stdout, "updated")
	return 0
}

func (a *App) doRemove(ctx context.Context, args []string) int {
	fs := a.flagSet("rm")
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	return a.withIndex(ctx, "rm", fs.Args(), 1, func(ctx context.Context, r model.Record, _ []string) int {
		var confirm todos.Confirmer = todos.AlwaysConfirm
		if !*yes {
			confirm = &promptConfirmer{in: bufio.NewReader(a.Stdin), out: a.Stdout}
		}
		deleted, err := a.Todos.Delete(ctx, r.ID, confirm)
		if err != nil {
			a.fail("save: " + err.Error())
			return 1
		}
		if !deleted {
			fmt.Fprintln(a.Stdout, ui.C(ui.Current().Muted, "cancelled"))
			return 0
		}
		ui.OK(a.Stdout, "removed")
		return 0
	})
}

func (a *App) doMode(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.Stdout, a.Modes.Mode())
		return 0
	}
	if len(args) != 1 {
		a.fail("usage: worktravel mode [work|travel]")
		return 2
	}
	mode, err := model.ParseCategory(args[0])
	if err != nil {
		a.fail("mode: " + err.Error())
		return 2
	}
	if err := a.Modes.SetMode(ctx, mode); err != nil {
		a.fail("save: " + err.Error())
		return 1
	}
	ui.OK(a.Stdout, "mode: "+mode.String())
	return 0
}

// withIndex resolves args[0] against the active mode's list and hands the
// record plus the remaining args to fn. minArgs counts the index itself.
func (a *App) withIndex(ctx context.Context, name string, args []string, minArgs int,
	fn func(context.Context, model.Record, []string) int) int {
	usage := map[string]string{
		"done": "usage: worktravel done <index>",
		"edit": "usage: worktravel edit <index> <text...>",
		"rm":   "usage: worktravel rm [-y] <index>",
	}[name]
	if len(args) < minArgs || (minArgs == 1 && len(args) != 1) {
		a.fail(usage)
		return 2
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		a.fail(name + ": not a number: " + args[0])
		return 2
	}
	visible := a.Todos.Visible(a.Modes.Mode())
	if n < 1 || n > len(visible) {
		a.fail(fmt.Sprintf("index out of range: have %d, got %d", len(visible), n))
		fmt.Fprintln(a.Stderr, ui.C(ui.Current().Muted, "Hint: run `worktravel ls` to see valid indexes"))
		return 2
	}
	return fn(ctx, visible[n-1], args[1:])
}

func (a *App) checkText(name, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		a.fail(name + ": empty text")
		return "", false
	}
	if utf8.RuneCountInString(text) > model.MaxTextLen {
		a.fail(fmt.Sprintf("%s: text longer than %d characters", name, model.MaxTextLen))
		return "", false
	}
	return text, true
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	return fs
}

func (a *App) fail(msg string) { ui.Fail(a.Stderr, msg) }

// promptConfirmer asks on the terminal; anything but y/yes cancels.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, r model.Record) bool {
	fmt.Fprintf(p.out, "Delete To Do %q? Are you sure? [y/N] ", r.Text)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// -------------- rendering helpers --------------

func flatLines(records []model.Record, numbered bool) []string {
	t := ui.Current()
	if len(records) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(records))
	for i, r := range records {
		box, color := t.BoxUnchecked, t.Muted
		if r.Completed {
			box, color = t.BoxChecked, t.Success
		}
		line := fmt.Sprintf("%s %s", ui.C(color, box), r.Text)
		if numbered {
			line = ui.C("\033[2m", fmt.Sprintf("%2d.", i+1)) + " " + line
		}
		out = append(out, line)
	}
	return out
}

// groupLines splits pending from done while keeping the numbering of the
// flat list, so indexes stay valid for done/edit/rm.
func groupLines(records []model.Record) []string {
	t := ui.Current()
	numbered := flatLines(records, true)
	var pend, done []string
	for i, r := range records {
		if r.Completed {
			done = append(done, numbered[i])
		} else {
			pend = append(pend, numbered[i])
		}
	}
	section := func(title string, lines []string) []string {
		out := []string{ui.C(t.Title, title)}
		if len(lines) == 0 {
			return append(out, ui.C(t.Muted, "(none)"))
		}
		return append(out, lines...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
