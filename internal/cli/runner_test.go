package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/worktravel/internal/model"
	"github.com/idilsaglam/worktravel/internal/store"
	"github.com/idilsaglam/worktravel/internal/todos"
	"github.com/idilsaglam/worktravel/internal/ui"
)

type harness struct {
	app     *App
	backend *store.Memory
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	ui.SetColorForcing(false, true)
	t.Cleanup(func() { ui.SetColorForcing(false, false) })

	logger := log.New(io.Discard)
	b := store.NewMemory()
	s := todos.New(b, todos.WithLogger(logger))
	m := todos.NewModeStore(b, todos.WithLogger(logger))
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	_, err = m.LoadMode(context.Background())
	require.NoError(t, err)

	h := &harness{backend: b, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.app = &App{
		Todos: s, Modes: m, Logger: logger,
		Stdin: strings.NewReader(stdin), Stdout: h.stdout, Stderr: h.stderr,
	}
	return h
}

func (h *harness) run(args ...string) int {
	return h.app.Run(context.Background(), args, Options{})
}

func visibleTexts(h *harness, mode model.Category) []string {
	var out []string
	for _, r := range h.app.Todos.Visible(mode) {
		out = append(out, r.Text)
	}
	return out
}

func TestRunUsage(t *testing.T) {
	h := newHarness(t, "")
	assert.Equal(t, 2, h.run())
	assert.Equal(t, 0, h.run("help"))
	assert.Equal(t, 2, h.run("frobnicate"))
	assert.Contains(t, h.stderr.String(), "unknown subcommand: frobnicate")
}

func TestAddUsesActiveMode(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("add", "Buy", "milk"))
	require.Equal(t, 0, h.run("mode", "travel"))
	require.Equal(t, 0, h.run("add", "Flight"))
	require.Equal(t, 0, h.run("add", "-work", "Standup"))

	assert.Equal(t, []string{"Buy milk", "Standup"}, visibleTexts(h, model.Work))
	assert.Equal(t, []string{"Flight"}, visibleTexts(h, model.Travel))
}

func TestAddRejectsBadText(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no text", []string{"add"}, "usage"},
		{"blank", []string{"add", "  "}, "empty text"},
		{"too long", []string{"add", "sixteen chars!!!"}, "longer than 15"},
		{"both modes", []string{"add", "-work", "-travel", "x"}, "exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			assert.Equal(t, 2, h.run(tt.args...))
			assert.Contains(t, h.stderr.String(), tt.want)
			assert.Equal(t, 0, h.app.Todos.Len())
		})
	}
}

func TestDoneAndEdit(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("add", "one"))
	require.Equal(t, 0, h.run("add", "two"))

	require.Equal(t, 0, h.run("done", "2"))
	rs := h.app.Todos.Visible(model.Work)
	assert.False(t, rs[0].Completed)
	assert.True(t, rs[1].Completed)

	require.Equal(t, 0, h.run("edit", "1", "uno"))
	assert.Equal(t, []string{"uno", "two"}, visibleTexts(h, model.Work))

	assert.Equal(t, 2, h.run("done", "3"))
	assert.Contains(t, h.stderr.String(), "index out of range")
	assert.Equal(t, 2, h.run("done", "x"))
	assert.Equal(t, 2, h.run("edit", "1"))
}

func TestRemoveConfirmation(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		h := newHarness(t, "n\n")
		require.Equal(t, 0, h.run("add", "keep me"))
		assert.Equal(t, 0, h.run("rm", "1"))
		assert.Contains(t, h.stdout.String(), "Are you sure?")
		assert.Contains(t, h.stdout.String(), "cancelled")
		assert.Equal(t, 1, h.app.Todos.Len())
	})

	t.Run("eof cancels", func(t *testing.T) {
		h := newHarness(t, "")
		require.Equal(t, 0, h.run("add", "keep me"))
		assert.Equal(t, 0, h.run("rm", "1"))
		assert.Equal(t, 1, h.app.Todos.Len())
	})

	t.Run("confirm", func(t *testing.T) {
		h := newHarness(t, "y\n")
		require.Equal(t, 0, h.run("add", "drop me"))
		assert.Equal(t, 0, h.run("rm", "1"))
		assert.Equal(t, 0, h.app.Todos.Len())

		raw, ok, err := h.backend.Get(context.Background(), todos.KeyToDos)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "{}", raw)
	})

	t.Run("skip prompt", func(t *testing.T) {
		h := newHarness(t, "")
		require.Equal(t, 0, h.run("add", "drop me"))
		assert.Equal(t, 0, h.run("rm", "-y", "1"))
		assert.Equal(t, 0, h.app.Todos.Len())
		assert.NotContains(t, h.stdout.String(), "Are you sure?")
	})
}

func TestModeCommand(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("mode"))
	assert.Equal(t, "Work\n", h.stdout.String())

	require.Equal(t, 0, h.run("mode", "TRAVEL"))
	assert.Equal(t, model.Travel, h.app.Modes.Mode())

	raw, _, err := h.backend.Get(context.Background(), todos.KeyWorking)
	require.NoError(t, err)
	assert.Equal(t, "false", raw)

	assert.Equal(t, 2, h.run("mode", "holiday"))
}

func TestList(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("add", "Buy milk"))
	require.Equal(t, 0, h.run("add", "-travel", "Flight"))
	require.Equal(t, 0, h.run("done", "1"))
	h.stdout.Reset()

	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, "[Work]")
	assert.Contains(t, out, " 1. ☑ Buy milk")
	assert.NotContains(t, out, "Flight")

	h.stdout.Reset()
	require.Equal(t, 0, h.run("ls", "-all"))
	assert.Contains(t, h.stdout.String(), "☐ Flight")
}

func TestListGrouped(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("add", "a"))
	require.Equal(t, 0, h.run("add", "b"))
	require.Equal(t, 0, h.run("done", "1"))
	h.stdout.Reset()

	require.Equal(t, 0, h.app.Run(context.Background(), []string{"ls"}, Options{Group: true}))
	out := h.stdout.String()
	pending := strings.Index(out, "Pending")
	done := strings.Index(out, "Done")
	require.True(t, pending >= 0 && done > pending)
	assert.Contains(t, out[pending:done], " 2. ☐ b")
	assert.Contains(t, out[done:], " 1. ☑ a")
}

func TestInteractiveHook(t *testing.T) {
	h := newHarness(t, "")
	assert.Equal(t, 1, h.run("ui"))

	called := false
	h.app.Interactive = func(context.Context) error { called = true; return nil }
	assert.Equal(t, 0, h.run("ui"))
	assert.True(t, called)
}

func TestListHeadingsUseThemeTitle(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("add", "a"))
	require.Equal(t, 0, h.run("add", "-travel", "b"))
	h.stdout.Reset()

	ui.SetColorForcing(true, false)
	title := ui.Current().Title
	require.NotEmpty(t, title)

	require.Equal(t, 0, h.app.Run(context.Background(), []string{"ls", "-all"}, Options{Group: true}))
	out := h.stdout.String()
	for _, heading := range []string{"Pending", "Done", model.Travel.String()} {
		assert.Contains(t, out, title+heading, "heading %q", heading)
	}
}
