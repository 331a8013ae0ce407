package repl

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/menp"
	"github.com/ardnew/jmml/menu"
)

const testMenu = `
"File" > id=file
  "Open" id=open invoke=open
  -
  "Recent" id=recent hidden
<
"Quit" id=quit
"Wrap" ~id=wrap type=check
`

const testScript = `open:((!visible;"recent"))`

func newTestModel(t *testing.T) model {
	t.Helper()

	quiet := log.Make(nil)

	prog, err := menp.Compile(t.Context(), testScript, menp.WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}

	in := menp.New(prog, menp.WithLogger(quiet))
	w := menu.NewWindow(t.Name())
	t.Cleanup(func() { runtime.KeepAlive(w) })

	items, err := menu.Build(t.Context(), w, "main.jmml",
		menu.WithFS(fstest.MapFS{"main.jmml": {Data: []byte(testMenu)}}),
		menu.WithLogger(quiet),
		menu.WithTags(menu.NewTagRegistry()),
		menu.WithInvoker(in),
	)
	if err != nil {
		t.Fatal(err)
	}

	history := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(t.Context(), Env{Interp: in, Items: items, Host: w}, history, quiet)
}

func submit(m model, input string) model {
	m.input.SetValue(input)
	m.input.SetCursor(len(input))
	m, _ = m.executeInput()

	return m
}

func TestRun_NoMenu(t *testing.T) {
	if err := Run(t.Context(), Env{}, t.TempDir(), log.Make(nil)); err != ErrNoMenu {
		t.Errorf("expected %v, got %v", ErrNoMenu, err)
	}
}

func TestExecuteInput_Eval(t *testing.T) {
	m := newTestModel(t)

	m = submit(m, `:%x;"1"`)
	m = submit(m, `!visible;"recent"`)
	m = submit(m, `>nowhere`)

	if got := m.env.Interp.Vars()["x"]; !got.Equal(menp.String("1")) {
		t.Errorf(`expected x="1", got %s`, got)
	}

	if !m.env.Items.Lookup("recent").Visible() {
		t.Error("expected recent to be shown")
	}

	if m.input.Value() != "" {
		t.Errorf("expected the input to be cleared, got %q", m.input.Value())
	}

	if m.history.Len() != 3 || m.historyIdx != 3 {
		t.Errorf("expected 3 history entries, got %d (index %d)", m.history.Len(), m.historyIdx)
	}
}

func TestEval_Format(t *testing.T) {
	m := newTestModel(t)

	out, err := m.eval(`<"a";true;("b")`)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `"a";true;("b")`) {
		t.Errorf("expected the values in script syntax, got %q", out)
	}

	if _, err := m.eval(`<%missing`); err == nil {
		t.Error("expected an undefined variable error")
	}
}

func TestExecuteCommand(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.eval(`:count;"2"`); err != nil {
		t.Fatal(err)
	}

	if got := m.listVars(); !strings.Contains(got, "%count") || !strings.Contains(got, `"2"`) {
		t.Errorf("unexpected vars listing %q", got)
	}

	if got := m.listMethods(); strings.TrimSpace(got) != "open" {
		t.Errorf("unexpected methods listing %q", got)
	}

	ids := m.listIDs()
	for _, id := range []string{"file", "open", "recent", "quit", "~wrap"} {
		if !strings.Contains(ids, id) {
			t.Errorf("expected %s in ids listing %q", id, ids)
		}
	}

	if got := m.tree(); !strings.Contains(got, `item "Recent" #recent hidden`) {
		t.Errorf("unexpected tree %q", got)
	}

	m = m.toggleMode()
	m = submit(m, "quit")

	if !m.quitting {
		t.Error("expected quit to end the session")
	}

	if e, err := m.history.GetEntry(0); err != nil || e.Mode != modeCtrl {
		t.Errorf("expected a command history entry, got %v, %v", e, err)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m := newTestModel(t)

	m = submit(m, `<"one"`)
	m = m.toggleMode()
	m = submit(m, "ids")
	m = m.toggleMode()
	m = submit(m, `<"two"`)

	m = m.historyStep(-1)
	if m.input.Value() != `<"two"` || m.mode != modeEval {
		t.Errorf("expected the last expression, got %q in mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(-1)
	if m.input.Value() != "ids" || m.mode != modeCtrl {
		t.Errorf("expected the command in control mode, got %q in mode %d", m.input.Value(), m.mode)
	}

	m = m.historyStep(1)
	m = m.historyStep(1)
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("expected a cleared input past the newest entry, got %q", m.input.Value())
	}

	m = m.switchToMode(modeEval)
	m = m.historyStepInMode(-1)
	m = m.historyStepInMode(-1)

	if m.input.Value() != `<"one"` {
		t.Errorf("expected to skip the command, got %q", m.input.Value())
	}
}
