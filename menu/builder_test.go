package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/jmml/log"
)

// recorder is a Listener that keeps every event.
type recorder struct {
	clicked []string
	updated []string
}

func (r *recorder) ItemClicked(id string) { r.clicked = append(r.clicked, id) }

func (r *recorder) ValueUpdated(id string, v any) {
	r.updated = append(r.updated, fmt.Sprintf("%s=%v", id, v))
}

// invocation is one call received by fakeInvoker.
type invocation struct {
	method string
	params []string
}

type fakeInvoker struct {
	methods []string
	calls   []invocation
	fail    error
}

func (f *fakeInvoker) Run(_ context.Context, method string, items *Index, params ...string) error {
	if items == nil {
		return errors.New("nil index")
	}

	f.calls = append(f.calls, invocation{method: method, params: params})

	return f.fail
}

func (f *fakeInvoker) HasMethod(name string) bool { return slices.Contains(f.methods, name) }

// files turns path/content pairs into a file system.
func files(kv ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for i := 0; i+1 < len(kv); i += 2 {
		fsys[kv[i]] = &fstest.MapFile{Data: []byte(kv[i+1])}
	}

	return fsys
}

// buildMenu builds main.jmml from fsys into a new window that stays alive
// for the rest of the test.
func buildMenu(t *testing.T, fsys fstest.MapFS, opts ...Option) (*Window, *Index, error) {
	t.Helper()

	w := NewWindow(t.Name())
	t.Cleanup(func() { runtime.KeepAlive(w) })

	opts = append([]Option{
		WithFS(fsys),
		WithLogger(log.Make(nil)),
		WithTags(NewTagRegistry()),
	}, opts...)

	idx, err := Build(t.Context(), w, "main.jmml", opts...)

	return w, idx, err
}

func mustBuild(t *testing.T, fsys fstest.MapFS, opts ...Option) (*Window, *Index) {
	t.Helper()

	w, idx, err := buildMenu(t, fsys, opts...)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	return w, idx
}

func captions(nodes []*Node) []string {
	s := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s = append(s, n.Kind().String()+":"+n.Caption())
	}

	return s
}

const editorMenu = `
"File" > id=file
  !"!New" id=new accelerator=<ctrl>n
  "Open" id=open accelerator=<ctrl>o
  -
  "Quit" id=quit
<
"Help" > id=help
  "About" id=about
<
`

func TestBuild_Tree(t *testing.T) {
	w, idx := mustBuild(t, files("main.jmml", editorMenu))

	bar := w.MenuBar()
	if bar == nil || bar.Kind() != KindBar {
		t.Fatalf("expected a menu bar attached, got %v", bar)
	}

	if idx.Root() != bar {
		t.Error("expected index root to be the attached bar")
	}

	if diff := cmp.Diff([]string{"menu:File", "menu:Help"}, captions(bar.Children())); diff != "" {
		t.Errorf("bar mismatch (-want +got):\n%s", diff)
	}

	file := idx.Lookup("file")
	want := []string{"item:New", "item:Open", "weak-separator:", "item:Quit"}

	if diff := cmp.Diff(want, captions(file.Children())); diff != "" {
		t.Errorf("file menu mismatch (-want +got):\n%s", diff)
	}

	wantIDs := []string{"file", "new", "open", "quit", "help", "about"}
	if diff := cmp.Diff(wantIDs, idx.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	if k, i := idx.Lookup("new").Mnemonic(); k != 'N' || i != 0 {
		t.Errorf("expected mnemonic N at 0, got %v at %d", k, i)
	}

	ks, ok := idx.Lookup("open").Accelerator()
	if !ok || ks != (KeyStroke{Modifiers: ModCtrl, Key: 'O'}) {
		t.Errorf("expected <ctrl>O accelerator, got %v (%v)", ks, ok)
	}

	if sep := file.Children()[2]; !sep.Visible() {
		t.Error("expected weak separator between items to be visible")
	}
}

func TestBuild_StableAcrossBuilds(t *testing.T) {
	fsys := files("main.jmml", editorMenu)

	w1, _ := mustBuild(t, fsys)
	w2, _ := mustBuild(t, fsys)

	if diff := cmp.Diff(Snap(w1.MenuBar()), Snap(w2.MenuBar())); diff != "" {
		t.Errorf("rebuild differs (-first +second):\n%s", diff)
	}
}

func TestBuild_ReplacesPreviousBar(t *testing.T) {
	fsys := files("main.jmml", editorMenu)
	tags := WithTags(NewTagRegistry())

	w := NewWindow("replace")
	defer runtime.KeepAlive(w)

	opts := []Option{WithFS(fsys), WithLogger(log.Make(nil)), tags}

	first, err := Build(t.Context(), w, "main.jmml", opts...)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}

	old := first.Lookup("quit")

	if _, err := Build(t.Context(), w, "main.jmml", opts...); err != nil {
		t.Fatalf("second build: %v", err)
	}

	if old.Live() {
		t.Error("expected nodes of the replaced bar to be destroyed")
	}

	if first.Lookup("quit") != nil {
		t.Error("expected the old index to stop resolving destroyed nodes")
	}
}

func TestBuild_UnsupportedContainer(t *testing.T) {
	_, err := Build(t.Context(), struct{}{}, "main.jmml",
		WithFS(files("main.jmml", `"A"`)))
	if !errors.Is(err, ErrUnsupportedContainer) {
		t.Fatalf("expected %v, got %v", ErrUnsupportedContainer, err)
	}
}

func TestBuild_DuplicateIDAcrossIncludes(t *testing.T) {
	fsys := files(
		"main.jmml", "\"A\" id=a\n@more.jmml\n",
		"more.jmml", "\"B\" id=b\n\"Again\" id=a\n",
	)

	w, _, err := buildMenu(t, fsys)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected %v, got %v", ErrDuplicateID, err)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	attrs := map[string]string{}
	for _, a := range e.Attrs() {
		attrs[a.Key] = a.Value.String()
	}

	if attrs["file"] != "more.jmml" || attrs["line"] != "2" || attrs["id"] != "a" {
		t.Errorf("expected file, line and id attrs, got %v", attrs)
	}

	if w.MenuBar() != nil {
		t.Error("expected the window to be untouched after a failed build")
	}
}

func TestBuild_PushPop(t *testing.T) {
	var buf bytes.Buffer

	fsys := files("main.jmml", `
"A" > id=a
  "B" > id=b
    "C" id=c
  <
<
<
"D" id=d
}
`)

	w, idx := mustBuild(t, fsys, WithLogger(log.Make(&buf, log.WithPretty(false))))

	if diff := cmp.Diff([]string{"menu:A", "item:D"}, captions(w.MenuBar().Children())); diff != "" {
		t.Errorf("bar mismatch (-want +got):\n%s", diff)
	}

	if p := idx.Lookup("c").Parent(); p != idx.Lookup("b") {
		t.Errorf("expected C inside B, got parent %v", p)
	}

	for _, want := range []string{"pop past root ignored", "ungroup without group ignored"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected warning %q, got: %s", want, buf.String())
		}
	}
}

func TestBuild_InvalidContainer(t *testing.T) {
	for _, cfg := range []string{"-- >", "(!slider) min=0 max=1 value=0 >"} {
		_, _, err := buildMenu(t, files("main.jmml", cfg))
		if !errors.Is(err, ErrInvalidContainer) {
			t.Errorf("%s: expected %v, got %v", cfg, ErrInvalidContainer, err)
		}
	}
}

func TestBuild_Kinds(t *testing.T) {
	fsys := files("main.jmml", `
"M" >
  "Plain"
  "Check" type=check
  "Checked" type=CHECK
  "Radio" type=radio
  "Both" type=radio type=check
  ( )
  --
  $"<b>Bold</b>" id=bold disabled hidden
<
`)

	w, idx := mustBuild(t, fsys)

	menu := w.MenuBar().Children()[0]
	want := []string{
		"item:Plain", "check:Check", "check:Checked", "radio:Radio", "check:Both",
		"spacer:", "separator:", "item:<html><b>Bold</b></html>",
	}

	if diff := cmp.Diff(want, captions(menu.Children())); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}

	if !menu.Children()[2].Selected() || menu.Children()[1].Selected() {
		t.Error("expected only type=CHECK to start selected")
	}

	bold := idx.Lookup("bold")
	if !bold.Rich() || bold.Enabled() || bold.Visible() {
		t.Errorf("expected rich, disabled and hidden, got rich=%v enabled=%v visible=%v",
			bold.Rich(), bold.Enabled(), bold.Visible())
	}
}

func TestBuild_Settings(t *testing.T) {
	fsys := files("main.jmml", `
"Save" id=save mnemonicIndex=2 icon=save.png icon@selected&disabled=gray.png rolloverable
"Load" id=load mnemonic=page-up invoke=load
`)

	_, idx := mustBuild(t, fsys)

	save := idx.Lookup("save")
	if k, i := save.Mnemonic(); k != 'V' || i != 2 {
		t.Errorf("expected mnemonic V at 2, got %v at %d", k, i)
	}

	if save.Icon(IconDefault) != "save.png" || save.Icon(IconDisabledSelected) != "gray.png" {
		t.Errorf("unexpected icons %v", save.Icons())
	}

	if !save.Rollover() {
		t.Error("expected rollover enabled")
	}

	load := idx.Lookup("load")
	if k, i := load.Mnemonic(); k != 33 || i != -1 {
		t.Errorf("expected page-up mnemonic without index, got %v at %d", k, i)
	}

	if load.Invoke() != "load" {
		t.Errorf("expected invoke load, got %q", load.Invoke())
	}
}

func TestBuild_InvalidSettings(t *testing.T) {
	tests := map[string]string{
		"mnemonic index out of range":  `"Save" mnemonicIndex=9`,
		"mnemonic index not a number":  `"Save" mnemonicIndex=x`,
		"slider value below minimum":   `(!slider) min=5 max=10 value=1`,
		"slider bound not a number":    `(!slider) min=a max=10 value=1`,
		"linked value not a number":    `"Go" setAttribute=value setValue=abc targetId=z`,
		"linked value with only sign":  `"Go" setAttribute=value setValue=+ targetId=z`,
		"slider minimum above maximum": `(!slider) min=10 max=5 value=7`,
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := buildMenu(t, files("main.jmml", cfg))
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("expected %v, got %v", ErrInvalidSetting, err)
			}
		})
	}
}

func TestBuild_Accelerators(t *testing.T) {
	t.Run("collision", func(t *testing.T) {
		_, _, err := buildMenu(t, files("main.jmml",
			"\"A\" accelerator=<ctrl>s\n\"B\" accelerator=<control>S\n"))
		if !errors.Is(err, ErrDuplicateAccelerator) {
			t.Fatalf("expected %v, got %v", ErrDuplicateAccelerator, err)
		}
	})

	t.Run("release differs", func(t *testing.T) {
		mustBuild(t, files("main.jmml",
			"\"A\" accelerator=<ctrl>s\n\"B\" accelerator=<ctrl><release>s\n"))
	})

	t.Run("unknown keys collide", func(t *testing.T) {
		_, _, err := buildMenu(t, files("main.jmml",
			"\"A\" accelerator=<ctrl>bogus\n\"B\" accelerator=<ctrl>nothing\n"))
		if !errors.Is(err, ErrDuplicateAccelerator) {
			t.Fatalf("expected %v, got %v", ErrDuplicateAccelerator, err)
		}
	})

	t.Run("unknown key warns", func(t *testing.T) {
		var buf bytes.Buffer

		_, idx := mustBuild(t, files("main.jmml", "\"A\" id=a accelerator=<ctrl>bogus\n"),
			WithLogger(log.Make(&buf, log.WithPretty(false))))

		if !strings.Contains(buf.String(), "invalid accelerator") {
			t.Errorf("expected warning, got: %s", buf.String())
		}

		if ks, ok := idx.Lookup("a").Accelerator(); !ok || ks.Key != KeyNone {
			t.Errorf("expected accelerator without key, got %v", ks)
		}
	})

	t.Run("ignored on menu", func(t *testing.T) {
		_, idx := mustBuild(t, files("main.jmml",
			"\"M\" > id=m accelerator=<ctrl>s\n<\n\"A\" accelerator=<ctrl>s\n"))

		if _, ok := idx.Lookup("m").Accelerator(); ok {
			t.Error("expected no accelerator on a menu")
		}
	})
}

func TestBuild_LinkedAttributes(t *testing.T) {
	tests := []struct {
		setValue string
		attr     string
		want     int
	}{
		{"5", "value", 5},
		{"5+", "value", 15},
		{"5-", "value", 5},
		{"5--", "value", 0},
		{"200", "value", 100},
		{"20", "min", 20},
		{"8", "max", 8},
		{"30+", "extent", 30},
	}

	for _, tt := range tests {
		t.Run(tt.attr+"="+tt.setValue, func(t *testing.T) {
			rec := &recorder{}

			_, idx := mustBuild(t, files("main.jmml", `
(!slider) id=zoom min=0 max=100 value=10
"Go" setAttribute=`+tt.attr+` setValue=`+tt.setValue+` targetId=zoom
`), WithListener(rec))

			zoom := idx.Lookup("zoom")
			goItem := idx.Root().Children()[1]

			if err := goItem.Click(t.Context()); err != nil {
				t.Fatalf("click: %v", err)
			}

			var got int

			switch tt.attr {
			case "value":
				got = zoom.Value()
			case "min":
				got = zoom.Minimum()
			case "max":
				got = zoom.Maximum()
			case "extent":
				got = zoom.Extent()
			}

			if got != tt.want {
				t.Errorf("expected %s %d, got %d", tt.attr, tt.want, got)
			}

			if zoom.Minimum() > zoom.Value() || zoom.Value()+zoom.Extent() > zoom.Maximum() {
				t.Errorf("slider model broken: min=%d value=%d extent=%d max=%d",
					zoom.Minimum(), zoom.Value(), zoom.Extent(), zoom.Maximum())
			}

			if len(rec.updated) == 0 || !strings.HasPrefix(rec.updated[len(rec.updated)-1], "zoom=") {
				t.Errorf("expected slider change events, got %v", rec.updated)
			}
		})
	}
}

func TestBuild_LinkedAttributes_MultipleTargets(t *testing.T) {
	_, idx := mustBuild(t, files("main.jmml", `
(!slider) ~id=a min=0 max=10 value=0
(!slider) id=b min=0 max=10 value=5
"Reset" setAttribute=value;value setValue=3;1- targetId=~a;b
`))

	if err := idx.Root().Children()[2].Click(t.Context()); err != nil {
		t.Fatalf("click: %v", err)
	}

	if v := idx.Resolve("a").Value(); v != 3 {
		t.Errorf("expected inverted target a at 3, got %d", v)
	}

	if v := idx.Lookup("b").Value(); v != 4 {
		t.Errorf("expected b at 4, got %d", v)
	}
}

func TestBuild_LinkedAttributes_Mismatch(t *testing.T) {
	_, _, err := buildMenu(t, files("main.jmml",
		`"Go" setAttribute=value;min setValue=1 targetId=z`))
	if !errors.Is(err, ErrLinkedAttribute) {
		t.Fatalf("expected %v, got %v", ErrLinkedAttribute, err)
	}
}

func TestBuild_Groups(t *testing.T) {
	rec := &recorder{}

	fsys := files("main.jmml", `
{
"Small" id=small type=RADIO
"Large" id=large type=RADIO
}
{~
"Free" id=free type=radio
~}
"Wrap" id=wrap type=check
`)

	_, idx := mustBuild(t, fsys, WithListener(rec))

	small, large := idx.Lookup("small"), idx.Lookup("large")

	if !small.Selected() || large.Selected() {
		t.Fatalf("expected only the first pre-selected radio to stay selected")
	}

	if small.Group() == nil || small.Group() != large.Group() {
		t.Fatal("expected small and large in the same group")
	}

	if idx.Lookup("free").Group() != nil || idx.Lookup("wrap").Group() != nil {
		t.Error("expected no group inside a null group or outside any group")
	}

	for _, id := range []string{"large", "large", "free", "wrap", "wrap"} {
		if err := idx.Lookup(id).Click(t.Context()); err != nil {
			t.Fatalf("click %s: %v", id, err)
		}
	}

	if small.Selected() || !large.Selected() {
		t.Error("expected selection to move to large")
	}

	want := []string{"large=true", "large=true", "free=true", "wrap=true", "wrap=false"}
	if diff := cmp.Diff(want, rec.updated); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_InvertedIDs(t *testing.T) {
	rec := &recorder{}

	_, idx := mustBuild(t, files("main.jmml", `
"Dark" ~id=dark type=CHECK
"Light" id=light
`), WithListener(rec))

	dark := idx.Resolve("dark")
	if dark == nil || !dark.Inverted() || dark.ID() != "dark" {
		t.Fatalf("expected inverted node dark, got %v", dark)
	}

	if idx.Lookup("dark") != nil {
		t.Error("expected the bare key to miss an inverted registration")
	}

	if diff := cmp.Diff([]string{"~dark", "light"}, idx.IDs()); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	if err := dark.Click(t.Context()); err != nil {
		t.Fatal(err)
	}

	if err := dark.Click(t.Context()); err != nil {
		t.Fatal(err)
	}

	if err := idx.Lookup("light").Click(t.Context()); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"dark=true", "dark=false"}, rec.updated); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"light"}, rec.clicked); diff != "" {
		t.Errorf("clicks mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_DisabledNodeIgnoresClicks(t *testing.T) {
	rec := &recorder{}

	_, idx := mustBuild(t, files("main.jmml", `"Off" id=off disabled`), WithListener(rec))

	if err := idx.Lookup("off").Click(t.Context()); err != nil {
		t.Fatal(err)
	}

	if len(rec.clicked) != 0 {
		t.Errorf("expected no events, got %v", rec.clicked)
	}
}

func TestBuild_Tags(t *testing.T) {
	reg := NewTagRegistry()

	fsys := files("main.jmml", `
("Recent" ? files) id=alive >
<
"Files" > id=files
  "Open"
  -
  (files ? "No files") id=none
  -
  "Clear"
<
`)

	_, idx := mustBuild(t, fsys, WithTags(reg))

	tag, ok := reg.Lookup("files")
	if !ok {
		t.Fatal("expected tag files to be registered")
	}

	none, aliveNode := idx.Lookup("none"), idx.Lookup("alive")

	if none.Enabled() {
		t.Error("expected empty indicator to be disabled")
	}

	if tag.EmptyIndicator() != none || tag.AliveIndicator() != aliveNode {
		t.Fatal("expected indicators to be installed")
	}

	if aliveNode.Visible() || aliveNode.Kind() != KindMenu {
		t.Errorf("expected hidden alive menu, got visible=%v kind=%v",
			aliveNode.Visible(), aliveNode.Kind())
	}

	menu := idx.Lookup("files")
	want := []string{"item:Open", "weak-separator:", "tag:", "item:No files", "weak-separator:", "item:Clear"}

	if diff := cmp.Diff(want, captions(menu.Children())); diff != "" {
		t.Errorf("initial layout mismatch (-want +got):\n%s", diff)
	}

	a, b := NewNode(KindItem, "a.txt"), NewNode(KindItem, "b.txt")
	tag.SetItems(a, b)

	want = []string{"item:Open", "weak-separator:", "tag:", "item:a.txt", "item:b.txt", "weak-separator:", "item:Clear"}
	if diff := cmp.Diff(want, captions(menu.Children())); diff != "" {
		t.Errorf("filled layout mismatch (-want +got):\n%s", diff)
	}

	if !aliveNode.Visible() || none.Parent() != nil {
		t.Error("expected alive indicator shown and empty indicator removed")
	}

	a.SetVisible(false)
	b.SetVisible(false)
	idx.Refresh()

	if aliveNode.Visible() || none.Parent() != menu {
		t.Error("expected empty indicator back when every item is hidden")
	}

	seps := menu.Children()
	if !seps[1].Visible() || !seps[len(seps)-2].Visible() {
		t.Error("expected separators around the visible empty indicator")
	}
}

func TestBuild_TagPlaceholderOnly(t *testing.T) {
	reg := NewTagRegistry()

	w, _ := mustBuild(t, files("main.jmml", "(recent)\n(\"x\" recent)\n"), WithTags(reg))

	if n := len(w.MenuBar().Children()); n != 1 {
		t.Errorf("expected a single placeholder, got %d children", n)
	}

	if _, ok := reg.Lookup("recent"); !ok {
		t.Error("expected tag recent")
	}
}

func TestBuild_Verbosity(t *testing.T) {
	cfg := "\"A\"\n&quite!\n\"B\"\n&verbose!\n\"C\"\n"

	tests := []struct {
		name    string
		verbose bool
		want    []string
		absent  []string
	}{
		{"verbose", true, []string{`\"A\"`, `\"C\"`}, []string{`\"B\"`, "&verbose!"}},
		{"quiet", false, []string{`\"C\"`}, []string{`\"A\"`, `\"B\"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			mustBuild(t, files("main.jmml", cfg),
				WithVerbose(tt.verbose),
				WithLogger(log.Make(&buf, log.WithPretty(false))))

			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("expected %s echoed, got: %s", s, buf.String())
				}
			}

			for _, s := range tt.absent {
				if strings.Contains(buf.String(), s) {
					t.Errorf("expected %s not echoed, got: %s", s, buf.String())
				}
			}
		})
	}

	t.Run("reset for next build", func(t *testing.T) {
		var buf bytes.Buffer

		mustBuild(t, files("main.jmml", "&quite!\n\"A\"\n"),
			WithLogger(log.Make(&buf, log.WithPretty(false))))

		buf.Reset()

		mustBuild(t, files("main.jmml", "\"Again\"\n"),
			WithLogger(log.Make(&buf, log.WithPretty(false))))

		if !strings.Contains(buf.String(), "Again") {
			t.Errorf("expected echo in a new build, got: %s", buf.String())
		}
	})
}

func TestBuild_Invoker(t *testing.T) {
	t.Run("main and invoke", func(t *testing.T) {
		inv := &fakeInvoker{methods: []string{"main", "open"}}

		_, idx := mustBuild(t, files("main.jmml", `"Open" id=open invoke=open`),
			WithInvoker(inv))

		if err := idx.Lookup("open").Click(t.Context()); err != nil {
			t.Fatal(err)
		}

		want := []invocation{{method: "main"}, {method: "open", params: []string{"open"}}}
		if diff := cmp.Diff(want, inv.calls, cmp.AllowUnexported(invocation{})); diff != "" {
			t.Errorf("calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no main declared", func(t *testing.T) {
		inv := &fakeInvoker{}

		mustBuild(t, files("main.jmml", `"A"`), WithInvoker(inv))

		if len(inv.calls) != 0 {
			t.Errorf("expected no calls, got %v", inv.calls)
		}
	})

	t.Run("invoke without id", func(t *testing.T) {
		inv := &fakeInvoker{}

		w, _ := mustBuild(t, files("main.jmml", `"Open" invoke=open`), WithInvoker(inv))

		if err := w.MenuBar().Children()[0].Click(t.Context()); err != nil {
			t.Fatal(err)
		}

		if len(inv.calls) != 0 {
			t.Errorf("expected no calls for an item without id, got %v", inv.calls)
		}
	})

	t.Run("main fails", func(t *testing.T) {
		boom := errors.New("boom")
		inv := &fakeInvoker{methods: []string{"main"}, fail: boom}

		w, _, err := buildMenu(t, files("main.jmml", `"A"`), WithInvoker(inv))
		if !errors.Is(err, boom) {
			t.Fatalf("expected %v, got %v", boom, err)
		}

		if w.MenuBar() != nil {
			t.Error("expected the window to be untouched")
		}
	})
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	w := NewWindow("canceled")
	defer runtime.KeepAlive(w)

	_, err := Build(ctx, w, "main.jmml",
		WithFS(files("main.jmml", "\"A\"\n\"B\"\n")), WithLogger(log.Make(nil)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}
}

func TestBuild_ErrorLogValue(t *testing.T) {
	var buf bytes.Buffer

	_, _, err := buildMenu(t, files("main.jmml", "\"A\" id=a\n\"B\" id=a\n"))

	log.Make(&buf, log.WithPretty(false)).Error("build failed", slog.Any("error", err))

	for _, want := range []string{`"id":"a"`, `"line":2`, "duplicate id"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %s in %s", want, buf.String())
		}
	}
}
