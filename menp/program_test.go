package menp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/jmml/log"
)

func quiet() Option { return WithLogger(log.Make(nil)) }

func TestWormholes(t *testing.T) {
	tests := []struct {
		code string
		want map[int]int
		err  error
	}{
		{code: "((a)(b))", want: map[int]int{0: 7, 1: 3, 4: 6}},
		{code: `"("()`, want: map[int]int{3: 4}},
		{code: `(")")`, want: map[int]int{0: 4}},
		{code: "", want: map[int]int{}},
		{code: "(()", err: ErrUnbalanced},
		{code: "())", err: ErrUnbalanced},
		{code: `("abc)`, err: ErrUnbalanced},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := wormholes(tt.code)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}

			if tt.err != nil {
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wormholes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		code    string
		methods map[string]int
		order   []string
		defs    bool
	}{
		{
			code:    "a:(x)b:((y)z)",
			methods: map[string]int{"a": 2, "b": 7},
			order:   []string{"a", "b"},
			defs:    true,
		},
		{
			code:    "a:(x)a:(y)",
			methods: map[string]int{"a": 7},
			order:   []string{"a"},
			defs:    true,
		},
		{code: `<"x:(y)"`, methods: map[string]int{}},
		{code: "(a:(b))", methods: map[string]int{}},
		{code: `:x;"1"`, methods: map[string]int{}},
		{
			code:    "a:(x)<1",
			methods: map[string]int{"a": 2},
			order:   []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			holes, err := wormholes(tt.code)
			if err != nil {
				t.Fatal(err)
			}

			methods, order, defs := extract(tt.code, holes)

			if diff := cmp.Diff(tt.methods, methods); diff != "" {
				t.Errorf("methods mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.order, order); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}

			if defs != tt.defs {
				t.Errorf("expected defs=%v, got %v", tt.defs, defs)
			}
		})
	}
}

func TestDense(t *testing.T) {
	got := dense("\"a b\" ( c\n d )  \"\"\"x y\"")
	if want := `"a b"(cd)"""x y"`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCompile_Comments(t *testing.T) {
	p, err := Compile(t.Context(), "a:(<\"#1\") # note\r\n\tb:(<2)\f", quiet())
	if err != nil {
		t.Fatal(err)
	}

	if want := `a:(<"#1")b:(<2)`; p.String() != want {
		t.Errorf("expected %q, got %q", want, p.String())
	}
}

func TestCompile_Cache(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
	)

	first, err := Compile(t.Context(), "cached:( <\"v\" )", WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	second, err := Compile(t.Context(), "cached:(\n  <\"v\"\n)", WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected programs with the same dense code to be shared")
	}

	if !strings.Contains(buf.String(), `"cache_hit":true`) {
		t.Errorf("expected a logged cache hit, got:\n%s", buf.String())
	}
}

func TestCompile_Unbalanced(t *testing.T) {
	_, err := Compile(t.Context(), "broken:((<1)", quiet())
	if !errors.Is(err, ErrUnbalanced) {
		t.Errorf("expected %v, got %v", ErrUnbalanced, err)
	}
}

func TestLoad_Includes(t *testing.T) {
	fsys := fstest.MapFS{
		"main.menp":     {Data: []byte("@lib/util.menp\nmain:(>helper)\n")},
		"lib/util.menp": {Data: []byte("@ more.menp \nhelper:(<\"ok\") # done\n")},
		"lib/more.menp": {Data: []byte("extra:(<1)")},
	}

	p, err := Load(t.Context(), "main.menp", WithFS(fsys), quiet())
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"extra", "helper", "main"}, p.Methods()); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}

	if !p.HasMethod("helper") || p.HasMethod("more") {
		t.Error("unexpected method set")
	}
}

func TestLoad_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"a.menp":    {Data: []byte("@b.menp\n")},
		"b.menp":    {Data: []byte("@a.menp\n")},
		"self.menp": {Data: []byte("x:(<1)\n@self.menp\n")},
		"gone.menp": {Data: []byte("@missing.menp\n")},
	}

	tests := []struct {
		name string
		err  error
	}{
		{"a.menp", ErrIncludeCycle},
		{"self.menp", ErrIncludeCycle},
		{"gone.menp", ErrReadInput},
		{"nothing.menp", ErrReadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(t.Context(), tt.name, WithFS(fsys), quiet())
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}
