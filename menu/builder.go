package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Build reads the configuration file at path, builds a menu bar from it and
// attaches the bar to container, which must implement [Host].
//
// The build is all-or-nothing: on any error the container is left
// untouched. After the tree is complete, the invoker's "main" method (if
// declared) runs once before the bar is attached.
//
// The returned index resolves the registered ids to live nodes.
func Build(ctx context.Context, container any, path string, opts ...Option) (*Index, error) {
	host, ok := container.(Host)
	if !ok {
		return nil, ErrUnsupportedContainer.With(
			slog.String("type", fmt.Sprintf("%T", container)))
	}

	b := newBuilder(opts...)

	if err := b.build(ctx, path); err != nil {
		return nil, err
	}

	if err := b.runMain(ctx); err != nil {
		return nil, err
	}

	b.commitTags()

	host.SetMenuBar(b.bar)

	b.logger.DebugContext(ctx, "menu built",
		slog.String("file", path),
		slog.Int("ids", b.index.Len()),
	)

	return b.index, nil
}

// alive is an alive indicator waiting to be wired to its tag.
type alive struct {
	tag  string
	node *Node
}

// placement is a tag placeholder position waiting for the build to succeed.
// Tags are shared between builds, so a failed build must not move them.
type placement struct {
	tag   string
	stub  *Node
	empty *Node
}

type builder struct {
	options

	bar    *Node
	index  *Index
	stack  []*Node
	groups []*Group // nil entries mark a null group
	accels map[KeyStroke]string
	alive  []alive
	placed []placement
	quiet  bool
}

func newBuilder(opts ...Option) *builder {
	b := &builder{
		options: makeOptions(opts...),
		bar:     newNode(KindBar, ""),
		accels:  make(map[KeyStroke]string),
	}

	b.index = newIndex(b.bar)
	b.stack = []*Node{b.bar}
	b.quiet = !b.verbose

	return b
}

func (b *builder) build(ctx context.Context, path string) error {
	r := &lineReader{
		fsys:   b.fsys,
		dirs:   searchPath(b.fsys, b.includeDirs...),
		logger: b.logger,
		quiet:  func() bool { return b.quiet },
	}

	for l, err := range r.lines(ctx, path) {
		if err != nil {
			return err
		}

		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		if err := b.line(ctx, l); err != nil {
			return WrapError(err).With(l.attrs()...)
		}
	}

	Normalize(b.bar)

	return nil
}

// commitTags moves the placeholders of the tags the build placed into the
// new tree and wires their indicators.
func (b *builder) commitTags() {
	for _, p := range b.placed {
		t := b.tags.Get(p.tag)
		if p.empty != nil {
			t.empty = p.empty
		}

		t.replace(p.stub)
	}

	for _, a := range b.alive {
		b.tags.Get(a.tag).SetAliveIndicator(a.node)
	}

	Normalize(b.bar)
}

// placeTag reserves the current position of the top container for tag.
func (b *builder) placeTag(tag string, empty *Node) {
	stub := newNode(KindTag, "")
	stub.visible = false
	b.top().add(stub)

	b.placed = append(b.placed, placement{tag: tag, stub: stub, empty: empty})
}

func (b *builder) runMain(ctx context.Context) error {
	if b.invoker == nil {
		return nil
	}

	if mc, ok := b.invoker.(MethodChecker); ok && !mc.HasMethod("main") {
		return nil
	}

	return b.invoker.Run(ctx, "main", b.index)
}

func (b *builder) top() *Node { return b.stack[len(b.stack)-1] }

func (b *builder) warn(ctx context.Context, msg string, l line, attrs ...slog.Attr) {
	b.logger.WarnContext(ctx, msg, append(l.attrs(), attrs...)...)
}

func (b *builder) line(ctx context.Context, l line) error {
	d := scanLine(l.text)

	switch d.verbosity {
	case setQuiet:
		b.quiet = true
	case setVerbose:
		b.quiet = false
	}

	if d.unterminated {
		b.warn(ctx, "unterminated token dropped", l)
	}

	if d.pop {
		if len(b.stack) > 1 {
			b.stack = b.stack[:len(b.stack)-1]
		} else {
			b.warn(ctx, "pop past root ignored", l)
		}
	}

	if d.ungroup {
		if len(b.groups) > 0 {
			b.groups = b.groups[:len(b.groups)-1]
		} else {
			b.warn(ctx, "ungroup without group ignored", l)
		}
	}

	n, err := b.create(ctx, l, &d)
	if err != nil {
		return err
	}

	if n != nil {
		b.logger.TraceContext(ctx, "node created",
			slog.String("kind", n.kind.String()),
			slog.String("caption", n.caption),
			slog.Int("line", l.num),
		)

		if err := b.configure(ctx, l, &d, n); err != nil {
			return err
		}
	} else if d.push {
		b.warn(ctx, "push without node ignored", l)
	}

	switch {
	case d.group:
		b.groups = append(b.groups, &Group{})
	case d.nullGroup:
		b.groups = append(b.groups, nil)
	}

	return nil
}

// itemKind returns the kind of the item a caption creates and whether the
// item starts selected.
func itemKind(d *directive) (Kind, bool) {
	var check, radio, selected bool

	for _, s := range d.settings {
		switch s {
		case "type=check":
			check = true
		case "type=CHECK":
			check, selected = true, true
		case "type=radio":
			radio = true
		case "type=RADIO":
			radio, selected = true, true
		}
	}

	switch {
	case d.push:
		return KindMenu, false
	case check:
		return KindCheck, selected
	case radio:
		return KindRadio, selected
	default:
		return KindItem, false
	}
}

// captioned creates an item for the line's caption.
func captioned(d *directive, caption string) *Node {
	kind, selected := itemKind(d)

	n := newNode(kind, caption)
	n.rich = d.rich
	n.selected = selected

	if d.rich {
		n.caption = richText(caption)
	}

	return n
}

func (b *builder) create(ctx context.Context, l line, d *directive) (*Node, error) {
	top := b.top()

	switch {
	case d.hard:
		n := newNode(KindSeparator, "")
		top.add(n)

		return n, nil

	case d.weak:
		n := newNode(KindWeakSeparator, "")
		top.add(n)

		return n, nil

	case d.hasCaption:
		caption := d.caption
		if d.bang {
			caption, _ = stripBang(caption)
		}

		n := captioned(d, caption)
		top.add(n)

		return n, nil

	case !d.hasSpecial:
		return nil, nil

	case d.special == " ":
		n := newNode(KindSpacer, "")
		top.add(n)

		return n, nil

	case strings.HasPrefix(d.special, "!") && !strings.HasPrefix(d.special, `!"`):
		if d.special != "!slider" {
			b.warn(ctx, "unknown control ignored", l,
				slog.String("control", d.special))

			return nil, nil
		}

		return b.slider(d)

	default:
		return b.tagged(ctx, l, d)
	}
}

func intSetting(setting string) (int, error) {
	_, v, _ := strings.Cut(setting, "=")

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, ErrInvalidSetting.Wrap(err).With(slog.String("setting", setting))
	}

	return i, nil
}

func (b *builder) slider(d *directive) (*Node, error) {
	var (
		vertical              bool
		lo, hi, value, extent int
		err                   error
	)

	for _, s := range d.settings {
		switch {
		case s == "vertical":
			vertical = true
		case strings.HasPrefix(s, "min="):
			lo, err = intSetting(s)
		case strings.HasPrefix(s, "max="):
			hi, err = intSetting(s)
		case strings.HasPrefix(s, "value="):
			value, err = intSetting(s)
		case strings.HasPrefix(s, "extent="):
			extent, err = intSetting(s)
		}

		if err != nil {
			return nil, err
		}
	}

	r, ok := newBoundedRange(value, 0, lo, hi)
	if !ok {
		return nil, ErrInvalidSetting.With(
			slog.String("setting", "slider"),
			slog.Int("min", lo),
			slog.Int("max", hi),
			slog.Int("value", value),
		)
	}

	r.vertical = vertical
	r.setExtent(extent)

	n := newNode(KindSlider, "")
	n.slider = r
	b.top().add(n)

	return n, nil
}

// tagged handles the tag mini-grammar of a special.
func (b *builder) tagged(ctx context.Context, l line, d *directive) (*Node, error) {
	spec := parseTagSpec(d.special)
	if !spec.hasTag {
		b.warn(ctx, "special without tag ignored", l,
			slog.String("special", d.special))

		return nil, nil
	}

	text := spec.text
	if spec.bang {
		text, _ = stripBang(text)
	}

	if !spec.delimiter || !spec.hasText {
		b.placeTag(spec.tag, nil)

		return nil, nil
	}

	if spec.tagAt < spec.textAt {
		n := newNode(KindItem, text)
		n.rich = spec.rich

		if spec.rich {
			n.caption = richText(text)
		}

		b.placeTag(spec.tag, n)

		d.disabled = d.disabled || !d.enabled

		return n, nil
	}

	n := captioned(&directive{push: d.push, settings: d.settings, rich: spec.rich}, text)
	n.visible = false
	b.top().add(n)

	b.alive = append(b.alive, alive{tag: spec.tag, node: n})

	return n, nil
}

// idKey returns the index key of the first id setting.
func idKey(settings []string) (string, bool) {
	for _, s := range settings {
		switch {
		case strings.HasPrefix(s, "id="):
			return stringValue(s), true
		case strings.HasPrefix(s, "~id="):
			return invertedPrefix + stringValue(s), true
		}
	}

	return "", false
}

func (b *builder) configure(ctx context.Context, l line, d *directive, n *Node) error {
	if key, ok := idKey(d.settings); ok {
		if err := b.index.add(key, n); err != nil {
			return err
		}

		b.notify(n)
	}

	if n.kind.Clickable() {
		if n.kind.Toggle() && len(b.groups) > 0 {
			if g := b.groups[len(b.groups)-1]; g != nil {
				g.add(n)
			}
		}

		if err := b.settings(ctx, l, d, n); err != nil {
			return err
		}
	}

	if d.disabled {
		n.enabled = false
	}

	if d.hidden {
		n.visible = false
	}

	if d.push {
		if n.kind != KindMenu {
			return ErrInvalidContainer.With(slog.String("kind", n.kind.String()))
		}

		b.stack = append(b.stack, n)
	}

	return nil
}

// notify wires the listener and invoker to an identified node.
func (b *builder) notify(n *Node) {
	listener, invoker, index := b.listener, b.invoker, b.index

	switch {
	case n.kind.Clickable():
		n.actions = append(n.actions, func(ctx context.Context) error {
			var err error

			if n.invoke != "" && invoker != nil {
				err = invoker.Run(ctx, n.invoke, index, n.ID())
			}

			switch {
			case listener == nil:
			case n.kind.Toggle():
				listener.ValueUpdated(n.ID(), n.selected != n.Inverted())
			default:
				listener.ItemClicked(n.ID())
			}

			return err
		})

	case n.kind == KindSlider && listener != nil:
		n.changes = append(n.changes, func(n *Node) {
			listener.ValueUpdated(n.ID(), n.Value())
		})
	}
}

// iconStates maps icon setting names to the state they decorate.
var iconStates = map[string]IconState{
	"icon":                   IconDefault,
	"icon@disabled":          IconDisabled,
	"icon@disabled&selected": IconDisabledSelected,
	"icon@selected&disabled": IconDisabledSelected,
	"icon@pressed":           IconPressed,
	"icon@rollover":          IconRollover,
	"icon@rollover&selected": IconRolloverSelected,
	"icon@selected&rollover": IconRolloverSelected,
	"icon@selected":          IconSelected,
}

// plain returns the caption of n without rich-text markup.
func plain(n *Node) string {
	if !n.rich {
		return n.caption
	}

	return strings.TrimSuffix(strings.TrimPrefix(n.caption, "<html>"), "</html>")
}

func (b *builder) settings(ctx context.Context, l line, d *directive, n *Node) error {
	var attrs, values, targets []string

	for _, s := range d.settings {
		name, value, hasValue := strings.Cut(s, "=")

		if state, ok := iconStates[name]; ok && hasValue {
			n.setIcon(state, stringValue(s))

			continue
		}

		switch name {
		case "invoke":
			n.invoke = stringValue(s)

		case "rolloverable":
			switch {
			case !hasValue || value == "true":
				n.rollover = true
			case value == "false":
				n.rollover = false
			}

		case "mnemonic":
			k, err := ParseKey(stringValue(s))
			if err != nil {
				b.warn(ctx, "invalid mnemonic", l, slog.Any("error", err))
			}

			n.mnemonic = k

		case "mnemonicIndex":
			i, err := intSetting(s)
			if err != nil {
				return err
			}

			rs := []rune(plain(n))
			if i < 0 || i >= len(rs) {
				return ErrInvalidSetting.With(
					slog.String("setting", s),
					slog.Int("length", len(rs)),
				)
			}

			n.mnemonic, n.mnemonicIndex = KeyForRune(rs[i]), i

		case "accelerator":
			if err := b.accelerator(ctx, l, n, value); err != nil {
				return err
			}

		case "setAttribute":
			attrs = append(attrs, stringValues(s)...)

		case "setValue":
			values = append(values, stringValues(s)...)

		case "targetId":
			targets = append(targets, stringValues(s)...)
		}
	}

	if d.bang {
		if _, at := stripBang(d.caption); at >= 0 {
			if rs := []rune(plain(n)); at < len(rs) {
				n.mnemonic, n.mnemonicIndex = KeyForRune(rs[at]), at
			}
		}
	}

	if len(attrs) == 0 && len(values) == 0 && len(targets) == 0 {
		return nil
	}

	links, err := parseLinks(attrs, values, targets)
	if err != nil {
		return err
	}

	for _, lk := range links {
		if !lk.known() {
			b.warn(ctx, "unknown linked attribute ignored", l,
				slog.String("attribute", lk.attr))
		}
	}

	index := b.index
	n.actions = append(n.actions, func(context.Context) error {
		for _, lk := range links {
			if t := index.Lookup(lk.target); t != nil {
				lk.apply(t)
			}
		}

		return nil
	})

	return nil
}

func (b *builder) accelerator(ctx context.Context, l line, n *Node, spec string) error {
	if n.kind == KindMenu {
		b.warn(ctx, "accelerator on menu ignored", l, slog.String("accelerator", spec))

		return nil
	}

	ks, err := ParseKeyStroke(spec)
	if err != nil {
		b.warn(ctx, "invalid accelerator", l,
			slog.String("accelerator", spec),
			slog.Any("error", err),
		)
	}

	if prev, dup := b.accels[ks]; dup {
		return ErrDuplicateAccelerator.With(
			slog.String("accelerator", spec),
			slog.String("previous", prev),
		)
	}

	b.accels[ks] = fmt.Sprintf("%s:%d", l.file, l.num)
	n.SetAccelerator(ks)

	return nil
}

// link is one linked-attribute triple: on click, attribute attr of the
// slider registered under target is set from value.
type link struct {
	attr   string
	value  int
	suffix string
	target string
}

func parseLinks(attrs, values, targets []string) ([]link, error) {
	if len(attrs) != len(values) || len(values) != len(targets) {
		return nil, ErrLinkedAttribute.With(
			slog.Int("setAttribute", len(attrs)),
			slog.Int("setValue", len(values)),
			slog.Int("targetId", len(targets)),
		)
	}

	links := make([]link, len(attrs))

	for i, v := range values {
		var suffix string

		switch {
		case strings.HasSuffix(v, "--"):
			suffix = "--"
		case strings.HasSuffix(v, "+"):
			suffix = "+"
		case strings.HasSuffix(v, "-"):
			suffix = "-"
		}

		num, err := strconv.Atoi(strings.TrimSuffix(v, suffix))
		if err != nil {
			return nil, ErrInvalidSetting.Wrap(err).With(slog.String("setValue", v))
		}

		links[i] = link{attr: attrs[i], value: num, suffix: suffix, target: targets[i]}
	}

	return links, nil
}

func (lk link) known() bool {
	switch lk.attr {
	case "min", "max", "extent", "value":
		return true
	}

	return false
}

// adjust combines the link value with the current attribute value.
func (lk link) adjust(cur int) int {
	switch lk.suffix {
	case "+":
		return lk.value + cur
	case "-":
		return cur - lk.value
	case "--":
		return lk.value - cur
	}

	return lk.value
}

func (lk link) apply(t *Node) {
	if t.slider == nil {
		return
	}

	r := *t.slider

	switch lk.attr {
	case "min":
		v := min(lk.adjust(r.min), r.max)
		if r.value < v {
			t.SetValue(v)
		}

		t.SetMinimum(v)

	case "max":
		v := max(lk.adjust(r.max), r.min)
		if r.value > v {
			t.SetValue(v)
		}

		t.SetMaximum(v)

	case "extent":
		t.SetExtent(min(lk.adjust(r.extent), r.max-r.min))

	case "value":
		t.SetValue(max(r.min, min(lk.adjust(r.value), r.max)))
	}
}
