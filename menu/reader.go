package menu

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"
	"github.com/klauspost/readahead"

	"github.com/ardnew/jmml/log"
	"github.com/ardnew/jmml/pkg"
)

// maxLineSize bounds a single physical configuration line.
const maxLineSize = 1 << 20

// line is one logical configuration line.
type line struct {
	text string
	file string
	num  int
}

func (l line) attrs() []slog.Attr {
	return []slog.Attr{slog.String("file", l.file), slog.Int("line", l.num)}
}

// lineReader yields the logical lines of a configuration file with its
// includes spliced in.
type lineReader struct {
	fsys   fs.FS
	dirs   []string
	logger log.Logger
	quiet  func() bool
}

type source struct {
	name string
	rc   io.ReadCloser
	scan *bufio.Scanner
	num  int
}

func (s *source) next() (string, bool) {
	if !s.scan.Scan() {
		return "", false
	}

	s.num++

	return strings.TrimSuffix(s.scan.Text(), "\r"), true
}

// searchPath merges dirs with the JMML_PATH environment variable, keeping
// only directories that exist in fsys.
func searchPath(fsys fs.FS, dirs ...string) []string {
	s := mung.Make(
		mung.WithSubjectItems(os.Getenv(pkg.EnvIncludePath)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(func(dir string) bool {
			fi, err := fs.Stat(fsys, dir)

			return err == nil && fi.IsDir()
		}),
	).String()

	return filepath.SplitList(s)
}

func (r *lineReader) open(name string) (*source, error) {
	f, err := r.fsys.Open(name)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("file", name))
	}

	rc := readahead.NewReadCloser(f)
	scan := bufio.NewScanner(rc)
	scan.Buffer(nil, maxLineSize)

	return &source{name: name, rc: rc, scan: scan}, nil
}

// resolve locates an included file: relative to the including file, then as
// given, then in each search directory. If none exists, the first
// candidate is returned so that opening it reports the failure.
func (r *lineReader) resolve(from, name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	candidates := []string{
		filepath.Join(filepath.Dir(from), name),
		filepath.Clean(name),
	}

	for _, dir := range r.dirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	for _, c := range candidates {
		if _, err := fs.Stat(r.fsys, c); err == nil {
			return c
		}
	}

	return candidates[0]
}

func (r *lineReader) echo(ctx context.Context, msg string, l line) {
	if r.quiet() || strings.HasPrefix(l.text, "&quite!") {
		return
	}

	r.logger.InfoContext(ctx, msg,
		slog.String("file", l.file),
		slog.Int("line", l.num),
		slog.String("text", l.text),
	)
}

// include reports the path named by an include line, whose first
// non-blank character is '@'.
func include(text string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(text, " \t"), "@")
	if !ok {
		return "", false
	}

	return strings.TrimSpace(rest), true
}

// lines iterates over the logical lines of root. Every source is closed
// when iteration ends, whether it completes, fails or is abandoned.
func (r *lineReader) lines(ctx context.Context, root string) iter.Seq2[line, error] {
	return func(yield func(line, error) bool) {
		var stack []*source

		defer func() {
			for _, s := range slices.Backward(stack) {
				_ = s.rc.Close()
			}
		}()

		src, err := r.open(root)
		if err != nil {
			yield(line{file: root}, err)

			return
		}

		stack = append(stack, src)

		for len(stack) > 0 {
			top := stack[len(stack)-1]

			text, ok := top.next()
			if !ok {
				if err := top.scan.Err(); err != nil {
					yield(line{file: top.name, num: top.num},
						ErrReadInput.Wrap(err).With(slog.String("file", top.name)))

					return
				}

				_ = top.rc.Close()
				stack = stack[:len(stack)-1]

				continue
			}

			l := line{text: text, file: top.name, num: top.num}
			r.echo(ctx, "config line", l)

			if name, ok := include(text); ok {
				name = r.resolve(top.name, name)

				if slices.ContainsFunc(stack, func(s *source) bool {
					return filepath.Clean(s.name) == filepath.Clean(name)
				}) {
					yield(l, ErrIncludeCycle.With(append(l.attrs(),
						slog.String("include", name))...))

					return
				}

				inc, err := r.open(name)
				if err != nil {
					yield(l, WrapError(err).With(l.attrs()...))

					return
				}

				stack = append(stack, inc)

				continue
			}

			for strings.HasSuffix(l.text, `\`) {
				next, ok := top.next()
				if !ok {
					break
				}

				r.echo(ctx, "config line continued",
					line{text: next, file: top.name, num: top.num})

				l.text = strings.TrimSuffix(l.text, `\`) + next
			}

			if strings.Trim(l.text, " \t") == "" {
				continue
			}

			if !yield(l, nil) {
				return
			}
		}
	}
}
