package convert

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/gotruth/packages/core/config"
	"github.com/abdul-hamid-achik/gotruth/packages/logging"
)

const (
	assertPath  = "github.com/stretchr/testify/assert"
	requirePath = "github.com/stretchr/testify/require"
)

// ErrSyntax marks source files that could not be parsed.
var ErrSyntax = errors.New("syntax error")

// ConvertError reports a file that could not be converted.
type ConvertError struct {
	File string
	Line int
	Err  error
}

func (e *ConvertError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// Warning is a note about one assertion, such as a dropped message.
type Warning struct {
	Line    int
	Message string
}

// Result describes the conversion of one file.
type Result struct {
	Path            string
	Source          []byte
	Output          []byte
	Converted       int // assertions rewritten
	Skipped         int // testify calls with no fluent equivalent
	DroppedMessages int // assertions whose message arguments were dropped
	Warnings        []Warning
}

// Changed reports whether the output differs from the source.
func (r *Result) Changed() bool {
	return !bytes.Equal(r.Source, r.Output)
}

// Converter rewrites testify assertions into truth assertions.
type Converter struct {
	cfg    *config.Config
	logger *logging.Logger
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithConfig sets the import path, alias and entry points used in
// rewritten code.
func WithConfig(cfg *config.Config) Option {
	return func(c *Converter) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLogger sets the logger that receives warnings.
func WithLogger(l *logging.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter creates a new converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:    config.DefaultConfig(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile converts the file at path. The file itself is not modified.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return c.ConvertSource(path, src)
}

// ConvertSource converts Go source. filename is used in errors and
// warnings. A file without testify imports is returned unchanged.
func (c *Converter) ConvertSource(filename string, src []byte) (*Result, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	result := &Result{Path: filename, Source: src, Output: src}
	entries := c.testifyEntries(file)
	if len(entries) == 0 {
		return result, nil
	}

	rw := &rewriter{
		fset:    fset,
		tf:      fset.File(file.Pos()),
		src:     src,
		cfg:     c.cfg,
		logger:  c.logger.With("file", filename),
		entries: entries,
		imports: make(map[string]bool),
		result:  result,
	}

	var calls []*ast.CallExpr
	ast.Inspect(file, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if _, _, ok := rw.testifyCall(call); ok {
				calls = append(calls, call)
			}
		}
		return true
	})
	if len(calls) == 0 {
		return result, nil
	}

	// Innermost first, so an outer call sees its arguments already
	// rewritten.
	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].End()-calls[i].Pos() < calls[j].End()-calls[j].Pos()
	})
	for _, call := range calls {
		rw.rewrite(call)
	}
	rw.flushWarnings()
	if result.Converted == 0 {
		return result, nil
	}

	out, err := c.fixImports(filename, []byte(rw.splice(0, len(src))), rw.imports)
	if err != nil {
		return nil, err
	}
	result.Output = out
	return result, nil
}

// testifyEntries maps the local names of the testify assert and require
// imports to the truth entry point replacing them.
func (c *Converter) testifyEntries(file *ast.File) map[string]string {
	entries := make(map[string]string)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var entry, name string
		switch path {
		case assertPath:
			entry, name = c.cfg.AssertEntry, "assert"
		case requirePath:
			entry, name = c.cfg.RequireEntry, "require"
		default:
			continue
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		entries[name] = c.cfg.Qualifier() + "." + entry
	}
	return entries
}

func syntaxError(filename string, err error) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return &ConvertError{
			File: filename,
			Line: list[0].Pos.Line,
			Err:  fmt.Errorf("%w: %s", ErrSyntax, list[0].Msg),
		}
	}
	return &ConvertError{File: filename, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
}

type edit struct {
	start, end int
	text       string
}

type rewriter struct {
	fset    *token.FileSet
	tf      *token.File
	src     []byte
	cfg     *config.Config
	logger  *logging.Logger
	entries map[string]string
	imports map[string]bool
	result  *Result
	edits   []edit // non-overlapping, sorted by start
	pending []pendingWarning
}

// testifyCall matches <pkg>.<Func>(...) where pkg is a testify import.
func (rw *rewriter) testifyCall(call *ast.CallExpr) (pkg, fn string, ok bool) {
	sel, isSel := call.Fun.(*ast.SelectorExpr)
	if !isSel {
		return "", "", false
	}
	id, isIdent := sel.X.(*ast.Ident)
	if !isIdent || id.Obj != nil {
		return "", "", false
	}
	if _, known := rw.entries[id.Name]; !known {
		return "", "", false
	}
	return id.Name, sel.Sel.Name, true
}

func (rw *rewriter) offset(p token.Pos) int {
	return rw.tf.Offset(p)
}

func (rw *rewriter) line(p token.Pos) int {
	return rw.fset.Position(p).Line
}

// splice returns src[start:end] with the edits inside it applied.
func (rw *rewriter) splice(start, end int) string {
	var sb strings.Builder
	pos := start
	for _, e := range rw.edits {
		if e.start < start || e.end > end {
			continue
		}
		sb.Write(rw.src[pos:e.start])
		sb.WriteString(e.text)
		pos = e.end
	}
	sb.Write(rw.src[pos:end])
	return sb.String()
}

func (rw *rewriter) source(x ast.Expr) string {
	return rw.splice(rw.offset(x.Pos()), rw.offset(x.End()))
}

// replace records an edit, absorbing the edits it encloses.
func (rw *rewriter) replace(start, end int, text string) {
	kept := rw.edits[:0]
	for _, e := range rw.edits {
		if e.start >= start && e.end <= end {
			continue
		}
		kept = append(kept, e)
	}
	rw.edits = append(kept, edit{start: start, end: end, text: text})
	sort.Slice(rw.edits, func(i, j int) bool { return rw.edits[i].start < rw.edits[j].start })
}

type pendingWarning struct {
	pos     token.Pos
	line    int
	msg     string
	keyVals []any
}

// warn queues a warning for the call at pos. Calls are visited by size,
// so warnings are reported by flushWarnings in source order.
func (rw *rewriter) warn(pos token.Pos, msg string, keyVals ...any) {
	rw.pending = append(rw.pending, pendingWarning{pos: pos, line: rw.line(pos), msg: msg, keyVals: keyVals})
}

func (rw *rewriter) flushWarnings() {
	sort.SliceStable(rw.pending, func(i, j int) bool { return rw.pending[i].pos < rw.pending[j].pos })
	for _, w := range rw.pending {
		rw.result.Warnings = append(rw.result.Warnings, Warning{Line: w.line, Message: w.msg})
		rw.logger.Warn(w.msg, append([]any{"line", w.line}, w.keyVals...)...)
	}
	rw.pending = nil
}

func (rw *rewriter) rewrite(call *ast.CallExpr) {
	pkg, fn, _ := rw.testifyCall(call)
	name := pkg + "." + fn
	line := rw.line(call.Pos())

	r, ok := lookupRule(fn)
	if !ok {
		rw.result.Skipped++
		rw.logger.Debug("no fluent equivalent", "line", line, "assertion", name)
		return
	}
	// t plus the fixed arguments; a spread among them cannot be split.
	if len(call.Args) < r.args+1 || call.Ellipsis.IsValid() && len(call.Args) == r.args+1 {
		rw.result.Skipped++
		rw.warn(call.Pos(), fmt.Sprintf("%s has unexpected arguments, left unchanged", name), "assertion", name)
		return
	}

	a := &assertion{
		entry:    rw.entries[pkg],
		t:        rw.source(call.Args[0]),
		args:     call.Args[1 : r.args+1],
		src:      rw.source,
		expected: rw.cfg.ExpectedNames,
		imports:  rw.imports,
	}
	text := r.rewrite(a)

	if extra := len(call.Args) - r.args - 1; extra > 0 {
		rw.result.DroppedMessages++
		rw.warn(call.Pos(), fmt.Sprintf("%s: message arguments dropped", name), "assertion", name, "dropped", extra)
	}
	rw.replace(rw.offset(call.Pos()), rw.offset(call.End()), text)
	rw.result.Converted++
}
