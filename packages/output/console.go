package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/gotruth/packages/convert"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

// plural returns "s" unless n is 1.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

type ConsoleFormatter struct {
	writer   io.Writer
	verbose  bool
	noColor  bool
	showDiff bool
	totals   totals
}

// totals accumulates counts across files.
type totals struct {
	files     int
	changed   int
	failed    int
	converted int
	skipped   int
	dropped   int
}

func (t *totals) add(r *convert.Result) {
	t.files++
	if r.Changed() {
		t.changed++
	}
	t.converted += r.Converted
	t.skipped += r.Skipped
	t.dropped += r.DroppedMessages
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithDiff prints the changes made to each file, for dry runs.
func WithDiff(d bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.showDiff = d
	}
}

func (f *ConsoleFormatter) FormatResult(result *convert.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	f.totals.add(result)

	if !result.Changed() {
		fmt.Fprintf(f.writer, "  %s %s %s\n", yellow("-"), result.Path, cyan("(nothing to convert)"))
	} else {
		fmt.Fprintf(f.writer, "  %s Converted %s (%d assertion%s)\n",
			green("✓"), result.Path, result.Converted, plural(result.Converted))
	}

	if result.Skipped > 0 {
		fmt.Fprintf(f.writer, "    %s\n", yellow(fmt.Sprintf("%d assertion%s left unchanged", result.Skipped, plural(result.Skipped))))
	}
	if result.DroppedMessages > 0 {
		fmt.Fprintf(f.writer, "    %s\n", yellow(fmt.Sprintf("%d message%s dropped", result.DroppedMessages, plural(result.DroppedMessages))))
	}

	if f.verbose {
		for _, w := range result.Warnings {
			fmt.Fprintf(f.writer, "    %s line %d: %s\n", yellow("→"), w.Line, w.Message)
		}
	}

	if f.showDiff && result.Changed() {
		red := color.New(color.FgRed).SprintFunc()
		var r lineDiff
		cmp.Equal(lines(result.Source), lines(result.Output), cmp.Reporter(&r))
		fmt.Fprintf(f.writer, "    Diff (-original +converted):\n")
		for _, l := range r.lines {
			if strings.HasPrefix(l, "-") {
				fmt.Fprintf(f.writer, "    %s\n", red(l))
			} else {
				fmt.Fprintf(f.writer, "    %s\n", green(l))
			}
		}
	}
}

func lines(src []byte) []string {
	return strings.Split(string(src), "\n")
}

// lineDiff is a cmp.Reporter that records removed and added lines of two
// []string values in order.
type lineDiff struct {
	path  cmp.Path
	lines []string
}

func (d *lineDiff) PushStep(ps cmp.PathStep) {
	d.path = append(d.path, ps)
}

func (d *lineDiff) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}
	vx, vy := d.path.Last().Values()
	if vx.IsValid() {
		d.lines = append(d.lines, "-"+vx.String())
	}
	if vy.IsValid() {
		d.lines = append(d.lines, "+"+vy.String())
	}
}

func (d *lineDiff) PopStep() {
	d.path = d.path[:len(d.path)-1]
}

func (f *ConsoleFormatter) FormatError(path string, err error) {
	red := color.New(color.FgRed).SprintFunc()
	f.totals.files++
	f.totals.failed++
	if path == "" {
		fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
		return
	}
	fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), path, red(fmt.Sprintf("(%v)", err)))
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n\n", bold("truth"), version)
}

// Flush writes the summary line for all files seen so far.
func (f *ConsoleFormatter) Flush(totalDuration time.Duration) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	t := f.totals
	fmt.Fprintf(f.writer, "\nFiles:      ")
	if t.changed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d converted", t.changed)))
	}
	if t.failed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", t.failed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", t.files)

	fmt.Fprintf(f.writer, "Assertions: %d converted", t.converted)
	if t.skipped > 0 {
		fmt.Fprintf(f.writer, ", %s", yellow(fmt.Sprintf("%d skipped", t.skipped)))
	}
	if t.dropped > 0 {
		fmt.Fprintf(f.writer, ", %s", yellow(fmt.Sprintf("%d messages dropped", t.dropped)))
	}
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Time:       %dms\n", totalDuration.Milliseconds())
	return nil
}
