package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/gotruth/packages/convert"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Files    []JSONFile  `json:"files"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the conversion summary
type JSONSummary struct {
	Files           int `json:"files"`
	Changed         int `json:"changed"`
	Failed          int `json:"failed"`
	Converted       int `json:"converted"`
	Skipped         int `json:"skipped"`
	DroppedMessages int `json:"droppedMessages"`
}

// JSONFile represents the conversion of a single file
type JSONFile struct {
	Path            string        `json:"path"`
	Changed         bool          `json:"changed"`
	Converted       int           `json:"converted"`
	Skipped         int           `json:"skipped"`
	DroppedMessages int           `json:"droppedMessages"`
	Error           string        `json:"error,omitempty"`
	Warnings        []JSONWarning `json:"warnings,omitempty"`
}

// JSONWarning represents a note about one assertion
type JSONWarning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// JSONFormatter formats conversion results as JSON
type JSONFormatter struct {
	writer io.Writer
	files  []JSONFile
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		files:  make([]JSONFile, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *convert.Result) {
	file := JSONFile{
		Path:            result.Path,
		Changed:         result.Changed(),
		Converted:       result.Converted,
		Skipped:         result.Skipped,
		DroppedMessages: result.DroppedMessages,
	}
	for _, w := range result.Warnings {
		file.Warnings = append(file.Warnings, JSONWarning{Line: w.Line, Message: w.Message})
	}
	f.files = append(f.files, file)
}

func (f *JSONFormatter) FormatError(path string, err error) {
	f.files = append(f.files, JSONFile{Path: path, Error: err.Error()})
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var summary JSONSummary
	for _, file := range f.files {
		summary.Files++
		if file.Error != "" {
			summary.Failed++
			continue
		}
		if file.Changed {
			summary.Changed++
		}
		summary.Converted += file.Converted
		summary.Skipped += file.Skipped
		summary.DroppedMessages += file.DroppedMessages
	}

	output := JSONOutput{
		Summary:  summary,
		Files:    f.files,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
