package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/gotruth/packages/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *convert.Result {
	return &convert.Result{
		Path:            "store_test.go",
		Source:          []byte("a\nassert.Nil(t, err)\n"),
		Output:          []byte("a\ntruth.ExpectThat(t, err).IsNil()\n"),
		Converted:       2,
		Skipped:         1,
		DroppedMessages: 1,
		Warnings:        []convert.Warning{{Line: 3, Message: "assert.Equal: message arguments dropped"}},
	}
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatResult(sampleResult())
	f.FormatResult(&convert.Result{Path: "plain_test.go", Source: []byte("x"), Output: []byte("x")})
	f.FormatError("bad_test.go", errors.New("bad_test.go:3: syntax error"))
	require.NoError(t, f.Flush(5*time.Millisecond))

	expected := "  ✓ Converted store_test.go (2 assertions)\n" +
		"    1 assertion left unchanged\n" +
		"    1 message dropped\n" +
		"    → line 3: assert.Equal: message arguments dropped\n" +
		"  - plain_test.go (nothing to convert)\n" +
		"  x bad_test.go (bad_test.go:3: syntax error)\n" +
		"\nFiles:      1 converted, 1 failed, 3 total\n" +
		"Assertions: 2 converted, 1 skipped, 1 messages dropped\n" +
		"Time:       5ms\n"
	assert.Equal(t, expected, buf.String())
}

func TestConsoleFormatter_Diff(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithDiff(true))

	f.FormatResult(sampleResult())

	assert.Equal(t, "  ✓ Converted store_test.go (2 assertions)\n"+
		"    1 assertion left unchanged\n"+
		"    1 message dropped\n"+
		"    Diff (-original +converted):\n"+
		"    -assert.Nil(t, err)\n"+
		"    +truth.ExpectThat(t, err).IsNil()\n", buf.String())
}

func TestConsoleFormatter_Header(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleFormatter(WithWriter(&buf), WithNoColor(true)).FormatHeader("1.2.3")
	assert.Equal(t, "truth 1.2.3\n\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatHeader("1.2.3")
	f.FormatResult(sampleResult())
	f.FormatError("bad_test.go", errors.New("syntax error"))
	require.NoError(t, f.Flush(7*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, JSONSummary{Files: 2, Changed: 1, Failed: 1, Converted: 2, Skipped: 1, DroppedMessages: 1}, out.Summary)
	assert.Equal(t, float64(7), out.Duration)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "store_test.go", out.Files[0].Path)
	assert.True(t, out.Files[0].Changed)
	assert.Equal(t, []JSONWarning{{Line: 3, Message: "assert.Equal: message arguments dropped"}}, out.Files[0].Warnings)
	assert.Equal(t, "syntax error", out.Files[1].Error)
}
