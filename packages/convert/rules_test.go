package convert

import (
	"go/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasName(t *testing.T) {
	names := []string{"want", "expected"}
	tests := []struct {
		expr     string
		expected bool
	}{
		{"want", true},
		{"wantErr", true},
		{"tt.want", true},
		{"tc.Want", true},
		{"tc.ExpectedUser", true},
		{"wanted", false},
		{"wanton", false},
		{"got", false},
		{"want()", false},
		{"(want)", true},
	}
	for _, tt := range tests {
		x, err := parser.ParseExpr(tt.expr)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, hasName(x, names), tt.expr)
	}
}

func TestIsLiteral(t *testing.T) {
	for _, src := range []string{`"a"`, "1", "-1", "2.5", "nil", "true", "[]int{1}", "T{}"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.True(t, isLiteral(x), src)
	}
	for _, src := range []string{"x", "f()", "-x", "a.b"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.False(t, isLiteral(x), src)
	}
}

func TestLookupRule(t *testing.T) {
	r, ok := lookupRule("Equal")
	require.True(t, ok)
	assert.Equal(t, 2, r.args)

	r, ok = lookupRule("InDeltaf")
	require.True(t, ok)
	assert.Equal(t, 3, r.args)

	_, ok = lookupRule("Eventually")
	assert.False(t, ok)
	_, ok = lookupRule("f")
	assert.False(t, ok)
}

func TestKeepsDefaultType(t *testing.T) {
	for _, src := range []string{"int", "uint8", "float64", "string", "bool", "any", "interface{}"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.True(t, keepsDefaultType(x), src)
	}
	for _, src := range []string{"float32", "complex64", "time.Duration", "MyString", "interface{ M() }"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.False(t, keepsDefaultType(x), src)
	}
}

func TestIsUntypedConstant(t *testing.T) {
	for _, src := range []string{"1", "-0.5", `"a"`, "1 << 3", "(2)", "true"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.True(t, isUntypedConstant(x), src)
	}
	for _, src := range []string{"x", "nil", "f()", "-x", "T{}"} {
		x, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.False(t, isUntypedConstant(x), src)
	}
}
