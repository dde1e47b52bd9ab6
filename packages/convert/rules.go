package convert

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// assertion is one testify call being rewritten.
type assertion struct {
	entry    string     // qualified entry point, e.g. truth.AssertThat
	t        string     // source of the testing.T argument
	args     []ast.Expr // arguments after t, messages removed
	src      func(ast.Expr) string
	expected []string
	imports  map[string]bool // extra imports the replacement needs
}

// rule rewrites one testify function. args is the number of arguments
// after t; anything beyond that is a message.
type rule struct {
	args    int
	rewrite func(a *assertion) string
}

var rules = map[string]rule{
	"Equal":          {2, rewriteEqual},
	"EqualValues":    {2, rewriteEqual},
	"NotEqual":       {2, rewriteNotEqual},
	"NotEqualValues": {2, rewriteNotEqual},
	"Same":           {2, expectedFirst("IsSameAs")},
	"NotSame":        {2, expectedFirst("IsNotSameAs")},
	"ElementsMatch":  {2, expectedFirst("ContainsExactlyElementsIn")},
	"JSONEq":         {2, expectedFirst("IsJSONEqualTo")},
	"InDelta":        {3, rewriteInDelta},

	"True":     {1, rewriteTrue},
	"False":    {1, rewriteFalse},
	"Nil":      {1, unary("IsNil")},
	"NotNil":   {1, unary("IsNotNil")},
	"Empty":    {1, unary("IsEmpty")},
	"NotEmpty": {1, unary("IsNotEmpty")},
	"Zero":     {1, unary("IsZero")},
	"NotZero":  {1, unary("IsNonZero")},
	"Positive": {1, compareWith("IsGreaterThan", "0")},
	"Negative": {1, compareWith("IsLessThan", "0")},

	"Len":         {2, subjectFirst("HasSize")},
	"Contains":    {2, rewriteContains("Contains", "IsAnyOf")},
	"NotContains": {2, rewriteContains("DoesNotContain", "IsNoneOf")},
	"Subset":      {2, subjectFirst("ContainsAllIn")},
	"IsType":      {2, rewriteIsType},
	"Regexp":      {2, subjectSecond("ContainsMatch")},
	"NotRegexp":   {2, subjectSecond("DoesNotContainMatch")},

	"Greater":        {2, ordering(token.GTR)},
	"GreaterOrEqual": {2, ordering(token.GEQ)},
	"Less":           {2, ordering(token.LSS)},
	"LessOrEqual":    {2, ordering(token.LEQ)},

	"Error":         {1, unary("IsNotNil")},
	"NoError":       {1, unary("IsNil")},
	"ErrorIs":       {2, subjectFirst("ErrorIs")},
	"ErrorAs":       {2, subjectFirst("ErrorAs")},
	"EqualError":    {2, subjectFirst("HasMessage")},
	"ErrorContains": {2, rewriteErrorContains},

	"Panics":    {1, unary("Panics")},
	"NotPanics": {1, unary("DoesNotPanic")},
}

// lookupRule finds the rule for a testify function, accepting the
// formatted variants (Equalf, Lenf, ...).
func lookupRule(name string) (rule, bool) {
	if r, ok := rules[name]; ok {
		return r, true
	}
	if base, ok := strings.CutSuffix(name, "f"); ok {
		r, ok := rules[base]
		return r, ok
	}
	return rule{}, false
}

// orderingMethods maps a comparison to the truth method asserting it.
var orderingMethods = map[token.Token]string{
	token.GTR: "IsGreaterThan",
	token.GEQ: "IsAtLeast",
	token.LSS: "IsLessThan",
	token.LEQ: "IsAtMost",
}

// mirrored maps a comparison to the one that holds with its operands
// swapped.
var mirrored = map[token.Token]token.Token{
	token.GTR: token.LSS,
	token.GEQ: token.LEQ,
	token.LSS: token.GTR,
	token.LEQ: token.GEQ,
}

// negated maps a comparison to its logical negation.
var negated = map[token.Token]token.Token{
	token.GTR: token.LEQ,
	token.GEQ: token.LSS,
	token.LSS: token.GEQ,
	token.LEQ: token.GTR,
}

var actualNames = []string{"got", "actual", "result"}

func (a *assertion) that(x ast.Expr) string {
	return fmt.Sprintf("%s(%s, %s)", a.entry, a.t, a.src(x))
}

func (a *assertion) call(subject ast.Expr, method string, args ...string) string {
	return a.that(subject) + "." + method + "(" + strings.Join(args, ", ") + ")"
}

// orient picks the subject out of a testify (expected, actual) pair,
// swapping them when the actual position holds what looks like the
// expected value.
func (a *assertion) orient(expected, actual ast.Expr) (subject, want ast.Expr) {
	if a.looksExpected(actual) && !a.looksExpected(expected) ||
		hasName(expected, actualNames) && !hasName(actual, actualNames) {
		return expected, actual
	}
	return actual, expected
}

func (a *assertion) looksExpected(x ast.Expr) bool {
	return isLiteral(x) || hasName(x, a.expected)
}

func isLiteral(x ast.Expr) bool {
	switch e := unparen(x).(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.UnaryExpr:
		_, ok := unparen(e.X).(*ast.BasicLit)
		return ok && (e.Op == token.SUB || e.Op == token.ADD)
	case *ast.Ident:
		return e.Name == "true" || e.Name == "false" || e.Name == "nil"
	}
	return false
}

// hasName reports whether x is an identifier or field whose name is one of
// names, or starts with one followed by an upper-case letter (wantErr,
// tt.expectedUser, tc.Want).
func hasName(x ast.Expr, names []string) bool {
	var name string
	switch e := unparen(x).(type) {
	case *ast.Ident:
		name = e.Name
	case *ast.SelectorExpr:
		name = e.Sel.Name
	default:
		return false
	}
	name = lowerFirst(name)
	for _, n := range names {
		rest, ok := strings.CutPrefix(name, n)
		if !ok {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); rest == "" || unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func unparen(x ast.Expr) ast.Expr {
	for {
		p, ok := x.(*ast.ParenExpr)
		if !ok {
			return x
		}
		x = p.X
	}
}

func isIdent(x ast.Expr, name string) bool {
	id, ok := unparen(x).(*ast.Ident)
	return ok && id.Name == name
}

func isZeroLiteral(x ast.Expr) bool {
	lit, ok := unparen(x).(*ast.BasicLit)
	return ok && lit.Kind == token.INT && lit.Value == "0"
}

func isIntLiteral(x ast.Expr) bool {
	lit, ok := unparen(x).(*ast.BasicLit)
	return ok && lit.Kind == token.INT
}

// isEmptyLiteral matches "", `` and empty slice or map literals.
func isEmptyLiteral(x ast.Expr) bool {
	switch e := unparen(x).(type) {
	case *ast.BasicLit:
		return e.Kind == token.STRING && (e.Value == `""` || e.Value == "``")
	case *ast.CompositeLit:
		return isContainerType(e.Type) && len(e.Elts) == 0
	}
	return false
}

func isContainerType(x ast.Expr) bool {
	switch x.(type) {
	case *ast.ArrayType, *ast.MapType:
		return true
	}
	return false
}

// sliceElements returns the sources of the elements of a non-empty slice
// or array literal, to be passed as separate arguments. Untyped constants
// are converted to the element type so they keep the literal's typing.
func (a *assertion) sliceElements(x ast.Expr) ([]string, bool) {
	lit, ok := unparen(x).(*ast.CompositeLit)
	if !ok || len(lit.Elts) == 0 {
		return nil, false
	}
	arr, ok := lit.Type.(*ast.ArrayType)
	if !ok {
		return nil, false
	}
	out := make([]string, len(lit.Elts))
	for i, e := range lit.Elts {
		switch el := e.(type) {
		case *ast.KeyValueExpr:
			return nil, false
		case *ast.CompositeLit:
			if el.Type == nil {
				return nil, false
			}
		}
		out[i] = a.src(e)
		if !isUntypedConstant(e) || keepsDefaultType(arr.Elt) {
			continue
		}
		switch arr.Elt.(type) {
		case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
			out[i] = a.src(arr.Elt) + "(" + out[i] + ")"
		default:
			return nil, false
		}
	}
	return out, true
}

// isUntypedConstant matches literal constant expressions, such as 1,
// -0.5, "a" or 1 << 3.
func isUntypedConstant(x ast.Expr) bool {
	switch e := unparen(x).(type) {
	case *ast.BasicLit:
		return true
	case *ast.UnaryExpr:
		return isUntypedConstant(e.X)
	case *ast.BinaryExpr:
		return isUntypedConstant(e.X) && isUntypedConstant(e.Y)
	case *ast.Ident:
		return e.Name == "true" || e.Name == "false"
	}
	return false
}

// keepsDefaultType reports whether an untyped constant of element type
// typ still compares equal when it takes its default type instead.
// Numbers compare by value across kinds, except that float32 and
// complex64 round.
func keepsDefaultType(typ ast.Expr) bool {
	switch t := typ.(type) {
	case *ast.Ident:
		switch t.Name {
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"byte", "rune", "float64", "complex128", "string", "bool", "any":
			return true
		}
	case *ast.InterfaceType:
		return t.Methods == nil || len(t.Methods.List) == 0
	}
	return false
}

func isMapLiteral(x ast.Expr) bool {
	lit, ok := unparen(x).(*ast.CompositeLit)
	if !ok || len(lit.Elts) == 0 {
		return false
	}
	_, ok = lit.Type.(*ast.MapType)
	return ok
}

// lenArgument returns x when call is len(x).
func lenArgument(call ast.Expr) (ast.Expr, bool) {
	c, ok := unparen(call).(*ast.CallExpr)
	if !ok || len(c.Args) != 1 || !isIdent(c.Fun, "len") {
		return nil, false
	}
	return c.Args[0], true
}

func unary(method string) func(a *assertion) string {
	return func(a *assertion) string {
		return a.call(a.args[0], method)
	}
}

func compareWith(method, value string) func(a *assertion) string {
	return func(a *assertion) string {
		return a.call(a.args[0], method, value)
	}
}

// subjectFirst handles functions taking (subject, argument).
func subjectFirst(method string) func(a *assertion) string {
	return func(a *assertion) string {
		return a.call(a.args[0], method, a.src(a.args[1]))
	}
}

// subjectSecond handles functions taking (argument, subject).
func subjectSecond(method string) func(a *assertion) string {
	return func(a *assertion) string {
		return a.call(a.args[1], method, a.src(a.args[0]))
	}
}

// expectedFirst handles functions taking (expected, actual).
func expectedFirst(method string) func(a *assertion) string {
	return func(a *assertion) string {
		subject, want := a.orient(a.args[0], a.args[1])
		return a.call(subject, method, a.src(want))
	}
}

func rewriteEqual(a *assertion) string {
	subject, want := a.orient(a.args[0], a.args[1])
	return a.equal(subject, want, false)
}

func rewriteNotEqual(a *assertion) string {
	subject, want := a.orient(a.args[0], a.args[1])
	return a.equal(subject, want, true)
}

// equal renders subject == want, or subject != want when negate is set,
// using the most specific predicate the expected value allows.
func (a *assertion) equal(subject, want ast.Expr, negate bool) string {
	pick := func(pos, neg string) string {
		if negate {
			return neg
		}
		return pos
	}
	switch {
	case isIdent(want, "true"):
		return a.call(subject, pick("IsTrue", "IsFalse"))
	case isIdent(want, "false"):
		return a.call(subject, pick("IsFalse", "IsTrue"))
	case isIdent(want, "nil"):
		return a.call(subject, pick("IsNil", "IsNotNil"))
	case isEmptyLiteral(want):
		return a.call(subject, pick("IsEmpty", "IsNotEmpty"))
	case isZeroLiteral(want):
		if x, ok := lenArgument(subject); ok {
			return a.call(x, pick("IsEmpty", "IsNotEmpty"))
		}
		return a.call(subject, pick("IsZero", "IsNonZero"))
	case negate:
		return a.call(subject, "IsNotEqualTo", a.src(want))
	}

	if x, ok := lenArgument(subject); ok && isIntLiteral(want) {
		return a.call(x, "HasSize", a.src(want))
	}
	if elems, ok := a.sliceElements(want); ok {
		s := a.call(subject, "ContainsExactly", elems...)
		if len(elems) > 1 {
			s += ".InOrder()"
		}
		return s
	}
	if isMapLiteral(want) {
		return a.call(subject, "ContainsExactlyItemsIn", a.src(want))
	}
	return a.call(subject, "IsEqualTo", a.src(want))
}

func rewriteInDelta(a *assertion) string {
	subject, want := a.orient(a.args[0], a.args[1])
	return a.that(subject) + ".IsWithin(" + a.src(a.args[2]) + ").Of(" + a.src(want) + ")"
}

func rewriteIsType(a *assertion) string {
	a.imports["reflect"] = true
	return a.call(a.args[1], "IsInstanceOf", "reflect.TypeOf("+a.src(a.args[0])+")")
}

func rewriteErrorContains(a *assertion) string {
	return a.that(a.args[0]) + ".HasMessageThat().Contains(" + a.src(a.args[1]) + ")"
}

// rewriteContains handles Contains(t, container, element). A slice literal
// container reads better as a membership test on the element.
func rewriteContains(method, literalMethod string) func(a *assertion) string {
	return func(a *assertion) string {
		if elems, ok := a.sliceElements(a.args[0]); ok {
			return a.call(a.args[1], literalMethod, elems...)
		}
		return a.call(a.args[0], method, a.src(a.args[1]))
	}
}

// ordering handles Greater(t, e1, e2) and friends, where e1 is the subject
// unless it is the only literal.
func ordering(op token.Token) func(a *assertion) string {
	return func(a *assertion) string {
		return a.compare(a.args[0], op, a.args[1])
	}
}

func (a *assertion) compare(x ast.Expr, op token.Token, y ast.Expr) string {
	if a.looksExpected(x) && !a.looksExpected(y) {
		x, y, op = y, x, mirrored[op]
	}
	return a.call(x, orderingMethods[op], a.src(y))
}

// stringsCall matches strings.<fn>(s, arg).
func stringsCall(x ast.Expr) (fn string, s, arg ast.Expr, ok bool) {
	call, isCall := unparen(x).(*ast.CallExpr)
	if !isCall || len(call.Args) != 2 {
		return "", nil, nil, false
	}
	sel, isSel := call.Fun.(*ast.SelectorExpr)
	if !isSel {
		return "", nil, nil, false
	}
	pkg, isPkg := sel.X.(*ast.Ident)
	if !isPkg || pkg.Name != "strings" || pkg.Obj != nil {
		return "", nil, nil, false
	}
	return sel.Sel.Name, call.Args[0], call.Args[1], true
}

func rewriteTrue(a *assertion) string {
	x := unparen(a.args[0])
	if fn, s, arg, ok := stringsCall(x); ok {
		switch fn {
		case "HasPrefix":
			return a.call(s, "StartsWith", a.src(arg))
		case "HasSuffix":
			return a.call(s, "EndsWith", a.src(arg))
		case "Contains":
			return a.call(s, "Contains", a.src(arg))
		}
	}
	switch e := x.(type) {
	case *ast.BinaryExpr:
		if s, ok := a.condition(e, false); ok {
			return s
		}
	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			return a.call(e.X, "IsFalse")
		}
	}
	return a.call(a.args[0], "IsTrue")
}

func rewriteFalse(a *assertion) string {
	x := unparen(a.args[0])
	if fn, s, arg, ok := stringsCall(x); ok && fn == "Contains" {
		return a.call(s, "DoesNotContain", a.src(arg))
	}
	switch e := x.(type) {
	case *ast.BinaryExpr:
		if s, ok := a.condition(e, true); ok {
			return s
		}
	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			return a.call(e.X, "IsTrue")
		}
	}
	return a.call(a.args[0], "IsFalse")
}

// condition renders a comparison asserted true, or false when negate is
// set. The left operand is the subject unless it looks like the expected
// value.
func (a *assertion) condition(e *ast.BinaryExpr, negate bool) (string, bool) {
	op := e.Op
	switch op {
	case token.EQL, token.NEQ:
		subject, want := a.orient(e.Y, e.X)
		return a.equal(subject, want, (op == token.NEQ) != negate), true
	case token.GTR, token.GEQ, token.LSS, token.LEQ:
		if negate {
			op = negated[op]
		}
		return a.compare(e.X, op, e.Y), true
	}
	return "", false
}
