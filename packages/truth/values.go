package truth

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

var errUnordered = errors.New("unordered values")

// exportAll lets go-cmp look at unexported struct fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

type numKind int

const (
	signedKind numKind = iota + 1
	unsignedKind
	floatKind
	complexKind
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
	c    complex128
}

func toNumber(v any) (number, bool) {
	if v == nil {
		return number{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: signedKind, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: unsignedKind, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: floatKind, f: rv.Float()}, true
	case reflect.Complex64, reflect.Complex128:
		return number{kind: complexKind, c: rv.Complex()}, true
	}
	return number{}, false
}

func (n number) float() float64 {
	switch n.kind {
	case signedKind:
		return float64(n.i)
	case unsignedKind:
		return float64(n.u)
	case complexKind:
		return real(n.c)
	}
	return n.f
}

func (n number) complex() complex128 {
	if n.kind == complexKind {
		return n.c
	}
	return complex(n.float(), 0)
}

func (n number) isZero() bool {
	switch n.kind {
	case signedKind:
		return n.i == 0
	case unsignedKind:
		return n.u == 0
	case complexKind:
		return n.c == 0
	}
	return n.f == 0
}

func (n number) isNaN() bool {
	switch n.kind {
	case floatKind:
		return math.IsNaN(n.f)
	case complexKind:
		return cmplx.IsNaN(n.c)
	}
	return false
}

func (n number) isInf() bool {
	switch n.kind {
	case floatKind:
		return math.IsInf(n.f, 0)
	case complexKind:
		return cmplx.IsInf(n.c)
	}
	return false
}

func (n number) equal(o number) bool {
	if n.kind == complexKind || o.kind == complexKind {
		return n.complex() == o.complex()
	}
	c, err := n.compare(o)
	return err == nil && c == 0
}

func (n number) compare(o number) (int, error) {
	if n.kind == complexKind || o.kind == complexKind {
		return 0, errUnordered
	}
	switch {
	case n.kind == signedKind && o.kind == signedKind:
		return sign(cmpInt64(n.i, o.i)), nil
	case n.kind == unsignedKind && o.kind == unsignedKind:
		return cmpUint64(n.u, o.u), nil
	case n.kind == signedKind && o.kind == unsignedKind:
		if n.i < 0 {
			return -1, nil
		}
		return cmpUint64(uint64(n.i), o.u), nil
	case n.kind == unsignedKind && o.kind == signedKind:
		if o.i < 0 {
			return 1, nil
		}
		return cmpUint64(n.u, uint64(o.i)), nil
	}
	a, b := n.float(), o.float()
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, errUnordered
	}
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	}
	return 0, nil
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

// equal reports whether a and b are equal. Numbers compare by value
// regardless of their Go type; everything else is compared deeply.
func equal(a, b any) bool {
	if pa, ok := a.(pair); ok {
		pb, ok := b.(pair)
		return ok && equal(pa.first, pb.first) && equal(pa.second, pb.second)
	}
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return na.equal(nb)
		}
	}
	return deepEqual(a, b)
}

func deepEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b, exportAll)
}

// diff renders a -expected +actual diff for composite values of the same
// type, or "" when a diff would not help.
func diff(expected, actual any) (d string) {
	if expected == nil || actual == nil {
		return ""
	}
	te, ta := reflect.TypeOf(expected), reflect.TypeOf(actual)
	if te != ta {
		return ""
	}
	switch te.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
	case reflect.String:
		if !strings.Contains(reflect.ValueOf(expected).String(), "\n") {
			return ""
		}
	default:
		return ""
	}
	defer func() {
		if recover() != nil {
			d = ""
		}
	}()
	return cmp.Diff(expected, actual, exportAll)
}

// compare orders a and b. It returns errUnordered for values of an ordered
// kind that have no order between them (NaN, complex numbers); any other
// error means the values are not comparable at all.
func compare(a, b any) (int, error) {
	if a == nil || b == nil {
		return 0, incomparable(a, b)
	}
	if pa, ok := a.(pair); ok {
		pb, ok := b.(pair)
		if !ok {
			return 0, incomparable(a, b)
		}
		if c, err := compare(pa.first, pb.first); err != nil || c != 0 {
			return c, err
		}
		return compare(pa.second, pb.second)
	}
	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return na.compare(nb)
		}
		return 0, incomparable(a, b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if m := ra.MethodByName("Compare"); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Int && rb.Type().AssignableTo(mt.In(0)) {
			return sign(int(m.Call([]reflect.Value{rb})[0].Int())), nil
		}
	}
	switch {
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return strings.Compare(ra.String(), rb.String()), nil
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		x, y := ra.Bool(), rb.Bool()
		switch {
		case x == y:
			return 0, nil
		case !x:
			return -1, nil
		}
		return 1, nil
	case isSequence(ra) && isSequence(rb):
		for i := 0; i < ra.Len() && i < rb.Len(); i++ {
			c, err := compare(ra.Index(i).Interface(), rb.Index(i).Interface())
			if err != nil || c != 0 {
				return c, err
			}
		}
		return cmpInt64(int64(ra.Len()), int64(rb.Len())), nil
	}
	return 0, incomparable(a, b)
}

func incomparable(a, b any) error {
	return fmt.Errorf("<%s> and <%s> are not comparable", repr(a), repr(b))
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// truthy reports whether v is neither nil, a zero value nor an empty
// collection.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if n, ok := toNumber(v); ok {
		return !n.isZero()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}

// sameInstance reports identity: reference kinds must point at the same
// memory, other values must be ==.
func sameInstance(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return ra.Comparable() && rb.Comparable() && ra.Equal(rb)
}

func isSeq(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	y := t.In(0)
	return y.Kind() == reflect.Func && y.NumIn() == 1 && y.NumOut() == 1 && y.Out(0).Kind() == reflect.Bool
}

func collectSeq(seq reflect.Value) []any {
	if seq.IsNil() {
		return nil
	}
	var out []any
	yield := reflect.MakeFunc(seq.Type().In(0), func(args []reflect.Value) []reflect.Value {
		out = append(out, args[0].Interface())
		return []reflect.Value{reflect.ValueOf(true)}
	})
	seq.Call([]reflect.Value{yield})
	return out
}

// elementsOf returns the elements of v in iteration order: runes of a
// string (as strings), items of a slice, array or iter.Seq, and the sorted
// keys of a map.
func elementsOf(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		out := make([]any, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		keys := sortedKeys(rv)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k.Interface()
		}
		return out, true
	case reflect.Func:
		if isSeq(rv.Type()) {
			return collectSeq(rv), true
		}
	}
	return nil, false
}

// mapItems returns the key/value pairs of a map, sorted by key.
func mapItems(m reflect.Value) []any {
	keys := sortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = pair{k.Interface(), m.MapIndex(k).Interface()}
	}
	return out
}

func lengthOf(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	case reflect.Func:
		if isSeq(rv.Type()) {
			return len(collectSeq(rv)), true
		}
	}
	return 0, false
}

func asString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return rv.String(), true
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return string(rv.Bytes()), true
	}
	return "", false
}

// contains reports whether element is in container: a substring of a
// string, a key of a map, or an element of anything else iterable. ok is
// false when container cannot hold element at all.
func contains(container, element any) (found, ok bool) {
	if container == nil {
		return false, false
	}
	rv := reflect.ValueOf(container)
	if rv.Kind() == reflect.String {
		sub, ok := asString(element)
		if !ok {
			return false, false
		}
		return strings.Contains(rv.String(), sub), true
	}
	elems, ok := elementsOf(container)
	if !ok {
		return false, false
	}
	return indexIn(elems, element) >= 0, true
}

// indexOf reports where element first occurs in an ordered container.
// Strings are indexed by rune.
func indexOf(container, element any) (int, bool) {
	if container == nil {
		return -1, false
	}
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.String:
		sub, ok := asString(element)
		if !ok {
			return -1, false
		}
		s := rv.String()
		i := strings.Index(s, sub)
		if i < 0 {
			return -1, true
		}
		return utf8.RuneCountInString(s[:i]), true
	case reflect.Slice, reflect.Array:
		elems, _ := elementsOf(container)
		return indexIn(elems, element), true
	}
	return -1, false
}

func indexIn(elems []any, element any) int {
	for i, e := range elems {
		if equal(e, element) {
			return i
		}
	}
	return -1
}
