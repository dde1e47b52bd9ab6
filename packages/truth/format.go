package truth

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/stretchr/testify/mock"
)

// pair is a two-element tuple, used for map items and adjacent elements
// in ordering failures.
type pair struct {
	first, second any
}

func (p pair) String() string {
	return "(" + repr(p.first) + ", " + repr(p.second) + ")"
}

// repr renders v the way it appears between angle brackets in failure
// messages.
func repr(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case pair:
		return x.String()
	case reflect.Type:
		return x.String()
	case *mock.Mock:
		return "*mock.Mock"
	case []byte:
		return fmt.Sprintf("[]byte(%q)", x)
	case error:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return fmt.Sprintf("%T(nil)", x)
		}
		return fmt.Sprintf("%T(%q)", x, x.Error())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		if _, ok := v.(fmt.Stringer); ok {
			return fmt.Sprintf("%v", v)
		}
		return strconv.Quote(rv.String())
	case reflect.Slice, reflect.Array:
		if _, ok := v.(fmt.Stringer); ok {
			return fmt.Sprintf("%v", v)
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = repr(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		keys := sortedKeys(rv)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = repr(k.Interface()) + ": " + repr(rv.MapIndex(k).Interface())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}

// sortAny orders values by their natural ordering where one exists and by
// their rendering otherwise, so map iteration is deterministic.
func sortAny(values []any) {
	sort.SliceStable(values, func(i, j int) bool {
		if c, err := compare(values[i], values[j]); err == nil {
			return c < 0
		}
		return repr(values[i]) < repr(values[j])
	})
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i].Interface(), keys[j].Interface()
		if c, err := compare(a, b); err == nil {
			return c < 0
		}
		return repr(a) < repr(b)
	})
	return keys
}

type counted struct {
	item  any
	count int
}

// counter is an insertion-ordered multiset keyed by equality rather than
// hashing, so it accepts uncomparable elements.
type counter []counted

func (c *counter) add(item any) {
	for i := range *c {
		if equal((*c)[i].item, item) {
			(*c)[i].count++
			return
		}
	}
	*c = append(*c, counted{item: item, count: 1})
}

func (c *counter) remove(item any) bool {
	for i := range *c {
		if !equal((*c)[i].item, item) {
			continue
		}
		(*c)[i].count--
		if (*c)[i].count == 0 {
			*c = append((*c)[:i], (*c)[i+1:]...)
		}
		return true
	}
	return false
}

func (c counter) String() string {
	parts := make([]string, len(c))
	for i, e := range c {
		if e.count == 1 {
			parts[i] = repr(e.item)
		} else {
			parts[i] = fmt.Sprintf("%s [%d copies]", repr(e.item), e.count)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
