package option

import (
	"fmt"
	"reflect"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidComparator is returned when a comparator specification can't be turned into a function.
const ErrInvalidComparator = constError("invalid comparator")

// Comparator reports whether a and b denote the same value.
type Comparator func(a, b any) bool

// Comparator specification names accepted by ParseComparator.
const (
	ComparatorIdentity    = "identity"
	ComparatorDeep        = "deep"
	comparatorFieldPrefix = "field:"
)

// Equal is the default value equality.
//
// Pointers compare by identity, numbers compare by numeric value regardless of
// their Go type (YAML decodes integers as int and decimals as float64), and
// everything else falls back to reflect.DeepEqual.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer {
		return va.Pointer() == vb.Pointer() && va.Type() == vb.Type()
	}

	if fa, ok := asFloat(va); ok {
		if fb, okB := asFloat(vb); okB {
			return fa == fb
		}
		return false
	}

	return reflect.DeepEqual(a, b)
}

func asFloat(v reflect.Value) (float64, bool) {
	//nolint:exhaustive // Non-numeric kinds are reported as not convertible.
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

// ParseComparator builds a Comparator from a configuration string.
//
// Accepted forms are "identity" (Equal), "deep" (reflect.DeepEqual) and
// "field:<dotted.path>" which compares the resolved field of both values.
// An empty spec returns a nil Comparator, meaning the caller's default applies.
func ParseComparator(spec string) (Comparator, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return nil, nil //nolint:nilnil // nil comparator selects the default equality
	case spec == ComparatorIdentity:
		return Equal, nil
	case spec == ComparatorDeep:
		return reflect.DeepEqual, nil
	case strings.HasPrefix(spec, comparatorFieldPrefix):
		path := strings.TrimPrefix(spec, comparatorFieldPrefix)
		if !validPath(path) {
			return nil, fmt.Errorf("%w: malformed field path %q", ErrInvalidComparator, path)
		}
		return func(a, b any) bool {
			return Equal(ResolveNested(a, path), ResolveNested(b, path))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidComparator, spec)
	}
}

func validPath(path string) bool {
	if path == "" {
		return false
	}
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return false
		}
	}
	return true
}
