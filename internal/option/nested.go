package option

import (
	"reflect"
	"strconv"
	"strings"
)

// ResolveNested reads the field at the dot-separated path from value.
//
// Maps with string keys, structs (field name, yaml or json tag, case-insensitive
// name) and slices (numeric segments) are traversed. Scalars are returned as-is
// so primitive items act as their own label and value. A missing segment yields nil.
func ResolveNested(value any, path string) any {
	if !IsObject(value) {
		return value
	}

	current := value
	for _, segment := range strings.Split(path, ".") {
		next, ok := field(current, segment)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// IsObject reports whether value is a map, struct, slice or array (through pointers).
func IsObject(value any) bool {
	v, ok := indirect(reflect.ValueOf(value))
	if !ok {
		return false
	}
	switch v.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func field(container any, name string) (any, bool) {
	v, ok := indirect(reflect.ValueOf(container))
	if !ok {
		return nil, false
	}

	//nolint:exhaustive // Only container kinds can be traversed.
	switch v.Kind() {
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		return structField(v, name)
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= v.Len() {
			return nil, false
		}
		return v.Index(i).Interface(), true
	default:
		return nil, false
	}
}

func structField(v reflect.Value, name string) (any, bool) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f, "yaml") == name || tagName(f, "json") == name || strings.EqualFold(f.Name, name) {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

func tagName(f reflect.StructField, key string) string {
	tag := f.Tag.Get(key)
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}
