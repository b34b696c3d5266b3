package rulegate

import (
	"reflect"
	"strings"
)

// resolvePath walks a dotted identifier path through the context. The first
// segment indexes the top-level context; later segments index mappings by
// key, or fall back to attribute-style field lookup on other values. The
// first missing segment fails the whole path; partial results are never
// returned.
func resolvePath(ctx map[string]any, segments []string, pos int) (Value, *Error) {
	cur, ok := ctx[segments[0]]
	if !ok {
		return Value{}, errf(PathNotFound, pos, "%s is not defined", segments[0])
	}
	for i, seg := range segments[1:] {
		next, ok := lookupSegment(cur, seg)
		if !ok {
			return Value{}, errf(PathNotFound, pos, "%s has no %s", strings.Join(segments[:i+1], "."), seg)
		}
		cur = next
	}
	v, ferr := fromAny(cur)
	if ferr != nil {
		ferr.Pos = pos
		ferr.Msg = strings.Join(segments, ".") + ": " + ferr.Msg
		return Value{}, ferr
	}
	return v, nil
}

// lookupSegment fetches one path segment from a context value.
func lookupSegment(cur any, seg string) (any, bool) {
	switch v := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		val, ok := v[seg]
		return val, ok
	case map[string]Value:
		val, ok := v[seg]
		if !ok {
			return nil, false
		}
		return val, true
	case Value:
		if v.kind != ValueMapping {
			return nil, false
		}
		val, ok := v.mp[seg]
		if !ok {
			return nil, false
		}
		return val, true
	}
	return lookupAttribute(cur, seg)
}

// lookupAttribute reflects over other string-keyed maps and structs.
// Struct fields match by exact name first, then with the first letter
// capitalized, so snake-free lowercase segments reach exported fields.
func lookupAttribute(cur any, seg string) (any, bool) {
	rv := reflect.ValueOf(cur)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}
		key := reflect.ValueOf(seg)
		if key.Type() != kt {
			key = key.Convert(kt)
		}
		mv := rv.MapIndex(key)
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		if f := rv.FieldByName(seg); f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
		if upper := capitalize(seg); upper != seg {
			if f := rv.FieldByName(upper); f.IsValid() && f.CanInterface() {
				return f.Interface(), true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// LookupPath resolves a dotted path against a context outside of expression
// evaluation, with the evaluator's resolution rules. Annotation layers use it
// to pull snapshot values into human-readable text. The boolean reports
// whether every segment resolved; Value results are unwrapped to their native
// representation.
func LookupPath(context map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	cur, ok := context[segments[0]]
	if !ok {
		return nil, false
	}
	for _, seg := range segments[1:] {
		cur, ok = lookupSegment(cur, seg)
		if !ok {
			return nil, false
		}
	}
	if v, ok := cur.(Value); ok {
		return v.Interface(), true
	}
	return cur, true
}
