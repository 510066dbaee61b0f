// Package layering composes partially populated values such as property
// records. A nil pointer, map, slice or interface counts as unset and is
// filled from weaker layers.
package layering

import "reflect"

// MergeLayers composes layers ordered from strongest to weakest. It starts
// from a deep copy of the weakest layer and overlays each stronger one in
// turn, so set fields of stronger layers win and unset fields fall through.
// The result shares no pointers with its inputs.
func MergeLayers[T any](layers ...T) T {
	var zero T
	if len(layers) == 0 {
		return zero
	}

	out := reflect.New(reflect.TypeFor[T]()).Elem()
	out.Set(deepCopy(reflect.ValueOf(&layers[len(layers)-1]).Elem()))
	for i := len(layers) - 2; i >= 0; i-- {
		overlay(out, reflect.ValueOf(&layers[i]).Elem())
	}
	return out.Interface().(T)
}

// Clone returns a deep copy of value.
func Clone[T any](value T) T {
	out := reflect.New(reflect.TypeFor[T]()).Elem()
	out.Set(deepCopy(reflect.ValueOf(&value).Elem()))
	return out.Interface().(T)
}

// overlay writes the set parts of src over dst. dst must be settable.
func overlay(dst, src reflect.Value) {
	if isUnset(src) {
		return
	}

	switch src.Kind() {
	case reflect.Struct:
		for i := range src.NumField() {
			if field := dst.Field(i); field.CanSet() {
				overlay(field, src.Field(i))
			}
		}
	case reflect.Map:
		if dst.IsNil() {
			dst.Set(reflect.MakeMapWithSize(src.Type(), src.Len()))
		}
		iter := src.MapRange()
		for iter.Next() {
			entry := reflect.New(src.Type().Elem()).Elem()
			if existing := dst.MapIndex(iter.Key()); existing.IsValid() {
				entry.Set(existing)
			}
			overlay(entry, iter.Value())
			dst.SetMapIndex(iter.Key(), entry)
		}
	case reflect.Pointer:
		if dst.IsNil() || src.Elem().Kind() != reflect.Struct {
			dst.Set(deepCopy(src))
			return
		}
		overlay(dst.Elem(), src.Elem())
	case reflect.Array:
		for i := range src.Len() {
			overlay(dst.Index(i), src.Index(i))
		}
	default:
		dst.Set(deepCopy(src))
	}
}

func isUnset(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// deepCopy returns a value of v's type sharing no references with v.
func deepCopy(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	if isUnset(v) {
		return out
	}

	switch v.Kind() {
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		elem.Elem().Set(deepCopy(v.Elem()))
		out.Set(elem)
	case reflect.Interface:
		out.Set(deepCopy(v.Elem()))
	case reflect.Struct:
		for i := range v.NumField() {
			if field := out.Field(i); field.CanSet() {
				field.Set(deepCopy(v.Field(i)))
			}
		}
	case reflect.Map:
		out.Set(reflect.MakeMapWithSize(v.Type(), v.Len()))
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
	case reflect.Slice:
		out.Set(reflect.MakeSlice(v.Type(), v.Len(), v.Len()))
		for i := range v.Len() {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
	case reflect.Array:
		for i := range v.Len() {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
	default:
		out.Set(v)
	}
	return out
}
