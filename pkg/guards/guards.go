// Package guards provides the small type-guard and accessor helpers shared by
// the widgets and config plumbing: nil/zero predicates, coalescing, and
// checked downcasts. Pure functions, no framework types.
package guards

import "reflect"

// IsNil reports whether v is nil, including a typed nil boxed in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

// IsZero reports whether v equals the zero value of T.
func IsZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

// Coalesce returns the first non-zero value, or the zero value when all are.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// As reports whether v holds a T, and returns it.
func As[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

// MapHas reports whether m contains k.
func MapHas[K comparable, V any](m map[K]V, k K) bool {
	_, ok := m[k]
	return ok
}

// MapGet returns m[k], or def when k is absent.
func MapGet[K comparable, V any](m map[K]V, k K, def V) V {
	if v, ok := m[k]; ok {
		return v
	}
	return def
}

// SliceHas reports whether s contains v.
func SliceHas[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
