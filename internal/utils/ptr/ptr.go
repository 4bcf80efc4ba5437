// Package ptr has small helpers for optional values.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Value returns *p, or the zero value when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Or returns incoming when it is set and fallback otherwise.
func Or[T any](incoming, fallback *T) *T {
	if incoming != nil {
		return To(*incoming)
	}
	if fallback != nil {
		return To(*fallback)
	}
	return nil
}
