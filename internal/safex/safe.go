// Package safex converts failures into fallback values at API boundaries
// that promise never to raise: storage helpers, platform probes and similar.
package safex

import "fmt"

// TryOrDefault runs fn and returns its value. If fn returns an error or
// panics, def is returned together with the cause so the caller can log it.
func TryOrDefault[T any](fn func() (T, error), def T) (result T, cause error) {
	defer func() {
		if r := recover(); r != nil {
			result = def
			cause = fmt.Errorf("recovered: %v", r)
		}
	}()

	v, err := fn()
	if err != nil {
		return def, err
	}
	return v, nil
}

// Succeeded runs fn and reports whether it finished without error or panic.
func Succeeded(fn func() error) (bool, error) {
	return TryOrDefault(func() (bool, error) {
		if err := fn(); err != nil {
			return false, err
		}
		return true, nil
	}, false)
}
