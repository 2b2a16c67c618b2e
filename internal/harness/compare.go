package harness

import (
	"errors"
	"fmt"
	"math"

	"qubench/internal/model"
)

// ErrShapeMismatch marks structural disagreement between produced and
// expected values: different nesting, lengths, or element kinds. It is a
// distinct class from a numeric mismatch.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrOutOfTolerance marks an element pair outside the approximate-equality
// bound.
var ErrOutOfTolerance = errors.New("out of tolerance")

// Compare walks both value trees elementwise and returns nil when every
// element of have matches want within tol. Shapes must agree exactly
// before any numeric comparison happens.
func Compare(have, want Value, tol model.Tolerance) error {
	return compareAt(have, want, tol, "")
}

func compareAt(have, want Value, tol model.Tolerance, path string) error {
	switch w := want.(type) {
	case float64:
		h, ok := have.(float64)
		if !ok {
			return fmt.Errorf("%w: expected a number%s, got %s", ErrShapeMismatch, at(path), describe(have))
		}
		if !closeEnough(h, w, tol) {
			return fmt.Errorf("%w%s: have %v, want %v (rtol %v, atol %v)",
				ErrOutOfTolerance, at(path), h, w, tol.Rtol, tol.Atol)
		}
		return nil
	case string:
		h, ok := have.(string)
		if !ok {
			return fmt.Errorf("%w: expected a string%s, got %s", ErrShapeMismatch, at(path), describe(have))
		}
		if h != w {
			return fmt.Errorf("%w%s: have %q, want %q", ErrOutOfTolerance, at(path), h, w)
		}
		return nil
	case []Value:
		h, ok := have.([]Value)
		if !ok {
			return fmt.Errorf("%w: expected a sequence%s, got %s", ErrShapeMismatch, at(path), describe(have))
		}
		if len(h) != len(w) {
			return fmt.Errorf("%w%s: have length %d, want length %d", ErrShapeMismatch, at(path), len(h), len(w))
		}
		for i := range w {
			if err := compareAt(h[i], w[i], tol, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: uncomparable expected value %s%s", ErrShapeMismatch, describe(want), at(path))
	}
}

// closeEnough implements |have-want| <= atol + rtol*|want|; NaN never
// matches anything.
func closeEnough(have, want float64, tol model.Tolerance) bool {
	if math.IsNaN(have) || math.IsNaN(want) {
		return false
	}
	if math.IsInf(have, 0) || math.IsInf(want, 0) {
		return have == want
	}
	return math.Abs(have-want) <= tol.Atol+tol.Rtol*math.Abs(want)
}

func at(path string) string {
	if path == "" {
		return ""
	}
	return " at " + path
}
