// Package harness runs challenge test cases: it decodes serialized inputs,
// invokes evaluators, encodes and compares results with elementwise
// approximate equality, and reports one verdict per case.
package harness

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Value is a decoded structured-numeric literal: a float64, a string, or a
// []Value of either. nil represents an absent input.
type Value any

// DecodeError reports a malformed serialized literal. It is deliberately a
// distinct type from evaluator faults so callers can route the two
// differently.
type DecodeError struct {
	Detail string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("decode: %s", e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// DecodeValue parses a JSON numeric literal (numbers, strings, nested
// arrays) into a Value tree. Objects and booleans are rejected: the test
// case grammar has no use for them.
func DecodeValue(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &DecodeError{Detail: "invalid literal", Cause: err}
	}
	if dec.More() {
		return nil, &DecodeError{Detail: "trailing content after literal"}
	}
	return normalize(raw)
}

func normalize(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, &DecodeError{Detail: fmt.Sprintf("bad number %q", v.String()), Cause: err}
		}
		return f, nil
	case string:
		return v, nil
	case []any:
		out := make([]Value, len(v))
		for i, elem := range v {
			norm, err := normalize(elem)
			if err != nil {
				return nil, err
			}
			if norm == nil {
				return nil, &DecodeError{Detail: "null inside sequence"}
			}
			out[i] = norm
		}
		return out, nil
	default:
		return nil, &DecodeError{Detail: fmt.Sprintf("unsupported literal element %T", raw)}
	}
}

// EncodeValue serializes a Value tree back to the literal grammar. When
// decimals >= 0, numbers are rounded to that many decimal places first, the
// way some exercises stabilize their produced output.
func EncodeValue(v Value, decimals int) (string, error) {
	plain, err := toPlain(v, decimals)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(data), nil
}

func toPlain(v Value, decimals int) (any, error) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("encode: non-finite number %v", val)
		}
		if decimals >= 0 {
			pow := math.Pow(10, float64(decimals))
			val = math.Round(val*pow) / pow
			if val == 0 {
				val = 0 // collapse negative zero
			}
		}
		return val, nil
	case string:
		return val, nil
	case []Value:
		out := make([]any, len(val))
		for i, elem := range val {
			plain, err := toPlain(elem, decimals)
			if err != nil {
				return nil, err
			}
			out[i] = plain
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("encode: nil value")
	default:
		return nil, fmt.Errorf("encode: unsupported value %T", v)
	}
}

// AsFloat expects a scalar.
func AsFloat(v Value) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %s", describe(v))
	}
	return f, nil
}

// AsFloats expects a flat sequence of numbers.
func AsFloats(v Value) ([]float64, error) {
	seq, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %s", describe(v))
	}
	out := make([]float64, len(seq))
	for i, elem := range seq {
		f, ok := elem.(float64)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a number, got %s", i, describe(elem))
		}
		out[i] = f
	}
	return out, nil
}

// AsStrings expects a flat sequence of strings.
func AsStrings(v Value) ([]string, error) {
	seq, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %s", describe(v))
	}
	out := make([]string, len(seq))
	for i, elem := range seq {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a string, got %s", i, describe(elem))
		}
		out[i] = s
	}
	return out, nil
}

// AsMatrix expects a rectangular 2-D grid with the given column count
// (cols <= 0 accepts any rectangular width).
func AsMatrix(v Value, cols int) ([][]float64, error) {
	seq, ok := v.([]Value)
	if !ok {
		return nil, fmt.Errorf("expected a 2-D array, got %s", describe(v))
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("expected a non-empty 2-D array")
	}
	out := make([][]float64, len(seq))
	for i, row := range seq {
		floats, err := AsFloats(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if cols > 0 && len(floats) != cols {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i, cols, len(floats))
		}
		if i > 0 && len(floats) != len(out[0]) {
			return nil, fmt.Errorf("ragged rows: row %d has %d columns, row 0 has %d", i, len(floats), len(out[0]))
		}
		out[i] = floats
	}
	return out, nil
}

// FromFloats converts a numeric slice into a Value sequence.
func FromFloats(fs []float64) Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// FromMatrix converts a 2-D numeric grid into a Value tree.
func FromMatrix(m [][]float64) Value {
	out := make([]Value, len(m))
	for i, row := range m {
		out[i] = FromFloats(row)
	}
	return out
}

func describe(v Value) string {
	switch v.(type) {
	case float64:
		return "a number"
	case string:
		return "a string"
	case []Value:
		return "a sequence"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", v)
	}
}
