// Package sim is a small statevector circuit simulator. A Device is an
// explicitly constructed simulation context; every circuit built on it
// records the primitive operations it issues, so callers can inspect the
// trace after measuring.
package sim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MaxWires caps statevector size; the challenges need at most three wires
// but the kernels are generic.
const MaxWires = 12

// RuntimeError reports a simulation fault: invalid circuit parameters or
// divergent numerics. The harness reports these as "Runtime Error" without
// aborting the batch.
type RuntimeError struct {
	Op     string
	Reason string
}

func (e *RuntimeError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func runtimeErrf(op, format string, args ...any) error {
	return &RuntimeError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// Operation is one entry of a circuit's trace.
type Operation struct {
	Name   string
	Wires  []int
	Params []float64
}

// Device is a per-evaluation simulation context. It carries no mutable
// state of its own; circuits built from it are independent.
type Device struct {
	wires int
}

// NewDevice validates the wire count and returns a fresh context.
func NewDevice(wires int) (*Device, error) {
	if wires < 1 || wires > MaxWires {
		return nil, runtimeErrf("device", "wires must be in [1,%d], got %d", MaxWires, wires)
	}
	return &Device{wires: wires}, nil
}

func (d *Device) Wires() int { return d.wires }

// Circuit accumulates gates on a statevector. Gate methods follow the
// sticky-error pattern: the first fault is kept and measurement methods
// return it, so building code stays linear.
type Circuit struct {
	dev   *Device
	state *StateVector
	ops   []Operation
	err   error
}

// NewCircuit starts from |0...0>.
func (d *Device) NewCircuit() *Circuit {
	return &Circuit{dev: d, state: NewStateVector(d.wires)}
}

// Err returns the first gate fault, if any.
func (c *Circuit) Err() error { return c.err }

// Operations returns the trace of issued primitive operations.
func (c *Circuit) Operations() []Operation { return c.ops }

// OperationNames flattens the trace to the names checked by policy rules.
func (c *Circuit) OperationNames() []string {
	names := make([]string, len(c.ops))
	for i, op := range c.ops {
		names[i] = op.Name
	}
	return names
}

func (c *Circuit) record(name string, wires []int, params []float64) {
	c.ops = append(c.ops, Operation{Name: name, Wires: wires, Params: params})
}

func (c *Circuit) checkWires(op string, wires ...int) bool {
	if c.err != nil {
		return false
	}
	for i, w := range wires {
		if w < 0 || w >= c.dev.wires {
			c.err = runtimeErrf(op, "wire %d out of range [0,%d)", w, c.dev.wires)
			return false
		}
		for _, prev := range wires[:i] {
			if prev == w {
				c.err = runtimeErrf(op, "duplicate wire %d", w)
				return false
			}
		}
	}
	return true
}

func (c *Circuit) Hadamard(wire int) {
	if !c.checkWires("Hadamard", wire) {
		return
	}
	c.record("Hadamard", []int{wire}, nil)
	c.state.hadamard(wire)
}

func (c *Circuit) PauliX(wire int) {
	if !c.checkWires("PauliX", wire) {
		return
	}
	c.record("PauliX", []int{wire}, nil)
	c.state.pauliX(wire)
}

func (c *Circuit) PauliY(wire int) {
	if !c.checkWires("PauliY", wire) {
		return
	}
	c.record("PauliY", []int{wire}, nil)
	c.state.pauliY(wire)
}

func (c *Circuit) PauliZ(wire int) {
	if !c.checkWires("PauliZ", wire) {
		return
	}
	c.record("PauliZ", []int{wire}, nil)
	c.state.pauliZ(wire)
}

func (c *Circuit) RX(theta float64, wire int) {
	if !c.checkAngle("RX", theta) || !c.checkWires("RX", wire) {
		return
	}
	c.record("RX", []int{wire}, []float64{theta})
	c.state.rx(wire, theta)
}

func (c *Circuit) RY(theta float64, wire int) {
	if !c.checkAngle("RY", theta) || !c.checkWires("RY", wire) {
		return
	}
	c.record("RY", []int{wire}, []float64{theta})
	c.state.ry(wire, theta)
}

func (c *Circuit) RZ(theta float64, wire int) {
	if !c.checkAngle("RZ", theta) || !c.checkWires("RZ", wire) {
		return
	}
	c.record("RZ", []int{wire}, []float64{theta})
	c.state.rz(wire, theta)
}

func (c *Circuit) CNOT(control, target int) {
	if !c.checkWires("CNOT", control, target) {
		return
	}
	c.record("CNOT", []int{control, target}, nil)
	c.state.cnot(control, target)
}

func (c *Circuit) CZ(control, target int) {
	if !c.checkWires("CZ", control, target) {
		return
	}
	c.record("CZ", []int{control, target}, nil)
	c.state.cz(control, target)
}

// IsingXX applies exp(-i phi/2 XX) on two wires.
func (c *Circuit) IsingXX(phi float64, wireA, wireB int) {
	if !c.checkAngle("IsingXX", phi) || !c.checkWires("IsingXX", wireA, wireB) {
		return
	}
	c.record("IsingXX", []int{wireA, wireB}, []float64{phi})
	c.state.isingXX(wireA, wireB, phi)
}

// IsingZZ applies exp(-i phi/2 ZZ) on two wires.
func (c *Circuit) IsingZZ(phi float64, wireA, wireB int) {
	if !c.checkAngle("IsingZZ", phi) || !c.checkWires("IsingZZ", wireA, wireB) {
		return
	}
	c.record("IsingZZ", []int{wireA, wireB}, []float64{phi})
	c.state.isingZZ(wireA, wireB, phi)
}

func (c *Circuit) checkAngle(op string, params ...float64) bool {
	if c.err != nil {
		return false
	}
	for _, p := range params {
		if !isFinite(p) {
			c.err = runtimeErrf(op, "non-finite parameter %v", p)
			return false
		}
	}
	return true
}

// Probs returns the probability of each computational basis state, wire 0
// being the most significant index bit.
func (c *Circuit) Probs() ([]float64, error) {
	if err := c.measurable("Probs"); err != nil {
		return nil, err
	}
	p := c.state.probs()
	if s := floats.Sum(p); s < 1-1e-9 || s > 1+1e-9 {
		return nil, runtimeErrf("Probs", "state norm drifted to %v", s)
	}
	return p, nil
}

// Expval returns the expectation value of a Pauli-word observable.
func (c *Circuit) Expval(w PauliWord) (float64, error) {
	if err := c.measurable("Expval"); err != nil {
		return 0, err
	}
	for wire := range w {
		if wire < 0 || wire >= c.dev.wires {
			return 0, runtimeErrf("Expval", "observable wire %d out of range [0,%d)", wire, c.dev.wires)
		}
	}
	return expval(c.state, w), nil
}

func (c *Circuit) measurable(op string) error {
	if c.err != nil {
		return c.err
	}
	if !c.state.finite() {
		c.err = runtimeErrf(op, "simulation diverged to non-finite amplitudes")
		return c.err
	}
	return nil
}
