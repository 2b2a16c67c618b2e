package challenge

import (
	"context"

	"qubench/internal/harness"
	"qubench/internal/model"
	"qubench/internal/sim"
)

// ExpvalRotation rotates a single qubit around the y axis and measures the
// expectation value of Pauli X.
type ExpvalRotation struct{}

func (ExpvalRotation) Name() string { return "expval-rotation" }

func (ExpvalRotation) Description() string {
	return "RY rotation on one wire, <X> readout"
}

func (ExpvalRotation) Cases() []model.TestCase {
	return []model.TestCase{
		{Input: "1.23456", Expected: "0.9440031218347901"},
		{Input: "2.957", Expected: "0.1835461227247332"},
	}
}

func (ExpvalRotation) Tolerance() model.Tolerance {
	return model.Tolerance{Rtol: 1e-4, Atol: 1e-8}
}

func (ExpvalRotation) Evaluate(ctx context.Context, input harness.Value) (harness.Value, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	angle, err := harness.AsFloat(input)
	if err != nil {
		return nil, nil, err
	}

	dev, err := sim.NewDevice(1)
	if err != nil {
		return nil, nil, err
	}
	c := dev.NewCircuit()
	c.RY(angle, 0)
	val, err := c.Expval(sim.PauliWord{0: sim.PauliX})
	if err != nil {
		return nil, c.OperationNames(), err
	}
	return val, c.OperationNames(), nil
}

// TensorObservable prepares a Bell pair, rotates the first wire, and
// measures the tensor product observable Z0 x Z1.
type TensorObservable struct{}

func (TensorObservable) Name() string { return "tensor-observable" }

func (TensorObservable) Description() string {
	return "Bell state, RY on wire 0, <Z0 Z1> readout"
}

func (TensorObservable) Cases() []model.TestCase {
	return []model.TestCase{
		{Input: "1.23456", Expected: "0.3299365180851774"},
		{Input: "1.86923", Expected: "-0.2940234756205866"},
	}
}

func (TensorObservable) Tolerance() model.Tolerance {
	return model.Tolerance{Rtol: 1e-4, Atol: 1e-8}
}

func (TensorObservable) Evaluate(ctx context.Context, input harness.Value) (harness.Value, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	angle, err := harness.AsFloat(input)
	if err != nil {
		return nil, nil, err
	}

	dev, err := sim.NewDevice(2)
	if err != nil {
		return nil, nil, err
	}
	c := dev.NewCircuit()
	c.Hadamard(0)
	c.CNOT(0, 1)
	c.RY(angle, 0)
	val, err := c.Expval(sim.PauliWord{0: sim.PauliZ, 1: sim.PauliZ})
	if err != nil {
		return nil, c.OperationNames(), err
	}
	return val, c.OperationNames(), nil
}
