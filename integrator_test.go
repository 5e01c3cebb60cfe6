package relax

import (
	"math"
	"testing"

	"github.com/galvanized/relax/geo"
)

func TestIntegrateConstantDerivativeIsExact(t *testing.T) {
	deriv := func(y []float64) []float64 { return []float64{1, 2} }
	ig := newIntegrator(0.1, deriv)
	ig.seed([]float64{0, 0})

	next := ig.integrate()
	want := []float64{0.1, 0.2}
	for i := range want {
		if !geo.Aeq(next[i], want[i]) {
			t.Errorf("next[%d] = %v, want %v", i, next[i], want[i])
		}
	}
	if !geo.Aeq(ig.t, 0.1) {
		t.Errorf("t = %v, want 0.1", ig.t)
	}
}

func TestIntegrateExponentialDecayAccuracy(t *testing.T) {
	deriv := func(y []float64) []float64 { return []float64{-y[0]} }
	ig := newIntegrator(0.01, deriv)
	ig.seed([]float64{1})

	for i := 0; i < 100; i++ {
		ig.integrate()
	}
	want := math.Exp(-1)
	if diff := math.Abs(ig.y[0] - want); diff > 1e-6 {
		t.Errorf("RK4 decay after t=1: got %v, want %v (diff %v)", ig.y[0], want, diff)
	}
}

func TestSeedOverwritesWithoutAdvancingTime(t *testing.T) {
	ig := newIntegrator(0.1, func(y []float64) []float64 { return y })
	ig.t = 5
	ig.seed([]float64{1, 2, 3})
	if ig.t != 5 {
		t.Errorf("seed should not touch t, got %v", ig.t)
	}
	if len(ig.y) != 3 || ig.y[0] != 1 || ig.y[1] != 2 || ig.y[2] != 3 {
		t.Errorf("seed did not install the given state, got %v", ig.y)
	}
}

func TestPhaseVectorMatchesInsertionOrder(t *testing.T) {
	l := NewLayout(false)
	a := NewMassAt("a", geo.V2{X: 1, Y: 2})
	a.SetVel(geo.V2{X: 3, Y: 4})
	b := NewMassAt("b", geo.V2{X: 5, Y: 6})
	b.SetVel(geo.V2{X: 7, Y: 8})
	if err := l.AddMass(a); err != nil {
		t.Fatal(err)
	}
	if err := l.AddMass(b); err != nil {
		t.Fatal(err)
	}

	y := l.phaseVector()
	want := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if y[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestDerivativeAppliesConstraintForce(t *testing.T) {
	l := NewLayout(false, Friction(0))
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 2, Y: 0})
	if err := l.AddConstraint(NewDistance(a, b, 1, 1)); err != nil {
		t.Fatal(err)
	}

	out := l.derivative(l.phaseVector())
	// a's acceleration (index 2,3) should point toward b since over-stretched.
	if out[2] <= 0 {
		t.Errorf("expected a's acceleration.x > 0, got %v", out[2])
	}
}

func TestDerivativeAppliesFriction(t *testing.T) {
	l := NewLayout(false, Friction(2))
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	a.SetVel(geo.V2{X: 5, Y: 0})
	if err := l.AddMass(a); err != nil {
		t.Fatal(err)
	}

	out := l.derivative(l.phaseVector())
	if out[2] >= 0 {
		t.Errorf("friction should decelerate a, got acceleration.x=%v", out[2])
	}
}
