package relax

import (
	"testing"

	"github.com/galvanized/relax/geo"
)

func TestStepRelaxesDistanceConstraintToRestLength(t *testing.T) {
	l := NewLayout(false, Friction(1))
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 0, Y: 0})
	if err := l.AddConstraint(NewDistance(a, b, 1, 1)); err != nil {
		t.Fatal(err)
	}
	b.SetPos(geo.V2{X: 0.01, Y: 0})

	for i := 0; i < 2000 && (i == 0 || l.kineticEnergy() > 1e-8); i++ {
		if err := l.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	ap, bp := a.Pos(), b.Pos()
	if got, want := ap.Dist(&bp), 1.0; got < want-1e-2 || got > want+1e-2 {
		t.Errorf("distance after relaxation = %v, want ~%v", got, want)
	}
}

func TestStepBouncesOffSafeDistance(t *testing.T) {
	l := NewLayout(false, SafeDistance(0.2), Friction(0))
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 0.1, Y: 0})
	if err := l.AddConstraint(NewDistance(a, b, 1, 1)); err != nil {
		t.Fatal(err)
	}

	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if !l.BouncedLastStep() {
		t.Error("expected masses starting inside the safe distance to bounce")
	}
	ap, bp := a.Pos(), b.Pos()
	if dist := ap.Dist(&bp); dist < l.cfg.safeDistance-1e-6 {
		t.Errorf("post-bounce separation %v should be >= safe distance %v", dist, l.cfg.safeDistance)
	}
}

func TestStepReseedsAfterSystemChange(t *testing.T) {
	l := NewLayout(false)
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 5, Y: 0})
	if err := l.AddConstraint(NewDistance(a, b, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.systemChanged {
		t.Error("systemChanged should clear after a bounce-free step")
	}

	l.RandomiseState(1)
	if !l.systemChanged {
		t.Error("RandomiseState should mark the system changed")
	}
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
}
