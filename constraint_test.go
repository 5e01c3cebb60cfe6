package relax

import (
	"math"
	"testing"

	"github.com/galvanized/relax/geo"
)

func TestDistanceDisplacementAndForce(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 3, Y: 0})
	c := NewDistance(a, b, 1, 1)

	if got, want := c.Length(), 3.0; !geo.Aeq(got, want) {
		t.Fatalf("Length() = %v, want %v", got, want)
	}
	if got, want := c.Displacement(), 2.0; !geo.Aeq(got, want) {
		t.Fatalf("Displacement() = %v, want %v", got, want)
	}

	a.clearForce()
	b.clearForce()
	c.ApplyForce()

	// Over-stretched: force should pull a toward b (+x) and b toward a (-x).
	if a.acc.X <= 0 {
		t.Errorf("expected a pulled toward b, got acc.X=%v", a.acc.X)
	}
	if b.acc.X >= 0 {
		t.Errorf("expected b pulled toward a, got acc.X=%v", b.acc.X)
	}
	if !geo.Aeq(a.acc.X, -b.acc.X) {
		t.Errorf("forces should be equal and opposite, got %v and %v", a.acc.X, b.acc.X)
	}
}

func TestDistanceFixedMassIgnoresForce(t *testing.T) {
	a := NewFixedMass("anchor", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 5, Y: 0})
	c := NewDistance(a, b, 1, 1)

	a.clearForce()
	b.clearForce()
	c.ApplyForce()

	if !a.acc.Eq(&geo.V2{}) {
		t.Errorf("fixed mass should not accumulate force, got %v", a.acc)
	}
}

func TestDistancePlacementSuggestion(t *testing.T) {
	a := NewMass("a")
	b := NewMass("b")
	c := NewDistance(a, b, 2.5, 0.5)

	sa := c.PlacementSuggestion(a)
	if len(sa) != 1 || sa[0].Ref != "b" || !sa[0].HasR || sa[0].R != 2.5 {
		t.Errorf("unexpected suggestion for a: %+v", sa)
	}
	sb := c.PlacementSuggestion(b)
	if len(sb) != 1 || sb[0].Ref != "a" || !sb[0].HasR || sb[0].R != 2.5 {
		t.Errorf("unexpected suggestion for b: %+v", sb)
	}
	other := NewMass("z")
	if s := c.PlacementSuggestion(other); s != nil {
		t.Errorf("non-participant should get no suggestion, got %+v", s)
	}
}

func TestGlobalAngleRestAtZeroProducesNoForce(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 1, Y: 0})
	b := NewMassAt("b", geo.V2{X: 0, Y: 0})
	c := NewGlobalAngle(a, b, 0, 1)

	a.clearForce()
	b.clearForce()
	c.ApplyForce()

	if !a.acc.Aeq(&geo.V2{}) || !b.acc.Aeq(&geo.V2{}) {
		t.Errorf("constraint already at rest bearing should apply no force, got a=%v b=%v", a.acc, b.acc)
	}
}

func TestGlobalAngleSuggestionMirrorsRestAngle(t *testing.T) {
	a := NewMass("a")
	b := NewMass("b")
	c := NewGlobalAngle(a, b, geo.HalfPi, 1)

	sa := c.PlacementSuggestion(a)
	if len(sa) != 1 || !sa[0].HasTheta || !geo.Aeq(sa[0].Theta, geo.HalfPi) {
		t.Errorf("unexpected suggestion for a: %+v", sa)
	}
	sb := c.PlacementSuggestion(b)
	want := geo.Wrap(geo.HalfPi + geo.PI)
	if len(sb) != 1 || !sb[0].HasTheta || !geo.Aeq(sb[0].Theta, want) {
		t.Errorf("unexpected suggestion for b: %+v, want theta=%v", sb, want)
	}
}

func TestLocalAngleAtRestAppliesNoForce(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 1, Y: 0})
	b := NewMassAt("b", geo.V2{X: 0, Y: 0})
	c := NewMassAt("c", geo.V2{X: 0, Y: -1})
	lc := NewLocalAngle(a, b, c, geo.HalfPi, 1)

	if got := lc.Displacement(); !geo.Aeq(got, 0) {
		t.Fatalf("expected constraint to already be at rest, displacement=%v", got)
	}

	a.clearForce()
	b.clearForce()
	c.clearForce()
	lc.ApplyForce()

	if !a.acc.Aeq(&geo.V2{}) || !b.acc.Aeq(&geo.V2{}) || !c.acc.Aeq(&geo.V2{}) {
		t.Errorf("at-rest local angle should apply no force, got a=%v b=%v c=%v", a.acc, b.acc, c.acc)
	}
}

func TestLocalAngleForceBalancesAcrossAllThreeMasses(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 1, Y: 0})
	b := NewMassAt("b", geo.V2{X: 0, Y: 0})
	c := NewMassAt("c", geo.V2{X: -1, Y: 0})
	lc := NewLocalAngle(a, b, c, geo.HalfPi, 1)

	a.clearForce()
	b.clearForce()
	c.clearForce()
	lc.ApplyForce()

	// B's contribution is the negated sum of A's and C's mass-scaled
	// contributions (using A and C's own masses, not B's).
	sum := geo.NewV2().Add(&a.acc, &c.acc)
	sum.Neg(sum)
	if !sum.Aeq(&b.acc) {
		t.Errorf("expected b.acc = -(a.acc+c.acc), got b.acc=%v, -(a+c)=%v", b.acc, sum)
	}
}

func TestLocalAngleVertexSuggestionBisectionConverges(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	c := NewMassAt("c", geo.V2{X: 4, Y: 0})
	b := NewMass("b")
	lc := NewLocalAngle(a, b, c, geo.HalfPi, 1)

	sugg := lc.PlacementSuggestion(b)
	if len(sugg) != 1 {
		t.Fatalf("expected exactly one suggestion, got %d", len(sugg))
	}
	s := sugg[0]
	if s.Ref != "a" || !s.HasR || !s.HasTheta {
		t.Fatalf("unexpected suggestion shape: %+v", s)
	}

	ap := a.Pos()
	probeDir := geo.NewV2().FromHeading(s.Theta)
	probe := geo.NewV2().Add(&ap, probeDir.Scale(probeDir, s.R))
	cp := c.Pos()
	got := geo.Angle3(&ap, probe, &cp)
	if diff := math.Abs(geo.Wrap(got - geo.HalfPi)); diff > 1e-3 {
		t.Errorf("bisection did not converge: angle(A,probe,C)=%v, want %v (diff %v)", got, geo.HalfPi, diff)
	}
}

func TestPotentialEnergyZeroAtRest(t *testing.T) {
	a := NewMassAt("a", geo.V2{X: 0, Y: 0})
	b := NewMassAt("b", geo.V2{X: 2, Y: 0})
	c := NewDistance(a, b, 2, 3)
	if got := c.PotentialEnergy(); !geo.Aeq(got, 0) {
		t.Errorf("at-rest constraint should store zero potential energy, got %v", got)
	}
}

func TestTagIDDefaultsToUntagged(t *testing.T) {
	a := NewMass("a")
	b := NewMass("b")
	c := NewDistance(a, b, 1, 1)
	if c.TagID() != -1 {
		t.Errorf("new constraint should default to untagged (-1), got %d", c.TagID())
	}
	c.SetTag(7)
	if c.TagID() != 7 {
		t.Errorf("SetTag should stick, got %d", c.TagID())
	}
}
