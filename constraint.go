package relax

// constraint.go is the force layer of the layout: each Constraint knows how
// to measure its own displacement from rest, push its participating masses
// apart or together to close that displacement, estimate its own strain
// energy, and propose where its masses ought to sit before any force has
// even been applied. Three concrete shapes cover everything the layout
// needs (distance, global bearing, local bearing), each a flat
// struct-plus-method pair satisfying a shared interface rather than a
// virtual class hierarchy with per-kind subtypes.

import (
	"fmt"
	"math"

	"github.com/galvanized/relax/geo"
)

// Suggestion is a placement hint a constraint offers for one of its own
// masses, expressed relative to another mass already in the layout. A
// suggestion may carry a radial component, an angular component, or both
// (the local-angle constraint's hint for its vertex mass carries both at
// once, each weighted independently).
type Suggestion struct {
	Ref string // name of the mass this suggestion is relative to

	HasR bool
	R    float64
	Wr   float64

	HasTheta bool
	Theta    float64
	Wth      float64
}

// Constraint is a spring-like relationship between two or three masses.
// Every kind knows how to measure its own strain, apply the corresponding
// restoring force, estimate a placement for one of its own masses, and
// report its potential energy.
type Constraint interface {
	// Masses returns the constraint's participants in a fixed, kind-specific
	// order (A, B for Distance/GlobalAngle; A, B, C for LocalAngle).
	Masses() []*Mass

	// Length returns the constraint's current measured quantity: a
	// separation for Distance, a bearing for GlobalAngle, an angle for
	// LocalAngle.
	Length() float64

	// Displacement returns Length() minus rest length, wrapped to
	// [-PI, PI) for the angular kinds.
	Displacement() float64

	// ApplyForce adds this tick's restoring force to every participating
	// free mass's scratch acceleration.
	ApplyForce()

	// PlacementSuggestion returns the hints this constraint offers for
	// mass m, or nil if m does not participate in this constraint.
	PlacementSuggestion(m *Mass) []Suggestion

	// PotentialEnergy returns 1/2*k*displacement^2.
	PotentialEnergy() float64

	// TagID returns the constraint's tag, or -1 if untagged.
	TagID() int

	// Stiffness returns the spring constant k.
	Stiffness() float64

	String() string

	// rebindMass replaces the i'th participant (by the Masses() order)
	// with m. Used by a Layout to fold a newly added constraint's
	// endpoints onto masses it already owns by name.
	rebindMass(i int, m *Mass)
}

// Distance constrains the Euclidean separation between A and B to a rest
// length l0 with stiffness k. F = -k*displacement*uv(A,B), applied +F to A
// and -F to B.
type Distance struct {
	a, b *Mass
	l0   float64
	k    float64
	tag  int
}

// NewDistance creates an untagged distance constraint between a and b.
func NewDistance(a, b *Mass, restLength, stiffness float64) *Distance {
	return &Distance{a: a, b: b, l0: restLength, k: stiffness, tag: -1}
}

// SetTag assigns a non-negative tag id, returning the constraint for
// chaining.
func (c *Distance) SetTag(tag int) *Distance { c.tag = tag; return c }

func (c *Distance) Masses() []*Mass { return []*Mass{c.a, c.b} }

func (c *Distance) Length() float64 {
	ap, bp := c.a.Pos(), c.b.Pos()
	return ap.Dist(&bp)
}

func (c *Distance) Displacement() float64 { return c.Length() - c.l0 }

func (c *Distance) ApplyForce() {
	disp := c.Displacement()
	ap, bp := c.a.Pos(), c.b.Pos()
	uv := geo.NewV2().Uv(&ap, &bp)
	f := geo.NewV2().Scale(uv, -c.k*disp)
	c.a.addForce(*f)
	c.b.addForce(*geo.NewV2().Neg(f))
}

func (c *Distance) PlacementSuggestion(m *Mass) []Suggestion {
	switch m {
	case c.a:
		return []Suggestion{{Ref: c.b.name, HasR: true, R: c.l0, Wr: c.k}}
	case c.b:
		return []Suggestion{{Ref: c.a.name, HasR: true, R: c.l0, Wr: c.k}}
	}
	return nil
}

func (c *Distance) PotentialEnergy() float64 {
	d := c.Displacement()
	return 0.5 * c.k * d * d
}

func (c *Distance) TagID() int        { return c.tag }
func (c *Distance) Stiffness() float64 { return c.k }

func (c *Distance) String() string {
	return fmt.Sprintf("distance(%s,%s) len=%.4f rest=%.4f k=%.4f", c.a.name, c.b.name, c.Length(), c.l0, c.k)
}

func (c *Distance) rebindMass(i int, m *Mass) {
	switch i {
	case 0:
		c.a = m
	case 1:
		c.b = m
	}
}

// GlobalAngle constrains the world bearing from B to A to a rest angle l0
// (measured in the global frame, unaffected by any other mass).
// F = (-k*displacement/|A-B|) * orthog(uv(A,B)), applied +F to A and -F to B.
type GlobalAngle struct {
	a, b *Mass
	l0   float64
	k    float64
	tag  int
}

// NewGlobalAngle creates an untagged global-bearing constraint between a
// and b with rest angle restAngle (radians, wrapped internally).
func NewGlobalAngle(a, b *Mass, restAngle, stiffness float64) *GlobalAngle {
	return &GlobalAngle{a: a, b: b, l0: geo.Wrap(restAngle), k: stiffness, tag: -1}
}

func (c *GlobalAngle) SetTag(tag int) *GlobalAngle { c.tag = tag; return c }

func (c *GlobalAngle) Masses() []*Mass { return []*Mass{c.a, c.b} }

func (c *GlobalAngle) Length() float64 {
	ap, bp := c.a.Pos(), c.b.Pos()
	return geo.Angle(&ap, &bp)
}

func (c *GlobalAngle) Displacement() float64 { return geo.Wrap(c.Length() - c.l0) }

func (c *GlobalAngle) ApplyForce() {
	ap, bp := c.a.Pos(), c.b.Pos()
	dist := ap.Dist(&bp)
	if geo.AeqZ(dist) {
		return
	}
	disp := c.Displacement()
	uv := geo.NewV2().Uv(&ap, &bp)
	orth := geo.NewV2().Orthog(uv)
	f := geo.NewV2().Scale(orth, -c.k*disp/dist)
	c.a.addForce(*f)
	c.b.addForce(*geo.NewV2().Neg(f))
}

func (c *GlobalAngle) PlacementSuggestion(m *Mass) []Suggestion {
	switch m {
	case c.a:
		return []Suggestion{{Ref: c.b.name, HasTheta: true, Theta: c.l0, Wth: c.k}}
	case c.b:
		return []Suggestion{{Ref: c.a.name, HasTheta: true, Theta: geo.Wrap(c.l0 + geo.PI), Wth: c.k}}
	}
	return nil
}

func (c *GlobalAngle) PotentialEnergy() float64 {
	d := c.Displacement()
	return 0.5 * c.k * d * d
}

func (c *GlobalAngle) TagID() int        { return c.tag }
func (c *GlobalAngle) Stiffness() float64 { return c.k }

func (c *GlobalAngle) String() string {
	return fmt.Sprintf("globalAngle(%s,%s) bearing=%.4f rest=%.4f k=%.4f", c.a.name, c.b.name, c.Length(), c.l0, c.k)
}

func (c *GlobalAngle) rebindMass(i int, m *Mass) {
	switch i {
	case 0:
		c.a = m
	case 1:
		c.b = m
	}
}

// LocalAngle constrains the angle at vertex B between rays B->A and B->C
// to a rest angle l0. Unlike GlobalAngle, this angle is unaffected by the
// layout's overall rotation since it is measured relative to B's own two
// neighbours.
type LocalAngle struct {
	a, b, c *Mass
	l0      float64
	k       float64
	tag     int
}

// NewLocalAngle creates an untagged local-bearing constraint with vertex b
// between rays to a and c.
func NewLocalAngle(a, b, c2 *Mass, restAngle, stiffness float64) *LocalAngle {
	return &LocalAngle{a: a, b: b, c: c2, l0: geo.Wrap(restAngle), k: stiffness, tag: -1}
}

func (c *LocalAngle) SetTag(tag int) *LocalAngle { c.tag = tag; return c }

func (c *LocalAngle) Masses() []*Mass { return []*Mass{c.a, c.b, c.c} }

func (c *LocalAngle) Length() float64 {
	ap, bp, cp := c.a.Pos(), c.b.Pos(), c.c.Pos()
	return geo.Angle3(&ap, &bp, &cp)
}

func (c *LocalAngle) Displacement() float64 { return geo.Wrap(c.Length() - c.l0) }

func (c *LocalAngle) ApplyForce() {
	ap, bp, cp := c.a.Pos(), c.b.Pos(), c.c.Pos()
	distAB := ap.Dist(&bp)
	distCB := cp.Dist(&bp)
	if geo.AeqZ(distAB) || geo.AeqZ(distCB) {
		return
	}
	disp := c.Displacement()

	uvAB := geo.NewV2().Uv(&ap, &bp)
	orthAB := geo.NewV2().Orthog(uvAB)
	fA := geo.NewV2().Scale(orthAB, -c.k*disp/distAB)

	// Mirror of the global-angle formula on pair (C,B), with the sign of
	// orthog reversed.
	uvCB := geo.NewV2().Uv(&cp, &bp)
	orthCB := geo.NewV2().Orthog(uvCB)
	fC := geo.NewV2().Scale(orthCB, c.k*disp/distCB)

	aOverMa := geo.NewV2().Scale(fA, 1/c.a.MassValue())
	cOverMc := geo.NewV2().Scale(fC, 1/c.c.MassValue())

	c.a.addAccel(*aOverMa)
	c.c.addAccel(*cOverMc)
	bDelta := geo.NewV2().Neg(geo.NewV2().Add(aOverMa, cOverMc))
	c.b.addAccel(*bDelta)
}

func (c *LocalAngle) PlacementSuggestion(m *Mass) []Suggestion {
	ap, bp, cp := c.a.Pos(), c.b.Pos(), c.c.Pos()
	switch m {
	case c.a:
		theta := geo.Wrap(geo.Angle(&cp, &bp) + c.l0)
		return []Suggestion{{Ref: c.b.name, HasTheta: true, Theta: theta, Wth: c.k}}
	case c.c:
		theta := geo.Wrap(geo.Angle(&ap, &bp) - c.l0)
		return []Suggestion{{Ref: c.b.name, HasTheta: true, Theta: theta, Wth: c.k}}
	case c.b:
		r := (1 - math.Abs(c.l0)/geo.PIx2) * ap.Dist(&cp)
		theta := c.bisectVertexBearing(r)
		return []Suggestion{{
			Ref: c.a.name,
			HasR: true, R: r, Wr: c.k / 2,
			HasTheta: true, Theta: theta, Wth: c.k / 2,
		}}
	}
	return nil
}

// bisectVertexBearing searches [-PI, PI) for the bearing theta such that a
// probe mass placed at radius r from A, along theta, yields
// angle(A, probe, C) == l0. Twenty bisection steps comfortably exceeds the
// precision placement needs to seed an integration.
func (c *LocalAngle) bisectVertexBearing(r float64) float64 {
	ap, cp := c.a.Pos(), c.c.Pos()
	probeAt := func(theta float64) geo.V2 {
		dir := geo.NewV2().FromHeading(theta)
		return *geo.NewV2().Add(&ap, dir.Scale(dir, r))
	}
	residual := func(theta float64) float64 {
		probe := probeAt(theta)
		return geo.Wrap(geo.Angle3(&ap, &probe, &cp) - c.l0)
	}

	lo, hi := -geo.PI, geo.PI
	fLo := residual(lo)
	for i := 0; i < 20; i++ {
		mid := 0.5 * (lo + hi)
		fMid := residual(mid)
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

func (c *LocalAngle) PotentialEnergy() float64 {
	d := c.Displacement()
	return 0.5 * c.k * d * d
}

func (c *LocalAngle) TagID() int        { return c.tag }
func (c *LocalAngle) Stiffness() float64 { return c.k }

func (c *LocalAngle) String() string {
	return fmt.Sprintf("localAngle(%s,%s,%s) angle=%.4f rest=%.4f k=%.4f",
		c.a.name, c.b.name, c.c.name, c.Length(), c.l0, c.k)
}

func (c *LocalAngle) rebindMass(i int, m *Mass) {
	switch i {
	case 0:
		c.a = m
	case 1:
		c.b = m
	case 2:
		c.c = m
	}
}
