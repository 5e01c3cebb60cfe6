package relax

// mass.go is the 2-D point-particle counterpart of a rigid body: no
// orientation, no inertia tensor, just position, velocity, and a scratch
// acceleration refreshed once per derivative evaluation.

import "github.com/galvanized/relax/geo"

// Mass is a point particle participating in the layout. A fixed mass is
// an anchor: force refreshes and integration never change its velocity or
// acceleration, and friction never applies to it.
type Mass struct {
	name  string
	pos   geo.V2
	vel   geo.V2
	acc   geo.V2 // scratch, rewritten by every force refresh.
	m     float64
	fixed bool
}

// NewMass creates a free mass at the origin with unit mass, zero velocity
// and zero acceleration.
func NewMass(name string) *Mass { return NewMassAt(name, geo.V2{}) }

// NewMassAt creates a free mass at the given position with unit mass and
// zero velocity.
func NewMassAt(name string, pos geo.V2) *Mass {
	return &Mass{name: name, pos: pos, m: 1}
}

// NewFixedMass creates a mass locked at the given position. Its velocity
// and acceleration are always zero.
func NewFixedMass(name string, pos geo.V2) *Mass {
	return &Mass{name: name, pos: pos, m: 1, fixed: true}
}

// Name returns the mass's identity key.
func (m *Mass) Name() string { return m.name }

// Pos returns the mass's current position.
func (m *Mass) Pos() geo.V2 { return m.pos }

// SetPos sets the mass's position directly, bypassing integration. Used
// by initial placement and randomisation.
func (m *Mass) SetPos(p geo.V2) { m.pos = p }

// Vel returns the mass's current velocity.
func (m *Mass) Vel() geo.V2 { return m.vel }

// SetVel sets the mass's velocity directly.
func (m *Mass) SetVel(v geo.V2) { m.vel = v }

// SetMassValue sets the scalar mass used by force-to-acceleration scaling.
// Defaults to 1 if never called.
func (m *Mass) SetMassValue(value float64) {
	if value > 0 {
		m.m = value
	}
}

// MassValue returns the scalar mass.
func (m *Mass) MassValue() float64 { return m.m }

// Fixed reports whether the mass ignores force integration.
func (m *Mass) Fixed() bool { return m.fixed }

// clearForce zeroes the scratch acceleration ahead of a force refresh.
func (m *Mass) clearForce() { m.acc = geo.V2{} }

// applyFriction adds -μ*v to the scratch acceleration. A no-op for fixed
// masses.
func (m *Mass) applyFriction(mu float64) {
	if m.fixed {
		return
	}
	m.acc.X -= mu * m.vel.X
	m.acc.Y -= mu * m.vel.Y
}

// addForce accumulates a force scaled by this mass's inverse mass into
// its scratch acceleration. A no-op for fixed masses.
func (m *Mass) addForce(f geo.V2) {
	if m.fixed {
		return
	}
	m.addAccel(geo.V2{X: f.X / m.m, Y: f.Y / m.m})
}

// addAccel accumulates an already mass-scaled acceleration contribution
// directly. Used by the local-angle constraint, whose force on the vertex
// mass is expressed in terms of the *other two* masses' inverse masses,
// not its own.
func (m *Mass) addAccel(a geo.V2) {
	if m.fixed {
		return
	}
	m.acc.X += a.X
	m.acc.Y += a.Y
}

// kineticEnergy returns 1/2*m*|v|^2, or zero for a fixed mass.
func (m *Mass) kineticEnergy() float64 {
	if m.fixed {
		return 0
	}
	v := m.vel
	return 0.5 * m.m * v.Dot(&v)
}
