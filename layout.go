package relax

// layout.go is the container component: it owns every mass and constraint
// it is handed (holding the same pointers the caller passed in), deduplicates masses
// by name, and is the seam every other component pulls state from or
// pushes state into. Nothing outside this file mutates l.order or
// l.byName directly.

import (
	"math/rand"

	"github.com/galvanized/relax/geo"
)

// Layout owns a population of masses and constraints and drives them
// toward a low-energy arrangement one Step at a time.
type Layout struct {
	cfg config

	order  []*Mass
	byName map[string]*Mass

	constraints []Constraint

	ig              *integrator
	systemChanged   bool
	bouncedLastStep bool

	energy *EnergyLog
	hook   func()
}

// NewLayout creates an empty layout. logEnergy turns on the kinetic/
// potential energy log; additional tunables (friction, time step,
// safe distance, strict name checking) are supplied via Option.
func NewLayout(logEnergy bool, opts ...Option) *Layout {
	cfg := defaultConfig()
	cfg.logEnergy = logEnergy
	for _, opt := range opts {
		opt(&cfg)
	}
	l := &Layout{
		cfg:           cfg,
		byName:        make(map[string]*Mass),
		systemChanged: true,
	}
	l.ig = newIntegrator(cfg.timeStep, l.derivative)
	if cfg.logEnergy {
		l.energy = newEnergyLog()
	}
	return l
}

// AddMass registers m under its name if no mass with that name is already
// owned. A second, distinct mass object sharing a name is silently
// ignored unless StrictNames is set, in which case it is an error.
func (l *Layout) AddMass(m *Mass) error {
	if existing, ok := l.byName[m.name]; ok {
		if existing == m {
			return nil
		}
		if l.cfg.strictNames {
			return errDuplicateMassName("AddMass", m.name)
		}
		return nil
	}
	l.byName[m.name] = m
	l.order = append(l.order, m)
	l.MarkStateChanged(true, false)
	return nil
}

// AddConstraint rebinds c's participants onto any mass the layout already
// owns by name, registers any genuinely new masses, and appends c.
func (l *Layout) AddConstraint(c Constraint) error {
	for i, m := range c.Masses() {
		owned, ok := l.byName[m.name]
		if !ok {
			if err := l.AddMass(m); err != nil {
				return err
			}
			continue
		}
		if owned != m {
			if l.cfg.strictNames {
				return errDuplicateMassName("AddConstraint", m.name)
			}
			c.rebindMass(i, owned)
		}
	}
	l.constraints = append(l.constraints, c)
	l.MarkStateChanged(true, false)
	return nil
}

// AddConstraints adds every constraint in cs via AddConstraint, in order.
func (l *Layout) AddConstraints(cs []Constraint) error {
	for _, c := range cs {
		if err := l.AddConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// GetMass looks up a mass by name.
func (l *Layout) GetMass(name string) (*Mass, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// UpdateConstraints atomically replaces every constraint sharing cs[0]'s
// tag id with cs. All members of cs must carry that same non-negative tag
// id, or the call fails without mutating the layout.
func (l *Layout) UpdateConstraints(cs []Constraint) error {
	if len(cs) == 0 {
		return errTagIDMismatch("UpdateConstraints")
	}
	tag := cs[0].TagID()
	if tag < 0 {
		return errTagIDNegative("UpdateConstraints")
	}
	for _, c := range cs[1:] {
		if c.TagID() != tag {
			return errTagIDMismatch("UpdateConstraints")
		}
	}

	for i, c := range cs {
		for j, m := range c.Masses() {
			owned, ok := l.byName[m.name]
			if !ok {
				if err := l.AddMass(m); err != nil {
					return err
				}
				continue
			}
			if owned != m {
				cs[i].rebindMass(j, owned)
			}
		}
	}

	kept := l.constraints[:0:0]
	for _, c := range l.constraints {
		if c.TagID() != tag {
			kept = append(kept, c)
		}
	}
	l.constraints = append(kept, cs...)
	l.MarkStateChanged(true, false)
	return nil
}

// RandomiseState scatters every mass uniformly over
// [-windowSize/2, windowSize/2] per axis, zeroing velocity and
// acceleration, fixed masses included.
func (l *Layout) RandomiseState(windowSize float64) {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	for _, m := range l.order {
		m.SetPos(geo.V2{X: (rand.Float64() - 0.5) * windowSize, Y: (rand.Float64() - 0.5) * windowSize})
		m.SetVel(geo.V2{})
		m.acc = geo.V2{}
	}
	l.MarkStateChanged(true, true)
}

// MarkStateChanged records an energy-log sample and fires the observer
// hook. When systemChanged is true, the next Step reseeds the integrator
// from the layout's current state instead of continuing its own
// trajectory; when reset is true, the energy log's history is cleared
// first.
func (l *Layout) MarkStateChanged(systemChanged, reset bool) {
	if reset && l.energy != nil {
		l.energy.reset()
	}
	if systemChanged {
		l.systemChanged = true
	}
	if l.energy != nil {
		l.energy.record(l.ig.t, l.kineticEnergy(), l.potentialEnergy())
	}
	if l.hook != nil {
		l.hook()
	}
}

// SetPostStateChangeHook installs fn to run at the end of every
// MarkStateChanged call. Passing nil clears it.
func (l *Layout) SetPostStateChangeHook(fn func()) {
	l.hook = fn
}

// BouncedLastStep reports whether the most recent Step triggered a
// safe-distance reflection.
func (l *Layout) BouncedLastStep() bool { return l.bouncedLastStep }

// EnergyLog returns the layout's energy log, or nil if logging was never
// enabled.
func (l *Layout) EnergyLog() *EnergyLog { return l.energy }
