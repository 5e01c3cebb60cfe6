package relax

// snapshot.go gives external collaborators (a visualisation layer, a
// persistence layer, a message-bus publisher — all explicitly out of
// scope for this engine) a loss-free, round-trippable view of a layout's
// masses and constraints. The engine itself never reads or writes this
// form; it exists purely as an external interface, YAML-backed like the
// rest of the ambient configuration surface.

import (
	"fmt"

	"github.com/galvanized/relax/geo"
	"gopkg.in/yaml.v3"
)

// Constraint kind tags used in a Snapshot's Constraints[i].Kind field.
const (
	KindDistance    = "distance"
	KindGlobalAngle = "globalAngle"
	KindLocalAngle  = "localAngle"
)

// MassSnapshot is the round-trippable form of a single Mass.
type MassSnapshot struct {
	Name  string     `yaml:"name"`
	Pos   [2]float64 `yaml:"pos"`
	Vel   [2]float64 `yaml:"vel"`
	Mass  float64    `yaml:"mass"`
	Fixed bool       `yaml:"fixed,omitempty"`
}

// ConstraintSnapshot is the round-trippable form of a single Constraint.
// Masses holds two entries for distance/globalAngle (A, B) or three for
// localAngle (A, B, C), naming participants rather than embedding them.
type ConstraintSnapshot struct {
	Kind       string   `yaml:"kind"`
	Masses     []string `yaml:"masses"`
	RestLength float64  `yaml:"rest_length"`
	Stiffness  float64  `yaml:"stiffness"`
	Tag        int      `yaml:"tag"`
}

// Snapshot is a whole-layout round-trippable serialisation.
type Snapshot struct {
	Masses      []MassSnapshot       `yaml:"masses"`
	Constraints []ConstraintSnapshot `yaml:"constraints"`
}

// Snapshot captures the layout's current masses and constraints.
func (l *Layout) Snapshot() Snapshot {
	s := Snapshot{
		Masses:      make([]MassSnapshot, 0, len(l.order)),
		Constraints: make([]ConstraintSnapshot, 0, len(l.constraints)),
	}
	for _, m := range l.order {
		s.Masses = append(s.Masses, MassSnapshot{
			Name:  m.name,
			Pos:   [2]float64{m.pos.X, m.pos.Y},
			Vel:   [2]float64{m.vel.X, m.vel.Y},
			Mass:  m.m,
			Fixed: m.fixed,
		})
	}
	for _, c := range l.constraints {
		names := make([]string, 0, 3)
		for _, m := range c.Masses() {
			names = append(names, m.name)
		}
		kind, restLength := constraintKind(c)
		s.Constraints = append(s.Constraints, ConstraintSnapshot{
			Kind:       kind,
			Masses:     names,
			RestLength: restLength,
			Stiffness:  c.Stiffness(),
			Tag:        c.TagID(),
		})
	}
	return s
}

func constraintKind(c Constraint) (kind string, restLength float64) {
	switch v := c.(type) {
	case *Distance:
		return KindDistance, v.l0
	case *GlobalAngle:
		return KindGlobalAngle, v.l0
	case *LocalAngle:
		return KindLocalAngle, v.l0
	default:
		return "", 0
	}
}

// Marshal renders the snapshot as YAML.
func (s Snapshot) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// ParseSnapshot reads a Snapshot back from YAML.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("relax: ParseSnapshot: %w", err)
	}
	return s, nil
}

// BuildLayout reconstructs a Layout from the snapshot: masses first, in
// their recorded order, then constraints rebound onto those masses by
// name.
func (s Snapshot) BuildLayout(logEnergy bool, opts ...Option) (*Layout, error) {
	l := NewLayout(logEnergy, opts...)
	for _, ms := range s.Masses {
		var m *Mass
		if ms.Fixed {
			m = NewFixedMass(ms.Name, geo.V2{X: ms.Pos[0], Y: ms.Pos[1]})
		} else {
			m = NewMassAt(ms.Name, geo.V2{X: ms.Pos[0], Y: ms.Pos[1]})
			m.SetVel(geo.V2{X: ms.Vel[0], Y: ms.Vel[1]})
		}
		m.SetMassValue(ms.Mass)
		if err := l.AddMass(m); err != nil {
			return nil, err
		}
	}

	for _, cs := range s.Constraints {
		c, err := buildConstraint(l, cs)
		if err != nil {
			return nil, err
		}
		if err := l.AddConstraint(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func buildConstraint(l *Layout, cs ConstraintSnapshot) (Constraint, error) {
	lookup := func(name string) (*Mass, error) {
		m, ok := l.GetMass(name)
		if !ok {
			return nil, fmt.Errorf("relax: BuildLayout: constraint references unknown mass %q", name)
		}
		return m, nil
	}

	switch cs.Kind {
	case KindDistance:
		if len(cs.Masses) != 2 {
			return nil, fmt.Errorf("relax: BuildLayout: distance constraint needs 2 masses, got %d", len(cs.Masses))
		}
		a, err := lookup(cs.Masses[0])
		if err != nil {
			return nil, err
		}
		b, err := lookup(cs.Masses[1])
		if err != nil {
			return nil, err
		}
		return NewDistance(a, b, cs.RestLength, cs.Stiffness).SetTag(cs.Tag), nil
	case KindGlobalAngle:
		if len(cs.Masses) != 2 {
			return nil, fmt.Errorf("relax: BuildLayout: globalAngle constraint needs 2 masses, got %d", len(cs.Masses))
		}
		a, err := lookup(cs.Masses[0])
		if err != nil {
			return nil, err
		}
		b, err := lookup(cs.Masses[1])
		if err != nil {
			return nil, err
		}
		return NewGlobalAngle(a, b, cs.RestLength, cs.Stiffness).SetTag(cs.Tag), nil
	case KindLocalAngle:
		if len(cs.Masses) != 3 {
			return nil, fmt.Errorf("relax: BuildLayout: localAngle constraint needs 3 masses, got %d", len(cs.Masses))
		}
		a, err := lookup(cs.Masses[0])
		if err != nil {
			return nil, err
		}
		b, err := lookup(cs.Masses[1])
		if err != nil {
			return nil, err
		}
		c, err := lookup(cs.Masses[2])
		if err != nil {
			return nil, err
		}
		return NewLocalAngle(a, b, c, cs.RestLength, cs.Stiffness).SetTag(cs.Tag), nil
	default:
		return nil, fmt.Errorf("relax: BuildLayout: unknown constraint kind %q", cs.Kind)
	}
}
