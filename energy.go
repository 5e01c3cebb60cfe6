package relax

// energy.go is the purely observational accounting component: it never
// feeds back into the dynamics, only into diagnostics and termination
// heuristics a caller drives from outside (e.g. "stop stepping once
// kinetic energy falls below a threshold").

// EnergyLog records kinetic and potential energy samples over time,
// indexed in parallel with T. Enabled by passing logEnergy=true to
// NewLayout.
type EnergyLog struct {
	T         []float64
	Kinetic   []float64
	Potential []float64
}

func newEnergyLog() *EnergyLog { return &EnergyLog{} }

func (e *EnergyLog) record(t, ke, pe float64) {
	e.T = append(e.T, t)
	e.Kinetic = append(e.Kinetic, ke)
	e.Potential = append(e.Potential, pe)
}

// reset empties all three series.
func (e *EnergyLog) reset() {
	e.T = e.T[:0]
	e.Kinetic = e.Kinetic[:0]
	e.Potential = e.Potential[:0]
}

// Latest returns the most recent sample, or ok=false if the log is empty.
func (e *EnergyLog) Latest() (t, ke, pe float64, ok bool) {
	n := len(e.T)
	if n == 0 {
		return 0, 0, 0, false
	}
	return e.T[n-1], e.Kinetic[n-1], e.Potential[n-1], true
}

// kineticEnergy sums 1/2*m*|v|^2 over every mass.
func (l *Layout) kineticEnergy() float64 {
	sum := 0.0
	for _, m := range l.order {
		sum += m.kineticEnergy()
	}
	return sum
}

// potentialEnergy sums 1/2*k*displacement^2 over every constraint.
func (l *Layout) potentialEnergy() float64 {
	sum := 0.0
	for _, c := range l.constraints {
		sum += c.PotentialEnergy()
	}
	return sum
}
