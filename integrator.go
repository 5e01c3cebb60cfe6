package relax

// integrator.go is the fixed-step classical RK4 integrator over the
// layout's concatenated phase vector. It knows nothing about masses or
// constraints directly; it is handed a derivative callback and a phase
// vector and performs the four-stage weighted update. Per the source's
// own note, every stage evaluates the derivative at the current time t
// rather than t+c*Δt — the system is autonomous (the derivative does not
// depend on t explicitly), so this is equivalent, but it means the deriv
// callback below never receives a time argument at all.

// derivFunc evaluates dy/dt at the given phase vector.
type derivFunc func(y []float64) []float64

// integrator holds the running (t, y) state of the fixed-step RK4 scheme.
type integrator struct {
	t     float64
	y     []float64
	dt    float64
	deriv derivFunc
}

func newIntegrator(dt float64, deriv derivFunc) *integrator {
	return &integrator{dt: dt, deriv: deriv}
}

// seed overwrites the integrator's current state with y, without
// advancing time. Used whenever the layout's "system changed" flag is
// set ahead of the next integrate call.
func (ig *integrator) seed(y []float64) {
	ig.y = append(ig.y[:0], y...)
}

// integrate advances the integrator by one fixed step dt using classical
// RK4, updates the internal (t, y) pair to the new state, and returns the
// new phase vector.
func (ig *integrator) integrate() []float64 {
	y, dt := ig.y, ig.dt

	k1 := ig.deriv(y)
	k2 := ig.deriv(axpy(y, k1, dt/2))
	k3 := ig.deriv(axpy(y, k2, dt/2))
	k4 := ig.deriv(axpy(y, k3, dt))

	next := make([]float64, len(y))
	for i := range y {
		next[i] = y[i] + (dt/6)*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	ig.y = next
	ig.t += dt
	return next
}

// axpy returns y + h*k element-wise, as a freshly allocated slice.
func axpy(y, k []float64, h float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + h*k[i]
	}
	return out
}

// phaseVector reads the layout's current (pos, vel) state, in insertion
// order, into a single concatenated vector.
func (l *Layout) phaseVector() []float64 {
	y := make([]float64, 4*len(l.order))
	for i, m := range l.order {
		y[4*i], y[4*i+1] = m.pos.X, m.pos.Y
		y[4*i+2], y[4*i+3] = m.vel.X, m.vel.Y
	}
	return y
}

// derivative is the RK4 callback: it writes y into the masses, refreshes
// every force (clear, friction, per-constraint apply), then reads back
// (vel, acc) as dy/dt.
func (l *Layout) derivative(y []float64) []float64 {
	for i, m := range l.order {
		m.pos.X, m.pos.Y = y[4*i], y[4*i+1]
		m.vel.X, m.vel.Y = y[4*i+2], y[4*i+3]
	}
	for _, m := range l.order {
		m.clearForce()
	}
	for _, m := range l.order {
		m.applyFriction(l.cfg.friction)
	}
	for _, c := range l.constraints {
		c.ApplyForce()
	}

	out := make([]float64, len(y))
	for i, m := range l.order {
		out[4*i], out[4*i+1] = m.vel.X, m.vel.Y
		out[4*i+2], out[4*i+3] = m.acc.X, m.acc.Y
	}
	return out
}
