package relax

// step.go is the orchestrator: it is the only place that calls into the
// integrator, the safe state applier, and the energy log together, in
// the order the rest of the engine assumes.

// Step advances the layout by one fixed Δt: reseeding the integrator if
// the system changed since the last step, integrating one RK4 step,
// reconciling the result against the safe-distance rule, and recording
// the outcome. A bounce during this step counts as a system change, so
// the next Step reseeds from the post-bounce state rather than
// continuing the un-bounced trajectory the integrator computed.
func (l *Layout) Step() error {
	if l.systemChanged {
		l.ig.seed(l.phaseVector())
		l.systemChanged = false
	}

	state := append([]float64(nil), l.ig.y...)
	stateNext := l.ig.integrate()

	bounced, err := pushStateSafely(l, state, stateNext)
	if err != nil {
		return err
	}

	l.bouncedLastStep = bounced
	l.MarkStateChanged(bounced, false)
	return nil
}
