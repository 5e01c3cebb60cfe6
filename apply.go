package relax

// apply.go is the collision-aware state applier. An RK4 step produces a
// candidate state that may drive two masses through each other; this
// component reconciles that candidate against a safe-distance floor by
// shortening the offending mass's motion at the point it first crosses
// the disc and mirror-reflecting both masses' velocities, looping until
// the remaining motion for that tick no longer approaches anyone too
// closely.

import "github.com/galvanized/relax/geo"

const maxBounceIterations = 64

// pushStateSafely installs the pre-step phase vector yA, then the
// post-step velocities from yB unconditionally, then walks each mass's
// positional delta through stepSafely in insertion order. It reports
// whether any mass bounced off another during this call.
func pushStateSafely(l *Layout, yA, yB []float64) (bool, error) {
	installState(l, yA)
	installVelocities(l, yB)

	bounced := false
	for i, m := range l.order {
		step := geo.V2{X: yB[4*i] - yA[4*i], Y: yB[4*i+1] - yA[4*i+1]}
		b, err := stepSafely(l, m, step)
		if err != nil {
			return bounced, err
		}
		bounced = bounced || b
	}
	return bounced, nil
}

func installState(l *Layout, y []float64) {
	for i, m := range l.order {
		m.pos.X, m.pos.Y = y[4*i], y[4*i+1]
		m.vel.X, m.vel.Y = y[4*i+2], y[4*i+3]
	}
}

func installVelocities(l *Layout, y []float64) {
	for i, m := range l.order {
		m.vel.X, m.vel.Y = y[4*i+2], y[4*i+3]
	}
}

// stepSafely applies step to m's position, shortening and reflecting it
// around any other mass it would otherwise approach closer than the
// layout's safe distance. It reports whether a reflection occurred.
func stepSafely(l *Layout, m *Mass, step geo.V2) (bool, error) {
	bounced := false
	for iter := 0; iter < maxBounceIterations; iter++ {
		cur := m.pos
		target := geo.NewV2().Add(&cur, &step)

		var hit *Mass
		for _, other := range l.order {
			if other == m {
				continue
			}
			if target.Dist(&other.pos) < l.cfg.safeDistance {
				hit = other
				break
			}
		}
		if hit == nil {
			m.pos = *target
			return bounced, nil
		}

		ip, err := geo.FirstCircleIntersect(&cur, target, &hit.pos, l.cfg.safeDistance)
		if err != nil {
			return bounced, err
		}

		dirM := geo.ReflectedDirection(&cur, ip, &hit.pos)
		dirU := geo.ReflectedDirection(&hit.pos, ip, &cur)

		speedM := m.vel.Len()
		newVelM := geo.NewV2().FromHeading(dirM)
		newVelM.Scale(newVelM, speedM)
		m.vel = *newVelM

		speedU := hit.vel.Len()
		newVelU := geo.NewV2().FromHeading(dirU)
		newVelU.Scale(newVelU, speedU)
		hit.vel = *newVelU

		m.pos = *ip
		nextPos := geo.ReflectedPosition(&cur, &step, ip, dirM)
		step = *geo.NewV2().Sub(nextPos, ip)
		bounced = true
	}
	logger.Warn("stepSafely exceeded bounce iteration cap", "mass", m.name)
	return bounced, nil
}
