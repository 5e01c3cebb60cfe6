package relax

// placement.go is the greedy initial-placement heuristic: an ordering
// pass picks the sequence of masses whose placement completes the most
// still-pending constraints, then a placement pass seeds each mass's
// position from the merged suggestions of the constraints that pass now
// references. It never touches velocity, and it never applies a force — it is strictly a seeding step, run once before the
// integrator starts (or any time the caller wants a fresh starting
// guess).

import (
	"math"

	"github.com/galvanized/relax/geo"
)

// InitialiseState seeds every mass's position from the merged placement
// suggestions of its constraints, in greedy completion order, then marks
// the layout changed with the energy log reset.
func (l *Layout) InitialiseState() {
	order := l.orderingPhase()
	l.placementPhase(order)
	l.MarkStateChanged(true, true)
}

// orderingPhase repeatedly picks the unplaced mass whose placement would
// complete the largest number of still-pending constraints, breaking ties
// on insertion order.
func (l *Layout) orderingPhase() []*Mass {
	placed := make(map[*Mass]bool, len(l.order))
	pending := append([]Constraint(nil), l.constraints...)
	remaining := append([]*Mass(nil), l.order...)
	order := make([]*Mass, 0, len(remaining))

	for len(remaining) > 0 {
		bestIdx, bestScore := 0, -1
		for i, m := range remaining {
			score := 0
			for _, c := range pending {
				involvesM := false
				unplaced := 0
				for _, p := range c.Masses() {
					if p == m {
						involvesM = true
						continue
					}
					if !placed[p] {
						unplaced++
					}
				}
				if involvesM && unplaced == 0 {
					score++
				}
			}
			if score > bestScore {
				bestScore, bestIdx = score, i
			}
		}

		m := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		placed[m] = true
		order = append(order, m)

		stillPending := pending[:0:0]
		for _, c := range pending {
			complete := true
			for _, p := range c.Masses() {
				if !placed[p] {
					complete = false
					break
				}
			}
			if !complete {
				stillPending = append(stillPending, c)
			}
		}
		pending = stillPending
	}
	return order
}

// placementPhase commits a position for every mass in order, in sequence,
// using only the constraints whose other participants are already
// positioned.
func (l *Layout) placementPhase(order []*Mass) {
	placed := make(map[*Mass]bool, len(l.order))
	for _, m := range order {
		var suggestions []Suggestion
		for _, c := range l.constraints {
			involvesM, othersPlaced := false, true
			for _, p := range c.Masses() {
				if p == m {
					involvesM = true
					continue
				}
				if !placed[p] {
					othersPlaced = false
					break
				}
			}
			if involvesM && othersPlaced {
				suggestions = append(suggestions, c.PlacementSuggestion(m)...)
			}
		}
		m.SetPos(l.mergeSuggestions(suggestions))
		placed[m] = true
	}
}

// suggestionGroup accumulates every suggestion relative to a single
// reference mass before the weighted radial/angular merges run.
type suggestionGroup struct {
	ref                      string
	hasR, hasTheta           bool
	rNum, rWeight            float64
	sinSum, cosSum, thWeight float64
}

// mergeSuggestions groups suggestions by reference mass, merges each
// group's radial and angular components by weighted mean (circular mean
// for angles), then walks the merged groups — both-component groups
// first, then angle-only, then radius-only — accumulating a running
// weighted placement.
func (l *Layout) mergeSuggestions(suggestions []Suggestion) geo.V2 {
	if len(suggestions) == 0 {
		return geo.V2{}
	}

	groups := make(map[string]*suggestionGroup)
	var refOrder []string
	for _, s := range suggestions {
		g, ok := groups[s.Ref]
		if !ok {
			g = &suggestionGroup{ref: s.Ref}
			groups[s.Ref] = g
			refOrder = append(refOrder, s.Ref)
		}
		if s.HasR {
			g.hasR = true
			g.rNum += s.R * s.Wr
			g.rWeight += s.Wr
		}
		if s.HasTheta {
			g.hasTheta = true
			g.sinSum += s.Wth * math.Sin(s.Theta)
			g.cosSum += s.Wth * math.Cos(s.Theta)
			g.thWeight += s.Wth
		}
	}

	var both, thetaOnly, rOnly []*suggestionGroup
	for _, ref := range refOrder {
		g := groups[ref]
		switch {
		case g.hasR && g.hasTheta:
			both = append(both, g)
		case g.hasTheta:
			thetaOnly = append(thetaOnly, g)
		case g.hasR:
			rOnly = append(rOnly, g)
		}
	}
	var ordered []*suggestionGroup
	ordered = append(ordered, both...)
	ordered = append(ordered, thetaOnly...)
	ordered = append(ordered, rOnly...)

	var p geo.V2
	w := 0.0
	for _, g := range ordered {
		ref, ok := l.byName[g.ref]
		if !ok {
			continue
		}
		refPos := ref.pos

		var suggested geo.V2
		var weight float64
		switch {
		case g.hasR && g.hasTheta:
			r := g.rNum / g.rWeight
			theta := math.Atan2(g.sinSum, g.cosSum)
			suggested = geo.V2{X: refPos.X + r*math.Cos(theta), Y: refPos.Y + r*math.Sin(theta)}
			weight = g.rWeight + g.thWeight
		case g.hasTheta:
			theta := math.Atan2(g.sinSum, g.cosSum)
			ux, uy := math.Cos(theta), math.Sin(theta)
			rPrime := 1.0
			if w > 0 {
				rPrime = (p.X-refPos.X)*ux + (p.Y-refPos.Y)*uy
			}
			rUsed := math.Max(1, rPrime)
			suggested = geo.V2{X: refPos.X + rUsed*ux, Y: refPos.Y + rUsed*uy}
			weight = g.thWeight
		case g.hasR:
			ux, uy := 1.0, 0.0
			if w != 0 {
				dx, dy := p.X-refPos.X, p.Y-refPos.Y
				if d := math.Hypot(dx, dy); d > 1e-9 {
					ux, uy = dx/d, dy/d
				}
			}
			r := g.rNum / g.rWeight
			suggested = geo.V2{X: refPos.X + r*ux, Y: refPos.Y + r*uy}
			weight = g.rWeight
		}

		newW := w + weight
		if newW > 0 {
			p = geo.V2{X: (p.X*w + suggested.X*weight) / newW, Y: (p.Y*w + suggested.Y*weight) / newW}
		} else {
			logger.Warn("mergeSuggestions: zero total weight, suggestion ignored", "ref", g.ref)
		}
		w = newW
	}
	return p
}
