// Package relax is a two-dimensional spring-mass spatial layout engine.
// It maintains a population of point masses and spring-like constraints
// between them (distance, global bearing, and three-body local bearing)
// and integrates Newtonian dynamics forward in fixed steps so the
// configuration relaxes toward an arrangement that best satisfies every
// constraint.
//
// A typical caller builds a Layout, adds masses and constraints,
// optionally calls InitialiseState to seed reasonable starting positions,
// then drives the simulation by calling Step in a loop at whatever cadence
// it chooses, watching EnergyLog (if enabled) to decide when to stop.
package relax
