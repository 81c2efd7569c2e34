package world

import "math"

// updateMasses applies one tick of mass flow. Order matters:
//
//  1. Pellet shares are credited, and each player-victim's contributed mass
//     is snapshotted with its own pellet credit included, so the mass a
//     victim swallowed on its death tick still reaches its eaters.
//  2. Player-capture shares are computed from that snapshot; chained
//     same-tick captures do not flow mass transitively.
//  3. Every living player's own mass decays toward the base-mass floor,
//     then this tick's credits land undecayed.
//  4. Players captured or exiting bounds this tick are zeroed and marked
//     dead, overwriting any credit they earned as eaters. Death is
//     permanent for the rest of the episode.
//
// Returns the pellet indices eaten this tick.
func (w *World) updateMasses(playerCaps, pelletCaps []capture, exited []bool) []int {
	n := w.cfg.NumPlayers
	pelletCredit := make([]float64, n)
	playerCredit := make([]float64, n)

	eatenPellets := make([]int, 0, len(pelletCaps))
	for _, c := range pelletCaps {
		splitCredit(w.cfg.PelletMass, c.eaters, pelletCredit)
		eatenPellets = append(eatenPellets, c.victim)
	}

	for _, c := range playerCaps {
		contributed := w.masses[c.victim] + pelletCredit[c.victim]
		splitCredit(contributed, c.eaters, playerCredit)
	}

	for i := 0; i < n; i++ {
		if !w.alive[i] {
			continue
		}
		w.masses[i] = math.Max(w.masses[i]*w.cfg.MassDecay, w.cfg.BaseMass)
		w.masses[i] += pelletCredit[i] + playerCredit[i]
	}

	for _, c := range playerCaps {
		w.masses[c.victim] = 0
		w.alive[c.victim] = false
	}
	for i, out := range exited {
		if out && w.alive[i] {
			w.masses[i] = 0
			w.alive[i] = false
		}
	}

	w.updateRadii()
	return eatenPellets
}

// updateRadii recomputes every radius from current mass. Radius is derived
// state, never carried across ticks independently of mass.
func (w *World) updateRadii() {
	for i, m := range w.masses {
		w.radii[i] = math.Sqrt(m) * w.cfg.RadiusScale
	}
}
