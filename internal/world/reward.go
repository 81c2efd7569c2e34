package world

// rewards derives the per-player reward for the tick just completed: the
// mass delta, minus the idle penalty for players sitting exactly at the
// base-mass floor. A player dying this tick gets the full negative delta of
// its death; dead players earn zero thereafter since their mass stays zero.
func (w *World) rewards(prevMasses []float64) []float64 {
	out := make([]float64, w.cfg.NumPlayers)
	for i := range out {
		out[i] = w.masses[i] - prevMasses[i]
		if w.cfg.BasePenalty > 0 && w.alive[i] && w.masses[i] == w.cfg.BaseMass {
			out[i] -= w.cfg.BasePenalty
		}
	}
	return out
}
