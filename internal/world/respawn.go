package world

// respawnAttempts bounds the rejection-sampling loop per pellet. Unbounded
// rejection sampling never terminates once living players' radii cover the
// world, so after the budget the least-crowded candidate seen so far is
// used instead.
const respawnAttempts = 64

// respawnPellets relocates every pellet eaten this tick to a fresh draw
// from the configured placement distribution, resampling while the draw
// lands inside a living player's capture radius. Clearance is judged
// against post-update radii and alive flags. Budget exhaustion is a
// recoverable condition, never an error.
func (w *World) respawnPellets(eaten []int) {
	for _, k := range eaten {
		var best [2]float64
		bestClearance := negInf
		for attempt := 0; attempt < respawnAttempts; attempt++ {
			pos := w.sampler.sample(w.rng)
			c := w.clearance(pos)
			if c > bestClearance {
				best, bestClearance = pos, c
			}
			if c >= 0 {
				break
			}
		}
		w.pelletPos[k] = best
	}
}

const negInf = -1e308

// clearance returns the smallest margin between pos and any living
// player's capture radius. Negative means pos is inside someone's radius.
func (w *World) clearance(pos [2]float64) float64 {
	min := 1e308
	for i := range w.playerPos {
		if !w.alive[i] {
			continue
		}
		dx := pos[0] - w.playerPos[i][0]
		dy := pos[1] - w.playerPos[i][1]
		d := dx*dx + dy*dy
		// Compare squared distance against squared radius, then report
		// the margin in squared units; only the sign and ordering matter.
		m := d - w.radii[i]*w.radii[i]
		if m < min {
			min = m
		}
	}
	return min
}
