package world

// capture pairs one victim with every player simultaneously eligible to
// eat it this tick. Eater order follows player index so floating-point
// accumulation is reproducible run to run.
type capture struct {
	victim int
	eaters []int
}

// findPlayerCaptures scans the player distance matrix for capture-eligible
// pairs. Player i eats player j when i is within its own radius of j and
// strictly radius-dominates it. Dead players qualify neither as eater nor
// as victim; self-pairs are excluded.
func (w *World) findPlayerCaptures() []capture {
	var caps []capture
	for j := 0; j < w.cfg.NumPlayers; j++ {
		if !w.alive[j] {
			continue
		}
		var eaters []int
		for i := 0; i < w.cfg.NumPlayers; i++ {
			if i == j || !w.alive[i] {
				continue
			}
			if w.playerDist[i][j] < w.radii[i] && w.radii[i] > w.radii[j] {
				eaters = append(eaters, i)
			}
		}
		if len(eaters) > 0 {
			caps = append(caps, capture{victim: j, eaters: eaters})
		}
	}
	return caps
}

// findPelletCaptures scans the pellet distance matrix. Player i eats pellet
// k when the two circles touch (distance under the combined radii) and the
// player strictly radius-dominates the pellet.
func (w *World) findPelletCaptures() []capture {
	pr := w.cfg.PelletRadius()
	var caps []capture
	for k := 0; k < w.cfg.NumPellets; k++ {
		var eaters []int
		for i := 0; i < w.cfg.NumPlayers; i++ {
			if !w.alive[i] {
				continue
			}
			if w.pelletDist[i][k] < w.radii[i]+pr && w.radii[i] > pr {
				eaters = append(eaters, i)
			}
		}
		if len(eaters) > 0 {
			caps = append(caps, capture{victim: k, eaters: eaters})
		}
	}
	return caps
}

// splitCredit divides a victim's contributed mass equally among its
// qualifying eaters. Shares are equal by eligibility, never weighted by
// eater size, so the sum of shares reproduces the contributed mass exactly.
func splitCredit(contributed float64, eaters []int, credit []float64) {
	share := contributed / float64(len(eaters))
	for _, e := range eaters {
		credit[e] += share
	}
}
