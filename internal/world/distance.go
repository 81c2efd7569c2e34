package world

import "math"

// distanceMatrix computes the full Euclidean distance matrix between two
// point sets. Rebuilt from scratch every tick; with the player and pellet
// counts this engine runs at, incremental updates are not worth the
// bookkeeping.
func distanceMatrix(a, b [][2]float64) [][]float64 {
	m := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, len(b))
		for j := range b {
			dx := a[i][0] - b[j][0]
			dy := a[i][1] - b[j][1]
			row[j] = math.Hypot(dx, dy)
		}
		m[i] = row
	}
	return m
}

// updateDistances refreshes both distance matrices from current positions.
func (w *World) updateDistances() {
	w.playerDist = distanceMatrix(w.playerPos, w.playerPos)
	w.pelletDist = distanceMatrix(w.playerPos, w.pelletPos)
}
