package world

import (
	"fmt"
	"math"
)

// Action is a discrete per-player move command.
type Action int

// Action encoding shared with external policies.
const (
	ActionNoop Action = iota
	ActionRight
	ActionUp
	ActionLeft
	ActionDown

	// NumActions is the size of the discrete action space.
	NumActions = 5
)

var actionDirs = [NumActions][2]float64{
	{0, 0},
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

// minSpeedMass clamps the speed-curve base away from zero so a mass
// approaching zero cannot produce an unbounded displacement.
const minSpeedMass = 1e-5

// speedFor returns the per-tick displacement magnitude for a player of the
// given mass.
func (w *World) speedFor(mass float64) float64 {
	return w.cfg.SpeedScale * math.Pow(math.Max(mass, minSpeedMass), w.cfg.SpeedPow)
}

// applyMovement advances every living player by its action and returns the
// set of players that left the play area this tick. Dead players are forced
// to noop. Under the clamp boundary the returned set is always empty; under
// the kill boundary positions are left unclipped and any living player with
// a coordinate outside [0, WorldSize) is flagged.
func (w *World) applyMovement(actions []Action) []bool {
	exited := make([]bool, w.cfg.NumPlayers)
	for i := range w.playerPos {
		if !w.alive[i] {
			continue
		}
		dir := actionDirs[actions[i]]
		step := w.speedFor(w.masses[i])
		x := w.playerPos[i][0] + dir[0]*step
		y := w.playerPos[i][1] + dir[1]*step

		switch w.cfg.Boundary {
		case BoundaryClamp:
			x = math.Min(math.Max(x, 0), w.cfg.WorldSize)
			y = math.Min(math.Max(y, 0), w.cfg.WorldSize)
		case BoundaryKill:
			if x < 0 || x >= w.cfg.WorldSize || y < 0 || y >= w.cfg.WorldSize {
				exited[i] = true
			}
		}
		w.playerPos[i][0] = x
		w.playerPos[i][1] = y
	}
	return exited
}

// validateActions checks the action vector shape and range before any state
// is touched, so a malformed vector cannot leave a half-stepped world.
func (w *World) validateActions(actions []Action) error {
	if len(actions) != w.cfg.NumPlayers {
		return fmt.Errorf("world: got %d actions for %d players", len(actions), w.cfg.NumPlayers)
	}
	for i, a := range actions {
		if a < 0 || a >= NumActions {
			return fmt.Errorf("world: action %d for player %d out of range [0,%d)", a, i, NumActions)
		}
	}
	return nil
}
