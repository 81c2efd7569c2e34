// Package policy defines the control-policy contract the simulation is
// driven by, plus two built-in baselines: a uniform-random sampler and a
// nearest-pellet chaser. Learned policies live outside this repository;
// they plug in through the same interfaces.
package policy

import (
	"math"
	"math/rand"

	"github.com/talgya/blobworld/internal/world"
)

// Policy produces one action per player from an observation/info pair.
type Policy interface {
	Act(obs *world.Observation, info *world.Info) ([]world.Action, error)
}

// LogProbPolicy is the optional capability of policies that can report the
// log-probability of each selected action, which training loops need.
type LogProbPolicy interface {
	Policy
	ActWithLogProbs(obs *world.Observation, info *world.Info) ([]world.Action, []float64, error)
}

// Random samples uniformly over the action space. Deterministic for a
// fixed seed.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a uniform-random policy. A zero seed is remapped so
// the underlying source never degenerates.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = 1
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Act returns an independent uniform draw per player.
func (p *Random) Act(obs *world.Observation, info *world.Info) ([]world.Action, error) {
	actions := make([]world.Action, len(obs.PlayerMasses))
	for i := range actions {
		actions[i] = world.Action(p.rng.Intn(world.NumActions))
	}
	return actions, nil
}

// ActWithLogProbs reports the uniform log-probability alongside each draw.
func (p *Random) ActWithLogProbs(obs *world.Observation, info *world.Info) ([]world.Action, []float64, error) {
	actions, err := p.Act(obs, info)
	if err != nil {
		return nil, nil, err
	}
	logProbs := make([]float64, len(actions))
	lp := -math.Log(world.NumActions)
	for i := range logProbs {
		logProbs[i] = lp
	}
	return actions, logProbs, nil
}

var _ LogProbPolicy = (*Random)(nil)

// Greedy steers every living player toward its nearest pellet along the
// dominant axis. A cheap deterministic baseline for eyeballing the engine
// and benchmarking learned policies against.
type Greedy struct{}

// NewGreedy creates the nearest-pellet policy.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Act picks, for each living player, the axis-aligned move that most
// reduces the distance to the closest pellet. Dead players noop.
func (p *Greedy) Act(obs *world.Observation, info *world.Info) ([]world.Action, error) {
	actions := make([]world.Action, len(obs.PlayerMasses))
	for i := range actions {
		if !obs.PlayerIsAlive[i] {
			actions[i] = world.ActionNoop
			continue
		}
		target := nearestPellet(info.PlayerToPelletDistances[i])
		if target < 0 {
			actions[i] = world.ActionNoop
			continue
		}
		dx := obs.PelletLocations[target][0] - obs.PlayerLocations[i][0]
		dy := obs.PelletLocations[target][1] - obs.PlayerLocations[i][1]
		actions[i] = axisMove(dx, dy)
	}
	return actions, nil
}

var _ Policy = (*Greedy)(nil)

func nearestPellet(dists []float64) int {
	best, bestDist := -1, math.Inf(1)
	for k, d := range dists {
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func axisMove(dx, dy float64) world.Action {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return world.ActionRight
		}
		return world.ActionLeft
	}
	if dy >= 0 {
		return world.ActionUp
	}
	return world.ActionDown
}
