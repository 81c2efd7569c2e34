// Package runner drives episodes: it feeds policy actions into the world,
// owns the max-tick time limit the engine deliberately does not implement,
// records outcomes to the chronicle, and publishes snapshots for the
// status API.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/talgya/blobworld/internal/chronicle"
	"github.com/talgya/blobworld/internal/policy"
	"github.com/talgya/blobworld/internal/world"
)

// seedStride separates per-episode seeds so neighbouring episodes share no
// PRNG prefix.
const seedStride = 1_000_003

// Runner executes a batch of episodes with one policy on one environment.
type Runner struct {
	Env    world.Environment
	Policy policy.Policy

	// Chronicle is optional; nil disables recording.
	Chronicle *chronicle.DB

	Episodes int
	MaxTicks int
	Seed     int64

	runID    string
	snapshot atomic.Pointer[Snapshot]
}

// Snapshot is the latest published view of the run, safe for concurrent
// readers.
type Snapshot struct {
	RunID   string             `json:"run_id"`
	Episode int                `json:"episode"`
	Tick    int                `json:"tick"`
	Alive   int                `json:"alive"`
	Obs     *world.Observation `json:"observation"`
}

// Summary aggregates a finished run.
type Summary struct {
	RunID      string
	Episodes   int
	TotalTicks int64
	Terminated int
	Truncated  int
}

// RunID returns the run identifier, assigned on the first Run call.
func (r *Runner) RunID() string {
	return r.runID
}

// Latest returns the most recently published snapshot, nil before the
// first reset.
func (r *Runner) Latest() *Snapshot {
	return r.snapshot.Load()
}

// Run executes the configured episodes, stopping early when ctx is
// cancelled. Episode i is seeded with Seed + i*stride, so a fixed Seed
// reproduces the whole batch.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	r.runID = uuid.NewString()
	sum := Summary{RunID: r.runID}

	if r.Chronicle != nil {
		if w, ok := r.Env.(*world.World); ok {
			if err := r.Chronicle.CreateRun(r.runID, w.Config()); err != nil {
				return sum, fmt.Errorf("create run: %w", err)
			}
		}
	}

	for ep := 0; ep < r.Episodes; ep++ {
		if ctx.Err() != nil {
			break
		}
		rec, err := r.runEpisode(ctx, ep)
		if err != nil {
			return sum, fmt.Errorf("episode %d: %w", ep, err)
		}
		sum.Episodes++
		sum.TotalTicks += int64(rec.Ticks)
		if rec.Terminated {
			sum.Terminated++
		} else {
			sum.Truncated++
		}

		slog.Info("episode finished",
			"episode", ep,
			"ticks", rec.Ticks,
			"terminated", rec.Terminated,
			"survivor", rec.Survivor,
		)
		if r.Chronicle != nil {
			if err := r.Chronicle.RecordEpisode(rec); err != nil {
				slog.Error("chronicle write failed", "episode", ep, "error", err)
			}
		}
	}
	return sum, nil
}

func (r *Runner) runEpisode(ctx context.Context, ep int) (chronicle.Episode, error) {
	seed := r.Seed + int64(ep)*seedStride
	rec := chronicle.Episode{RunID: r.runID, Episode: ep, Seed: seed, Survivor: -1}

	obs, info, err := r.Env.Reset(seed, nil)
	if err != nil {
		return rec, err
	}
	returns := make([]float64, len(obs.PlayerMasses))
	r.publish(ep, 0, obs)

	for tick := 0; tick < r.MaxTicks; tick++ {
		if ctx.Err() != nil {
			break
		}
		actions, err := r.Policy.Act(obs, info)
		if err != nil {
			return rec, fmt.Errorf("policy: %w", err)
		}
		res, err := r.Env.Step(actions)
		if err != nil {
			return rec, err
		}
		obs, info = res.Obs, res.Info
		for i, rw := range res.Reward {
			returns[i] += rw
		}
		rec.Ticks = tick + 1
		r.publish(ep, rec.Ticks, obs)
		if res.Terminated {
			rec.Terminated = true
			break
		}
	}

	rec.FinalMasses = obs.PlayerMasses
	rec.Returns = returns
	rec.Survivor = soleSurvivor(obs.PlayerIsAlive)
	return rec, nil
}

func (r *Runner) publish(ep, tick int, obs *world.Observation) {
	alive := 0
	for _, a := range obs.PlayerIsAlive {
		if a {
			alive++
		}
	}
	r.snapshot.Store(&Snapshot{
		RunID:   r.runID,
		Episode: ep,
		Tick:    tick,
		Alive:   alive,
		Obs:     obs,
	})
}

func soleSurvivor(alive []bool) int {
	survivor := -1
	for i, a := range alive {
		if !a {
			continue
		}
		if survivor >= 0 {
			return -1
		}
		survivor = i
	}
	return survivor
}
