package world

import (
	"errors"
	"fmt"
	"math/rand"
)

// Usage errors reported by Step.
var (
	// ErrNotReset is returned by Step on a world that has never been reset.
	ErrNotReset = errors.New("world: step before reset")
	// ErrDone is returned by Step after the episode has terminated; the
	// caller must Reset before stepping again.
	ErrDone = errors.New("world: step after termination, reset required")
)

// Observation is the per-tick view handed to policies. Locations are
// normalized into the unit square; masses are raw or normalized by the
// configured maximum. All slices are fresh copies, so callers cannot alias
// world state through an observation.
type Observation struct {
	PlayerMasses    []float64    `json:"player_masses"`
	PlayerIsAlive   []bool       `json:"player_is_alive"`
	PlayerLocations [][2]float64 `json:"player_locations"`
	PelletLocations [][2]float64 `json:"pellet_locations"`
}

// Info carries the derived per-tick quantities policies may want beyond
// the observation proper.
type Info struct {
	PlayerRadii             []float64   `json:"player_radii"`
	PlayerToPlayerDistances [][]float64 `json:"player_to_player_distances"`
	PlayerToPelletDistances [][]float64 `json:"player_to_pellet_distances"`
}

// StepResult bundles everything one tick produces.
type StepResult struct {
	Obs        *Observation
	Reward     []float64
	Terminated bool
	Truncated  bool
	Info       *Info
}

// ResetOptions overrides pieces of the randomized initial state. Nil means
// fully randomized. Overrides are copied, never aliased.
type ResetOptions struct {
	// PlayerPositions places players explicitly, in world units.
	PlayerPositions [][2]float64
	// PlayerMasses overrides the base-mass start.
	PlayerMasses []float64
	// PelletPositions places pellets explicitly, in world units.
	PelletPositions [][2]float64
}

// Environment is the turn-based contract the engine exposes and any
// control loop consumes.
type Environment interface {
	Reset(seed int64, opts *ResetOptions) (*Observation, *Info, error)
	Step(actions []Action) (*StepResult, error)
	Render()
	Close() error
}

// Renderer is the one-way display hook. The engine calls Frame after every
// reset and step when a renderer is attached and must behave identically
// with none attached.
type Renderer interface {
	Frame(obs *Observation, info *Info)
	Close()
}

type phase int

const (
	phaseUninitialized phase = iota
	phaseReady
	phaseDone
)

// World owns the full mutable simulation state and sequences the engines
// each tick. Single-threaded: Reset and Step are plain transformations of
// owned state plus PRNG draws, with no internal goroutines.
type World struct {
	cfg      Config
	rng      *rand.Rand
	sampler  positionSampler
	renderer Renderer

	phase phase
	tick  int

	masses    []float64
	alive     []bool
	radii     []float64
	playerPos [][2]float64
	pelletPos [][2]float64

	playerDist [][]float64
	pelletDist [][]float64
}

var _ Environment = (*World)(nil)

// New builds a world for the given config. The config is validated here so
// a bad parameter never surfaces mid-tick.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:    cfg,
		masses: make([]float64, cfg.NumPlayers),
		alive:  make([]bool, cfg.NumPlayers),
		radii:  make([]float64, cfg.NumPlayers),
	}
	w.playerPos = make([][2]float64, cfg.NumPlayers)
	w.pelletPos = make([][2]float64, cfg.NumPellets)
	return w, nil
}

// Config returns the world's immutable configuration.
func (w *World) Config() Config {
	return w.cfg
}

// Tick returns the number of steps taken since the last reset.
func (w *World) Tick() int {
	return w.tick
}

// AliveCount returns how many players are currently alive.
func (w *World) AliveCount() int {
	n := 0
	for _, a := range w.alive {
		if a {
			n++
		}
	}
	return n
}

// AttachRenderer sets the display hook called after each reset and step.
func (w *World) AttachRenderer(r Renderer) {
	w.renderer = r
}

// Reset re-initializes the episode: every player alive at base mass on a
// random position, pellets drawn from the placement distribution with no
// collision constraint at spawn. The seed fully determines the trajectory
// for a fixed action sequence.
func (w *World) Reset(seed int64, opts *ResetOptions) (*Observation, *Info, error) {
	w.rng = rand.New(rand.NewSource(seed))
	w.sampler = newSampler(w.cfg, seed+1)

	for i := 0; i < w.cfg.NumPlayers; i++ {
		w.masses[i] = w.cfg.BaseMass
		w.alive[i] = true
		w.playerPos[i] = [2]float64{
			w.rng.Float64() * w.cfg.WorldSize,
			w.rng.Float64() * w.cfg.WorldSize,
		}
	}
	for k := 0; k < w.cfg.NumPellets; k++ {
		w.pelletPos[k] = w.sampler.sample(w.rng)
	}

	if opts != nil {
		if err := w.applyResetOptions(opts); err != nil {
			w.phase = phaseUninitialized
			return nil, nil, err
		}
	}

	w.updateRadii()
	w.updateDistances()
	w.tick = 0
	w.phase = phaseReady

	obs, info := w.observation(), w.info()
	if w.renderer != nil {
		w.renderer.Frame(obs, info)
	}
	return obs, info, nil
}

func (w *World) applyResetOptions(opts *ResetOptions) error {
	if opts.PlayerPositions != nil {
		if len(opts.PlayerPositions) != w.cfg.NumPlayers {
			return fmt.Errorf("world: %d position overrides for %d players", len(opts.PlayerPositions), w.cfg.NumPlayers)
		}
		copy(w.playerPos, opts.PlayerPositions)
	}
	if opts.PlayerMasses != nil {
		if len(opts.PlayerMasses) != w.cfg.NumPlayers {
			return fmt.Errorf("world: %d mass overrides for %d players", len(opts.PlayerMasses), w.cfg.NumPlayers)
		}
		for i, m := range opts.PlayerMasses {
			if m <= 0 {
				return fmt.Errorf("world: mass override for player %d must be positive, got %g", i, m)
			}
		}
		copy(w.masses, opts.PlayerMasses)
	}
	if opts.PelletPositions != nil {
		if len(opts.PelletPositions) != w.cfg.NumPellets {
			return fmt.Errorf("world: %d pellet overrides for %d pellets", len(opts.PelletPositions), w.cfg.NumPellets)
		}
		copy(w.pelletPos, opts.PelletPositions)
	}
	return nil
}

// Step advances the world one tick: movement, distances, capture
// resolution, mass flow and deaths, pellet respawn, then the
// observation/reward/termination bundle. Truncation is never signaled by
// the engine itself; a time limit is the control loop's concern.
func (w *World) Step(actions []Action) (*StepResult, error) {
	switch w.phase {
	case phaseUninitialized:
		return nil, ErrNotReset
	case phaseDone:
		return nil, ErrDone
	}
	if err := w.validateActions(actions); err != nil {
		return nil, err
	}

	exited := w.applyMovement(actions)
	w.updateDistances()

	prevMasses := make([]float64, w.cfg.NumPlayers)
	copy(prevMasses, w.masses)

	playerCaps := w.findPlayerCaptures()
	pelletCaps := w.findPelletCaptures()
	eatenPellets := w.updateMasses(playerCaps, pelletCaps, exited)
	w.respawnPellets(eatenPellets)

	w.tick++
	terminated := w.terminated()
	if terminated {
		w.phase = phaseDone
	}

	res := &StepResult{
		Obs:        w.observation(),
		Reward:     w.rewards(prevMasses),
		Terminated: terminated,
		Truncated:  false,
		Info:       w.info(),
	}
	if w.renderer != nil {
		w.renderer.Frame(res.Obs, res.Info)
	}
	return res, nil
}

// terminated reports the episode-over condition: down to one survivor in a
// multi-player world, or none in a single-player world.
func (w *World) terminated() bool {
	n := w.AliveCount()
	if w.cfg.NumPlayers == 1 {
		return n == 0
	}
	return n <= 1
}

// Render redraws the current frame when a renderer is attached. A no-op
// otherwise.
func (w *World) Render() {
	if w.renderer != nil && w.phase != phaseUninitialized {
		w.renderer.Frame(w.observation(), w.info())
	}
}

// Close releases the renderer, if any. The world itself holds no external
// resources.
func (w *World) Close() error {
	if w.renderer != nil {
		w.renderer.Close()
		w.renderer = nil
	}
	return nil
}

// observation snapshots the policy-visible state. Locations are normalized
// by the world size into [0,1]; masses are divided by MassNormMax when
// normalization is configured.
func (w *World) observation() *Observation {
	obs := &Observation{
		PlayerMasses:    make([]float64, w.cfg.NumPlayers),
		PlayerIsAlive:   make([]bool, w.cfg.NumPlayers),
		PlayerLocations: make([][2]float64, w.cfg.NumPlayers),
		PelletLocations: make([][2]float64, w.cfg.NumPellets),
	}
	massDiv := 1.0
	if w.cfg.MassNormMax > 0 {
		massDiv = w.cfg.MassNormMax
	}
	for i := 0; i < w.cfg.NumPlayers; i++ {
		obs.PlayerMasses[i] = w.masses[i] / massDiv
		obs.PlayerIsAlive[i] = w.alive[i]
		obs.PlayerLocations[i] = [2]float64{
			w.playerPos[i][0] / w.cfg.WorldSize,
			w.playerPos[i][1] / w.cfg.WorldSize,
		}
	}
	for k := 0; k < w.cfg.NumPellets; k++ {
		obs.PelletLocations[k] = [2]float64{
			w.pelletPos[k][0] / w.cfg.WorldSize,
			w.pelletPos[k][1] / w.cfg.WorldSize,
		}
	}
	return obs
}

// info snapshots the derived quantities: radii and both distance matrices,
// in world units.
func (w *World) info() *Info {
	info := &Info{
		PlayerRadii:             make([]float64, w.cfg.NumPlayers),
		PlayerToPlayerDistances: make([][]float64, w.cfg.NumPlayers),
		PlayerToPelletDistances: make([][]float64, w.cfg.NumPlayers),
	}
	copy(info.PlayerRadii, w.radii)
	for i := 0; i < w.cfg.NumPlayers; i++ {
		info.PlayerToPlayerDistances[i] = append([]float64(nil), w.playerDist[i]...)
		info.PlayerToPelletDistances[i] = append([]float64(nil), w.pelletDist[i]...)
	}
	return info
}
