package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// positionSampler draws pellet positions. The same sampler serves initial
// placement and post-capture respawn so an episode's food field keeps one
// distribution throughout.
type positionSampler interface {
	sample(rng *rand.Rand) [2]float64
}

// uniformSampler draws uniformly over the world box.
type uniformSampler struct {
	size float64
}

func (s uniformSampler) sample(rng *rand.Rand) [2]float64 {
	return [2]float64{rng.Float64() * s.size, rng.Float64() * s.size}
}

// clusteredSampler biases draws toward the maxima of a smooth noise field,
// producing patchy pellet fields instead of an even scatter. Acceptance is
// by rejection against the normalized noise value at the candidate.
type clusteredSampler struct {
	size  float64
	freq  float64
	noise opensimplex.Noise
}

// clusterAttempts caps the acceptance loop; past it the last candidate is
// taken so a flat noise field cannot stall a reset.
const clusterAttempts = 32

func newClusteredSampler(size, freq float64, seed int64) clusteredSampler {
	return clusteredSampler{
		size:  size,
		freq:  freq,
		noise: opensimplex.NewNormalized(seed),
	}
}

func (s clusteredSampler) sample(rng *rand.Rand) [2]float64 {
	var pos [2]float64
	for attempt := 0; attempt < clusterAttempts; attempt++ {
		pos = [2]float64{rng.Float64() * s.size, rng.Float64() * s.size}
		density := s.noise.Eval2(pos[0]/s.size*s.freq, pos[1]/s.size*s.freq)
		if rng.Float64() < density {
			break
		}
	}
	return pos
}

// newSampler builds the sampler for the configured placement mode.
func newSampler(cfg Config, seed int64) positionSampler {
	if cfg.PelletPlacement == PlacementClustered {
		return newClusteredSampler(cfg.WorldSize, cfg.PlacementFreq, seed)
	}
	return uniformSampler{size: cfg.WorldSize}
}
