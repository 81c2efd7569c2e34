package policy

import (
	"math"
	"testing"

	"github.com/talgya/blobworld/internal/world"
)

func obsFor(locations [][2]float64, pellets [][2]float64, alive []bool) (*world.Observation, *world.Info) {
	n := len(locations)
	obs := &world.Observation{
		PlayerMasses:    make([]float64, n),
		PlayerIsAlive:   alive,
		PlayerLocations: locations,
		PelletLocations: pellets,
	}
	info := &world.Info{
		PlayerRadii:             make([]float64, n),
		PlayerToPlayerDistances: make([][]float64, n),
		PlayerToPelletDistances: make([][]float64, n),
	}
	for i := range locations {
		info.PlayerToPelletDistances[i] = make([]float64, len(pellets))
		for k := range pellets {
			dx := locations[i][0] - pellets[k][0]
			dy := locations[i][1] - pellets[k][1]
			info.PlayerToPelletDistances[i][k] = math.Hypot(dx, dy)
		}
	}
	return obs, info
}

func TestRandomIsSeededAndInRange(t *testing.T) {
	obs, info := obsFor([][2]float64{{0.5, 0.5}, {0.2, 0.2}}, [][2]float64{{0.9, 0.9}}, []bool{true, true})

	p1 := NewRandom(123)
	p2 := NewRandom(123)
	for i := 0; i < 100; i++ {
		a1, err := p1.Act(obs, info)
		if err != nil {
			t.Fatalf("act: %v", err)
		}
		a2, err := p2.Act(obs, info)
		if err != nil {
			t.Fatalf("act: %v", err)
		}
		for j := range a1 {
			if a1[j] != a2[j] {
				t.Fatalf("same-seed policies diverged at draw %d", i)
			}
			if a1[j] < 0 || a1[j] >= world.NumActions {
				t.Fatalf("action %d out of range", a1[j])
			}
		}
	}
}

func TestRandomLogProbsAreUniform(t *testing.T) {
	obs, info := obsFor([][2]float64{{0.5, 0.5}}, [][2]float64{{0.9, 0.9}}, []bool{true})

	p := NewRandom(7)
	_, logProbs, err := p.ActWithLogProbs(obs, info)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	want := -math.Log(world.NumActions)
	for i, lp := range logProbs {
		if lp != want {
			t.Fatalf("log-prob %d = %f, want %f", i, lp, want)
		}
	}
}

func TestGreedyChasesNearestPellet(t *testing.T) {
	p := NewGreedy()

	cases := []struct {
		name    string
		pellets [][2]float64
		want    world.Action
	}{
		{"east", [][2]float64{{0.9, 0.5}}, world.ActionRight},
		{"west", [][2]float64{{0.1, 0.5}}, world.ActionLeft},
		{"north", [][2]float64{{0.5, 0.9}}, world.ActionUp},
		{"south", [][2]float64{{0.5, 0.1}}, world.ActionDown},
		{"nearest wins", [][2]float64{{0.9, 0.5}, {0.45, 0.5}}, world.ActionLeft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs, info := obsFor([][2]float64{{0.5, 0.5}}, tc.pellets, []bool{true})
			actions, err := p.Act(obs, info)
			if err != nil {
				t.Fatalf("act: %v", err)
			}
			if actions[0] != tc.want {
				t.Fatalf("action = %d, want %d", actions[0], tc.want)
			}
		})
	}
}

func TestGreedyNoopsForDeadPlayers(t *testing.T) {
	p := NewGreedy()
	obs, info := obsFor([][2]float64{{0.5, 0.5}}, [][2]float64{{0.9, 0.5}}, []bool{false})
	actions, err := p.Act(obs, info)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if actions[0] != world.ActionNoop {
		t.Fatalf("dead player action = %d, want noop", actions[0])
	}
}
