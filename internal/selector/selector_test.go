package selector

import (
	"math/rand"
	"testing"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/occupancy"
)

// countingRand считает обращения к генератору
type countingRand struct {
	r     *rand.Rand
	calls int
}

func (c *countingRand) Float64() float64 {
	c.calls++
	return c.r.Float64()
}

func newRand(seed int64) *countingRand {
	return &countingRand{r: rand.New(rand.NewSource(seed))}
}

func cand(id string, mask occupancy.Mask, weight float64) *catalog.Candidate {
	return &catalog.Candidate{ID: id, ClearMask: mask, FlipClearMask: occupancy.Flip(mask), Weight: weight}
}

func TestSelect_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		pool     catalog.Pool
		occupied occupancy.Mask
		outcome  Outcome
		wantID   string
	}{
		{
			name:     "second candidate fits",
			pool:     catalog.Pool{cand("first", 0b001, 1), cand("second", 0b010, 1)},
			occupied: 0b001,
			outcome:  OutcomeSuccess,
			wantID:   "second",
		},
		{
			name:     "single blocked candidate",
			pool:     catalog.Pool{cand("only", 0b001, 1)},
			occupied: 0b001,
			outcome:  OutcomePoolEmpty,
		},
		{
			name:     "empty pool",
			pool:     nil,
			occupied: 0b111,
			outcome:  OutcomePoolEmpty,
		},
		{
			name:     "all weights zero",
			pool:     catalog.Pool{cand("a", 0, 0), cand("b", 0, 0)},
			occupied: 0,
			outcome:  OutcomePoolEmpty,
		},
		{
			name:     "zero weight candidate is never chosen",
			pool:     catalog.Pool{cand("free", 0, 0), cand("blocked", 0b1, 5)},
			occupied: 0b1,
			outcome:  OutcomePoolEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				res := SelectFittingCandidate(newRand(seed), tt.pool, tt.occupied, false)
				if res.Outcome != tt.outcome {
					t.Fatalf("seed %d: outcome %v, want %v", seed, res.Outcome, tt.outcome)
				}
				if tt.wantID != "" && res.Candidate.ID != tt.wantID {
					t.Fatalf("seed %d: got %s, want %s", seed, res.Candidate.ID, tt.wantID)
				}
				if !res.OK() && res.Candidate != nil {
					t.Fatalf("seed %d: failed result must not carry a candidate", seed)
				}
			}
		})
	}
}

func TestSelect_EmptyPoolDrawsNothing(t *testing.T) {
	rng := newRand(1)
	res := SelectFittingCandidate(rng, catalog.Pool{}, 0, true)
	if res.Outcome != OutcomePoolEmpty || res.Draws() != 0 || rng.calls != 0 {
		t.Errorf("Expected PoolEmpty with zero draws, got %v draws=%d rng=%d", res.Outcome, res.Draws(), rng.calls)
	}
}

func TestSelect_Mirrored(t *testing.T) {
	// Справа занято: прямой вариант не влезает, зеркальный - да.
	right := occupancy.Mask(0).With(1, 0)
	c := cand("stab", right, 1)
	occupied := occupancy.Mask(0).With(1, 0)

	if res := SelectFittingCandidate(newRand(1), catalog.Pool{c}, occupied, false); res.OK() {
		t.Error("Unmirrored candidate must be blocked")
	}
	res := SelectFittingCandidate(newRand(1), catalog.Pool{c}, occupied, true)
	if !res.OK() || !res.Mirrored {
		t.Errorf("Mirrored candidate must fit, got %v", res.Outcome)
	}
}

func TestSelect_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := r.Intn(8)
		pool := make(catalog.Pool, n)
		for i := range pool {
			pool[i] = cand(string(rune('a'+i)), occupancy.Mask(r.Uint64()&0xFF), float64(r.Intn(4)+1))
		}
		occupied := occupancy.Mask(r.Uint64() & 0xFF)
		mirrored := r.Intn(2) == 0

		anyFits := false
		for _, c := range pool {
			if !c.RequiredMask(mirrored).Overlaps(occupied) {
				anyFits = true
			}
		}

		res := SelectFittingCandidate(newRand(int64(iter)), pool, occupied, mirrored)

		if res.Draws() > len(pool) {
			t.Fatalf("iter %d: %d draws for pool of %d", iter, res.Draws(), len(pool))
		}
		seen := make(map[*catalog.Candidate]bool)
		for _, c := range res.Excluded {
			if seen[c] {
				t.Fatalf("iter %d: candidate %s drawn twice", iter, c.ID)
			}
			seen[c] = true
		}

		if anyFits {
			if !res.OK() {
				t.Fatalf("iter %d: expected success, got %v", iter, res.Outcome)
			}
			if res.Candidate.RequiredMask(mirrored).Overlaps(occupied) {
				t.Fatalf("iter %d: chosen candidate %s does not fit", iter, res.Candidate.ID)
			}
		} else if res.Outcome != OutcomePoolEmpty {
			t.Fatalf("iter %d: expected PoolEmpty, got %v", iter, res.Outcome)
		}
	}
}

func TestSelect_RespectsWeights(t *testing.T) {
	heavy := cand("heavy", 0, 3)
	light := cand("light", 0, 1)
	pool := catalog.Pool{heavy, light}
	rng := rand.New(rand.NewSource(7))

	counts := map[string]int{}
	const trials = 20000
	for i := 0; i < trials; i++ {
		res := SelectFittingCandidate(rng, pool, 0, false)
		counts[res.Candidate.ID]++
	}

	ratio := float64(counts["heavy"]) / float64(counts["light"])
	if ratio < 2.7 || ratio > 3.3 {
		t.Errorf("Expected heavy:light near 3, got %.2f (%v)", ratio, counts)
	}
}

func TestSelector_DistinctNoFit(t *testing.T) {
	pool := catalog.Pool{cand("blocked", 0b1, 1)}

	strict := New(newRand(1), Options{DistinctNoFit: true})
	if res := strict.Select(pool, 0b1, false); res.Outcome != OutcomeNoFit {
		t.Errorf("Expected NoFit, got %v", res.Outcome)
	}
	if res := strict.Select(nil, 0b1, false); res.Outcome != OutcomePoolEmpty {
		t.Errorf("Expected PoolEmpty for empty pool, got %v", res.Outcome)
	}

	compat := New(newRand(1), Options{})
	if res := compat.Select(pool, 0b1, false); res.Outcome != OutcomePoolEmpty {
		t.Errorf("Expected PoolEmpty in compatible mode, got %v", res.Outcome)
	}
}
