package models

import (
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
)

const numBatches = 64

// GBM prices European calls by simulating risk-neutral geometric Brownian motion.
type GBM struct {
	Paths int    // number of simulated paths
	Steps int    // time steps per path, 1 samples the terminal price exactly
	Seed  uint64 // base seed, batch b uses Seed+b
}

func NewGBM(paths, steps int, seed uint64) *GBM {
	if steps < 1 {
		steps = 1
	}
	return &GBM{
		Paths: paths,
		Steps: steps,
		Seed:  seed,
	}
}

func (g *GBM) SimulatePrice(s0, r, sigma, t float64, rng *rand.Rand) float64 {
	dt := t / float64(g.Steps)
	drift := (r - 0.5*sigma*sigma) * dt
	diffusion := sigma * math.Sqrt(dt)

	logPrice := math.Log(s0)
	for i := 0; i < g.Steps; i++ {
		logPrice += drift + diffusion*rng.NormFloat64()
	}

	return math.Exp(logPrice)
}

// CallValue returns the discounted mean call payoff over g.Paths paths.
// Paths are split into fixed seeded batches so the estimate does not depend
// on how many workers run them.
func (g *GBM) CallValue(s0, k, t, r, sigma float64) float64 {
	if g.Paths <= 0 {
		return math.NaN()
	}

	batches := numBatches
	if g.Paths < batches {
		batches = g.Paths
	}
	perBatch := g.Paths / batches
	sums := make([]float64, batches)

	jobs := make(chan int, batches)
	for b := 0; b < batches; b++ {
		jobs <- b
	}
	close(jobs)

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > batches {
		numWorkers = batches
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				n := perBatch
				if b == batches-1 {
					n = g.Paths - perBatch*(batches-1)
				}

				rng := rand.New(rand.NewSource(g.Seed + uint64(b)))
				localPayoff := 0.0
				for j := 0; j < n; j++ {
					sT := g.SimulatePrice(s0, r, sigma, t, rng)
					localPayoff += math.Max(sT-k, 0)
				}
				sums[b] = localPayoff
			}
		}()
	}
	wg.Wait()

	total := 0.0
	for _, s := range sums {
		total += s
	}

	return math.Exp(-r*t) * total / float64(g.Paths)
}
