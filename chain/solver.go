package chain

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bcdannyboy/bsmvol/bsm"
	"github.com/bcdannyboy/bsmvol/config"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"go.uber.org/zap"
)

const jobBatchSize = 1000

// Solver estimates implied volatilities for many quotes on a worker pool.
type Solver struct {
	model        *bsm.Model
	cfg          bsm.SolverConfig
	initialSigma float64
	workers      int
	progress     io.Writer
	logger       *zap.Logger
}

type Option func(*Solver)

func WithWorkers(n int) Option {
	return func(s *Solver) {
		s.workers = n
	}
}

// WithProgress renders a progress bar to w while solving.
func WithProgress(w io.Writer) Option {
	return func(s *Solver) {
		s.progress = w
	}
}

func WithSolverConfig(cfg bsm.SolverConfig) Option {
	return func(s *Solver) {
		s.cfg = cfg
	}
}

func WithInitialSigma(sigma float64) Option {
	return func(s *Solver) {
		s.initialSigma = sigma
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSolver(model *bsm.Model, opts ...Option) *Solver {
	if model == nil {
		model = bsm.Default
	}
	s := &Solver{
		model:        model,
		initialSigma: 0.5,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSolverFromConfig wires solver settings, worker count and progress output from cfg.
func NewSolverFromConfig(model *bsm.Model, cfg *config.Config, logger *zap.Logger) *Solver {
	opts := []Option{
		WithSolverConfig(cfg.SolverConfig()),
		WithInitialSigma(cfg.Solver.InitialSigma),
		WithWorkers(cfg.Chain.Workers),
		WithLogger(logger),
	}
	if cfg.Chain.Progress {
		opts = append(opts, WithProgress(os.Stderr))
	}
	return NewSolver(model, opts...)
}

type job struct {
	index int
	quote Quote
}

// Solve returns one result per quote, in input order. A failing quote is
// recorded in its result and does not stop the others.
func (s *Solver) Solve(quotes []Quote) []QuoteResult {
	results := make([]QuoteResult, len(quotes))
	if len(quotes) == 0 {
		return results
	}

	numWorkers := s.workers
	if numWorkers <= 0 {
		numWorkers = defaultWorkers()
	}
	if numWorkers > len(quotes) {
		numWorkers = len(quotes)
	}

	var p *mpb.Progress
	var bar *mpb.Bar
	if s.progress != nil {
		p = mpb.New(mpb.WithWidth(64), mpb.WithOutput(s.progress))
		bar = p.AddBar(int64(len(quotes)),
			mpb.PrependDecorators(
				decor.Name("Solving"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
	}

	start := time.Now()
	var wg sync.WaitGroup
	var failed int64
	jobChan := make(chan job, jobBatchSize)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go s.worker(jobChan, results, &wg, &failed, bar)
	}

	for i, q := range quotes {
		jobChan <- job{index: i, quote: q}
	}
	close(jobChan)
	wg.Wait()

	if p != nil {
		p.Wait()
	}

	s.logger.Info("solved quote chain",
		zap.Int("quotes", len(quotes)),
		zap.Int64("failed", atomic.LoadInt64(&failed)),
		zap.Int("workers", numWorkers),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

func (s *Solver) worker(jobs <-chan job, results []QuoteResult, wg *sync.WaitGroup, failed *int64, bar *mpb.Bar) {
	defer wg.Done()
	for j := range jobs {
		res := s.solveQuote(j.quote)
		if res.Err != nil {
			atomic.AddInt64(failed, 1)
			s.logger.Debug("quote failed", zap.String("id", j.quote.ID), zap.Error(res.Err))
		}
		results[j.index] = res
		if bar != nil {
			bar.Increment()
		}
	}
}

func (s *Solver) solveQuote(q Quote) QuoteResult {
	spot, strike, price := q.floats()
	iv, err := s.model.Solve(spot, strike, q.Maturity, q.Rate, price, s.initialSigma, s.cfg)
	if err != nil {
		err = fmt.Errorf("quote %s: %w", q.ID, err)
	}
	return QuoteResult{Quote: q, IV: iv, Err: err}
}

func defaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
