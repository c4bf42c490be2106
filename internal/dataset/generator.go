package dataset

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Generation defaults. Batch size keeps a single tick cheap so the worker
// yields frequently; the shuffle interval breaks up the fraud-first class
// grouping before it can leak into the output ordering.
const (
	DefaultBatchSize    = 50
	DefaultShuffleEvery = 200
	MinTotalRecords     = 100
	MinFraudRatio       = 0.10
	MaxFraudRatio       = 0.50
	fraudMismatchChance = 0.7
)

// RunConfig configures one generation run. Out-of-range values are clamped,
// never rejected.
type RunConfig struct {
	TotalRecords int
	FraudRatio   float64

	// Seed makes a run reproducible. Zero selects a time-derived seed.
	Seed int64
}

// Clamped returns the config with TotalRecords floored at MinTotalRecords
// and FraudRatio clamped into [MinFraudRatio, MaxFraudRatio].
func (c RunConfig) Clamped() RunConfig {
	if c.TotalRecords < MinTotalRecords {
		c.TotalRecords = MinTotalRecords
	}
	if c.FraudRatio < MinFraudRatio {
		c.FraudRatio = MinFraudRatio
	}
	if c.FraudRatio > MaxFraudRatio {
		c.FraudRatio = MaxFraudRatio
	}
	return c
}

// Progress reports how far a run has advanced.
type Progress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
}

// Generator produces class-balanced labeled synthetic corpora in bounded
// batches. Each Start call owns an independent run; runs share no state.
type Generator struct {
	pools        Pools
	batchSize    int
	shuffleEvery int
	logger       *zap.Logger
}

// NewGenerator creates a generator over the given template pools.
func NewGenerator(pools Pools, batchSize, shuffleEvery int, logger *zap.Logger) *Generator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if shuffleEvery <= 0 {
		shuffleEvery = DefaultShuffleEvery
	}
	return &Generator{
		pools:        pools,
		batchSize:    batchSize,
		shuffleEvery: shuffleEvery,
		logger:       logger,
	}
}

// Run is one in-flight generation. Consume Progress until it closes, then
// read Records and Counts. Cancelling the context abandons the run wholesale;
// no partial results are retained.
type Run struct {
	progress chan Progress
	done     chan struct{}

	mu      sync.Mutex
	records []Record
	fraud   int
	legit   int
	err     error
}

// Progress delivers one event per emitted batch and closes on completion.
// The channel is buffered for the whole run, so the worker never blocks on
// a slow consumer.
func (r *Run) Progress() <-chan Progress {
	return r.progress
}

// Done closes when the run has completed or been cancelled.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Err returns the cancellation cause, or nil after a completed run.
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Records returns the materialized record set once the run is ready.
// A cancelled run returns nil.
func (r *Run) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records
}

// Counts returns how many records carry each label.
func (r *Run) Counts() (legit, fraud int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.legit, r.fraud
}

// Start launches a generation run on its own worker goroutine and returns
// immediately. The caller is never blocked on the full run.
func (g *Generator) Start(ctx context.Context, cfg RunConfig) *Run {
	cfg = cfg.Clamped()

	batches := (cfg.TotalRecords + g.batchSize - 1) / g.batchSize
	run := &Run{
		progress: make(chan Progress, batches),
		done:     make(chan struct{}),
	}

	go g.generate(ctx, cfg, run)
	return run
}

func (g *Generator) generate(ctx context.Context, cfg RunConfig, run *Run) {
	defer close(run.done)
	defer close(run.progress)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Class counts are fixed up front so the emitted ratio never drifts
	// from the target. Fraud records are generated first, then legitimate;
	// the periodic shuffle removes that grouping.
	total := cfg.TotalRecords
	fraudCount := int(math.Round(float64(total) * cfg.FraudRatio))
	legitCount := total - fraudCount

	g.logger.Info("Dataset generation started",
		zap.Int("total", total),
		zap.Int("fraud", fraudCount),
		zap.Int("legit", legitCount),
		zap.Float64("fraud_ratio", cfg.FraudRatio))

	records := make([]Record, 0, total)
	generated := 0

	for generated < total {
		select {
		case <-ctx.Done():
			run.mu.Lock()
			run.err = ctx.Err()
			run.mu.Unlock()
			g.logger.Warn("Dataset generation cancelled",
				zap.Int("generated", generated),
				zap.Int("total", total))
			return
		default:
		}

		batch := g.batchSize
		if remaining := total - generated; remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			records = append(records, g.newRecord(rng, generated < fraudCount))
			generated++
			if generated%g.shuffleEvery == 0 {
				shuffle(records, rng)
			}
		}

		run.progress <- Progress{Processed: generated, Total: total}
	}

	run.mu.Lock()
	run.records = records
	run.fraud = fraudCount
	run.legit = legitCount
	run.mu.Unlock()

	g.logger.Info("Dataset generation complete",
		zap.Int("total", total),
		zap.Int("fraud", fraudCount),
		zap.Int("legit", legitCount))
}

// newRecord fills one record from the class-appropriate template pools.
// Numeric features use disjoint per-class ranges so neither score becomes a
// degenerate constant, and 30% of fraud records deliberately keep matching
// domains so the mismatch flag alone cannot separate the classes.
func (g *Generator) newRecord(rng *rand.Rand, isFraud bool) Record {
	p := g.pools

	if isFraud {
		domain := pick(rng, p.FraudDomains)
		returnPath := domain
		if rng.Float64() < fraudMismatchChance {
			returnPath = pickOther(rng, p.FraudDomains, domain)
		}

		attachment := ".pdf"
		if rng.Float64() > 0.6 {
			attachment = ".zip"
		}

		linkCount := 2 + rng.Intn(5)
		return Record{
			Label:                 LabelFraud,
			Subject:               pick(rng, p.FraudSubjects),
			Body:                  pick(rng, p.FraudBodies),
			FromDomain:            domain,
			ReturnPathDomain:      returnPath,
			DomainMismatchFlag:    domain != returnPath,
			SenderReputationScore: rng.Float64() * 40,
			TimeAnomalyScore:      0.5 + rng.Float64()*0.5,
			AttachmentType:        attachment,
			UrgencyKeywords:       sample(rng, p.UrgencyKeywords, 0.3),
			HasLinks:              linkCount > 0,
			LinkCount:             linkCount,
		}
	}

	domain := pick(rng, p.LegitimateDomains)
	linkCount := rng.Intn(3)
	return Record{
		Label:                 LabelLegitimate,
		Subject:               pick(rng, p.LegitimateSubjects),
		Body:                  pick(rng, p.LegitimateBodies),
		FromDomain:            domain,
		ReturnPathDomain:      domain,
		DomainMismatchFlag:    false,
		SenderReputationScore: 60 + rng.Float64()*40,
		TimeAnomalyScore:      rng.Float64() * 0.3,
		AttachmentType:        ".pdf",
		UrgencyKeywords:       nil,
		HasLinks:              linkCount > 0,
		LinkCount:             linkCount,
	}
}

// shuffle performs an in-place Fisher-Yates permutation of everything
// accumulated so far.
func shuffle(records []Record, rng *rand.Rand) {
	for i := len(records) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		records[i], records[j] = records[j], records[i]
	}
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// pickOther returns a pool entry different from current; pools always hold
// at least two entries.
func pickOther(rng *rand.Rand, pool []string, current string) string {
	for {
		if candidate := pick(rng, pool); candidate != current {
			return candidate
		}
	}
}

func sample(rng *rand.Rand, pool []string, probability float64) []string {
	var out []string
	for _, s := range pool {
		if rng.Float64() < probability {
			out = append(out, s)
		}
	}
	return out
}
