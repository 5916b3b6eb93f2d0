package extract

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/catalog"
)

// Options configures the extraction pipeline.
type Options struct {
	PriceRange Range
	WindowSize int // characters scanned around a keyword hit
}

// Pipeline applies extraction strategies in order of decreasing precision.
// Each strategy only sees the products the previous ones missed, and a
// resolved product is never overwritten by a later, lower-precision
// strategy. The pipeline never fails: it returns whatever subset it could
// resolve, possibly nothing.
type Pipeline struct {
	strategies []Strategy
}

// NewPipeline builds the standard four-strategy cascade.
func NewPipeline(opts Options) *Pipeline {
	if opts.WindowSize <= 0 {
		opts.WindowSize = 120
	}
	return &Pipeline{
		strategies: []Strategy{
			&anchorPattern{prices: opts.PriceRange, window: opts.WindowSize},
			&tableScan{prices: opts.PriceRange},
			&windowSearch{prices: opts.PriceRange, window: opts.WindowSize},
			&looseLineScan{prices: opts.PriceRange},
		},
	}
}

// NewPipelineWith builds a pipeline over explicit strategies, for tests and
// non-standard cascades.
func NewPipelineWith(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Run extracts prices for every catalog product it can resolve from text.
func (p *Pipeline) Run(text string, cat *catalog.Catalog) Result {
	result := Result{
		Values:     make(map[string]decimal.Decimal),
		StrategyBy: make(map[string]string),
	}

	pending := make([]Target, 0, cat.Len())
	for i, spec := range cat.Products() {
		pending = append(pending, Target{ProductSpec: spec, Ordinal: i + 1})
	}

	for _, s := range p.strategies {
		if len(pending) == 0 {
			break
		}

		got := s.Extract(text, pending)
		if len(got) == 0 {
			zap.L().Debug("extract: strategy resolved nothing",
				zap.String("strategy", s.Name()),
				zap.Int("pending", len(pending)),
			)
			continue
		}

		remaining := pending[:0]
		for _, t := range pending {
			v, ok := got[t.ID]
			if !ok {
				remaining = append(remaining, t)
				continue
			}
			result.Values[t.ID] = v
			result.StrategyBy[t.ID] = s.Name()
		}
		pending = remaining

		zap.L().Debug("extract: strategy pass complete",
			zap.String("strategy", s.Name()),
			zap.Int("resolved", len(got)),
			zap.Int("pending", len(pending)),
		)
	}

	return result
}
