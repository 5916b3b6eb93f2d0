package extract

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/reckoner-cli/internal/catalog"
)

// Target is a catalog product as seen by the strategies, carrying its
// one-based position on the upstream sheet for ordinal row matching.
type Target struct {
	catalog.ProductSpec
	Ordinal int
}

// Strategy is one self-contained extraction technique. Implementations are
// pure over their inputs and return values only for products they resolved;
// products they cannot resolve are simply absent from the result.
type Strategy interface {
	Name() string
	Extract(text string, pending []Target) map[string]decimal.Decimal
}

// Result is the outcome of one pipeline run over a document.
type Result struct {
	// Values maps product id to the extracted price.
	Values map[string]decimal.Decimal
	// StrategyBy records which strategy resolved each product, as a
	// confidence tag (earlier strategies are higher precision).
	StrategyBy map[string]string
}

// Resolved reports whether the product id has a value.
func (r Result) Resolved(id string) bool {
	_, ok := r.Values[id]
	return ok
}
