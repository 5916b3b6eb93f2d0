package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/reckoner-cli/internal/catalog"
)

// Reconciler merges a day's extracted values into every product's ledger,
// filling gaps so the series never has holes relative to the dates it has
// been asked to process. Continuity is a stronger guarantee here than the
// accuracy of any single point.
type Reconciler struct {
	store  *Store
	cat    *catalog.Catalog
	dryRun bool
}

// NewReconciler creates a Reconciler over the given store and catalog.
func NewReconciler(store *Store, cat *catalog.Catalog) *Reconciler {
	return &Reconciler{store: store, cat: cat}
}

// WithDryRun disables persistence; entries are computed but not written.
func (r *Reconciler) WithDryRun(dry bool) *Reconciler {
	r.dryRun = dry
	return r
}

// Outcome reports one reconciliation pass.
type Outcome struct {
	// Entries holds the resulting row per product id for the processed date.
	Entries map[string]Entry
	// Failed maps product id to its persistence error. A failure for one
	// product never aborts the others.
	Failed map[string]error
}

// Reconcile merges values (possibly empty or partial) for date into each
// catalog product's ledger. For every product, in order of preference: the
// fresh extracted value, the most recent prior rate (forward-fill), or the
// configured fallback default. Re-running with the same inputs is
// idempotent, and reprocessing a date with no new reading never blanks a
// previously extracted value.
func (r *Reconciler) Reconcile(date time.Time, values map[string]decimal.Decimal) Outcome {
	day := Day(date)
	out := Outcome{
		Entries: make(map[string]Entry, r.cat.Len()),
		Failed:  make(map[string]error),
	}

	for _, p := range r.cat.Products() {
		entry, changed, err := r.reconcileProduct(p, day, values)
		if err != nil {
			zap.L().Error("ledger: product update failed",
				zap.String("product", p.ID),
				zap.String("date", day.Format(time.DateOnly)),
				zap.Error(err),
			)
			out.Failed[p.ID] = err
			continue
		}
		out.Entries[p.ID] = entry
		if changed {
			zap.L().Debug("ledger: row written",
				zap.String("product", p.ID),
				zap.String("date", day.Format(time.DateOnly)),
				zap.String("rate", entry.Rate.String()),
				zap.String("provenance", string(entry.Provenance)),
			)
		}
	}

	return out
}

func (r *Reconciler) reconcileProduct(p catalog.ProductSpec, day time.Time, values map[string]decimal.Decimal) (Entry, bool, error) {
	l, err := r.store.Load(p.ID)
	if err != nil {
		return Entry{}, false, err
	}

	fresh, hasFresh := values[p.ID]

	if existing, ok := l.Get(day); ok {
		if !hasFresh {
			// Idempotent re-run: never corrupt a stored value with a blank.
			return existing, false, nil
		}
		entry := Entry{Date: day, Rate: fresh, Provenance: ProvenanceExtracted, Description: p.DisplayName}
		l.Upsert(entry)
		return entry, true, r.persist(l)
	}

	entry := Entry{Date: day, Description: p.DisplayName}
	switch {
	case hasFresh:
		entry.Rate = fresh
		entry.Provenance = ProvenanceExtracted
	default:
		if prior, ok := l.LastBefore(day); ok {
			entry.Rate = prior.Rate
			entry.Provenance = ProvenanceForwardFilled
		} else {
			entry.Rate = p.FallbackRate()
			entry.Provenance = ProvenanceFallback
		}
	}

	l.Upsert(entry)
	return entry, true, r.persist(l)
}

func (r *Reconciler) persist(l *Ledger) error {
	if r.dryRun {
		return nil
	}
	return r.store.Save(l)
}
