package ledger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// Store persists one CSV ledger file per product under a directory.
// Writes are atomic: a temp file in the same directory is renamed over the
// target, so a crash mid-write never leaves a truncated ledger visible.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "ledger: create dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// PathFor returns the ledger file path for a product.
func (s *Store) PathFor(productID string) string {
	return filepath.Join(s.dir, productID+".csv")
}

// Load reads a product's ledger. A missing file yields an empty ledger; the
// persisted form is the single source of truth, reloaded fresh on each run.
func (s *Store) Load(productID string) (*Ledger, error) {
	l := &Ledger{ProductID: productID}

	f, err := os.Open(s.PathFor(productID))
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, eris.Wrapf(err, "ledger: open %s", productID)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "ledger: parse %s", productID)
	}

	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		// Header row, written by us and by the legacy exporter.
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "date") {
			continue
		}

		date, err := time.Parse(time.DateOnly, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, eris.Wrapf(err, "ledger: %s row %d: bad date %q", productID, i+1, rec[0])
		}
		if len(rec) < 2 {
			return nil, eris.Errorf("ledger: %s row %d: missing rate", productID, i+1)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, eris.Wrapf(err, "ledger: %s row %d: bad rate %q", productID, i+1, rec[1])
		}

		e := Entry{Date: date, Rate: rate}
		if len(rec) > 2 {
			e.Description = strings.TrimSpace(rec[2])
		}
		l.Upsert(e)
	}

	return l, nil
}

// Save writes the ledger sorted ascending with a header row, atomically.
func (s *Store) Save(l *Ledger) error {
	tmp, err := os.CreateTemp(s.dir, l.ProductID+"-*.tmp")
	if err != nil {
		return eris.Wrapf(err, "ledger: create temp for %s", l.ProductID)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"date", "rate", "description"}); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "ledger: write header for %s", l.ProductID)
	}
	for _, e := range l.Entries {
		rec := []string{e.Date.Format(time.DateOnly), e.Rate.String(), e.Description}
		if err := w.Write(rec); err != nil {
			tmp.Close() //nolint:errcheck
			return eris.Wrapf(err, "ledger: write row for %s", l.ProductID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "ledger: flush %s", l.ProductID)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "ledger: close temp for %s", l.ProductID)
	}

	if err := os.Rename(tmpName, s.PathFor(l.ProductID)); err != nil {
		return eris.Wrapf(err, "ledger: replace %s", l.ProductID)
	}
	return nil
}
