// Package runlog records run history in a local SQLite database.
package runlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// RunLog provides read/write access to the run history. A nil *RunLog is a
// valid no-op logger, so callers can leave history disabled.
type RunLog struct {
	db *sql.DB
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	from_date    TEXT NOT NULL,
	to_date      TEXT NOT NULL,
	dates_total  INTEGER NOT NULL DEFAULT 0,
	acquired     INTEGER NOT NULL DEFAULT 0,
	status       TEXT NOT NULL DEFAULT 'running',
	started_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS run_dates (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	date       TEXT NOT NULL,
	acquired   INTEGER NOT NULL,
	source_url TEXT,
	extracted  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, date)
);
`

// Open opens (and migrates) the run log at path. An empty path disables
// history and returns nil.
func Open(path string) (*RunLog, error) {
	if path == "" {
		return nil, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "runlog: exec %s", pragma)
		}
	}
	if _, err := db.Exec(migration); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "runlog: migrate")
	}

	return &RunLog{db: db}, nil
}

// Close releases the database handle.
func (r *RunLog) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}

// Start records the beginning of a run over [from, to] and returns its id.
func (r *RunLog) Start(ctx context.Context, from, to time.Time) (string, error) {
	if r == nil {
		return "", nil
	}
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, from_date, to_date) VALUES (?, ?, ?)`,
		id, from.Format(time.DateOnly), to.Format(time.DateOnly),
	)
	if err != nil {
		return "", eris.Wrap(err, "runlog: start run")
	}
	return id, nil
}

// RecordDate records one processed date's outcome.
func (r *RunLog) RecordDate(ctx context.Context, runID string, date time.Time, acquired bool, sourceURL string, extracted int) error {
	if r == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO run_dates (run_id, date, acquired, source_url, extracted)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, date) DO UPDATE SET
		   acquired = excluded.acquired,
		   source_url = excluded.source_url,
		   extracted = excluded.extracted`,
		runID, date.Format(time.DateOnly), boolInt(acquired), sourceURL, extracted,
	)
	if err != nil {
		return eris.Wrapf(err, "runlog: record date %s", date.Format(time.DateOnly))
	}
	return nil
}

// Complete marks the run finished with its final counts.
func (r *RunLog) Complete(ctx context.Context, runID string, datesTotal, acquired int) error {
	if r == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE runs
		 SET status = 'complete', dates_total = ?, acquired = ?, completed_at = datetime('now')
		 WHERE id = ?`,
		datesTotal, acquired, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "runlog: complete run %s", runID)
	}
	return nil
}

// LastAcquired returns the most recent date with a successful acquisition,
// or nil when no run ever acquired anything.
func (r *RunLog) LastAcquired(ctx context.Context) (*time.Time, error) {
	if r == nil {
		return nil, nil
	}
	var s string
	err := r.db.QueryRowContext(ctx,
		`SELECT date FROM run_dates WHERE acquired = 1 ORDER BY date DESC LIMIT 1`,
	).Scan(&s)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "runlog: last acquired")
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, eris.Wrapf(err, "runlog: parse date %q", s)
	}
	return &t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
