package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	l, err := s.Load("copper_rods")
	require.NoError(t, err)
	assert.Equal(t, "copper_rods", l.ProductID)
	assert.Empty(t, l.Entries)
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	l := &Ledger{ProductID: "copper_rods"}
	l.Upsert(Entry{Date: day("2025-05-12"), Rate: dec("940000"), Description: "Copper Rods"})
	l.Upsert(Entry{Date: day("2025-05-14"), Rate: dec("945500.50"), Description: "Copper Rods"})
	require.NoError(t, s.Save(l))

	got, err := s.Load("copper_rods")
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, day("2025-05-12"), got.Entries[0].Date)
	assert.True(t, got.Entries[0].Rate.Equal(dec("940000")))
	assert.True(t, got.Entries[1].Rate.Equal(dec("945500.50")))
	assert.Equal(t, "Copper Rods", got.Entries[1].Description)
}

func TestStore_SaveWritesHeaderAndSortedRows(t *testing.T) {
	s := newTestStore(t)

	l := &Ledger{ProductID: "brass_rods"}
	l.Upsert(Entry{Date: day("2025-05-14"), Rate: dec("821000")})
	l.Upsert(Entry{Date: day("2025-05-12"), Rate: dec("815000")})
	require.NoError(t, s.Save(l))

	raw, err := os.ReadFile(s.PathFor("brass_rods"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,rate,description", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-05-12,"))
	assert.True(t, strings.HasPrefix(lines[2], "2025-05-14,"))
}

func TestStore_LoadLegacyTwoColumn(t *testing.T) {
	// Files written by the previous exporter have only date,rate.
	s := newTestStore(t)
	legacy := "date,rate\n2025-05-12,940000.0\n2025-05-13,942000.0\n"
	require.NoError(t, os.WriteFile(s.PathFor("copper_rods"), []byte(legacy), 0o644))

	l, err := s.Load("copper_rods")
	require.NoError(t, err)
	require.Len(t, l.Entries, 2)
	assert.True(t, l.Entries[0].Rate.Equal(dec("940000")))
	assert.Empty(t, l.Entries[0].Description)
}

func TestStore_LoadRejectsCorruptRows(t *testing.T) {
	s := newTestStore(t)

	t.Run("bad date", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.PathFor("a"), []byte("date,rate\nnot-a-date,1\n"), 0o644))
		_, err := s.Load("a")
		assert.Error(t, err)
	})

	t.Run("bad rate", func(t *testing.T) {
		require.NoError(t, os.WriteFile(s.PathFor("b"), []byte("date,rate\n2025-05-12,abc\n"), 0o644))
		_, err := s.Load("b")
		assert.Error(t, err)
	})
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	l := &Ledger{ProductID: "copper_rods"}
	l.Upsert(Entry{Date: day("2025-05-12"), Rate: dec("940000")})
	require.NoError(t, s.Save(l))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "copper_rods.csv", entries[0].Name())
	assert.Equal(t, filepath.Join(dir, "copper_rods.csv"), s.PathFor("copper_rods"))
}
