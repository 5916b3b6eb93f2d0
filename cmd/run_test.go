package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2025, 5, 14, 17, 30, 0, 0, time.UTC)
	today := time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)

	t.Run("default is today", func(t *testing.T) {
		from, to, err := resolveRange("", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, today, from)
		assert.Equal(t, today, to)
	})

	t.Run("single date", func(t *testing.T) {
		from, to, err := resolveRange("2025-05-12", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, from, to)
		assert.Equal(t, "2025-05-12", from.Format(time.DateOnly))
	})

	t.Run("from with explicit to", func(t *testing.T) {
		from, to, err := resolveRange("", "2025-05-01", "2025-05-09", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-05-01", from.Format(time.DateOnly))
		assert.Equal(t, "2025-05-09", to.Format(time.DateOnly))
	})

	t.Run("from defaults to through today", func(t *testing.T) {
		from, to, err := resolveRange("", "2025-05-01", "", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-05-01", from.Format(time.DateOnly))
		assert.Equal(t, today, to)
	})

	t.Run("date excludes range flags", func(t *testing.T) {
		_, _, err := resolveRange("2025-05-12", "2025-05-01", "", now)
		assert.Error(t, err)
	})

	t.Run("to without from", func(t *testing.T) {
		_, _, err := resolveRange("", "", "2025-05-09", now)
		assert.Error(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := resolveRange("12-05-2025", "", "", now)
		assert.Error(t, err)
	})
}
