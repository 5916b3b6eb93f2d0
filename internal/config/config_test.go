package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pdfs", cfg.Data.PDFDir)
	assert.Equal(t, "csv_data", cfg.Data.LedgerDir)
	assert.Equal(t, "https://www.hindalco.com", cfg.Source.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTP.HTTPTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Source.CandidateDelay())
	assert.Equal(t, 2*time.Second, cfg.Source.DateDelay())
	assert.Equal(t, 1000, cfg.Validate.MinBytes)
	assert.Contains(t, cfg.Validate.MarkerKeywords, "reckoner")
	assert.Equal(t, float64(100), cfg.Extract.MinPrice)
	assert.Equal(t, float64(5000000), cfg.Extract.MaxPrice)
	assert.True(t, cfg.Source.FallbackPriorDay)
}

func TestLoad_FileOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	yaml := `
data:
  pdf_dir: /var/lib/reckoner/pdfs
extract:
  min_price: 50
  max_price: 99999
log:
  level: debug
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/reckoner/pdfs", cfg.Data.PDFDir)
	assert.Equal(t, float64(50), cfg.Extract.MinPrice)
	assert.Equal(t, float64(99999), cfg.Extract.MaxPrice)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, "csv_data", cfg.Data.LedgerDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RECKONER_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
