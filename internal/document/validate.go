package document

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	pdfMagic = []byte("%PDF")

	// Matches page objects but not the /Pages tree node.
	pageObjectRe = regexp.MustCompile(`/Type\s*/Page\b`)
)

// ValidatorOptions configures document validity checks.
type ValidatorOptions struct {
	MinBytes      int      // reject anything smaller (HTML error pages)
	TextPrefixLen int      // how much extracted text to scan for markers
	Markers       []string // domain-indicative keywords, case-insensitive
}

// Validator decides whether acquired bytes constitute a usable document.
// The checks are heuristic: a valid document rejected is acceptable, garbage
// accepted is not.
type Validator struct {
	opts ValidatorOptions
	ex   Extractor
}

// NewValidator creates a Validator using ex for the text marker check.
func NewValidator(opts ValidatorOptions, ex Extractor) *Validator {
	if opts.MinBytes == 0 {
		opts.MinBytes = 1000
	}
	if opts.TextPrefixLen == 0 {
		opts.TextPrefixLen = 4000
	}
	return &Validator{opts: opts, ex: ex}
}

// Validate reports whether data is a usable price-sheet document. All
// failures are rejections, never errors.
func (v *Validator) Validate(ctx context.Context, data []byte) bool {
	if len(data) < v.opts.MinBytes {
		zap.L().Debug("document: rejected, too small",
			zap.Int("bytes", len(data)),
			zap.Int("min", v.opts.MinBytes),
		)
		return false
	}

	if !bytes.HasPrefix(data, pdfMagic) {
		zap.L().Debug("document: rejected, missing pdf signature")
		return false
	}

	if PageCount(data) == 0 {
		zap.L().Debug("document: rejected, no page objects")
		return false
	}

	if len(v.opts.Markers) == 0 {
		return true
	}

	text, err := TextFromBytes(ctx, v.ex, data)
	if err != nil {
		// Text extraction failure falls back to a raw byte scan; PDFs with
		// uncompressed streams still expose their labels.
		zap.L().Debug("document: text extraction failed, scanning raw bytes", zap.Error(err))
		text = string(data)
	}
	if len(text) > v.opts.TextPrefixLen {
		text = text[:v.opts.TextPrefixLen]
	}

	lower := strings.ToLower(text)
	for _, marker := range v.opts.Markers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}

	zap.L().Debug("document: rejected, no marker keyword found",
		zap.Strings("markers", v.opts.Markers),
	)
	return false
}

// PageCount counts page objects in raw PDF bytes. Zero means the document
// is structurally unusable.
func PageCount(data []byte) int {
	return len(pageObjectRe.FindAll(data, -1))
}
