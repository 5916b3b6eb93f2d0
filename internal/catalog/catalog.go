// Package catalog defines the immutable product catalog the pipeline
// extracts prices for. The catalog is built once at startup and passed
// explicitly to every component.
package catalog

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProductSpec describes one tracked product.
type ProductSpec struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"display_name"`
	Keywords    []string `yaml:"keywords"`
	// Fallback is the last-resort rate used only when a product has no
	// extracted value and no history at all. Nil means zero.
	Fallback *decimal.Decimal `yaml:"fallback,omitempty"`
}

// FallbackRate returns the configured fallback, or zero when unset.
func (p ProductSpec) FallbackRate() decimal.Decimal {
	if p.Fallback != nil {
		return *p.Fallback
	}
	return decimal.Zero
}

// Catalog is an ordered, immutable set of ProductSpec.
type Catalog struct {
	products []ProductSpec
	byID     map[string]ProductSpec
}

// New builds a Catalog from specs, validating them. Duplicate or empty IDs
// and keyword-less products are configuration errors and fail fast.
func New(specs []ProductSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, eris.New("catalog: no products defined")
	}

	byID := make(map[string]ProductSpec, len(specs))
	for i, p := range specs {
		if strings.TrimSpace(p.ID) == "" {
			return nil, eris.Errorf("catalog: product %d has empty id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, eris.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if len(p.Keywords) == 0 {
			return nil, eris.Errorf("catalog: product %q has no keywords", p.ID)
		}
		for _, kw := range p.Keywords {
			if strings.TrimSpace(kw) == "" {
				return nil, eris.Errorf("catalog: product %q has a blank keyword", p.ID)
			}
		}
		byID[p.ID] = p
	}

	return &Catalog{products: specs, byID: byID}, nil
}

// Load reads a catalog YAML file, or returns the built-in default catalog
// when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(DefaultProducts())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var doc struct {
		Products []ProductSpec `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}

	return New(doc.Products)
}

// Products returns the catalog in declaration order.
func (c *Catalog) Products() []ProductSpec {
	return c.products
}

// Get returns the spec for an id.
func (c *Catalog) Get(id string) (ProductSpec, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// IDs returns all product ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.products))
	for _, p := range c.products {
		ids = append(ids, p.ID)
	}
	return ids
}

// DefaultProducts returns the products published on the upstream daily
// ready-reckoner sheet.
func DefaultProducts() []ProductSpec {
	mk := func(id, name string, keywords ...string) ProductSpec {
		return ProductSpec{ID: id, DisplayName: name, Keywords: keywords}
	}
	return []ProductSpec{
		mk("copper_bright_bars", "Copper Bright Bars", "copper", "bright", "bars"),
		mk("copper_rods", "Copper Rods", "copper", "rods"),
		mk("copper_flats", "Copper Flats", "copper", "flats"),
		mk("copper_angles", "Copper Angles", "copper", "angles"),
		mk("copper_sheets", "Copper Sheets", "copper", "sheets"),
		mk("brass_rods", "Brass Rods", "brass", "rods"),
		mk("brass_flats", "Brass Flats", "brass", "flats"),
		mk("brass_sheets", "Brass Sheets", "brass", "sheets"),
		mk("aluminium_sheets", "Aluminium Sheets", "aluminium", "sheets"),
		mk("aluminium_circles", "Aluminium Circles", "aluminium", "circles"),
	}
}
