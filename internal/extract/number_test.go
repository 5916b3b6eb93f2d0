package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"945500", "945500", true},
		{"9,45,500", "945500", true},        // Indian grouping
		{"945,500.50", "945500.50", true},   // Western grouping
		{"9,45,500.75", "945500.75", true},  // Indian grouping with decimals
		{"₹ 945500", "945500", true},
		{"Rs. 945500", "945500", true},
		{"rs 1,200", "1200", true},
		{"INR 850.25", "850.25", true},
		{"945500.", "945500", true},
		{"", "", false},
		{"rods", "", false},
		{"Rs.", "", false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.True(t, got.Equal(dec(c.want)), "input %q: got %s want %s", c.in, got, c.want)
		}
	}
}

func TestFirstPlausible(t *testing.T) {
	r := NewRange(100, 5000000)

	t.Run("skips small numbers", func(t *testing.T) {
		v, ok := FirstPlausible("page 3 of 7, copper rods 9,45,500 per tonne", r)
		require.True(t, ok)
		assert.True(t, v.Equal(dec("945500")))
	})

	t.Run("skips date fragments", func(t *testing.T) {
		v, ok := FirstPlausible("as on 14-05-2025 rate 945500", r)
		require.True(t, ok)
		assert.True(t, v.Equal(dec("945500")))
	})

	t.Run("slash dates", func(t *testing.T) {
		_, ok := FirstPlausible("dated 14/05/2025", r)
		assert.False(t, ok)
	})

	t.Run("nothing plausible", func(t *testing.T) {
		_, ok := FirstPlausible("page 3 item 7", r)
		assert.False(t, ok)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		_, ok := FirstPlausible("total 99999999999", r)
		assert.False(t, ok)
	})
}

func TestLargestPlausible(t *testing.T) {
	r := NewRange(100, 5000000)

	v, ok := LargestPlausible("12mm rods 450 pcs basic 9,45,500 discount 1,200", r)
	require.True(t, ok)
	assert.True(t, v.Equal(dec("945500")))

	_, ok = LargestPlausible("no numbers here", r)
	assert.False(t, ok)
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(100, 1000)
	assert.True(t, r.Contains(dec("100")))
	assert.True(t, r.Contains(dec("1000")))
	assert.False(t, r.Contains(dec("99.99")))
	assert.False(t, r.Contains(dec("1000.01")))
}
