package expand

import (
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSplitBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		high  int32
		low   int32
	}{
		{"zero", 0, 0, 0},
		{"largest positive low half", 0x7ff, 0, 2047},
		{"smallest value with bit 11 set", 0x800, 1, -2048},
		{"minus one", -1, 0, -1},
		{"low half positive", 0x12345678, 0x12345, 0x678},
		{"low half negative", 0x12345878, 0x12346, -1928},
		{"most negative", math.MinInt32, -524288, 0},
		{"most positive", math.MaxInt32, 524288, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.high, High(tt.value))
			assert.Equal(t, tt.low, Low(tt.value))
		})
	}
}

// The split has to satisfy high*4096 + low == value under two's-complement
// arithmetic for every 32-bit value, otherwise the synthesized instruction
// pair loads the wrong immediate.
func TestSplitRoundTrip(t *testing.T) {
	values := []int32{
		math.MinInt32, math.MinInt32 + 1, -0x800000, -0x1001, -0x1000,
		-0x801, -0x800, -0x7ff, -2, -1, 0, 1, 2, 0x7fe, 0x7ff, 0x800,
		0x801, 0xfff, 0x1000, 0x1001, 0x7fffff, math.MaxInt32 - 1, math.MaxInt32,
	}
	for v := int32(-0x2000); v <= 0x2000; v++ {
		values = append(values, v)
	}

	for _, value := range values {
		combined := High(value)*4096 + Low(value)
		assert.Equal(t, value, combined)
	}
}

func TestPCRelativeSplit(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		pc    int32
		high  int32
		low   int32
	}{
		{"same address", 0x400000, 0x400000, 0, 0},
		{"forward without correction", 0x10010000, 0x00400000, 0x0fc10, 0},
		{"forward with correction", 0x401801, 0x400000, 2, -2047},
		{"backward", 0x400000, 0x400010, 0, -16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.high, PCRelativeHigh(tt.value, tt.pc))
			assert.Equal(t, tt.low, PCRelativeLow(tt.value, tt.pc))

			combined := PCRelativeHigh(tt.value, tt.pc)*4096 + PCRelativeLow(tt.value, tt.pc)
			assert.Equal(t, tt.value-tt.pc, combined)
		})
	}
}
