package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(32, 96)
	assert.True(t, ok)
	assert.Equal(t, 128, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	assert.False(t, ok, "overflow past MaxInt")
	_, ok = AddOverflowSafe(math.MinInt, -1)
	assert.False(t, ok, "underflow past MinInt")
}

// Slice guards the value bytes a read reports against the buffer that was
// actually handed to the engine.
func TestSlice(t *testing.T) {
	buffer := make([]byte, 32) // first-attempt read buffer
	for i := range buffer {
		buffer[i] = byte(i)
	}

	tests := []struct {
		name    string
		off, n  int
		wantLen int
		wantOK  bool
	}{
		{"reported size fits", 0, 4, 4, true},
		{"reported size fills buffer", 0, 32, 32, true},
		{"empty value", 0, 0, 0, true},
		{"reported size beyond buffer", 0, 40, 0, false},
		{"offset at end", 32, 0, 0, true},
		{"offset past end", 33, 0, 0, false},
		{"negative offset", -1, 1, 0, false},
		{"negative length", 1, -1, 0, false},
		{"length overflows", 1, math.MaxInt, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Slice(buffer, tt.off, tt.n)
			assert.Equal(t, tt.wantOK, ok)
			assert.Len(t, got, tt.wantLen)
			if ok && tt.n > 0 {
				assert.Equal(t, byte(tt.off), got[0], "slice starts at off")
			}
		})
	}
}
