package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeBytes(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512.00 B"},
		{"one kilobyte", 1024, "1.00 KB"},
		{"fractional kilobytes", 1536, "1.50 KB"},
		{"just under a megabyte", 1048575, "1024.00 KB"},
		{"gigabytes", 5 * 1024 * 1024 * 1024, "5.00 GB"},
		{"one terabyte", 1099511627776, "1.00 TB"},
		{"saturates at terabytes", 2048 * 1099511627776, "2048.00 TB"},
		{"negative clamps", -42, "0 B"},
		{"nan clamps", math.NaN(), "0 B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HumanizeBytes(tc.in))
		})
	}
}

func TestHumanizeBytes_Infinity(t *testing.T) {
	assert.Equal(t, "+Inf TB", HumanizeBytes(math.Inf(1)))
}
